package signup

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/neataffiliates/signup-feed-service/internal/domain"
	"github.com/neataffiliates/signup-feed-service/internal/domain/ports"
	pkgerrors "github.com/neataffiliates/signup-feed-service/pkg/errors"
	"github.com/neataffiliates/signup-feed-service/pkg/observability"
)

// ErrUnknownBrand is returned when no feed is registered for the requested
// brand slug.
var ErrUnknownBrand = errors.New("unknown brand")

// Service routes signup submissions to the feed gateway registered for the
// brand. Stateless per request; submissions are independent one-shot calls.
type Service struct {
	gateways map[string]ports.FeedGateway
	logger   *zap.Logger
}

// NewService creates an empty signup service
func NewService(logger *zap.Logger) *Service {
	return &Service{
		gateways: make(map[string]ports.FeedGateway),
		logger:   logger,
	}
}

// Register wires a brand slug to its feed gateway. Called during startup
// only; the map is read-only afterwards.
func (s *Service) Register(brand string, gateway ports.FeedGateway) {
	s.gateways[brand] = gateway
}

// Brands returns the registered brand slugs.
func (s *Service) Brands() []string {
	brands := make([]string, 0, len(s.gateways))
	for brand := range s.gateways {
		brands = append(brands, brand)
	}
	return brands
}

// Submit forwards the payload to the brand's feed and relays the result.
// No retries; the browser owns any retry decision.
func (s *Service) Submit(ctx context.Context, brand string, payload *domain.SignupPayload) (*ports.FeedResult, error) {
	gateway, ok := s.gateways[brand]
	if !ok {
		return nil, ErrUnknownBrand
	}

	result, err := gateway.Submit(ctx, payload)
	observability.RecordFeedSubmission(brand, submissionOutcome(result, err))

	if err != nil {
		s.logger.Warn("signup submission failed",
			zap.String("brand", brand),
			zap.String("username", payload.Username),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("signup relayed",
		zap.String("brand", brand),
		zap.String("username", payload.Username),
		zap.Int("upstream_status", result.StatusCode),
		zap.Bool("accepted", result.Accepted),
	)
	return result, nil
}

func submissionOutcome(result *ports.FeedResult, err error) string {
	if err == nil {
		if result.Accepted {
			return "accepted"
		}
		return "rejected"
	}

	var vErr *pkgerrors.ValidationError
	if errors.As(err, &vErr) {
		return "validation_error"
	}

	var fErr *pkgerrors.FeedError
	if errors.As(err, &fErr) {
		return string(fErr.Category)
	}

	return "error"
}
