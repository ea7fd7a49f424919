package ports

import (
	"context"

	"github.com/neataffiliates/signup-feed-service/internal/domain"
)

// FeedResult carries the raw upstream feed response back to the caller.
// The body is relayed verbatim; feeds answer with XML we never parse.
type FeedResult struct {
	StatusCode  int
	ContentType string
	Body        []byte

	// Accepted is true when the feed answered with a 2xx status.
	Accepted bool
}

// FeedGateway translates a signup payload into a feed submission and
// relays the upstream response. One implementation per wire convention,
// configured per brand.
type FeedGateway interface {
	Submit(ctx context.Context, payload *domain.SignupPayload) (*FeedResult, error)
}
