package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/neataffiliates/signup-feed-service/internal/domain/ports"
)

var (
	// brandCatalogHits uses no labels; the catalog is read on every
	// landing-page request and the hit rate should stay high.
	brandCatalogHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brand_catalog_cache_hits_total",
		Help: "Total number of brand catalog cache hits",
	})

	brandCatalogMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brand_catalog_cache_misses_total",
		Help: "Total number of brand catalog cache misses",
	}, []string{"reason"}) // expired, empty, error

	brandCatalogRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brand_catalog_refreshes_total",
		Help: "Total number of brand catalog refreshes from storage",
	})
)

// Brand is one entry of the public brand gallery.
type Brand struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
	Group   string `json:"group,omitempty"`
	Order   int    `json:"order,omitempty"`
	Visible bool   `json:"is_visible"`
}

// instanceDisplayNames hides internal brand-group names from the public
// catalog responses.
var instanceDisplayNames = map[string]string{
	"Realm":             "Instance 1",
	"Throne":            "Instance 2",
	"Vidavegas - BR":    "Vidavegas - BR",
	"Bluffbet":          "Bluffbet",
	"Vidavegas - Latam": "Vidavegas - Latam",
	"Jackburst":         "Jackburst",
}

// DisplayName maps an internal brand-group name to its public label.
// Unknown groups pass through unchanged.
func DisplayName(group string) string {
	if name, ok := instanceDisplayNames[group]; ok {
		return name
	}
	return group
}

// BrandCatalog serves the brand gallery from a JSON object in storage,
// cached with a TTL so landing-page traffic doesn't hammer the bucket.
type BrandCatalog struct {
	store  ports.ObjectStore
	logger *zap.Logger

	bucket string
	object string
	ttl    time.Duration

	mu        sync.RWMutex
	brands    []Brand
	fetchedAt time.Time
}

// NewBrandCatalog creates a catalog backed by bucket/object.
func NewBrandCatalog(store ports.ObjectStore, logger *zap.Logger, bucket, object string, ttl time.Duration) *BrandCatalog {
	return &BrandCatalog{
		store:  store,
		logger: logger,
		bucket: bucket,
		object: object,
		ttl:    ttl,
	}
}

// All returns every visible brand, refreshing from storage when the cached
// copy has expired. A refresh failure falls back to the stale copy when one
// exists.
func (c *BrandCatalog) All(ctx context.Context) ([]Brand, error) {
	c.mu.RLock()
	fresh := c.brands != nil && time.Since(c.fetchedAt) < c.ttl
	brands := c.brands
	c.mu.RUnlock()

	if fresh {
		brandCatalogHits.Inc()
		return visibleBrands(brands), nil
	}

	if brands == nil {
		brandCatalogMisses.WithLabelValues("empty").Inc()
	} else {
		brandCatalogMisses.WithLabelValues("expired").Inc()
	}

	refreshed, err := c.refresh(ctx)
	if err != nil {
		if brands != nil {
			c.logger.Warn("Brand catalog refresh failed, serving stale copy",
				zap.Error(err),
			)
			return visibleBrands(brands), nil
		}
		brandCatalogMisses.WithLabelValues("error").Inc()
		return nil, err
	}

	return visibleBrands(refreshed), nil
}

// ByGroup returns the visible brands of one group, ordered for display.
func (c *BrandCatalog) ByGroup(ctx context.Context, group string) ([]Brand, error) {
	all, err := c.All(ctx)
	if err != nil {
		return nil, err
	}

	var brands []Brand
	for _, b := range all {
		if b.Group == group {
			brands = append(brands, b)
		}
	}
	sort.SliceStable(brands, func(i, j int) bool {
		return brands[i].Order < brands[j].Order
	})
	return brands, nil
}

// Invalidate drops the cached copy; the next read refreshes from storage.
func (c *BrandCatalog) Invalidate() {
	c.mu.Lock()
	c.brands = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()

	c.logger.Info("Invalidated brand catalog cache")
}

func (c *BrandCatalog) refresh(ctx context.Context) ([]Brand, error) {
	data, err := c.store.Download(ctx, c.bucket, c.object)
	if err != nil {
		return nil, fmt.Errorf("failed to load brand catalog: %w", err)
	}

	var brands []Brand
	if err := json.Unmarshal(data, &brands); err != nil {
		return nil, fmt.Errorf("failed to parse brand catalog: %w", err)
	}

	c.mu.Lock()
	c.brands = brands
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	brandCatalogRefreshes.Inc()
	c.logger.Info("Refreshed brand catalog",
		zap.Int("brands", len(brands)),
		zap.Duration("ttl", c.ttl),
	)

	return brands, nil
}

func visibleBrands(brands []Brand) []Brand {
	visible := make([]Brand, 0, len(brands))
	for _, b := range brands {
		if b.Visible {
			visible = append(visible, b)
		}
	}
	return visible
}
