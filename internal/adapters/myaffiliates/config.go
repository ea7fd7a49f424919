package myaffiliates

import (
	"time"

	pkgerrors "github.com/neataffiliates/signup-feed-service/pkg/errors"
)

// Convention selects the field-naming scheme a feed expects. The two
// schemes coexist across our MyAffiliates instances and must be reproduced
// exactly per endpoint.
type Convention string

const (
	// ConventionFlat prefixes every outbound field with PARAM_.
	ConventionFlat Convention = "flat"
	// ConventionIndexed emits payment-detail fields as form-style arrays,
	// e.g. bank_zip[10][], with fixed per-group ids.
	ConventionIndexed Convention = "indexed"
)

// FeedConfig holds one brand's feed integration settings. Credentials and
// the URL come from process-wide configuration resolved at startup and are
// never mutated at runtime.
type FeedConfig struct {
	// Brand is the internal instance name, e.g. "Realm".
	Brand string

	Convention Convention

	// URL is the feed endpoint, e.g. https://admin.example.com/feeds.php?FEED_ID=26
	URL      string
	Username string
	Password string

	// Timeout bounds the upstream call. The feed occasionally stalls;
	// without a bound a stuck submission would hold the client forever.
	Timeout time.Duration
}

// Validate checks the three values the translator cannot operate without.
// Called per request before the payload is touched.
func (c *FeedConfig) Validate() error {
	if c.URL == "" || c.Username == "" || c.Password == "" {
		return pkgerrors.NewFeedError(
			"FEED_CONFIG_MISSING",
			"missing feed configuration: need feed URL, user and password for "+c.Brand,
			pkgerrors.CategoryConfig,
		)
	}
	return nil
}
