package forms

import (
	"github.com/neataffiliates/signup-feed-service/internal/domain"
)

// FormSchema drives one brand's signup form: which fields are required,
// which payout options are offered and how an option resolves to the feed's
// payment identifier. One schema per brand replaces the copy-pasted form
// components the site used to carry.
type FormSchema struct {
	// Instance is the internal brand group name, e.g. "Realm".
	Instance string

	// Endpoint is the translator route the form posts to, e.g.
	// /api/signup/realm.
	Endpoint string

	// Required lists field names checked before any network call.
	Required []string

	// ConfirmPassword requires password and confirmPassword to match.
	ConfirmPassword bool

	// RequireTerms requires the terms checkbox to be ticked.
	RequireTerms bool

	// PaymentOptions maps the option key shown in the form to the wire
	// payment identifier.
	PaymentOptions map[string]domain.PaymentMethod
}

// RealmSchema returns the Realm instance form: minimal required set, payout
// via bank transfer, crypto or Papel wallet.
func RealmSchema() FormSchema {
	return FormSchema{
		Instance: "Realm",
		Endpoint: "/api/signup/realm",
		Required: []string{"username", "email"},
		PaymentOptions: map[string]domain.PaymentMethod{
			"bank":   domain.PaymentMethodBank,
			"crypto": domain.PaymentMethodCrypto,
			"papel":  domain.PaymentMethodWallet,
		},
	}
}

// ThroneSchema returns the Throne instance form: stricter required set and
// the additional player-account payout option.
func ThroneSchema() FormSchema {
	return FormSchema{
		Instance:        "Throne",
		Endpoint:        "/api/signup/throne",
		Required:        []string{"username", "email", "first_name", "last_name", "mobile"},
		ConfirmPassword: true,
		RequireTerms:    true,
		PaymentOptions: map[string]domain.PaymentMethod{
			"jetbahis": domain.PaymentMethodPlayerAccount,
			"crypto":   domain.PaymentMethodCrypto,
			"papel":    domain.PaymentMethodWallet,
			"bank":     domain.PaymentMethodBank,
		},
	}
}

// BluffbetSchema returns the Bluffbet form, which shares the Realm rule set
// but posts to its own flat-convention feed.
func BluffbetSchema() FormSchema {
	return FormSchema{
		Instance: "Bluffbet",
		Endpoint: "/api/signup/bluffbet",
		Required: []string{"username", "email"},
		PaymentOptions: map[string]domain.PaymentMethod{
			"bank":   domain.PaymentMethodBank,
			"crypto": domain.PaymentMethodCrypto,
			"papel":  domain.PaymentMethodWallet,
		},
	}
}
