package domain

import (
	pkgerrors "github.com/neataffiliates/signup-feed-service/pkg/errors"
)

// DefaultCountry is used when the form leaves the country unset. The feeds
// reject submissions without a country code; MT matches the network's
// registration country.
const DefaultCountry = "MT"

// SignupPayload is the normalized affiliate signup built by a brand form.
// It lives for a single request/response cycle; the upstream feed owns
// persistence.
type SignupPayload struct {
	// Identity
	Username        string
	Email           string
	Password        string
	ConfirmPassword string

	// Profile
	FirstName   string
	LastName    string
	DateOfBirth string
	Address     string
	City        string
	Postcode    string
	Company     string
	Mobile      string
	SkypeAim    string
	Telegram    string
	Website     string
	Country     string
	Language    string

	// Consent
	TermsAgreement    bool
	EmailSubscription bool

	// Payment selection. The raw identifier is kept as sent; the translator
	// parses and duplicates it into both wire fields.
	PaymentID string

	// Payout details for the selected method. Nil when the form carried no
	// detail fields; the translator still emits every detail key.
	Payment PaymentDetails

	// Invoicing is always transmitted; the autoInvoice toggle only gates
	// the sub-form in the UI.
	Invoice     InvoiceDetails
	AutoInvoice bool

	// Instance is the internal brand group name, e.g. "Realm".
	Instance string
}

// InvoiceDetails is the optional self-billing sub-record.
type InvoiceDetails struct {
	BillerDetails string
	TaxType       string
	TaxRate       string
	TaxNote       string
}

// CountryOrDefault returns the country, falling back to DefaultCountry when
// the field was left empty.
func (p *SignupPayload) CountryOrDefault() string {
	if p.Country == "" {
		return DefaultCountry
	}
	return p.Country
}

// LanguageOrDefault returns the language id, defaulting to "0" (feed default).
func (p *SignupPayload) LanguageOrDefault() string {
	if p.Language == "" {
		return "0"
	}
	return p.Language
}

// Validate enforces the top-level rules every feed shares: username and
// email must be present and the payment identifier must resolve. Payment
// detail consistency is the form's responsibility, not checked here.
func (p *SignupPayload) Validate() error {
	if p.Username == "" {
		return pkgerrors.NewValidationError("username", "username and email are required")
	}
	if p.Email == "" {
		return pkgerrors.NewValidationError("email", "username and email are required")
	}
	if _, err := ParsePaymentMethod(p.PaymentID); err != nil {
		return err
	}
	return nil
}

// BoolFlag serializes a consent flag the way the feeds expect it.
func BoolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
