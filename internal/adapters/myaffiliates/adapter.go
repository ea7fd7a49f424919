package myaffiliates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/neataffiliates/signup-feed-service/internal/domain"
	"github.com/neataffiliates/signup-feed-service/internal/domain/ports"
	pkgerrors "github.com/neataffiliates/signup-feed-service/pkg/errors"
)

// Fixed payment group ids embedded in the indexed field names. These are
// per-field-template identifiers from the feed's payment type table and do
// NOT track the user's selection.
const (
	groupPlayerAccount = "5"
	groupCrypto        = "8"
	groupWallet        = "9"
	groupBank          = "10"
)

// paymentDetailFields is the full set of payout detail fields across all
// four methods, with their fixed group ids. Every key is always emitted;
// the feeds expect the keys to exist even when blank.
var paymentDetailFields = []struct {
	name  string
	group string
}{
	{"jetbahis_email", groupPlayerAccount},
	{"crypto_method", groupCrypto},
	{"crypto_wallet", groupCrypto},
	{"crypto_surname", groupCrypto},
	{"papel_surname", groupWallet},
	{"papel_wallet_id", groupWallet},
	{"bank_accnum", groupBank},
	{"bank_city", groupBank},
	{"bank_country", groupBank},
	{"bank_iban", groupBank},
	{"bank_name", groupBank},
	{"bank_other", groupBank},
	{"bank_street", groupBank},
	{"bank_swift", groupBank},
	{"bank_zip", groupBank},
}

// FeedAdapter implements the FeedGateway port against a MyAffiliates-style
// feeds.php endpoint. One instance per brand; the convention in the config
// decides the field-naming scheme.
type FeedAdapter struct {
	config     FeedConfig
	httpClient ports.HTTPClient
	logger     ports.Logger
}

// NewFeedAdapter creates a new feed adapter with dependency injection
func NewFeedAdapter(config FeedConfig, httpClient ports.HTTPClient, logger ports.Logger) *FeedAdapter {
	return &FeedAdapter{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Submit validates the payload, builds the feed's wire format and relays
// the raw upstream response. Single best-effort attempt; the caller owns
// any retry decision.
func (a *FeedAdapter) Submit(ctx context.Context, payload *domain.SignupPayload) (*ports.FeedResult, error) {
	// Config gate first, before the request body is touched.
	if err := a.config.Validate(); err != nil {
		a.logger.Error("feed not configured", ports.String("brand", a.config.Brand), ports.Err(err))
		return nil, err
	}

	if err := payload.Validate(); err != nil {
		return nil, err
	}

	method, err := domain.ParsePaymentMethod(payload.PaymentID)
	if err != nil {
		return nil, err
	}

	var form url.Values
	switch a.config.Convention {
	case ConventionIndexed:
		form = a.buildIndexedForm(payload, method)
	default:
		form = a.buildFlatForm(payload, method)
	}

	body := form.Encode()

	a.logger.Info("submitting signup to feed",
		ports.String("brand", a.config.Brand),
		ports.String("convention", string(a.config.Convention)),
		ports.String("username", payload.Username),
		ports.String("payment_method", string(method)),
	)

	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", BasicAuth(a.config.Username, a.config.Password))

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("feed request failed", ports.String("brand", a.config.Brand), ports.Err(err))
		return nil, pkgerrors.NewFeedError("FEED_UNREACHABLE", "failed to reach affiliate feed", pkgerrors.CategoryNetworkError)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	accepted := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !accepted {
		a.logger.Warn("feed rejected submission",
			ports.String("brand", a.config.Brand),
			ports.Int("status_code", resp.StatusCode),
		)
	}

	return &ports.FeedResult{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        respBody,
		Accepted:    accepted,
	}, nil
}

// buildFlatForm constructs the PARAM_-prefixed form body used by the
// "simple" feed integrations. The field list is fixed regardless of input
// completeness.
func (a *FeedAdapter) buildFlatForm(p *domain.SignupPayload, method domain.PaymentMethod) url.Values {
	v := url.Values{}
	v.Set("account_type", "shell")

	v.Set("PARAM_username", p.Username)
	v.Set("PARAM_password", p.Password)
	v.Set("PARAM_confirmPassword", p.ConfirmPassword)
	v.Set("PARAM_email", p.Email)
	v.Set("PARAM_country", p.CountryOrDefault())

	v.Set("PARAM_first_name", p.FirstName)
	v.Set("PARAM_last_name", p.LastName)
	v.Set("PARAM_mobile", p.Mobile)
	v.Set("PARAM_agreement", domain.BoolFlag(p.TermsAgreement))

	v.Set("PARAM_address", p.Address)
	v.Set("PARAM_city", p.City)
	v.Set("PARAM_zip", p.Postcode)

	v.Set("PARAM_company", p.Company)
	v.Set("PARAM_website", p.Website)
	v.Set("PARAM_skype_aim", p.SkypeAim)
	v.Set("PARAM_telegram", p.Telegram)
	v.Set("PARAM_date_of_birth", p.DateOfBirth)
	v.Set("PARAM_emailsubscription", domain.BoolFlag(p.EmailSubscription))

	// The feed models the payout method in two schema columns that must
	// stay in sync, so the single selection is written to both names.
	v.Set("PARAM_field_payment_type_id", string(method))
	v.Set("PARAM_field_payment_type", string(method))

	for name, value := range paymentDetailValues(p.Payment) {
		v.Set("PARAM_"+name, value)
	}

	v.Set("PARAM_invoice_biller_details", p.Invoice.BillerDetails)
	v.Set("PARAM_invoice_tax_type", p.Invoice.TaxType)
	v.Set("PARAM_invoice_tax_rate", p.Invoice.TaxRate)
	v.Set("PARAM_invoice_tax_note", p.Invoice.TaxNote)

	return v
}

// buildIndexedForm constructs the form-style body where payment details are
// array keys with fixed group ids and invoicing fields stay unprefixed.
func (a *FeedAdapter) buildIndexedForm(p *domain.SignupPayload, method domain.PaymentMethod) url.Values {
	v := url.Values{}
	v.Set("account_type", "shell")

	v.Set("PARAM_username", p.Username)
	v.Set("PARAM_password", p.Password)
	v.Set("PARAM_confirmPassword", p.ConfirmPassword)
	v.Set("PARAM_email", p.Email)
	v.Set("PARAM_country", p.CountryOrDefault())
	v.Set("PARAM_language", p.LanguageOrDefault())

	v.Set("PARAM_first_name", p.FirstName)
	v.Set("PARAM_last_name", p.LastName)
	v.Set("PARAM_date_of_birth", p.DateOfBirth)
	v.Set("PARAM_address", p.Address)
	v.Set("PARAM_city", p.City)
	v.Set("PARAM_zip", p.Postcode)
	v.Set("PARAM_company", p.Company)
	v.Set("PARAM_mobile", p.Mobile)
	v.Set("PARAM_skype_aim", p.SkypeAim)
	v.Set("PARAM_telegram", p.Telegram)
	v.Set("PARAM_website", p.Website)

	v.Set("PARAM_agreement", domain.BoolFlag(p.TermsAgreement))
	v.Set("PARAM_emailsubscription", domain.BoolFlag(p.EmailSubscription))

	v.Set("PARAM_field_payment_type_id", string(method))
	v.Set("PARAM_field_payment_type", string(method))

	// Every detail key is present even when blank; the group id in the key
	// is the fixed field-template id, not the selected method.
	values := paymentDetailValues(p.Payment)
	for _, f := range paymentDetailFields {
		v.Set(fmt.Sprintf("%s[%s][]", f.name, f.group), values[f.name])
	}

	v.Set("invoice_biller_details", p.Invoice.BillerDetails)
	v.Set("invoice_tax_type", p.Invoice.TaxType)
	v.Set("invoice_tax_rate", p.Invoice.TaxRate)
	v.Set("invoice_tax_note", p.Invoice.TaxNote)

	return v
}

// paymentDetailValues maps the payout detail variant onto the full semantic
// field set. Fields outside the selected method stay empty.
func paymentDetailValues(details domain.PaymentDetails) map[string]string {
	values := make(map[string]string, len(paymentDetailFields))
	for _, f := range paymentDetailFields {
		values[f.name] = ""
	}

	switch d := details.(type) {
	case domain.PlayerAccountDetails:
		values["jetbahis_email"] = d.Email
	case domain.CryptoDetails:
		values["crypto_method"] = d.Method
		values["crypto_wallet"] = d.Wallet
		values["crypto_surname"] = d.Surname
	case domain.WalletDetails:
		values["papel_surname"] = d.Surname
		values["papel_wallet_id"] = d.WalletID
	case domain.BankDetails:
		values["bank_accnum"] = d.AccountNumber
		values["bank_city"] = d.City
		values["bank_country"] = d.Country
		values["bank_iban"] = d.IBAN
		values["bank_name"] = d.BankName
		values["bank_other"] = d.Other
		values["bank_street"] = d.Street
		values["bank_swift"] = d.SWIFT
		values["bank_zip"] = d.Zip
	}

	return values
}
