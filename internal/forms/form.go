package forms

import (
	"github.com/neataffiliates/signup-feed-service/internal/domain"
	pkgerrors "github.com/neataffiliates/signup-feed-service/pkg/errors"
)

// Form holds the state of one signup form instance: a flat field map
// updated on every input change, the single payout selection and the
// invoicing toggle. Not safe for concurrent use; each visitor gets their
// own form.
type Form struct {
	schema      FormSchema
	values      map[string]string
	payment     string // selected option key, "" when none
	autoInvoice bool
}

// New creates an empty form for the schema.
func New(schema FormSchema) *Form {
	return &Form{
		schema: schema,
		values: make(map[string]string),
	}
}

// Set records a field value, overwriting any previous one.
func (f *Form) Set(field, value string) {
	f.values[field] = value
}

// Value returns the current value of a field.
func (f *Form) Value(field string) string {
	return f.values[field]
}

// SelectPayment activates a payout option. Radio semantics: selecting one
// replaces any previous selection.
func (f *Form) SelectPayment(option string) error {
	if _, ok := f.schema.PaymentOptions[option]; !ok {
		return pkgerrors.NewValidationError("payment", "unknown payment option: "+option)
	}
	f.payment = option
	return nil
}

// PaymentID resolves the selected option to the wire identifier, empty when
// nothing is selected.
func (f *Form) PaymentID() string {
	if f.payment == "" {
		return ""
	}
	return string(f.schema.PaymentOptions[f.payment])
}

// SetAutoInvoice toggles the invoicing sub-form. The invoice fields are
// transmitted either way; the toggle only gates the UI.
func (f *Form) SetAutoInvoice(enabled bool) {
	f.autoInvoice = enabled
}

// Validate enforces the schema's UI-level rules. Called before any network
// request; a failing form never leaves the client.
func (f *Form) Validate() error {
	for _, field := range f.schema.Required {
		if f.values[field] == "" {
			return pkgerrors.NewValidationError(field, field+" is required")
		}
	}

	if f.payment == "" {
		return pkgerrors.NewValidationError("payment", "please choose a payment method")
	}

	if f.schema.RequireTerms && f.values["termsagreement"] != "1" {
		return pkgerrors.NewValidationError("termsagreement", "you must accept the terms and conditions")
	}

	if f.schema.ConfirmPassword && f.values["password"] != f.values["confirmPassword"] {
		return pkgerrors.NewValidationError("confirmPassword", "passwords do not match")
	}

	return nil
}

// Payload serializes the field map plus the duplicated payment keys into
// the JSON object the translator expects. Validate must pass first.
func (f *Form) Payload() map[string]any {
	payload := make(map[string]any, len(f.values)+6)
	for field, value := range f.values {
		payload[field] = value
	}

	// Consent checkboxes travel as booleans.
	payload["termsagreement"] = f.values["termsagreement"] == "1"
	payload["emailsubscription"] = f.values["emailsubscription"] == "1"

	// The single selection is duplicated into every key the translators
	// historically read it from.
	paymentID := f.PaymentID()
	payload["paymentId"] = paymentID
	payload["field_payment_type_id"] = paymentID
	payload["field_payment_type"] = paymentID
	payload["paymentType"] = paymentID

	payload["autoInvoice"] = f.autoInvoice
	payload["instance"] = f.schema.Instance

	return payload
}

// PaymentMethod returns the selected method, or "" when none is selected.
func (f *Form) PaymentMethod() domain.PaymentMethod {
	return domain.PaymentMethod(f.PaymentID())
}
