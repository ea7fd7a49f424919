package signup

import (
	"github.com/neataffiliates/signup-feed-service/internal/domain"
)

// SignupRequest is the JSON body the brand signup forms post. The forms
// grew independently, so several fields arrive under more than one key;
// the alias pairs are resolved here so the rest of the service only sees
// the normalized payload.
type SignupRequest struct {
	Username        string `json:"username"`
	SignupUsername  string `json:"signup_username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	PasswordConf    string `json:"passwordconf"`

	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Address       string `json:"address"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	Postcode      string `json:"postcode"`
	Zip           string `json:"zip"`
	Company       string `json:"company"`
	Mobile        string `json:"mobile"`
	SkypeAim      string `json:"skype_aim"`
	Telegram      string `json:"telegram"`
	Website       string `json:"website"`
	Country       string `json:"country"`
	Language      string `json:"language"`

	TermsAgreement    bool `json:"termsagreement"`
	EmailSubscription bool `json:"emailsubscription"`

	// The forms duplicate the single payment selection across these keys.
	PaymentID          string `json:"paymentId"`
	FieldPaymentTypeID string `json:"field_payment_type_id"`
	FieldPaymentType   string `json:"field_payment_type"`
	PaymentType        string `json:"paymentType"`

	JetbahisEmail string `json:"jetbahis_email"`

	CryptoMethod  string `json:"crypto_method"`
	CryptoWallet  string `json:"crypto_wallet"`
	CryptoSurname string `json:"crypto_surname"`

	PapelSurname  string `json:"papel_surname"`
	PapelWalletID string `json:"papel_wallet_id"`

	BankAccnum  string `json:"bank_accnum"`
	BankAccount string `json:"bank_account"`
	BankCity    string `json:"bank_city"`
	BankCountry string `json:"bank_country"`
	BankIban    string `json:"bank_iban"`
	BankName    string `json:"bank_name"`
	BankOther   string `json:"bank_other"`
	BankStreet  string `json:"bank_street"`
	BankSwift   string `json:"bank_swift"`
	BankZip     string `json:"bank_zip"`

	InvoiceBillerDetails string `json:"invoice_biller_details"`
	InvoiceTaxType       string `json:"invoice_tax_type"`
	InvoiceTaxRate       string `json:"invoice_tax_rate"`
	InvoiceTaxNote       string `json:"invoice_tax_note"`

	AutoInvoice bool   `json:"autoInvoice"`
	Instance    string `json:"instance"`
}

// ToPayload resolves the alias keys and builds the normalized payload.
func (r *SignupRequest) ToPayload() *domain.SignupPayload {
	paymentID := firstNonEmpty(r.PaymentID, r.FieldPaymentTypeID, r.FieldPaymentType, r.PaymentType)

	return &domain.SignupPayload{
		Username:        firstNonEmpty(r.Username, r.SignupUsername),
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: firstNonEmpty(r.ConfirmPassword, r.PasswordConf),

		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		Address:     firstNonEmpty(r.Address, r.StreetAddress),
		City:        r.City,
		Postcode:    firstNonEmpty(r.Postcode, r.Zip),
		Company:     r.Company,
		Mobile:      r.Mobile,
		SkypeAim:    r.SkypeAim,
		Telegram:    r.Telegram,
		Website:     r.Website,
		Country:     r.Country,
		Language:    r.Language,

		TermsAgreement:    r.TermsAgreement,
		EmailSubscription: r.EmailSubscription,

		PaymentID: paymentID,
		Payment:   r.paymentDetails(paymentID),

		Invoice: domain.InvoiceDetails{
			BillerDetails: r.InvoiceBillerDetails,
			TaxType:       r.InvoiceTaxType,
			TaxRate:       r.InvoiceTaxRate,
			TaxNote:       r.InvoiceTaxNote,
		},
		AutoInvoice: r.AutoInvoice,
		Instance:    r.Instance,
	}
}

// paymentDetails picks the detail variant matching the selection. The form
// keeps selection and details consistent; details outside the selected
// method are dropped here rather than cross-validated.
func (r *SignupRequest) paymentDetails(paymentID string) domain.PaymentDetails {
	switch domain.PaymentMethod(paymentID) {
	case domain.PaymentMethodPlayerAccount:
		return domain.PlayerAccountDetails{Email: r.JetbahisEmail}
	case domain.PaymentMethodCrypto:
		return domain.CryptoDetails{
			Method:  r.CryptoMethod,
			Wallet:  r.CryptoWallet,
			Surname: r.CryptoSurname,
		}
	case domain.PaymentMethodWallet:
		return domain.WalletDetails{
			Surname:  r.PapelSurname,
			WalletID: r.PapelWalletID,
		}
	case domain.PaymentMethodBank:
		return domain.BankDetails{
			AccountNumber: firstNonEmpty(r.BankAccnum, r.BankAccount),
			City:          r.BankCity,
			Country:       r.BankCountry,
			IBAN:          r.BankIban,
			BankName:      r.BankName,
			Other:         r.BankOther,
			Street:        r.BankStreet,
			SWIFT:         r.BankSwift,
			Zip:           r.BankZip,
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
