package domain

import (
	pkgerrors "github.com/neataffiliates/signup-feed-service/pkg/errors"
)

// PaymentMethod is the affiliate's payout method identifier as the feeds
// model it. The numeric codes come from the feed's payment type table and
// must be sent verbatim.
type PaymentMethod string

const (
	// PaymentMethodPlayerAccount pays out to a brand player account (Jetbahis).
	PaymentMethodPlayerAccount PaymentMethod = "5"
	// PaymentMethodCrypto pays out to a crypto wallet.
	PaymentMethodCrypto PaymentMethod = "8"
	// PaymentMethodWallet pays out to a Papel wallet.
	PaymentMethodWallet PaymentMethod = "9"
	// PaymentMethodBank pays out via bank transfer.
	PaymentMethodBank PaymentMethod = "10"
)

// Valid reports whether the method is one of the identifiers the feeds accept.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodPlayerAccount, PaymentMethodCrypto, PaymentMethodWallet, PaymentMethodBank:
		return true
	}
	return false
}

// ParsePaymentMethod validates a raw payment identifier from the front end.
// Loose client serialization produces the literal strings "null" and
// "undefined" for a missing selection; both are rejected along with empty.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	if raw == "" || raw == "null" || raw == "undefined" {
		return "", pkgerrors.NewValidationError("paymentId", "paymentId is required (e.g. 5, 8, 9, 10)")
	}
	m := PaymentMethod(raw)
	if !m.Valid() {
		return "", pkgerrors.NewValidationError("paymentId", "unknown payment method: "+raw)
	}
	return m, nil
}

// PaymentDetails is the variant record carrying only the fields relevant to
// the selected payout method. The feed translator maps every variant onto
// the full fixed key set the feeds expect, so the mapping stays total.
type PaymentDetails interface {
	// Group returns the payout method the variant belongs to.
	Group() PaymentMethod
}

// PlayerAccountDetails holds the player-account payout fields (group 5).
type PlayerAccountDetails struct {
	Email string
}

func (PlayerAccountDetails) Group() PaymentMethod { return PaymentMethodPlayerAccount }

// CryptoDetails holds the crypto payout fields (group 8).
type CryptoDetails struct {
	Method  string // network/coin, e.g. USDT TRC-20
	Wallet  string
	Surname string
}

func (CryptoDetails) Group() PaymentMethod { return PaymentMethodCrypto }

// WalletDetails holds the Papel wallet payout fields (group 9).
type WalletDetails struct {
	Surname  string
	WalletID string
}

func (WalletDetails) Group() PaymentMethod { return PaymentMethodWallet }

// BankDetails holds the bank transfer payout fields (group 10).
type BankDetails struct {
	AccountNumber string
	City          string
	Country       string
	IBAN          string
	BankName      string
	Other         string
	Street        string
	SWIFT         string
	Zip           string
}

func (BankDetails) Group() PaymentMethod { return PaymentMethodBank }
