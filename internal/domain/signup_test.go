package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/neataffiliates/signup-feed-service/pkg/errors"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"5", "8", "9", "10"} {
		method, err := ParsePaymentMethod(raw)
		require.NoError(t, err, "id %q", raw)
		assert.Equal(t, PaymentMethod(raw), method)
	}
}

func TestParsePaymentMethod_MissingSelection(t *testing.T) {
	// Loose client serialization sends "null" and "undefined" literally.
	for _, raw := range []string{"", "null", "undefined"} {
		_, err := ParsePaymentMethod(raw)
		require.Error(t, err, "id %q", raw)

		var vErr *pkgerrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "paymentId", vErr.Field)
		assert.Contains(t, vErr.Message, "paymentId is required")
	}
}

func TestParsePaymentMethod_UnknownID(t *testing.T) {
	_, err := ParsePaymentMethod("7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown payment method")
}

func TestSignupPayload_Validate(t *testing.T) {
	payload := &SignupPayload{
		Username:  "affiliate42",
		Email:     "affiliate42@example.com",
		PaymentID: "8",
	}
	require.NoError(t, payload.Validate())
}

func TestSignupPayload_Validate_IdentityBeforePayment(t *testing.T) {
	payload := &SignupPayload{PaymentID: "invalid"}

	err := payload.Validate()
	require.Error(t, err)

	var vErr *pkgerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)
	assert.Equal(t, "username and email are required", vErr.Message)
}

func TestSignupPayload_CountryOrDefault(t *testing.T) {
	payload := &SignupPayload{}
	assert.Equal(t, "MT", payload.CountryOrDefault())

	payload.Country = "DE"
	assert.Equal(t, "DE", payload.CountryOrDefault())
}

func TestSignupPayload_LanguageOrDefault(t *testing.T) {
	payload := &SignupPayload{}
	assert.Equal(t, "0", payload.LanguageOrDefault())

	payload.Language = "3"
	assert.Equal(t, "3", payload.LanguageOrDefault())
}

func TestBoolFlag(t *testing.T) {
	assert.Equal(t, "1", BoolFlag(true))
	assert.Equal(t, "0", BoolFlag(false))
}

func TestPaymentDetails_Groups(t *testing.T) {
	assert.Equal(t, PaymentMethodPlayerAccount, PlayerAccountDetails{}.Group())
	assert.Equal(t, PaymentMethodCrypto, CryptoDetails{}.Group())
	assert.Equal(t, PaymentMethodWallet, WalletDetails{}.Group())
	assert.Equal(t, PaymentMethodBank, BankDetails{}.Group())
}
