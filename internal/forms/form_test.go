package forms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neataffiliates/signup-feed-service/internal/domain"
	pkgerrors "github.com/neataffiliates/signup-feed-service/pkg/errors"
	"github.com/neataffiliates/signup-feed-service/test/mocks"
)

func filledRealmForm() *Form {
	f := New(RealmSchema())
	f.Set("username", "affiliate42")
	f.Set("email", "affiliate42@example.com")
	f.Set("password", "s3cret")
	f.Set("confirmPassword", "s3cret")
	return f
}

func TestForm_PaymentSelection_RadioSemantics(t *testing.T) {
	f := filledRealmForm()

	require.NoError(t, f.SelectPayment("crypto"))
	assert.Equal(t, "8", f.PaymentID())

	// Selecting another option replaces the previous one.
	require.NoError(t, f.SelectPayment("bank"))
	assert.Equal(t, "10", f.PaymentID())
	assert.Equal(t, domain.PaymentMethodBank, f.PaymentMethod())
}

func TestForm_SelectPayment_UnknownOption(t *testing.T) {
	f := filledRealmForm()

	err := f.SelectPayment("cheque")
	require.Error(t, err)

	// Realm does not offer the player-account option.
	err = f.SelectPayment("jetbahis")
	require.Error(t, err)
}

func TestForm_Validate_RequiredFields(t *testing.T) {
	f := New(RealmSchema())
	f.Set("email", "someone@example.com")
	require.NoError(t, f.SelectPayment("bank"))

	err := f.Validate()
	require.Error(t, err)

	var vErr *pkgerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)
}

func TestForm_Validate_PaymentRequired(t *testing.T) {
	f := filledRealmForm()

	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment method")
}

func TestForm_Validate_ThroneRules(t *testing.T) {
	f := New(ThroneSchema())
	f.Set("username", "affiliate42")
	f.Set("email", "affiliate42@example.com")
	f.Set("first_name", "Ada")
	f.Set("last_name", "Vella")
	f.Set("mobile", "+35699000000")
	f.Set("password", "s3cret")
	f.Set("confirmPassword", "different")
	f.Set("termsagreement", "1")
	require.NoError(t, f.SelectPayment("jetbahis"))

	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwords do not match")

	f.Set("confirmPassword", "s3cret")
	require.NoError(t, f.Validate())

	f.Set("termsagreement", "")
	err = f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terms")
}

func TestForm_Payload_DuplicatesPaymentKeys(t *testing.T) {
	f := filledRealmForm()
	f.Set("crypto_wallet", "abc123")
	require.NoError(t, f.SelectPayment("crypto"))
	f.SetAutoInvoice(true)

	payload := f.Payload()

	assert.Equal(t, "8", payload["paymentId"])
	assert.Equal(t, "8", payload["field_payment_type_id"])
	assert.Equal(t, "8", payload["field_payment_type"])
	assert.Equal(t, "8", payload["paymentType"])
	assert.Equal(t, "abc123", payload["crypto_wallet"])
	assert.Equal(t, true, payload["autoInvoice"])
	assert.Equal(t, "Realm", payload["instance"])
	assert.Equal(t, false, payload["termsagreement"])
}

func TestClient_Submit_ValidationFailure_NoRequest(t *testing.T) {
	httpClient := mocks.NewMockHTTPClient(nil)
	client := NewClient("http://localhost:8080", httpClient, mocks.NewMockLogger())

	f := New(RealmSchema()) // empty form

	result, err := client.Submit(context.Background(), f)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Len(t, httpClient.Calls, 0)
}

func TestClient_Submit_PostsJSONPayload(t *testing.T) {
	var sent map[string]any
	httpClient := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		require.NoError(t, json.Unmarshal(body, &sent))
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(`<RESPONSE><STATUS>OK</STATUS></RESPONSE>`)),
		}, nil
	})
	client := NewClient("http://localhost:8080", httpClient, mocks.NewMockLogger())

	f := filledRealmForm()
	require.NoError(t, f.SelectPayment("bank"))
	f.Set("bank_iban", "MT84MALT011000012345MTLCAST001S")

	result, err := client.Submit(context.Background(), f)

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, `<RESPONSE><STATUS>OK</STATUS></RESPONSE>`, string(result.Body))

	require.Len(t, httpClient.Calls, 1)
	assert.Equal(t, "http://localhost:8080/api/signup/realm", httpClient.Calls[0].URL.String())
	assert.Equal(t, "application/json", httpClient.Calls[0].Header.Get("Content-Type"))
	assert.Equal(t, "10", sent["paymentId"])
	assert.Equal(t, "10", sent["field_payment_type_id"])
	assert.Equal(t, "MT84MALT011000012345MTLCAST001S", sent["bank_iban"])
}

func TestClient_Submit_FailureStatus(t *testing.T) {
	httpClient := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(`{"ok":false,"error":"paymentId is required"}`)),
		}, nil
	})
	client := NewClient("http://localhost:8080", httpClient, mocks.NewMockLogger())

	f := filledRealmForm()
	require.NoError(t, f.SelectPayment("crypto"))

	result, err := client.Submit(context.Background(), f)

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
}
