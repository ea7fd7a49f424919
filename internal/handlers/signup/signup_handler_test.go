package signup

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neataffiliates/signup-feed-service/internal/adapters/myaffiliates"
	signupservice "github.com/neataffiliates/signup-feed-service/internal/services/signup"
	"github.com/neataffiliates/signup-feed-service/test/mocks"
)

func setupHandlerTest(t *testing.T, upstream *mocks.MockHTTPClient, configured bool) *Handler {
	t.Helper()

	config := myaffiliates.FeedConfig{
		Brand:      "Realm",
		Convention: myaffiliates.ConventionIndexed,
		Timeout:    5 * time.Second,
	}
	if configured {
		config.URL = "https://feeds.example.com/feeds.php?FEED_ID=26"
		config.Username = "signupapi"
		config.Password = "pass"
	}

	adapter := myaffiliates.NewFeedAdapter(config, upstream, mocks.NewMockLogger())

	service := signupservice.NewService(zap.NewNop())
	service.Register("realm", adapter)

	return NewHandler(service, zap.NewNop())
}

func postSignup(t *testing.T, h *Handler, brand, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/signup/"+brand, strings.NewReader(body))
	req.SetPathValue("brand", brand)
	rec := httptest.NewRecorder()
	h.HandleSignup(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestHandleSignup_RelaysUpstreamResponse(t *testing.T) {
	upstream := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		header := make(http.Header)
		header.Set("Content-Type", "text/xml")
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(`<RESPONSE><STATUS>OK</STATUS></RESPONSE>`)),
		}, nil
	})
	h := setupHandlerTest(t, upstream, true)

	rec := postSignup(t, h, "realm", `{
		"username": "affiliate42",
		"email": "affiliate42@example.com",
		"password": "s3cret",
		"confirmPassword": "s3cret",
		"paymentId": "8",
		"crypto_wallet": "abc123"
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, `<RESPONSE><STATUS>OK</STATUS></RESPONSE>`, rec.Body.String())
	require.Len(t, upstream.Calls, 1)

	// The outbound call carries the translated form body.
	sent, err := io.ReadAll(upstream.Calls[0].Body)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(sent))
	require.NoError(t, err)
	assert.Equal(t, "8", form.Get("PARAM_field_payment_type_id"))
	assert.Equal(t, "8", form.Get("PARAM_field_payment_type"))
	assert.Equal(t, "abc123", form.Get("crypto_wallet[8][]"))
}

func TestHandleSignup_PaymentAliasKeysAccepted(t *testing.T) {
	upstream := mocks.NewMockHTTPClient(nil)
	h := setupHandlerTest(t, upstream, true)

	rec := postSignup(t, h, "realm", `{
		"username": "affiliate42",
		"email": "affiliate42@example.com",
		"field_payment_type_id": "10",
		"bank_iban": "MT84MALT011000012345MTLCAST001S"
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, upstream.Calls, 1)
}

func TestHandleSignup_MissingIdentity(t *testing.T) {
	upstream := mocks.NewMockHTTPClient(nil)
	h := setupHandlerTest(t, upstream, true)

	rec := postSignup(t, h, "realm", `{"email": "someone@example.com", "paymentId": "8"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, upstream.Calls, 0)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["ok"])
	assert.Equal(t, "username and email are required", envelope["error"])
}

func TestHandleSignup_InvalidPaymentSelection(t *testing.T) {
	for _, id := range []string{"", "null", "undefined"} {
		upstream := mocks.NewMockHTTPClient(nil)
		h := setupHandlerTest(t, upstream, true)

		rec := postSignup(t, h, "realm", `{
			"username": "affiliate42",
			"email": "affiliate42@example.com",
			"paymentId": "`+id+`"
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "paymentId %q", id)
		assert.Len(t, upstream.Calls, 0)

		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, false, envelope["ok"])
		assert.Contains(t, envelope["error"], "paymentId is required")
	}
}

func TestHandleSignup_UnconfiguredFeed(t *testing.T) {
	upstream := mocks.NewMockHTTPClient(nil)
	h := setupHandlerTest(t, upstream, false)

	rec := postSignup(t, h, "realm", `{
		"username": "affiliate42",
		"email": "affiliate42@example.com",
		"paymentId": "8"
	}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, upstream.Calls, 0)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["ok"])
	assert.Contains(t, envelope["error"], "missing feed configuration")
}

func TestHandleSignup_UpstreamRejection(t *testing.T) {
	upstream := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		header := make(http.Header)
		header.Set("Content-Type", "application/xml")
		return &http.Response{
			StatusCode: http.StatusConflict,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(`<RESPONSE><ERROR>username taken</ERROR></RESPONSE>`)),
		}, nil
	})
	h := setupHandlerTest(t, upstream, true)

	rec := postSignup(t, h, "realm", `{
		"username": "affiliate42",
		"email": "affiliate42@example.com",
		"paymentId": "8"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, `<RESPONSE><ERROR>username taken</ERROR></RESPONSE>`, rec.Body.String())
}

func TestHandleSignup_UnknownBrand(t *testing.T) {
	h := setupHandlerTest(t, mocks.NewMockHTTPClient(nil), true)

	rec := postSignup(t, h, "nosuchbrand", `{"username": "a", "email": "b", "paymentId": "8"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["ok"])
}

func TestHandleSignup_MalformedJSON(t *testing.T) {
	h := setupHandlerTest(t, mocks.NewMockHTTPClient(nil), true)

	rec := postSignup(t, h, "realm", `{"username": `)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["ok"])
}

func TestHandleSignup_MethodNotAllowed(t *testing.T) {
	h := setupHandlerTest(t, mocks.NewMockHTTPClient(nil), true)

	req := httptest.NewRequest(http.MethodGet, "/api/signup/realm", nil)
	req.SetPathValue("brand", "realm")
	rec := httptest.NewRecorder()
	h.HandleSignup(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
