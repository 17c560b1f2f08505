package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"lagocruise/models"
	booking "lagocruise/services/booking"
	"lagocruise/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const webhookTestSecret = "sk_test_webhook"

// stubService records which reconciliation entrypoints the handler dispatched.
type stubService struct {
	booking.BookingService

	chargeSuccess   []models.WebhookEventData
	chargeFailed    []models.WebhookEventData
	refundProcessed []models.WebhookEventData
	refundFailed    []models.WebhookEventData
}

func (s *stubService) ApplyChargeSuccess(ctx context.Context, data models.WebhookEventData) error {
	s.chargeSuccess = append(s.chargeSuccess, data)
	return nil
}

func (s *stubService) ApplyChargeFailed(ctx context.Context, data models.WebhookEventData) error {
	s.chargeFailed = append(s.chargeFailed, data)
	return nil
}

func (s *stubService) ApplyRefundProcessed(ctx context.Context, data models.WebhookEventData) error {
	s.refundProcessed = append(s.refundProcessed, data)
	return nil
}

func (s *stubService) ApplyRefundFailed(ctx context.Context, data models.WebhookEventData) error {
	s.refundFailed = append(s.refundFailed, data)
	return nil
}

func signPayload(payload []byte) string {
	mac := hmac.New(sha512.New, []byte(webhookTestSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gateway := payment.NewPaystackClient("https://api.paystack.co", webhookTestSecret)
	handler := NewWebhookHandler(gateway, svc, zap.NewNop())

	r := gin.New()
	r.POST("/api/v1/webhooks/paystack", handler.HandlePaystack)
	return r
}

func postWebhook(t *testing.T, r *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/paystack", bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set("x-paystack-signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookDispatchesChargeSuccess(t *testing.T) {
	svc := &stubService{}
	r := newWebhookRouter(svc)

	payload := []byte(`{"event":"charge.success","data":{"reference":"BKG-1","amount":20000,"channel":"card"}}`)
	w := postWebhook(t, r, payload, signPayload(payload))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Webhook received")
	require.Len(t, svc.chargeSuccess, 1)
	assert.Equal(t, "BKG-1", svc.chargeSuccess[0].Reference)
	assert.Equal(t, int64(20000), svc.chargeSuccess[0].Amount)
}

func TestWebhookDispatchesRefundEvents(t *testing.T) {
	svc := &stubService{}
	r := newWebhookRouter(svc)

	payload := []byte(`{"event":"refund.processed","data":{"reference":"BKG-2"}}`)
	w := postWebhook(t, r, payload, signPayload(payload))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.refundProcessed, 1)

	payload = []byte(`{"event":"refund.failed","data":{"reference":"BKG-3"}}`)
	w = postWebhook(t, r, payload, signPayload(payload))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.refundFailed, 1)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	svc := &stubService{}
	r := newWebhookRouter(svc)

	payload := []byte(`{"event":"charge.success","data":{"reference":"BKG-4"}}`)
	w := postWebhook(t, r, payload, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.chargeSuccess)
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	svc := &stubService{}
	r := newWebhookRouter(svc)

	payload := []byte(`{"event":"charge.success","data":{"reference":"BKG-5"}}`)
	w := postWebhook(t, r, payload, "deadbeef")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.chargeSuccess)
}

func TestWebhookAcknowledgesUnhandledEvents(t *testing.T) {
	svc := &stubService{}
	r := newWebhookRouter(svc)

	payload := []byte(`{"event":"subscription.create","data":{}}`)
	w := postWebhook(t, r, payload, signPayload(payload))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.chargeSuccess)
	assert.Empty(t, svc.chargeFailed)
}
