package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/http/handlers/mocks"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

// stubVerifier accepts a single expected signature.
type stubVerifier struct {
	expected string
}

func (v stubVerifier) Verify(_ []byte, signature string) bool {
	return signature != "" && signature == v.expected
}

func webhookRouter(h *WebhookHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/webhooks/payment", h.HandlePaymentEvent)
	return r
}

func capturedDelivery() []byte {
	return []byte(`{
		"event": "payment.captured",
		"payload": {
			"payment": {
				"entity": {
					"id": "pay_1",
					"order_id": "order_1",
					"amount": 100000,
					"notes": {"type": "course", "course_id": "enr-1"}
				}
			}
		}
	}`)
}

func TestWebhookHandler_HandlePaymentEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing signature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentEventUseCase(ctrl)
		r := webhookRouter(NewWebhookHandler(uc, stubVerifier{expected: "good"}))

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payment", bytes.NewReader(capturedDelivery()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong signature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentEventUseCase(ctrl)
		r := webhookRouter(NewWebhookHandler(uc, stubVerifier{expected: "good"}))

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payment", bytes.NewReader(capturedDelivery()))
		req.Header.Set(SignatureHeader, "bad")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("malformed json after valid signature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentEventUseCase(ctrl)
		r := webhookRouter(NewWebhookHandler(uc, stubVerifier{expected: "good"}))

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payment", bytes.NewBufferString("{"))
		req.Header.Set(SignatureHeader, "good")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success acks with event name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentEventUseCase(ctrl)
		r := webhookRouter(NewWebhookHandler(uc, stubVerifier{expected: "good"}))

		uc.EXPECT().ProcessEvent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, evt entities.GatewayEvent) (usecase.ReconcileOutcome, error) {
				if evt.Kind != entities.GatewayEventPaymentCaptured {
					t.Fatalf("unexpected kind %q", evt.Kind)
				}
				if evt.Signature != "good" {
					t.Fatalf("expected signature forwarded, got %q", evt.Signature)
				}
				return usecase.ReconcileOutcome{Handled: true, Type: entities.PaymentTypeCourse, EntityID: "enr-1"}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payment", bytes.NewReader(capturedDelivery()))
		req.Header.Set(SignatureHeader, "good")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["success"] != true || body["event"] != "payment.captured" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("usecase invalid event maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentEventUseCase(ctrl)
		r := webhookRouter(NewWebhookHandler(uc, stubVerifier{expected: "good"}))

		uc.EXPECT().ProcessEvent(gomock.Any(), gomock.Any()).Return(usecase.ReconcileOutcome{}, usecase.ErrInvalidGatewayEvent)

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payment", bytes.NewReader(capturedDelivery()))
		req.Header.Set(SignatureHeader, "good")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase failure maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentEventUseCase(ctrl)
		r := webhookRouter(NewWebhookHandler(uc, stubVerifier{expected: "good"}))

		uc.EXPECT().ProcessEvent(gomock.Any(), gomock.Any()).Return(usecase.ReconcileOutcome{}, errors.New("dynamo down"))

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payment", bytes.NewReader(capturedDelivery()))
		req.Header.Set(SignatureHeader, "good")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
