package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	request "github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/http/dto/request"
	response "github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/http/dto/response"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/infrastructure/payments"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase"
	"github.com/Sharrmavishal/startsolomay26-sub001/pkg"

	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the gateway's HMAC-SHA256 hex digest of the raw
// request body.
const SignatureHeader = "X-Gateway-Signature"

// WebhookHandler receives payment gateway deliveries. Signature verification
// happens here, against the raw body, before any decoding.

type WebhookHandler struct {
	usecase  usecase.IPaymentEventUseCase
	verifier payments.SignatureVerifier
}

func NewWebhookHandler(uc usecase.IPaymentEventUseCase, verifier payments.SignatureVerifier) *WebhookHandler {
	return &WebhookHandler{usecase: uc, verifier: verifier}
}

// HandlePaymentEvent godoc
// @Summary      Receive a payment gateway webhook
// @Description  Verifies the delivery signature and reconciles the payment event.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Gateway-Signature  header  string  true  "HMAC-SHA256 hex signature of the raw body"
// @Success      200  {object}  response.WebhookAckResponse
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /webhooks/payment [post]
func (h *WebhookHandler) HandlePaymentEvent(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	signature := c.GetHeader(SignatureHeader)
	if !h.verifier.Verify(body, signature) {
		log.Printf("[webhook][handler] signature rejected len=%d", len(body))
		appErr := pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusUnauthorized)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.GatewayWebhookRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[webhook][handler] malformed payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Malformed webhook payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	evt := payload.ToGatewayEvent(signature)
	log.Printf("[webhook][handler] delivery start event=%s payment_id=%s order_id=%s", evt.Kind, evt.Payment.ID, evt.Payment.OrderID)

	outcome, err := h.usecase.ProcessEvent(c.Request.Context(), evt)
	if err != nil {
		log.Printf("[webhook][handler] delivery failed event=%s payment_id=%s err=%v", evt.Kind, evt.Payment.ID, err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] delivery done event=%s payment_id=%s handled=%t duplicate=%t type=%s entity_id=%s",
		evt.Kind, evt.Payment.ID, outcome.Handled, outcome.Duplicate, outcome.Type, outcome.EntityID)

	c.JSON(http.StatusOK, response.NewWebhookAck(string(evt.Kind)))
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidGatewayEvent):
		return pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Malformed webhook payload", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
