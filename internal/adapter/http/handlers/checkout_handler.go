package handlers

import (
	"errors"
	"log"
	"net/http"

	request "github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/http/dto/request"
	response "github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/http/dto/response"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase"
	"github.com/Sharrmavishal/startsolomay26-sub001/pkg"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler creates gateway orders for pending payment-bearing rows.

type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
	keyID   string
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase, keyID string) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc, keyID: keyID}
}

// CreateOrder godoc
// @Summary      Create a gateway checkout order
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        payload  body  request.CheckoutCreateRequest  true  "payment type and entity id"
// @Success      201  {object}  response.CheckoutOrderResponse
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Failure      502  {object}  map[string]any
// @Router       /checkout [post]
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var payload request.CheckoutCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[checkout][handler] create start type=%s entity_id=%s", payload.Type, payload.EntityID)

	order, err := h.usecase.CreateOrder(c.Request.Context(), entities.PaymentType(payload.Type), payload.EntityID)
	if err != nil {
		log.Printf("[checkout][handler] create failed type=%s entity_id=%s err=%v", payload.Type, payload.EntityID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] create success type=%s entity_id=%s order_id=%s", payload.Type, payload.EntityID, order.OrderID)

	c.JSON(http.StatusCreated, response.FromCheckoutOrder(order, h.keyID))
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCheckoutType), errors.Is(err, usecase.ErrInvalidCheckoutEntity), errors.Is(err, usecase.ErrNothingToCollect):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEntityNotFound):
		return pkg.NewDomainErrorSimple("ENTITY_NOT_FOUND", "Entity not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEntityNotPending):
		return pkg.NewDomainErrorSimple("ENTITY_NOT_PENDING", "Entity is not awaiting payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrGatewayOrderFailed):
		return pkg.NewDomainErrorSimple("GATEWAY_ORDER_FAILED", "Payment gateway rejected the order", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
