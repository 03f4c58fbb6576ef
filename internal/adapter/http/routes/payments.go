package routes

import (
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWebhooks      = "/webhooks"
	PathCheckout      = "/checkout"
	PathNotifications = "/notifications"
)

func addPaymentRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler, checkoutHandler *handlers.CheckoutHandler, notificationHandler *handlers.NotificationHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/payment", webhookHandler.HandlePaymentEvent)
	}

	checkout := rg.Group(PathCheckout)
	{
		checkout.POST("", checkoutHandler.CreateOrder)
	}

	notifications := rg.Group(PathNotifications)
	{
		notifications.GET("/:user_id", notificationHandler.ListByUser)
	}
}
