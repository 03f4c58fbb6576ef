package routes

import (
	"log"

	_ "github.com/Sharrmavishal/startsolomay26-sub001/docs" // swag generated docs
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/http/handlers"
	repository2 "github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/persistence/repository"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/config"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/infrastructure/database"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/infrastructure/payments"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/infrastructure/queue"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg := config.Load()

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg)

	err := router.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg config.Config) {
	ddb := database.ConnectDynamoDB(cfg)

	enrollmentRepo := repository2.NewEnrollmentDynamoRepository(ddb, cfg.Tables.Enrollments)
	sessionRepo := repository2.NewSessionDynamoRepository(ddb, cfg.Tables.Sessions)
	registrationRepo := repository2.NewEventRegistrationDynamoRepository(ddb, cfg.Tables.EventRegistrations)
	purchaseRepo := repository2.NewProductPurchaseDynamoRepository(ddb, cfg.Tables.ProductPurchases)
	courseRepo := repository2.NewCourseDynamoRepository(ddb, cfg.Tables.Courses)
	eventRepo := repository2.NewEventDynamoRepository(ddb, cfg.Tables.Events)
	settingsRepo := repository2.NewSettingsDynamoRepository(ddb, cfg.Tables.Settings)
	notificationRepo := repository2.NewNotificationDynamoRepository(ddb, cfg.Tables.Notifications)
	ledgerRepo := repository2.NewWebhookEventDynamoRepository(ddb, cfg.Tables.WebhookEvents)

	var paymentGateway interfaces.IPaymentGateway
	rzpGateway, err := payments.NewRazorpayGateway(cfg.GatewayKeyID, cfg.GatewayKeySecret)
	if err != nil {
		log.Printf("Payment gateway not configured: %v", err)
	} else {
		paymentGateway = rzpGateway
	}

	publisher := queue.NewPublisher(cfg.AMQPURL)

	paymentEventUseCase := usecase.NewPaymentEventUseCase(usecase.PaymentEventDeps{
		Enrollments:   enrollmentRepo,
		Sessions:      sessionRepo,
		Registrations: registrationRepo,
		Purchases:     purchaseRepo,
		Courses:       courseRepo,
		Events:        eventRepo,
		Settings:      settingsRepo,
		Notifications: notificationRepo,
		Ledger:        ledgerRepo,
		Publisher:     publisher,
	})
	checkoutUseCase := usecase.NewCheckoutUseCase(paymentGateway, enrollmentRepo, sessionRepo, registrationRepo, purchaseRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)

	// The dispatcher consumes notifications.enqueued and marks rows sent.
	go func() {
		if err := queue.StartNotificationDispatcher(cfg.AMQPURL, notificationUseCase); err != nil {
			log.Printf("Notification dispatcher stopped: %v", err)
		}
	}()

	verifier := payments.NewWebhookSignatureVerifier(cfg.WebhookSecret)

	webhookHandler := handlers.NewWebhookHandler(paymentEventUseCase, verifier)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase, cfg.GatewayKeyID)
	notificationHandler := handlers.NewNotificationHandler(notificationUseCase)

	// Public routes
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, webhookHandler, checkoutHandler, notificationHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
