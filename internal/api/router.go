// Package api contains the HTTP handlers and routing for the payment service.
package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, ginMode string) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())

	// Health check endpoint (no auth required)
	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	{
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.PUT("/:token", handler.ConfirmTransaction)
			transactions.GET("/:token/status", handler.GetTransactionStatus)
			transactions.POST("/:token/refunds", handler.RefundTransaction)
		}
	}

	// Webhook endpoint, called by the gateway. No auth: security is the
	// signature validation inside the handler.
	router.POST("/webhook", handler.HandleWebhook)

	return router
}
