package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups every route handler for registration.
type HandlerBundle struct {
	// Calendar endpoints.
	AuthURLHandler      gin.HandlerFunc
	AuthCallbackHandler gin.HandlerFunc
	CalendarStatus      gin.HandlerFunc
	AvailabilityHandler gin.HandlerFunc
	BookHandler         gin.HandlerFunc
	AppointmentsHandler gin.HandlerFunc

	// Voice platform endpoints.
	WebSocketHandler     gin.HandlerFunc
	WebhookHandler       gin.HandlerFunc
	AnalyticsHandler     gin.HandlerFunc
	CreateCallHandler    gin.HandlerFunc
	CreateWebCallHandler gin.HandlerFunc
	GetCallHandler       gin.HandlerFunc
	RegisterAgentHandler gin.HandlerFunc
	AgentConfigHandler   gin.HandlerFunc
	CompanyInfoHandler   gin.HandlerFunc
}
