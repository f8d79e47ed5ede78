package routes

import (
	"net/http"
	"time"

	"frontdesk/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCalendarRoutes registers the calendar integration endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.GET("/auth", hb.AuthURLHandler)
		api.GET("/auth/callback", hb.AuthCallbackHandler)
		api.GET("/status", hb.CalendarStatus)
		api.GET("/availability/:date", hb.AvailabilityHandler)
		api.POST("/book", hb.BookHandler)
		api.GET("/appointments", hb.AppointmentsHandler)
	}
}

// RegisterRetellRoutes registers the voice platform administrative endpoints.
func RegisterRetellRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/retell")
	{
		api.POST("/webhook", hb.WebhookHandler)
		api.GET("/analytics", hb.AnalyticsHandler)
		api.POST("/create-call", hb.CreateCallHandler)
		api.POST("/create-web-call", hb.CreateWebCallHandler)
		api.GET("/call/:callId", hb.GetCallHandler)
		api.POST("/register-agent", hb.RegisterAgentHandler)
		api.GET("/agent-config", hb.AgentConfigHandler)
		api.GET("/company-info", hb.CompanyInfoHandler)
	}
}

// RegisterVoiceChannel registers the real-time call channel endpoint.
func RegisterVoiceChannel(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws/retell", hb.WebSocketHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCalendarRoutes(r, hb)
	RegisterRetellRoutes(r, hb)
	RegisterVoiceChannel(r, hb)
}
