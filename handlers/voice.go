package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"frontdesk/config"
	"frontdesk/models"
	"frontdesk/services/retell"
	"frontdesk/services/voice"
	"frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const analyticsKey = "calls:analytics"

// VoiceHandler serves the real-time call channel plus the platform's
// administrative surface (webhooks, call origination, agent registration).
type VoiceHandler struct {
	Dispatcher *voice.Dispatcher
	Retell     *retell.Client
	Cache      *redis.Client
	upgrader   websocket.Upgrader
}

func NewVoiceHandler(dispatcher *voice.Dispatcher, client *retell.Client, cache *redis.Client) *VoiceHandler {
	return &VoiceHandler{
		Dispatcher: dispatcher,
		Retell:     client,
		Cache:      cache,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The platform connects server-to-server; origin checks do not apply.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// wsSender writes outbound messages to the websocket. All writes happen on
// the single connection goroutine, so no write lock is needed.
type wsSender struct {
	conn *websocket.Conn
}

func (s wsSender) Send(msg any) error {
	return s.conn.WriteJSON(msg)
}

// WebSocketHandler upgrades the connection and runs the per-call message loop.
// One goroutine per connection; messages are processed strictly in arrival
// order against the connection's own session.
func (h *VoiceHandler) WebSocketHandler(c *gin.Context) {
	logger := utils.GetLogger()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	logger.Info("Voice channel connection established")
	router := voice.NewRouter(h.Dispatcher)
	sender := wsSender{conn: conn}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Voice channel closed unexpectedly", zap.Error(err))
			}
			break
		}
		if ended := router.HandleMessage(c.Request.Context(), raw, sender); ended {
			break
		}
	}

	logger.Info("Voice channel connection closed",
		zap.String("callId", router.Session().CallID))
}

// WebhookHandler records call-lifecycle events from the platform.
func (h *VoiceHandler) WebhookHandler(c *gin.Context) {
	var event struct {
		EventType           string `json:"event_type"`
		CallID              string `json:"call_id"`
		DurationSeconds     int    `json:"duration_seconds"`
		EndedBy             string `json:"ended_by"`
		DisconnectionReason string `json:"disconnection_reason"`
	}
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid webhook payload", err.Error())
		return
	}

	logger := utils.GetLogger()
	switch event.EventType {
	case models.EventCallStarted:
		logger.Info("Webhook: call started", zap.String("callId", event.CallID))
	case models.EventCallEnded:
		logger.Info("Webhook: call ended", zap.String("callId", event.CallID))
		h.recordAnalytics(c.Request.Context(), models.CallAnalytics{
			CallID:              event.CallID,
			DurationSeconds:     event.DurationSeconds,
			EndedBy:             event.EndedBy,
			DisconnectionReason: event.DisconnectionReason,
			Timestamp:           time.Now().UTC(),
		})
	case "call_analyzed":
		logger.Info("Webhook: call analyzed", zap.String("callId", event.CallID))
	default:
		logger.Debug("Webhook: unknown event type", zap.String("eventType", event.EventType))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *VoiceHandler) recordAnalytics(ctx context.Context, record models.CallAnalytics) {
	logger := utils.GetLogger()
	if record.RecordID == "" {
		record.RecordID = uuid.New().String()
	}
	data, err := json.Marshal(record)
	if err != nil {
		logger.Error("Failed to marshal call analytics", zap.Error(err))
		return
	}
	if err := h.Cache.LPush(ctx, analyticsKey, data).Err(); err != nil {
		logger.Error("Failed to store call analytics", zap.Error(err))
	}
}

// AnalyticsHandler lists the most recent call analytics records.
func (h *VoiceHandler) AnalyticsHandler(c *gin.Context) {
	raw, err := h.Cache.LRange(c.Request.Context(), analyticsKey, 0, 49).Result()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load call analytics", err.Error())
		return
	}

	records := make([]models.CallAnalytics, 0, len(raw))
	for _, item := range raw {
		var record models.CallAnalytics
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	c.JSON(http.StatusOK, gin.H{"calls": records, "count": len(records)})
}

// CreateCallHandler originates an outbound call.
func (h *VoiceHandler) CreateCallHandler(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
		AgentID     string `json:"agentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PhoneNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "Phone number is required", "")
		return
	}

	agentID := req.AgentID
	if agentID == "" {
		agentID = config.AppConfig.RetellAgentID
	}

	call, err := h.Retell.CreatePhoneCall(c.Request.Context(), config.AppConfig.RetellPhoneNumber, req.PhoneNumber, agentID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create call", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"callId":  call.CallID,
		"status":  call.CallStatus,
	})
}

// CreateWebCallHandler creates a browser-based test call.
func (h *VoiceHandler) CreateWebCallHandler(c *gin.Context) {
	call, err := h.Retell.CreateWebCall(c.Request.Context(), config.AppConfig.RetellAgentID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create web call", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"callId":      call.CallID,
		"accessToken": call.AccessToken,
	})
}

// GetCallHandler retrieves call details from the platform.
func (h *VoiceHandler) GetCallHandler(c *gin.Context) {
	details, err := h.Retell.GetCall(c.Request.Context(), c.Param("callId"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve call", err.Error())
		return
	}
	c.JSON(http.StatusOK, details)
}

// RegisterAgentHandler registers or updates the receptionist agent.
func (h *VoiceHandler) RegisterAgentHandler(c *gin.Context) {
	prompt := config.GetAgentPrompt()

	agent, err := h.Retell.RegisterAgent(c.Request.Context(), retell.RegisterAgentRequest{
		AgentName: prompt.Name,
		VoiceID:   prompt.Voice,
		Language:  prompt.Language,
		ResponseEngine: map[string]any{
			"type":   "retell-llm",
			"llm_id": config.AppConfig.RetellLLMID,
		},
		WebhookURL: config.AppConfig.WebhookURL,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register agent", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"agentId": agent.AgentID,
		"message": "Agent registered successfully",
	})
}

// AgentConfigHandler serves the agent definition to the dashboard.
func (h *VoiceHandler) AgentConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, config.GetAgentPrompt())
}

// CompanyInfoHandler serves the company identity to the dashboard.
func (h *VoiceHandler) CompanyInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, config.GetCompanyInfo())
}
