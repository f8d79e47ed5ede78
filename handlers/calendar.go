package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"frontdesk/config"
	"frontdesk/models"
	"frontdesk/services/calendar"
	"frontdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler exposes the operator-facing calendar integration: the OAuth
// flow, availability lookups, and direct bookings from the dashboard.
type CalendarHandler struct {
	Backend      calendar.Backend
	Availability calendar.AvailabilityService
	Booking      calendar.BookingService
	Location     *time.Location
}

func NewCalendarHandler(backend calendar.Backend, availability calendar.AvailabilityService, booking calendar.BookingService, loc *time.Location) *CalendarHandler {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarHandler{
		Backend:      backend,
		Availability: availability,
		Booking:      booking,
		Location:     loc,
	}
}

// AuthURLHandler returns the Google consent URL for the operator.
func (h *CalendarHandler) AuthURLHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authUrl": h.Backend.AuthURL()})
}

// AuthCallbackHandler completes the OAuth flow and shows a closeable page.
func (h *CalendarHandler) AuthCallbackHandler(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "Authorization code is required", "")
		return
	}

	if err := h.Backend.Exchange(c.Request.Context(), code); err != nil {
		utils.GetLogger().Error("OAuth callback failed", zap.Error(err))
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(`
<html>
  <body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
    <h1 style="color: #f44336;">Error</h1>
    <p>Failed to connect Google Calendar.</p>
  </body>
</html>`))
		return
	}

	utils.GetLogger().Info("Google Calendar authenticated successfully")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
<html>
  <body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
    <h1 style="color: #4CAF50;">Success!</h1>
    <p>Google Calendar has been connected successfully.</p>
    <p>You can close this window and return to the dashboard.</p>
    <script>
      setTimeout(() => window.close(), 3000);
    </script>
  </body>
</html>`))
}

// StatusHandler reports whether the calendar integration is connected.
func (h *CalendarHandler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": h.Backend.IsAuthenticated(),
		"calendarId":    config.AppConfig.GoogleCalendarID,
	})
}

// AvailabilityHandler lists free slots for a date.
func (h *CalendarHandler) AvailabilityHandler(c *gin.Context) {
	dateStr := c.Param("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, h.Location)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", "expected YYYY-MM-DD, got "+dateStr)
		return
	}

	duration := calendar.DefaultSlotDuration
	if raw := c.Query("duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "duration must be a positive number of minutes")
			return
		}
		duration = time.Duration(minutes) * time.Minute
	}

	slots, err := h.Availability.AvailableSlots(c.Request.Context(), date, duration)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to get availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
		"count": len(slots),
	})
}

// BookRequest is the dashboard booking input.
type BookRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerEmail   string `json:"customerEmail"`
	ServiceType     string `json:"serviceType"`
	Description     string `json:"description"`
	Address         string `json:"address"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// BookHandler books an appointment directly from the dashboard.
func (h *CalendarHandler) BookHandler(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if req.CustomerName == "" || req.CustomerPhone == "" || req.ServiceType == "" || req.Address == "" || req.StartTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Missing required fields",
			"required": []string{"customerName", "customerPhone", "serviceType", "address", "startTime"},
		})
		return
	}

	startTime, err := time.ParseInLocation(time.RFC3339, req.StartTime, h.Location)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid startTime", "expected RFC3339, got "+req.StartTime)
		return
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("%s service request", req.ServiceType)
	}

	booking, err := h.Booking.Book(c.Request.Context(), models.BookingDetails{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ServiceType:     req.ServiceType,
		Description:     description,
		Address:         req.Address,
		StartTime:       startTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to book appointment", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": booking,
	})
}

// AppointmentsHandler lists upcoming appointments for the dashboard.
func (h *CalendarHandler) AppointmentsHandler(c *gin.Context) {
	if !h.Backend.IsAuthenticated() {
		utils.JSONError(c, http.StatusUnauthorized, "Calendar not authenticated", "")
		return
	}

	start := time.Now()
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.Location)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid startDate", "expected YYYY-MM-DD")
			return
		}
		start = parsed
	}

	end := start.AddDate(0, 0, 7)
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.Location)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid endDate", "expected YYYY-MM-DD")
			return
		}
		end = parsed
	}

	events, err := h.Backend.ListEvents(c.Request.Context(), start, end)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to get appointments", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": events,
		"count":        len(events),
	})
}
