// File: services/voice/dispatch.go
package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"frontdesk/models"
	"frontdesk/services/calendar"
	"frontdesk/utils"

	"go.uber.org/zap"
)

// The closed set of functions the voice agent may invoke.
const (
	FnBookAppointment    = "book_appointment"
	FnCheckAvailability  = "check_availability"
	FnGetServiceInfo     = "get_service_info"
	FnUpdateCustomerInfo = "update_customer_info"
)

// Result is the envelope returned for every function invocation: either a
// success/failure payload or an {error} payload for protocol-level problems.
type Result map[string]any

// DisplaySlot is a canned fallback slot offered when the calendar backend is
// not reachable.
type DisplaySlot struct {
	Display string `json:"display"`
}

// FallbackSlots is the fixed slot list quoted when availability cannot be
// checked against the calendar.
func FallbackSlots() []DisplaySlot {
	return []DisplaySlot{
		{Display: "8:00 AM"},
		{Display: "9:00 AM"},
		{Display: "10:00 AM"},
		{Display: "11:00 AM"},
		{Display: "1:00 PM"},
		{Display: "2:00 PM"},
		{Display: "3:00 PM"},
		{Display: "4:00 PM"},
	}
}

// Dispatcher routes function calls from the voice platform to their handlers
// and merges results into the call session.
type Dispatcher struct {
	Availability calendar.AvailabilityService
	Booking      calendar.BookingService
	Backend      calendar.Backend
	Location     *time.Location
}

func NewDispatcher(availability calendar.AvailabilityService, booking calendar.BookingService, backend calendar.Backend, loc *time.Location) *Dispatcher {
	if loc == nil {
		loc = time.Local
	}
	return &Dispatcher{
		Availability: availability,
		Booking:      booking,
		Backend:      backend,
		Location:     loc,
	}
}

// Dispatch runs one named function against the session. It never panics and
// never leaves an invocation unanswered: handler failures come back as that
// function's failure result.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any, session *models.CallSession) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			utils.GetLogger().Error("Recovered panic in function handler",
				zap.String("function", name), zap.Any("recover", rec))
			result = Result{"error": fmt.Sprintf("Error executing function %s", name)}
		}
	}()

	switch name {
	case FnBookAppointment:
		return d.bookAppointment(ctx, args, session)
	case FnCheckAvailability:
		return d.checkAvailability(ctx, args)
	case FnGetServiceInfo:
		return d.getServiceInfo(args)
	case FnUpdateCustomerInfo:
		return d.updateCustomerInfo(args, session)
	default:
		return Result{"error": fmt.Sprintf("Unknown function: %s", name)}
	}
}

// bookAppointmentArgs is the explicit argument shape for book_appointment.
type bookAppointmentArgs struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`
	ServiceType   string `json:"serviceType"`
	Description   string `json:"description"`
	Address       string `json:"address"`
	DateTime      string `json:"dateTime"`
}

func (d *Dispatcher) bookAppointment(ctx context.Context, raw map[string]any, session *models.CallSession) Result {
	var args bookAppointmentArgs
	if err := decodeArgs(raw, &args); err != nil {
		return Result{"success": false, "message": "Invalid booking arguments: " + err.Error()}
	}

	// Supplied values win; existing session values fill the gaps.
	mergeField(&session.CustomerName, args.CustomerName)
	mergeField(&session.CustomerPhone, args.CustomerPhone)
	mergeField(&session.CustomerEmail, args.CustomerEmail)
	mergeField(&session.ServiceType, args.ServiceType)
	mergeField(&session.IssueDescription, args.Description)
	mergeField(&session.Address, args.Address)

	if !d.Backend.IsAuthenticated() {
		return Result{
			"success": false,
			"message": "Calendar service not configured. Please have the office call you back to confirm your appointment.",
		}
	}

	startTime, err := parseDateTime(args.DateTime, d.Location)
	if err != nil && args.DateTime != "" {
		return Result{"success": false, "message": "Could not understand the requested date and time. Please confirm the appointment time."}
	}

	record, err := d.Booking.Book(ctx, models.BookingDetails{
		CustomerName:  session.CustomerName,
		CustomerPhone: session.CustomerPhone,
		CustomerEmail: session.CustomerEmail,
		ServiceType:   session.ServiceType,
		Description:   session.IssueDescription,
		Address:       session.Address,
		StartTime:     startTime,
	})
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidBooking) {
			return Result{"success": false, "message": "Missing required booking information. " + err.Error()}
		}
		utils.GetLogger().Error("Booking failed", zap.Error(err))
		return Result{
			"success": false,
			"message": "Unable to book appointment at this time. Our team will call you back to confirm.",
		}
	}

	session.BookingConfirmed = true
	return Result{
		"success": true,
		"message": fmt.Sprintf("Appointment booked for %s", startTime.Format("Monday, January 2 at 3:04 PM")),
		"eventId": record.EventID,
	}
}

// checkAvailabilityArgs is the explicit argument shape for check_availability.
type checkAvailabilityArgs struct {
	Date string `json:"date"`
}

func (d *Dispatcher) checkAvailability(ctx context.Context, raw map[string]any) Result {
	var args checkAvailabilityArgs
	if err := decodeArgs(raw, &args); err != nil || args.Date == "" {
		return Result{"success": false, "message": "A date is required to check availability."}
	}

	if !d.Backend.IsAuthenticated() {
		return Result{
			"success": false,
			"message": "Calendar service not configured.",
			"slots":   FallbackSlots(),
		}
	}

	date, err := time.ParseInLocation("2006-01-02", args.Date, d.Location)
	if err != nil {
		return Result{"success": false, "message": "Could not understand the requested date. Please use YYYY-MM-DD."}
	}

	slots, err := d.Availability.AvailableSlots(ctx, date, calendar.DefaultSlotDuration)
	if err != nil {
		utils.GetLogger().Error("Availability check failed", zap.Error(err))
		return Result{
			"success": false,
			"message": "Unable to check availability",
			"slots":   FallbackSlots(),
		}
	}

	return Result{
		"success":        true,
		"date":           args.Date,
		"availableSlots": slots,
	}
}

// getServiceInfoArgs is the explicit argument shape for get_service_info.
type getServiceInfoArgs struct {
	ServiceType string `json:"serviceType"`
}

func (d *Dispatcher) getServiceInfo(raw map[string]any) Result {
	var args getServiceInfoArgs
	_ = decodeArgs(raw, &args)

	if args.ServiceType != "" {
		if info, ok := GetService(models.ServiceType(args.ServiceType)); ok {
			return Result{
				"name":          info.Name,
				"description":   info.Description,
				"estimatedTime": info.EstimatedTime,
			}
		}
	}

	return Result{
		"availableServices": models.AllServiceTypes(),
		"services":          ListServices(),
	}
}

func (d *Dispatcher) updateCustomerInfo(raw map[string]any, session *models.CallSession) Result {
	for key, value := range raw {
		text, ok := value.(string)
		if !ok {
			continue
		}
		if !session.SetField(key, text) {
			utils.GetLogger().Debug("Dropping unknown customer info key", zap.String("key", key))
		}
	}
	return Result{"success": true, "message": "Customer information updated"}
}

// decodeArgs converts the freeform argument mapping into an explicit struct.
func decodeArgs(raw map[string]any, out any) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func mergeField(dst *string, supplied string) {
	if supplied != "" {
		*dst = supplied
	}
}

// parseDateTime accepts the ISO shapes the agent produces.
func parseDateTime(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty dateTime")
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized dateTime %q", value)
}
