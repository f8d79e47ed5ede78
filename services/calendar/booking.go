// File: services/calendar/booking.go
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"frontdesk/models"
	"frontdesk/utils"

	"go.uber.org/zap"
)

// BookingService submits appointment bookings to the calendar backend.
type BookingService interface {
	Book(ctx context.Context, details models.BookingDetails) (models.BookingRecord, error)
}

// DefaultBookingService composes a human-readable event and creates it on the
// backend. A single failed attempt is surfaced immediately; the caller offers
// a manual callback instead of retrying.
type DefaultBookingService struct {
	Backend Backend
}

func NewBookingService(backend Backend) *DefaultBookingService {
	return &DefaultBookingService{Backend: backend}
}

// Book validates the booking details and creates the calendar event. Returns
// ErrNotAuthenticated when no credential is configured and ErrInvalidBooking
// when required fields are missing.
func (s *DefaultBookingService) Book(ctx context.Context, details models.BookingDetails) (models.BookingRecord, error) {
	if missing := missingBookingFields(details); len(missing) > 0 {
		return models.BookingRecord{}, fmt.Errorf("%w: missing %s", ErrInvalidBooking, strings.Join(missing, ", "))
	}
	if !s.Backend.IsAuthenticated() {
		return models.BookingRecord{}, ErrNotAuthenticated
	}

	duration := details.DurationMinutes
	if duration <= 0 {
		duration = 60
	}
	end := details.StartTime.Add(time.Duration(duration) * time.Minute)

	record, err := s.Backend.CreateEvent(ctx, EventInput{
		Summary:       fmt.Sprintf("Plumbing Service: %s - %s", details.ServiceType, details.CustomerName),
		Description:   composeDescription(details),
		Location:      details.Address,
		Start:         details.StartTime,
		End:           end,
		AttendeeEmail: details.CustomerEmail,
	})
	if err != nil {
		return models.BookingRecord{}, fmt.Errorf("failed to create booking event: %w", err)
	}

	utils.GetLogger().Info("Appointment booked",
		zap.String("eventId", record.EventID),
		zap.String("customer", details.CustomerName),
		zap.String("serviceType", details.ServiceType),
		zap.Time("start", details.StartTime),
	)
	return record, nil
}

func missingBookingFields(details models.BookingDetails) []string {
	var missing []string
	if details.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if details.CustomerPhone == "" {
		missing = append(missing, "customerPhone")
	}
	if details.ServiceType == "" {
		missing = append(missing, "serviceType")
	}
	if details.Address == "" {
		missing = append(missing, "address")
	}
	if details.StartTime.IsZero() {
		missing = append(missing, "startTime")
	}
	return missing
}

// composeDescription builds the event body a technician reads before heading
// out.
func composeDescription(details models.BookingDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\n", details.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", details.CustomerPhone)
	if details.CustomerEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", details.CustomerEmail)
	}
	fmt.Fprintf(&b, "\nService Type: %s\n", details.ServiceType)
	if details.Description != "" {
		fmt.Fprintf(&b, "Issue Description: %s\n", details.Description)
	}
	fmt.Fprintf(&b, "\nAddress: %s\n", details.Address)
	b.WriteString("\n--- Booked via AI Receptionist ---")
	return b.String()
}
