// File: services/calendar/slots.go
package calendar

import (
	"context"
	"fmt"
	"time"

	"frontdesk/models"
)

// Business hours for regular appointments: [08:00, 18:00).
const (
	businessStartHour = 8
	businessEndHour   = 18

	// DefaultSlotDuration is used when the caller does not override the
	// slot granularity.
	DefaultSlotDuration = 60 * time.Minute
)

// AvailabilityService computes free appointment slots for a date.
type AvailabilityService interface {
	AvailableSlots(ctx context.Context, date time.Time, slotDuration time.Duration) ([]models.Slot, error)
}

// DefaultAvailabilityService generates every candidate slot inside business
// hours and removes those overlapping a busy interval on the backend.
type DefaultAvailabilityService struct {
	Backend  Backend
	Location *time.Location
}

func NewAvailabilityService(backend Backend, loc *time.Location) *DefaultAvailabilityService {
	if loc == nil {
		loc = time.Local
	}
	return &DefaultAvailabilityService{Backend: backend, Location: loc}
}

// AvailableSlots returns the free slots for the given date in chronological
// order. A slot ending exactly at close is kept; a partial trailing slot is
// dropped. Overlap against busy intervals uses the open-interval test.
func (s *DefaultAvailabilityService) AvailableSlots(ctx context.Context, date time.Time, slotDuration time.Duration) ([]models.Slot, error) {
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), businessStartHour, 0, 0, 0, s.Location)
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), businessEndHour, 0, 0, 0, s.Location)

	busy, err := s.Backend.ListBusy(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch busy intervals: %w", err)
	}

	var slots []models.Slot
	for cursor := dayStart; cursor.Before(dayEnd); cursor = cursor.Add(slotDuration) {
		slotEnd := cursor.Add(slotDuration)
		if slotEnd.After(dayEnd) {
			break
		}
		if overlapsAny(cursor, slotEnd, busy) {
			continue
		}
		slots = append(slots, models.Slot{
			Start:   cursor,
			End:     slotEnd,
			Display: cursor.Format("3:04 PM"),
		})
	}
	return slots, nil
}

func overlapsAny(start, end time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return true
		}
	}
	return false
}
