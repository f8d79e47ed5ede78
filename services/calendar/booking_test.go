package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"frontdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() models.BookingDetails {
	return models.BookingDetails{
		CustomerName:  "Jane Doe",
		CustomerPhone: "555-123-4567",
		CustomerEmail: "jane@example.com",
		ServiceType:   "drain",
		Description:   "kitchen sink clogged",
		Address:       "42 Main St",
		StartTime:     time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestBook_Success(t *testing.T) {
	backend := &stubBackend{authenticated: true, record: models.BookingRecord{EventID: "evt-1"}}
	svc := NewBookingService(backend)

	record, err := svc.Book(context.Background(), validDetails())
	require.NoError(t, err)
	assert.Equal(t, "evt-1", record.EventID)

	require.NotNil(t, backend.lastEvent)
	assert.Equal(t, "Plumbing Service: drain - Jane Doe", backend.lastEvent.Summary)
	assert.Equal(t, "42 Main St", backend.lastEvent.Location)
	assert.Equal(t, "jane@example.com", backend.lastEvent.AttendeeEmail)
	// Default duration is one hour.
	assert.Equal(t, time.Hour, backend.lastEvent.End.Sub(backend.lastEvent.Start))
}

func TestBook_ExplicitDuration(t *testing.T) {
	backend := &stubBackend{authenticated: true}
	svc := NewBookingService(backend)

	details := validDetails()
	details.DurationMinutes = 120
	_, err := svc.Book(context.Background(), details)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, backend.lastEvent.End.Sub(backend.lastEvent.Start))
}

func TestBook_DescriptionIncludesCustomerDetails(t *testing.T) {
	backend := &stubBackend{authenticated: true}
	svc := NewBookingService(backend)

	_, err := svc.Book(context.Background(), validDetails())
	require.NoError(t, err)

	desc := backend.lastEvent.Description
	assert.Contains(t, desc, "Customer: Jane Doe")
	assert.Contains(t, desc, "Phone: 555-123-4567")
	assert.Contains(t, desc, "Email: jane@example.com")
	assert.Contains(t, desc, "Issue Description: kitchen sink clogged")
	assert.Contains(t, desc, "Address: 42 Main St")
}

func TestBook_OmitsEmailWhenAbsent(t *testing.T) {
	backend := &stubBackend{authenticated: true}
	svc := NewBookingService(backend)

	details := validDetails()
	details.CustomerEmail = ""
	_, err := svc.Book(context.Background(), details)
	require.NoError(t, err)

	assert.NotContains(t, backend.lastEvent.Description, "Email:")
	assert.Empty(t, backend.lastEvent.AttendeeEmail)
}

func TestBook_MissingFields(t *testing.T) {
	svc := NewBookingService(&stubBackend{authenticated: true})

	cases := []struct {
		name   string
		mutate func(*models.BookingDetails)
	}{
		{"no name", func(d *models.BookingDetails) { d.CustomerName = "" }},
		{"no phone", func(d *models.BookingDetails) { d.CustomerPhone = "" }},
		{"no service type", func(d *models.BookingDetails) { d.ServiceType = "" }},
		{"no address", func(d *models.BookingDetails) { d.Address = "" }},
		{"no start time", func(d *models.BookingDetails) { d.StartTime = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			details := validDetails()
			tc.mutate(&details)
			_, err := svc.Book(context.Background(), details)
			assert.ErrorIs(t, err, ErrInvalidBooking)
		})
	}
}

func TestBook_NotAuthenticated(t *testing.T) {
	svc := NewBookingService(&stubBackend{authenticated: false})

	_, err := svc.Book(context.Background(), validDetails())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestBook_BackendFailureIsNotAuthError(t *testing.T) {
	svc := NewBookingService(&stubBackend{authenticated: true, createErr: errors.New("api rejected")})

	_, err := svc.Book(context.Background(), validDetails())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotAuthenticated))
	assert.False(t, errors.Is(err, ErrInvalidBooking))
}
