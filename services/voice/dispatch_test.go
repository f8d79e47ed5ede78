package voice

import (
	"context"
	"errors"
	"testing"
	"time"

	"frontdesk/models"
	"frontdesk/services/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements calendar.Backend for dispatcher tests.
type fakeBackend struct {
	authenticated bool
	busy          []models.BusyInterval
	busyErr       error
	panicOnBusy   bool
	createErr     error
	eventID       string
	created       []calendar.EventInput
}

func (f *fakeBackend) IsAuthenticated() bool { return f.authenticated }
func (f *fakeBackend) AuthURL() string       { return "https://example.com/auth" }
func (f *fakeBackend) Exchange(ctx context.Context, code string) error {
	f.authenticated = true
	return nil
}

func (f *fakeBackend) ListBusy(ctx context.Context, start, end time.Time) ([]models.BusyInterval, error) {
	if f.panicOnBusy {
		panic("backend exploded")
	}
	return f.busy, f.busyErr
}

func (f *fakeBackend) CreateEvent(ctx context.Context, input calendar.EventInput) (models.BookingRecord, error) {
	if f.createErr != nil {
		return models.BookingRecord{}, f.createErr
	}
	f.created = append(f.created, input)
	return models.BookingRecord{
		EventID: f.eventID,
		Start:   input.Start,
		End:     input.End,
		Summary: input.Summary,
	}, nil
}

func (f *fakeBackend) ListEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	return nil, nil
}

func newTestDispatcher(backend *fakeBackend) *Dispatcher {
	availability := calendar.NewAvailabilityService(backend, time.UTC)
	booking := calendar.NewBookingService(backend)
	return NewDispatcher(availability, booking, backend, time.UTC)
}

func validBookingArgs() map[string]any {
	return map[string]any{
		"customerName":  "Jane Doe",
		"customerPhone": "555-123-4567",
		"serviceType":   "drain",
		"description":   "kitchen sink clogged",
		"address":       "42 Main St",
		"dateTime":      "2024-06-10T10:00:00Z",
	}
}

func TestDispatchUnknownFunction(t *testing.T) {
	d := newTestDispatcher(&fakeBackend{})
	session := &models.CallSession{}

	result := d.Dispatch(context.Background(), "unknown_fn", map[string]any{}, session)
	assert.Equal(t, "Unknown function: unknown_fn", result["error"])
}

func TestDispatchGetServiceInfo_SingleEntry(t *testing.T) {
	d := newTestDispatcher(&fakeBackend{})

	result := d.Dispatch(context.Background(), FnGetServiceInfo, map[string]any{"serviceType": "drain"}, &models.CallSession{})
	assert.Equal(t, "Drain Cleaning", result["name"])
	assert.NotContains(t, result, "services")
}

func TestDispatchGetServiceInfo_FullCatalog(t *testing.T) {
	d := newTestDispatcher(&fakeBackend{})

	for _, args := range []map[string]any{{}, {"serviceType": "carpentry"}} {
		result := d.Dispatch(context.Background(), FnGetServiceInfo, args, &models.CallSession{})

		keys, ok := result["availableServices"].([]models.ServiceType)
		require.True(t, ok)
		assert.Len(t, keys, 6)

		services, ok := result["services"].(map[models.ServiceType]models.ServiceInfo)
		require.True(t, ok)
		assert.Len(t, services, 6)
	}
}

func TestDispatchUpdateCustomerInfo(t *testing.T) {
	d := newTestDispatcher(&fakeBackend{})
	session := &models.CallSession{CustomerName: "Old Name"}

	result := d.Dispatch(context.Background(), FnUpdateCustomerInfo, map[string]any{
		"customerName": "Jane Doe",
		"address":      "42 Main St",
		"favoriteDog":  "rex",
		"notAString":   7,
	}, session)

	assert.Equal(t, true, result["success"])
	assert.Equal(t, "Jane Doe", session.CustomerName)
	assert.Equal(t, "42 Main St", session.Address)
}

func TestDispatchCheckAvailability_Unauthenticated(t *testing.T) {
	d := newTestDispatcher(&fakeBackend{authenticated: false})

	result := d.Dispatch(context.Background(), FnCheckAvailability, map[string]any{"date": "2024-06-10"}, &models.CallSession{})
	assert.Equal(t, false, result["success"])

	slots, ok := result["slots"].([]DisplaySlot)
	require.True(t, ok)
	assert.NotEmpty(t, slots)
	assert.Equal(t, "8:00 AM", slots[0].Display)
}

func TestDispatchCheckAvailability_Success(t *testing.T) {
	busyStart := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	backend := &fakeBackend{
		authenticated: true,
		busy:          []models.BusyInterval{{Start: busyStart, End: busyStart.Add(time.Hour)}},
	}
	d := newTestDispatcher(backend)

	result := d.Dispatch(context.Background(), FnCheckAvailability, map[string]any{"date": "2024-06-10"}, &models.CallSession{})
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "2024-06-10", result["date"])

	slots, ok := result["availableSlots"].([]models.Slot)
	require.True(t, ok)
	// 10 hourly candidates minus the 9:00 busy hour.
	assert.Len(t, slots, 9)
	for _, slot := range slots {
		assert.False(t, slot.Start.Equal(busyStart))
	}
}

func TestDispatchCheckAvailability_BackendErrorFallsBack(t *testing.T) {
	backend := &fakeBackend{authenticated: true, busyErr: errors.New("api down")}
	d := newTestDispatcher(backend)

	result := d.Dispatch(context.Background(), FnCheckAvailability, map[string]any{"date": "2024-06-10"}, &models.CallSession{})
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "Unable to check availability", result["message"])
	assert.NotEmpty(t, result["slots"])
}

func TestDispatchCheckAvailability_MissingDate(t *testing.T) {
	d := newTestDispatcher(&fakeBackend{authenticated: true})

	result := d.Dispatch(context.Background(), FnCheckAvailability, map[string]any{}, &models.CallSession{})
	assert.Equal(t, false, result["success"])
}

func TestDispatchBookAppointment_Success(t *testing.T) {
	backend := &fakeBackend{authenticated: true, eventID: "evt-123"}
	d := newTestDispatcher(backend)
	session := &models.CallSession{}

	result := d.Dispatch(context.Background(), FnBookAppointment, validBookingArgs(), session)

	assert.Equal(t, true, result["success"])
	assert.Equal(t, "evt-123", result["eventId"])
	assert.True(t, session.BookingConfirmed)
	assert.Equal(t, "Jane Doe", session.CustomerName)
	assert.Equal(t, "drain", session.ServiceType)

	require.Len(t, backend.created, 1)
	assert.Equal(t, "Plumbing Service: drain - Jane Doe", backend.created[0].Summary)
	assert.Equal(t, "42 Main St", backend.created[0].Location)
}

func TestDispatchBookAppointment_MissingAddress(t *testing.T) {
	backend := &fakeBackend{authenticated: true, eventID: "evt-123"}
	d := newTestDispatcher(backend)
	session := &models.CallSession{}

	args := validBookingArgs()
	delete(args, "address")

	result := d.Dispatch(context.Background(), FnBookAppointment, args, session)
	assert.Equal(t, false, result["success"])
	assert.False(t, session.BookingConfirmed)
	assert.Empty(t, backend.created)
}

func TestDispatchBookAppointment_SessionFillsGaps(t *testing.T) {
	backend := &fakeBackend{authenticated: true, eventID: "evt-456"}
	d := newTestDispatcher(backend)
	session := &models.CallSession{Address: "42 Main St", CustomerEmail: "jane@example.com"}

	args := validBookingArgs()
	delete(args, "address")

	result := d.Dispatch(context.Background(), FnBookAppointment, args, session)
	assert.Equal(t, true, result["success"])
	assert.True(t, session.BookingConfirmed)

	require.Len(t, backend.created, 1)
	assert.Equal(t, "jane@example.com", backend.created[0].AttendeeEmail)
}

func TestDispatchBookAppointment_Unauthenticated(t *testing.T) {
	d := newTestDispatcher(&fakeBackend{authenticated: false})
	session := &models.CallSession{}

	result := d.Dispatch(context.Background(), FnBookAppointment, validBookingArgs(), session)
	assert.Equal(t, false, result["success"])
	assert.Contains(t, result["message"], "call you back")
	assert.False(t, session.BookingConfirmed)
}

func TestDispatchBookAppointment_BackendFailure(t *testing.T) {
	backend := &fakeBackend{authenticated: true, createErr: errors.New("api rejected")}
	d := newTestDispatcher(backend)
	session := &models.CallSession{}

	result := d.Dispatch(context.Background(), FnBookAppointment, validBookingArgs(), session)
	assert.Equal(t, false, result["success"])
	assert.Contains(t, result["message"], "call you back")
	assert.False(t, session.BookingConfirmed)
}

func TestDispatchRecoversFromHandlerPanic(t *testing.T) {
	backend := &fakeBackend{authenticated: true, panicOnBusy: true}
	d := newTestDispatcher(backend)

	result := d.Dispatch(context.Background(), FnCheckAvailability, map[string]any{"date": "2024-06-10"}, &models.CallSession{})
	assert.Contains(t, result, "error")
}
