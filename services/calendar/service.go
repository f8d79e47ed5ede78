// File: services/calendar/service.go
package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"frontdesk/models"
	"frontdesk/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// backendCallTimeout bounds every request to the external calendar so a hung
// backend cannot stall a call indefinitely.
const backendCallTimeout = 15 * time.Second

// EventInput is the backend-level shape of a calendar event to create.
type EventInput struct {
	Summary       string
	Description   string
	Location      string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
}

// Backend is the external scheduling oracle. The Google implementation is the
// only production one; tests substitute fakes.
type Backend interface {
	IsAuthenticated() bool
	AuthURL() string
	Exchange(ctx context.Context, code string) error
	ListBusy(ctx context.Context, start, end time.Time) ([]models.BusyInterval, error)
	CreateEvent(ctx context.Context, input EventInput) (models.BookingRecord, error)
	ListEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error)
}

// GoogleBackendConfig carries the OAuth and calendar settings for the Google
// implementation.
type GoogleBackendConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	CalendarID   string
	Timezone     string
}

// GoogleBackend talks to Google Calendar with an operator-authorized OAuth
// credential held in an injected TokenStore.
type GoogleBackend struct {
	oauth      *oauth2.Config
	store      TokenStore
	calendarID string
	timezone   string

	mu    sync.RWMutex
	token *oauth2.Token
}

func NewGoogleBackend(cfg GoogleBackendConfig, store TokenStore) *GoogleBackend {
	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleBackend{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes: []string{
				gcal.CalendarScope,
				gcal.CalendarEventsScope,
			},
			Endpoint: google.Endpoint,
		},
		store:      store,
		calendarID: calendarID,
		timezone:   cfg.Timezone,
	}
}

// Reload pulls the persisted credential from the token store. Called at
// startup and whenever the operator re-authenticates out of band.
func (b *GoogleBackend) Reload(ctx context.Context) error {
	token, err := b.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load calendar token: %w", err)
	}
	b.mu.Lock()
	b.token = token
	b.mu.Unlock()
	if token != nil {
		utils.GetLogger().Info("Calendar credential loaded from store")
	}
	return nil
}

// IsAuthenticated reports whether a credential is present. Expired access
// tokens still count: the token source refreshes them on use.
func (b *GoogleBackend) IsAuthenticated() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token != nil && b.token.RefreshToken != ""
}

// AuthURL returns the operator-facing consent URL.
func (b *GoogleBackend) AuthURL() string {
	return b.oauth.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for a credential and persists it.
// Takes effect for subsequent backend calls only.
func (b *GoogleBackend) Exchange(ctx context.Context, code string) error {
	token, err := b.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if err := b.store.Save(ctx, token); err != nil {
		utils.GetLogger().Error("Failed to persist calendar token", zap.Error(err))
	}
	b.mu.Lock()
	b.token = token
	b.mu.Unlock()
	return nil
}

// service builds a calendar client around the credential captured at call
// time. Re-authentication mid-flight only affects later calls.
func (b *GoogleBackend) service(ctx context.Context) (*gcal.Service, error) {
	b.mu.RLock()
	token := b.token
	b.mu.RUnlock()
	if token == nil {
		return nil, ErrNotAuthenticated
	}
	svc, err := gcal.NewService(ctx, option.WithTokenSource(b.oauth.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar client: %w", err)
	}
	return svc, nil
}

// ListBusy returns the occupied intervals between start and end.
func (b *GoogleBackend) ListBusy(ctx context.Context, start, end time.Time) ([]models.BusyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, backendCallTimeout)
	defer cancel()

	svc, err := b.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: b.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}

	cal, ok := resp.Calendars[b.calendarID]
	if !ok {
		return nil, nil
	}

	busy := make([]models.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		s, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			continue
		}
		e, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			continue
		}
		busy = append(busy, models.BusyInterval{Start: s, End: e})
	}
	return busy, nil
}

// CreateEvent inserts one appointment event. Reminders mirror the office's
// manual booking habits: an email a day ahead and a popup an hour ahead.
func (b *GoogleBackend) CreateEvent(ctx context.Context, input EventInput) (models.BookingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, backendCallTimeout)
	defer cancel()

	svc, err := b.service(ctx)
	if err != nil {
		return models.BookingRecord{}, err
	}

	event := &gcal.Event{
		Summary:     input.Summary,
		Location:    input.Location,
		Description: input.Description,
		Start: &gcal.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: b.timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: b.timezone,
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	sendUpdates := "none"
	if input.AttendeeEmail != "" {
		event.Attendees = []*gcal.EventAttendee{{Email: input.AttendeeEmail}}
		sendUpdates = "all"
	}

	created, err := svc.Events.Insert(b.calendarID, event).SendUpdates(sendUpdates).Context(ctx).Do()
	if err != nil {
		return models.BookingRecord{}, fmt.Errorf("event insert failed: %w", err)
	}

	return models.BookingRecord{
		EventID:  created.Id,
		HTMLLink: created.HtmlLink,
		Start:    input.Start,
		End:      input.End,
		Summary:  created.Summary,
	}, nil
}

// ListEvents returns upcoming appointments for the dashboard.
func (b *GoogleBackend) ListEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, backendCallTimeout)
	defer cancel()

	svc, err := b.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Events.List(b.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("events list failed: %w", err)
	}

	events := make([]models.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev := models.CalendarEvent{
			ID:       item.Id,
			Summary:  item.Summary,
			Location: item.Location,
		}
		if item.Start != nil {
			if t, err := parseEventTime(item.Start); err == nil {
				ev.Start = t
			}
		}
		if item.End != nil {
			if t, err := parseEventTime(item.End); err == nil {
				ev.End = t
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

// parseEventTime handles both timed and all-day events.
func parseEventTime(dt *gcal.EventDateTime) (time.Time, error) {
	if dt.DateTime != "" {
		return time.Parse(time.RFC3339, dt.DateTime)
	}
	return time.Parse("2006-01-02", dt.Date)
}
