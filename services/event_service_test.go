package services

import (
	"errors"
	"testing"
	"time"

	"quizevent/models"
)

func TestCreateEventFieldRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	tests := []struct {
		name      string
		req       CreateEventRequest
		wantField string
	}{
		{"title too short", CreateEventRequest{Title: "ab", Date: "2026-10-01", Location: "Berlin"}, "title"},
		{"location too short", CreateEventRequest{Title: "Launch party", Date: "2026-10-01", Location: "ab"}, "location"},
		{"date missing", CreateEventRequest{Title: "Launch party", Location: "Berlin"}, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEvent(&tt.req)
			var fieldErrors FieldErrors
			if !errors.As(err, &fieldErrors) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if _, ok := fieldErrors[tt.wantField]; !ok {
				t.Errorf("expected error on field %q, got %v", tt.wantField, fieldErrors)
			}
		})
	}

	_, err := svc.CreateEvent(&CreateEventRequest{Title: "Launch party", Date: "not-a-date", Location: "Berlin"})
	var fieldErrors FieldErrors
	if !errors.As(err, &fieldErrors) {
		t.Fatalf("expected FieldErrors for malformed date, got %v", err)
	}
	if _, ok := fieldErrors["date"]; !ok {
		t.Errorf("expected error on date field, got %v", fieldErrors)
	}

	event, err := svc.CreateEvent(&CreateEventRequest{
		Title:    "Launch party",
		Date:     "2026-10-01",
		Location: "Berlin",
	})
	if err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}
	if event.Date.Format("2006-01-02") != "2026-10-01" {
		t.Errorf("expected parsed date, got %v", event.Date)
	}
}

func TestUpcomingFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	asOf := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	seed := []models.Event{
		{Title: "Past meetup", Date: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), Location: "Hamburg"},
		{Title: "Autumn conference", Date: time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC), Location: "Munich"},
		{Title: "September workshop", Date: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), Location: "Berlin"},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("failed to seed event: %v", err)
		}
	}

	events, err := svc.Upcoming(asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 upcoming events, got %d", len(events))
	}
	if events[0].Title != "September workshop" || events[1].Title != "Autumn conference" {
		t.Errorf("expected ascending date order, got %q then %q", events[0].Title, events[1].Title)
	}
}

func TestUpcomingIncludesSameDayEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	event := models.Event{Title: "Today's event", Date: today, Location: "Berlin"}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	// asOf later the same day must still include the event
	events, err := svc.Upcoming(today.Add(18 * time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected same-day event to be upcoming, got %d events", len(events))
	}
}
