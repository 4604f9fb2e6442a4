package services

import (
	"testing"
	"time"

	"piauiTicketsAPI/internal/types/event"
)

func TestStartTimeParsing(t *testing.T) {
	ev := &event.Event{StartDate: "14/03/2026", DoorsOpen: "19h30"}

	start, ok := StartTime(ev, time.UTC)
	if !ok {
		t.Fatal("expected a parseable start time")
	}
	want := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("expected %v, got %v", want, start)
	}

	// Colon format also accepted
	ev.DoorsOpen = "19:30"
	start, ok = StartTime(ev, time.UTC)
	if !ok || !start.Equal(want) {
		t.Errorf("colon format: expected %v, got %v (ok=%v)", want, start, ok)
	}

	for _, bad := range []*event.Event{
		{StartDate: "", DoorsOpen: "19h30"},
		{StartDate: "14/03/2026", DoorsOpen: ""},
		{StartDate: "2026-03-14", DoorsOpen: "19h30"},
		{StartDate: "14/03/2026", DoorsOpen: "sete e meia"},
	} {
		if _, ok := StartTime(bad, time.UTC); ok {
			t.Errorf("expected parse failure for %+v", bad)
		}
	}
}

func TestUrgencyMessage(t *testing.T) {
	ev := &event.Event{StartDate: "14/03/2026", DoorsOpen: "20h00"}

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"doors already open", time.Date(2026, 3, 14, 20, 30, 0, 0, time.UTC), "Acontecendo agora!"},
		{"minutes away", time.Date(2026, 3, 14, 19, 15, 0, 0, time.UTC), "Faltam 45 min"},
		{"hours away", time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC), "Faltam 3 horas"},
		{"too far out", time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), ""},
	}
	for _, c := range cases {
		if got := UrgencyMessage(ev, c.now); got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}

	if got := UrgencyMessage(&event.Event{}, time.Now()); got != "" {
		t.Errorf("missing dates should yield no urgency, got %q", got)
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)

	if !IsToday(&event.Event{StartDate: "14/03/2026"}, now) {
		t.Error("expected event on 14/03/2026 to be today")
	}
	if IsToday(&event.Event{StartDate: "15/03/2026"}, now) {
		t.Error("tomorrow's event must not count as today")
	}
	if IsToday(&event.Event{StartDate: ""}, now) {
		t.Error("missing start date must not count as today")
	}
}
