package scheduler

import (
	"log/slog"
	"time"
)

// Clock abstracts wall-clock reads so the trigger can be tested
// without real time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// NextInstant returns the next occurrence of hour:minute in loc
// strictly after now.
func NextInstant(now time.Time, hour, minute int, loc *time.Location) time.Time {
	localNow := now.In(loc)
	next := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), hour, minute, 0, 0, loc)
	if !next.After(localNow) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// DailyTrigger fires a callback once per local calendar day at the
// configured wall-clock time. It is armed at construction and moves
// through Armed(next) -> Fired -> Armed(next+1d). The next instant is
// process-local and mutated only by the trigger itself.
type DailyTrigger struct {
	clock  Clock
	loc    *time.Location
	hour   int
	minute int

	next     time.Time
	firedDay string // local YYYY-MM-DD of the last handled day

	fire func(month, day int) error
}

func NewDailyTrigger(clock Clock, loc *time.Location, hour, minute int, fire func(month, day int) error) *DailyTrigger {
	t := &DailyTrigger{
		clock:  clock,
		loc:    loc,
		hour:   hour,
		minute: minute,
		fire:   fire,
	}
	t.next = NextInstant(clock.Now(), hour, minute, loc)
	slog.Info("daily trigger armed", "next", t.next)
	return t
}

// Check fires the callback when the scheduled instant has passed and
// today's pass has not run yet, then re-arms for the next day. It
// reports whether a fire happened.
func (t *DailyTrigger) Check() bool {
	now := t.clock.Now()
	if now.Before(t.next) {
		return false
	}

	localNow := now.In(t.loc)
	day := localNow.Format("2006-01-02")

	// advance before firing so a failing pass can't be retried on the
	// same instant
	t.next = NextInstant(now, t.hour, t.minute, t.loc)

	if day == t.firedDay {
		return false
	}
	t.firedDay = day

	if err := t.fire(int(localNow.Month()), localNow.Day()); err != nil {
		slog.Error("daily trigger: pass failed", "day", day, "error", err)
	}
	slog.Info("daily trigger armed", "next", t.next)
	return true
}

// Run checks the trigger on a fixed cadence until stop is closed.
func (t *DailyTrigger) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			slog.Info("daily trigger stopped")
			return
		case <-ticker.C:
			t.Check()
		}
	}
}
