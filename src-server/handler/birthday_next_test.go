package handler

import (
	"testing"
	"time"
)

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		name  string
		now   time.Time
		month int
		day   int
		want  time.Time
	}{
		{
			name:  "later this year",
			now:   time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
			month: 9, day: 7,
			want: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "already passed, next year",
			now:   time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
			month: 1, day: 31,
			want: time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "today counts",
			now:   time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
			month: 3, day: 10,
			want: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "leap day lands on the next leap year",
			now:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			month: 2, day: 29,
			want: time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, c := range cases {
		got, err := nextOccurrence(c.now, c.month, c.day)
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if got.Year() != c.want.Year() || got.Month() != c.want.Month() || got.Day() != c.want.Day() {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestJoinWithAnd(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a and b"},
		{[]string{"a", "b", "c"}, "a, b and c"},
	}
	for _, c := range cases {
		if got := joinWithAnd(c.in); got != c.want {
			t.Errorf("%v: got %q, want %q", c.in, got, c.want)
		}
	}
}
