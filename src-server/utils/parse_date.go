package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"aurora/src-server/model"

	"github.com/olebedev/when"
)

// dd/mm, the format the bot documents in its command descriptions
var ddmmRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)

// ParseDayMonth turns user input into a (month, day) pair. It tries
// the dd/mm form first and falls back to the natural language parser
// for inputs like "march 5" or "tomorrow". The year portion of a
// natural result is ignored; birthdays recur.
func ParseDayMonth(w *when.Parser, input string) (month, day int, err error) {
	input = CleanupString(input)

	if m := ddmmRegex.FindStringSubmatch(input); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		if !model.ValidDate(month, day) {
			return 0, 0, fmt.Errorf("ParseDayMonth: %q: %w", input, model.ErrInvalidDate)
		}
		return month, day, nil
	}

	result, err := w.Parse(input, time.Now())
	if err != nil || result == nil {
		return 0, 0, fmt.Errorf("ParseDayMonth: %q: %w", input, model.ErrInvalidDate)
	}
	return int(result.Time.Month()), result.Time.Day(), nil
}
