package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrInvalidDate means the month/day pair failed calendar validation;
// nothing was written.
var ErrInvalidDate = errors.New("invalid month/day")

// Birthday is one registered (guild, member) -> (month, day) record.
// The pair recurs every year, there is no year column.
type Birthday struct {
	bun.BaseModel `bun:"table:birthdays"`

	GuildID string `bun:"guild_id,pk,notnull"`
	UserID  string `bun:"user_id,pk,notnull"`
	Month   int    `bun:"month,notnull"`
	Day     int    `bun:"day,notnull"`
}

// ValidDate reports whether month/day exists in a leap-year calendar,
// so 29/02 is always accepted.
func ValidDate(month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	// time.Date normalizes overflowing days into the next month
	date := time.Date(2024, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return int(date.Month()) == month && date.Day() == day
}

// Upsert validates the date and writes the record, replacing any
// existing row for the same (guild, user) pair.
func (b *Birthday) Upsert(ctx context.Context, db bun.IDB) error {
	if b.GuildID == "" || b.UserID == "" {
		return fmt.Errorf("Birthday.Upsert: guild id or user id is empty")
	}
	if !ValidDate(b.Month, b.Day) {
		return fmt.Errorf("Birthday.Upsert: %02d/%02d: %w", b.Day, b.Month, ErrInvalidDate)
	}

	if _, err := db.
		NewInsert().
		Model(b).
		On("CONFLICT (guild_id, user_id) DO UPDATE").
		Set("month = EXCLUDED.month").
		Set("day = EXCLUDED.day").
		Exec(ctx); err != nil {
		return fmt.Errorf("Birthday.Upsert: %w", err)
	}

	return nil
}

// FindBirthdaysOn returns the ids of every member of a guild whose
// stored date equals (month, day). No matches is an empty slice, not
// an error.
func FindBirthdaysOn(ctx context.Context, db bun.IDB, guildID string, month, day int) ([]string, error) {
	userIDs := make([]string, 0)
	if err := db.
		NewSelect().
		Model((*Birthday)(nil)).
		Column("user_id").
		Where("guild_id = ?", guildID).
		Where("month = ?", month).
		Where("day = ?", day).
		Scan(ctx, &userIDs); err != nil {
		return nil, fmt.Errorf("FindBirthdaysOn: %w", err)
	}
	return userIDs, nil
}

// ListBirthdays returns every record of a guild sorted by (month, day)
// ascending, ties broken by user id.
func ListBirthdays(ctx context.Context, db bun.IDB, guildID string) ([]Birthday, error) {
	birthdayModels := make([]Birthday, 0)
	if err := db.
		NewSelect().
		Model(&birthdayModels).
		Where("guild_id = ?", guildID).
		Order("month ASC", "day ASC", "user_id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("ListBirthdays: %w", err)
	}
	return birthdayModels, nil
}
