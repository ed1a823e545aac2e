package model_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"aurora/src-server/model"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	bundb := bun.NewDB(db, sqlitedialect.New())

	for _, model := range []interface{}{
		(*model.Birthday)(nil),
		(*model.GuildSettings)(nil),
	} {
		if _, err := bundb.NewCreateTable().Model(model).IfNotExists().Exec(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	return bundb
}

func TestBirthdayUpsertAndFind(t *testing.T) {
	bundb := newTestDB(t)
	guildID := uuid.NewString()

	cases := []struct {
		month int
		day   int
	}{
		{1, 1},
		{1, 31},
		{2, 29}, // leap day is always storable
		{4, 30},
		{9, 7},
		{12, 31},
	}

	for _, c := range cases {
		userID := uuid.NewString()
		birthdayModel := model.Birthday{
			GuildID: guildID,
			UserID:  userID,
			Month:   c.month,
			Day:     c.day,
		}
		if err := birthdayModel.Upsert(context.Background(), bundb); err != nil {
			t.Fatalf("upsert %02d/%02d: %v", c.day, c.month, err)
		}

		userIDs, err := model.FindBirthdaysOn(context.Background(), bundb, guildID, c.month, c.day)
		if err != nil {
			t.Fatal(err)
		}
		found := false
		for _, id := range userIDs {
			if id == userID {
				found = true
			}
		}
		if !found {
			t.Errorf("member with birthday %02d/%02d not found", c.day, c.month)
		}
	}
}

func TestBirthdayUpsertReplaces(t *testing.T) {
	bundb := newTestDB(t)
	guildID := uuid.NewString()
	userID := uuid.NewString()

	first := model.Birthday{GuildID: guildID, UserID: userID, Month: 1, Day: 31}
	if err := first.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}
	// same arguments again must not create a duplicate
	if err := first.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}

	second := model.Birthday{GuildID: guildID, UserID: userID, Month: 9, Day: 7}
	if err := second.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}

	// the old date must no longer match
	userIDs, err := model.FindBirthdaysOn(context.Background(), bundb, guildID, 1, 31)
	if err != nil {
		t.Fatal(err)
	}
	if len(userIDs) != 0 {
		t.Errorf("old date still matches after replace: %v", userIDs)
	}

	userIDs, err = model.FindBirthdaysOn(context.Background(), bundb, guildID, 9, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(userIDs) != 1 || userIDs[0] != userID {
		t.Errorf("new date should match exactly once, got %v", userIDs)
	}

	count, err := bundb.NewSelect().
		Model((*model.Birthday)(nil)).
		Where("guild_id = ?", guildID).
		Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected a single row for the pair, got %d", count)
	}
}

func TestBirthdayUpsertInvalidDate(t *testing.T) {
	bundb := newTestDB(t)
	guildID := uuid.NewString()
	userID := uuid.NewString()

	valid := model.Birthday{GuildID: guildID, UserID: userID, Month: 2, Day: 29}
	if err := valid.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		month int
		day   int
	}{
		{13, 1},
		{0, 1},
		{2, 30},
		{4, 31},
		{6, 0},
		{1, 32},
	}
	for _, c := range cases {
		invalid := model.Birthday{GuildID: guildID, UserID: userID, Month: c.month, Day: c.day}
		err := invalid.Upsert(context.Background(), bundb)
		if !errors.Is(err, model.ErrInvalidDate) {
			t.Errorf("%02d/%02d: expected ErrInvalidDate, got %v", c.day, c.month, err)
		}
	}

	// the rejected writes must not have touched the stored record
	userIDs, err := model.FindBirthdaysOn(context.Background(), bundb, guildID, 2, 29)
	if err != nil {
		t.Fatal(err)
	}
	if len(userIDs) != 1 || userIDs[0] != userID {
		t.Errorf("prior record should be unchanged, got %v", userIDs)
	}
}

func TestFindBirthdaysOnEmpty(t *testing.T) {
	bundb := newTestDB(t)

	userIDs, err := model.FindBirthdaysOn(context.Background(), bundb, uuid.NewString(), 6, 15)
	if err != nil {
		t.Fatal(err)
	}
	if len(userIDs) != 0 {
		t.Errorf("expected no matches, got %v", userIDs)
	}
}

func TestListBirthdaysOrder(t *testing.T) {
	bundb := newTestDB(t)
	guildID := uuid.NewString()

	records := []model.Birthday{
		{GuildID: guildID, UserID: "9", Month: 9, Day: 7},
		{GuildID: guildID, UserID: "7", Month: 1, Day: 31},
		{GuildID: guildID, UserID: "b", Month: 5, Day: 5},
		{GuildID: guildID, UserID: "a", Month: 5, Day: 5},
	}
	for i := range records {
		if err := records[i].Upsert(context.Background(), bundb); err != nil {
			t.Fatal(err)
		}
	}

	listed, err := model.ListBirthdays(context.Background(), bundb, guildID)
	if err != nil {
		t.Fatal(err)
	}

	want := []model.Birthday{
		{GuildID: guildID, UserID: "7", Month: 1, Day: 31},
		{GuildID: guildID, UserID: "a", Month: 5, Day: 5},
		{GuildID: guildID, UserID: "b", Month: 5, Day: 5},
		{GuildID: guildID, UserID: "9", Month: 9, Day: 7},
	}
	if len(listed) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(listed))
	}
	for i := range want {
		if listed[i].UserID != want[i].UserID ||
			listed[i].Month != want[i].Month ||
			listed[i].Day != want[i].Day {
			t.Errorf("position %d: got (%s, %d, %d), want (%s, %d, %d)",
				i,
				listed[i].UserID, listed[i].Month, listed[i].Day,
				want[i].UserID, want[i].Month, want[i].Day)
		}
	}
}

func TestListBirthdaysEmpty(t *testing.T) {
	bundb := newTestDB(t)

	listed, err := model.ListBirthdays(context.Background(), bundb, uuid.NewString())
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 0 {
		t.Errorf("expected empty list, got %v", listed)
	}
}
