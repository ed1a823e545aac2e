package model_test

import (
	"context"
	"testing"

	"aurora/src-server/model"

	"github.com/google/uuid"
)

func TestGuildSettingsUpsert(t *testing.T) {
	bundb := newTestDB(t)
	guildID := uuid.NewString()

	settingsModel := model.GuildSettings{GuildID: guildID, ChannelID: "100"}
	if err := settingsModel.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}

	channelID, ok, err := model.ChannelFor(context.Background(), bundb, guildID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || channelID != "100" {
		t.Errorf("expected (100, true), got (%s, %v)", channelID, ok)
	}

	// last write wins
	settingsModel.ChannelID = "200"
	if err := settingsModel.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}
	channelID, ok, err = model.ChannelFor(context.Background(), bundb, guildID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || channelID != "200" {
		t.Errorf("expected (200, true), got (%s, %v)", channelID, ok)
	}

	count, err := bundb.NewSelect().
		Model((*model.GuildSettings)(nil)).
		Where("guild_id = ?", guildID).
		Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected a single settings row, got %d", count)
	}
}

func TestChannelForUnset(t *testing.T) {
	bundb := newTestDB(t)

	channelID, ok, err := model.ChannelFor(context.Background(), bundb, uuid.NewString())
	if err != nil {
		t.Fatal(err)
	}
	if ok || channelID != "" {
		t.Errorf("expected unset, got (%s, %v)", channelID, ok)
	}
}
