package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// GuildSettings holds the per-guild broadcast channel. One row per
// guild, last write wins.
type GuildSettings struct {
	bun.BaseModel `bun:"table:guild_settings"`

	GuildID   string `bun:"guild_id,pk,notnull"`
	ChannelID string `bun:"channel_id,notnull"`
}

func (g *GuildSettings) Upsert(ctx context.Context, db bun.IDB) error {
	if g.GuildID == "" {
		return fmt.Errorf("GuildSettings.Upsert: guild id is empty")
	}

	if _, err := db.
		NewInsert().
		Model(g).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("channel_id = EXCLUDED.channel_id").
		Exec(ctx); err != nil {
		return fmt.Errorf("GuildSettings.Upsert: %w", err)
	}

	return nil
}

// ChannelFor returns the configured broadcast channel of a guild. The
// second return value is false when the guild never set one, which is
// distinct from a present-but-empty id.
func ChannelFor(ctx context.Context, db bun.IDB, guildID string) (string, bool, error) {
	settingsModel := new(GuildSettings)
	err := db.
		NewSelect().
		Model(settingsModel).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("ChannelFor: %w", err)
	}
	return settingsModel.ChannelID, true, nil
}
