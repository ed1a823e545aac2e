package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aurora/src-server/model"
	"aurora/src-server/utils"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GuildEnumerator supplies the guilds served at the time of a trigger
// fire, so the dispatcher never reaches into session globals.
type GuildEnumerator interface {
	GuildIDs() []string
}

// ChannelSender delivers one message to a guild channel.
type ChannelSender interface {
	SendChannel(channelID, content string) error
}

// DirectSender delivers one private message to a member.
type DirectSender interface {
	SendDirect(userID, content string) error
}

// SendOutcome records one attempted delivery within a pass.
type SendOutcome struct {
	GuildID   string
	Kind      string // "broadcast" or "dm"
	Recipient string
	Err       error
}

// Notifier turns one daily trigger fire into outbound messages: per
// guild, one broadcast plus one DM per celebrating member, every send
// attempted independently and at most once.
type Notifier struct {
	DB      bun.IDB
	Guilds  GuildEnumerator
	Channel ChannelSender
	Direct  DirectSender

	// Pick selects message templates; nil means uniform random.
	Pick Selector

	// DefaultChannelID is the broadcast fallback for guilds without a
	// configured channel; empty skips their broadcast.
	DefaultChannelID string

	MetricChans *utils.Metric
}

// Notify runs one daily pass for (month, day). Guilds are processed
// concurrently; delivery failures are logged and counted, never
// returned.
func (n *Notifier) Notify(ctx context.Context, month, day int) {
	passID := uuid.NewString()
	started := time.Now()
	pick := n.Pick
	if pick == nil {
		pick = UniformSelector
	}

	guildIDs := n.Guilds.GuildIDs()
	slog.Info("birthday pass started", "pass", passID, "month", month, "day", day, "guilds", len(guildIDs))

	outcomeChan := make(chan SendOutcome)
	var wg sync.WaitGroup
	for _, guildID := range guildIDs {
		wg.Add(1)
		go func(guildID string) {
			defer wg.Done()
			n.notifyGuild(ctx, guildID, month, day, pick, outcomeChan)
		}(guildID)
	}
	go func() {
		wg.Wait()
		close(outcomeChan)
	}()

	var attempted, failed int
	for outcome := range outcomeChan {
		attempted++
		if outcome.Err != nil {
			failed++
			n.MetricChans.ReportDeliveryFailure()
			slog.Warn("birthday send failed",
				"pass", passID,
				"guild", outcome.GuildID,
				"kind", outcome.Kind,
				"recipient", outcome.Recipient,
				"error", outcome.Err)
		}
	}

	n.MetricChans.ReportNotifyPass(time.Since(started))
	slog.Info("birthday pass finished",
		"pass", passID,
		"attempted", attempted,
		"failed", failed,
		"duration", time.Since(started))
}

func (n *Notifier) notifyGuild(ctx context.Context, guildID string, month, day int, pick Selector, outcomes chan<- SendOutcome) {
	userIDs, err := model.FindBirthdaysOn(ctx, n.DB, guildID, month, day)
	if err != nil {
		slog.Error("birthday pass: can't query birthdays", "guild", guildID, "error", err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	channelID, ok, err := model.ChannelFor(ctx, n.DB, guildID)
	if err != nil {
		slog.Error("birthday pass: can't query channel", "guild", guildID, "error", err)
		channelID, ok = "", false
	}
	if !ok {
		channelID = n.DefaultChannelID
	}

	var wg sync.WaitGroup

	if channelID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mentions := make([]string, len(userIDs))
			for i, userID := range userIDs {
				mentions[i] = "<@" + userID + ">"
			}
			err := n.Channel.SendChannel(channelID, renderChannelMessage(pick, mentions))
			outcomes <- SendOutcome{GuildID: guildID, Kind: "broadcast", Recipient: channelID, Err: err}
		}()
	}

	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			err := n.Direct.SendDirect(userID, renderDirectMessage(pick))
			outcomes <- SendOutcome{GuildID: guildID, Kind: "dm", Recipient: userID, Err: err}
		}(userID)
	}

	wg.Wait()
}
