package scheduler

import (
	"errors"
	"fmt"
	"time"

	"aurora/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// ErrUnreachable marks a recipient that cannot receive a message:
// unresolvable channel, unknown member, or blocked DMs.
var ErrUnreachable = errors.New("recipient unreachable")

// SessionGuilds enumerates guilds from the gateway session state.
type SessionGuilds struct {
	Session *discordgo.Session
}

func (g SessionGuilds) GuildIDs() []string {
	guilds := g.Session.State.Guilds
	guildIDs := make([]string, 0, len(guilds))
	for _, guild := range guilds {
		guildIDs = append(guildIDs, guild.ID)
	}
	return guildIDs
}

// DiscordSender delivers broadcasts and DMs through the gateway
// session, reporting send latency.
type DiscordSender struct {
	Session     *discordgo.Session
	MetricChans *utils.Metric
}

func (d DiscordSender) SendChannel(channelID, content string) error {
	startTimer := time.Now()
	if _, err := d.Session.ChannelMessageSend(channelID, content); err != nil {
		return fmt.Errorf("SendChannel %s: %w: %v", channelID, ErrUnreachable, err)
	}
	d.MetricChans.ReportDiscordSend(time.Since(startTimer))
	return nil
}

func (d DiscordSender) SendDirect(userID, content string) error {
	startTimer := time.Now()
	channel, err := d.Session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("SendDirect %s: %w: %v", userID, ErrUnreachable, err)
	}
	if _, err := d.Session.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("SendDirect %s: %w: %v", userID, ErrUnreachable, err)
	}
	d.MetricChans.ReportDiscordSend(time.Since(startTimer))
	return nil
}
