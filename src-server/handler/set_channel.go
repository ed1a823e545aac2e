package handler

import (
	"context"
	"fmt"
	"time"

	"aurora/src-server/model"
	"aurora/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func SetChannel(as *utils.AppState) {
	id := "birthday-channel"
	as.AddAppCmdHandler(id, setChannelHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Set the channel where Aurora celebrates birthdays.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "The text channel for birthday announcements",
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
				},
				Required: true,
			},
		},
	})
}

func setChannelHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		if i.GuildID == "" {
			utils.InteractRespHiddenReply(s, i, "Use this command inside a server.")
			return nil
		}

		var channelID string
		for _, opt := range i.ApplicationCommandData().Options {
			if opt.Name == "channel" {
				channelID = opt.ChannelValue(nil).ID
			}
		}
		if channelID == "" {
			utils.InteractRespHiddenReply(s, i, "Pick a text channel.")
			return nil
		}

		settingsModel := model.GuildSettings{
			GuildID:   i.GuildID,
			ChannelID: channelID,
		}
		startTimer := time.Now()
		if err := settingsModel.Upsert(context.Background(), as.BunDB); err != nil {
			utils.InteractRespHiddenReply(s, i, "Something went wrong on my side, try again later.")
			return fmt.Errorf("setChannelHandler: %w", err)
		}
		as.MetricChans.ReportDatabaseWrite(time.Since(startTimer))

		utils.InteractRespHiddenReply(s, i, fmt.Sprintf("✅ I will celebrate in <#%s>.", channelID))
		return nil
	}
}
