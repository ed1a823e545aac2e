package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aurora/src-server/model"
	"aurora/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func BirthdayList(as *utils.AppState) {
	id := "birthdays"
	as.AddAppCmdHandler(id, birthdayListHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "List every birthday registered in this server.",
	})
}

func birthdayListHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		if i.GuildID == "" {
			utils.InteractRespHiddenReply(s, i, "Use this command inside a server.")
			return nil
		}

		startTimer := time.Now()
		birthdayModels, err := model.ListBirthdays(context.Background(), as.BunDB, i.GuildID)
		if err != nil {
			utils.InteractRespHiddenReply(s, i, "Something went wrong on my side, try again later.")
			return fmt.Errorf("birthdayListHandler: %w", err)
		}
		as.MetricChans.ReportDatabaseRead(time.Since(startTimer))

		if len(birthdayModels) == 0 {
			utils.InteractRespHiddenReply(s, i, "🌬️ No traveler between worlds has registered a birthday yet. ❄️")
			return nil
		}

		lines := make([]string, 0, len(birthdayModels))
		for _, birthdayModel := range birthdayModels {
			// prefer the username; fall back to a mention by id
			name := "<@" + birthdayModel.UserID + ">"
			if user, err := s.User(birthdayModel.UserID); err == nil && user != nil {
				name = user.Username
			}
			lines = append(lines, fmt.Sprintf("✨ %s — %02d/%02d", name, birthdayModel.Day, birthdayModel.Month))
		}

		utils.InteractRespEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "🎂 Birthdays under the aurora's light 🌌",
			Description: strings.Join(lines, "\n"),
			Color:       0x1abc9c,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "Aurora, the witch between worlds ❄️",
			},
		})
		return nil
	}
}
