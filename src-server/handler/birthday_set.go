package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aurora/src-server/model"
	"aurora/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func BirthdaySet(as *utils.AppState) {
	id := "birthday-set"
	as.AddAppCmdHandler(id, birthdaySetHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Register or update your birthday.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "date",
				Description: "Your birthday as dd/mm (e.g. 07/09), or in plain words (e.g. march 5)",
				Required:    true,
			},
		},
	})
}

func birthdaySetHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		if i.GuildID == "" {
			utils.InteractRespHiddenReply(s, i, "Use this command inside a server.")
			return nil
		}

		var rawDate string
		for _, opt := range i.ApplicationCommandData().Options {
			if opt.Name == "date" {
				rawDate = opt.StringValue()
			}
		}

		month, day, err := utils.ParseDayMonth(as.When, rawDate)
		if err != nil {
			utils.InteractRespHiddenReply(s, i, "I can't read that date. Use **dd/mm**, e.g. `07/09`.")
			return nil
		}

		birthdayModel := model.Birthday{
			GuildID: i.GuildID,
			UserID:  interactionUserID(i),
			Month:   month,
			Day:     day,
		}
		startTimer := time.Now()
		if err := birthdayModel.Upsert(context.Background(), as.BunDB); err != nil {
			if errors.Is(err, model.ErrInvalidDate) {
				utils.InteractRespHiddenReply(s, i, "That date doesn't exist on my calendar.")
				return nil
			}
			utils.InteractRespHiddenReply(s, i, "Something went wrong on my side, try again later.")
			return fmt.Errorf("birthdaySetHandler: %w", err)
		}
		as.MetricChans.ReportDatabaseWrite(time.Since(startTimer))

		utils.InteractRespHiddenReply(s, i, fmt.Sprintf(
			"✅ Your day is written in the auroras: **%02d/%02d**. ❄️", day, month,
		))
		return nil
	}
}

// interactionUserID resolves the invoking user, which lives in a
// different field for guild and DM interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
