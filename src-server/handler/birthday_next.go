package handler

import (
	"context"
	"fmt"
	"time"

	"aurora/src-server/model"
	"aurora/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/xyedo/rrule"
)

func BirthdayNext(as *utils.AppState) {
	id := "birthday-next"
	as.AddAppCmdHandler(id, birthdayNextHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Show whose birthday comes up next in this server.",
	})
}

func birthdayNextHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		if i.GuildID == "" {
			utils.InteractRespHiddenReply(s, i, "Use this command inside a server.")
			return nil
		}

		startTimer := time.Now()
		birthdayModels, err := model.ListBirthdays(context.Background(), as.BunDB, i.GuildID)
		if err != nil {
			utils.InteractRespHiddenReply(s, i, "Something went wrong on my side, try again later.")
			return fmt.Errorf("birthdayNextHandler: %w", err)
		}
		as.MetricChans.ReportDatabaseRead(time.Since(startTimer))

		if len(birthdayModels) == 0 {
			utils.InteractRespHiddenReply(s, i, "🌬️ No traveler between worlds has registered a birthday yet. ❄️")
			return nil
		}

		now := time.Now().In(as.Config.GetLocation())
		var soonest time.Time
		var celebrating []model.Birthday
		for _, birthdayModel := range birthdayModels {
			next, err := nextOccurrence(now, birthdayModel.Month, birthdayModel.Day)
			if err != nil {
				return fmt.Errorf("birthdayNextHandler: %w", err)
			}
			switch {
			case soonest.IsZero() || next.Before(soonest):
				soonest = next
				celebrating = []model.Birthday{birthdayModel}
			case next.Equal(soonest):
				celebrating = append(celebrating, birthdayModel)
			}
		}

		mentions := make([]string, 0, len(celebrating))
		for _, birthdayModel := range celebrating {
			mentions = append(mentions, "<@"+birthdayModel.UserID+">")
		}

		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		days := int(soonest.Sub(today).Hours() / 24)
		when := fmt.Sprintf("in %d days", days)
		switch days {
		case 0:
			when = "today"
		case 1:
			when = "tomorrow"
		}

		utils.InteractRespHiddenReply(s, i, fmt.Sprintf(
			"🎂 Next under the aurora: %s on **%02d/%02d** (%s).",
			joinWithAnd(mentions), celebrating[0].Day, celebrating[0].Month, when,
		))
		return nil
	}
}

// nextOccurrence resolves a recurring (month, day) pair to the next
// calendar date it lands on, at or after now. A YEARLY recurrence rule
// does the heavy lifting: 29/02 only yields leap years.
func nextOccurrence(now time.Time, month, day int) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dtstart := today.AddDate(-1, 0, 0)

	set, err := rrule.StrToRRuleSet(fmt.Sprintf(
		"DTSTART:%s\nRRULE:FREQ=YEARLY;BYMONTH=%d;BYMONTHDAY=%d",
		dtstart.Format("20060102T150405Z"), month, day,
	))
	if err != nil {
		return time.Time{}, fmt.Errorf("nextOccurrence: %w", err)
	}

	next := set.After(today, true)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("nextOccurrence: no occurrence for %02d/%02d", day, month)
	}
	return next, nil
}

func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		out := items[0]
		for _, item := range items[1 : len(items)-1] {
			out += ", " + item
		}
		return out + " and " + items[len(items)-1]
	}
}
