package handler

import (
	"aurora/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

const aboutText = "Since she was born, Aurora has lived with an unmatched gift for " +
	"traveling between the realms of mortals and spirits.\n" +
	"Determined to learn more about the inhabitants of the spirit realm, she left " +
	"her home behind to conduct her research, and ended up finding a corrupted " +
	"demigod, lost and deformed.\n\n" +
	"Witnessing such despair, Aurora decided to find a way to help her wild friend " +
	"rescue his lost identity, a journey that would take her to the most " +
	"inhospitable corners of the Freljord."

func About(as *utils.AppState) {
	id := "about"
	as.AddAppCmdHandler(id, aboutHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Aurora's story.",
	})
}

func aboutHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		utils.InteractRespHiddenReply(s, i, aboutText)
		return nil
	}
}
