package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"aurora/src-server/handler"
	"aurora/src-server/metric"
	"aurora/src-server/model"
	"aurora/src-server/scheduler"
	"aurora/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const introText = "🌌 **Aurora awakens...**\n" +
	"Between the frozen winds of the Freljord and the murmur of the spirits, I watch.\n" +
	"I will celebrate every soul born under the light of the auroras. ❄️"

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	as := utils.NewAppState()

	if err := model.CreateSchema(as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	// injecting interaction handlers into appCmdInfo, appCmdHandler in AppState
	handler.BirthdaySet(as)
	handler.BirthdayList(as)
	handler.BirthdayNext(as)
	handler.SetChannel(as)
	handler.Ping(as)
	handler.About(as)

	// tell discordgo how to handle interactions from Discord (w/ appCmdHandler)
	as.DgSession.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			slog.Error("unknown interaction type", "type", i.Type)
			return
		}
		id := i.ApplicationCommandData().Name
		if cmdHandler, ok := as.GetAppCmdHandler(id); ok {
			if err := cmdHandler(s, i); err != nil {
				slog.Error("handler error", "command", id, "error", err.Error())
			}
			return
		}
		utils.InteractRespHiddenReply(s, i, "Expired interaction")
		slog.Debug("someone used an unknown command", "command", id)
	})

	sender := scheduler.DiscordSender{
		Session:     as.DgSession,
		MetricChans: as.MetricChans,
	}

	// presence and a one-time introduction once the gateway is up
	var introOnce sync.Once
	as.DgSession.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		if err := s.UpdateGameStatus(0, "Aurora, the witch between worlds ✨"); err != nil {
			slog.Warn("can't set presence", "error", err)
		}
		introOnce.Do(func() {
			for _, guild := range r.Guilds {
				channelID, ok, err := model.ChannelFor(context.Background(), as.BunDB, guild.ID)
				if err != nil {
					slog.Error("can't resolve intro channel", "guild", guild.ID, "error", err)
					continue
				}
				if !ok {
					channelID = as.Config.GetDefaultChannelID()
				}
				if channelID == "" {
					continue
				}
				if err := sender.SendChannel(channelID, introText); err != nil {
					slog.Warn("can't send introduction", "guild", guild.ID, "error", err)
				}
			}
		})
	})

	// open a connection to Discord
	if err := as.DgSession.Open(); err != nil {
		slog.Error("error opening connection", "error", err)
		os.Exit(1)
	}
	defer as.DgSession.Close()

	// tell Discord what commands we have (w/ appCmdInfo)
	if _, err := as.DgSession.ApplicationCommandBulkOverwrite(
		as.Config.GetDiscordClientId(),
		as.Config.GetDiscordGuildID(),
		func() []*discordgo.ApplicationCommand {
			var cmds []*discordgo.ApplicationCommand
			as.IterateAppCmdInfo(func(k string, v *discordgo.ApplicationCommand) {
				cmds = append(cmds, v)
			})
			return cmds
		}()); err != nil {
		slog.Error("can't create slash commands", "error", err.Error())
	}

	// cleanup appCmdInfo from memory
	as.NukeAppCmdInfo()
	runtime.GC()

	go metric.Init(as)

	// the daily birthday pass
	notifier := &scheduler.Notifier{
		DB:               as.BunDB,
		Guilds:           scheduler.SessionGuilds{Session: as.DgSession},
		Channel:          sender,
		Direct:           sender,
		DefaultChannelID: as.Config.GetDefaultChannelID(),
		MetricChans:      as.MetricChans,
	}
	trigger := scheduler.NewDailyTrigger(
		scheduler.SystemClock(),
		as.Config.GetLocation(),
		as.Config.GetDailyHour(),
		as.Config.GetDailyMinute(),
		func(month, day int) error {
			notifier.Notify(context.Background(), month, day)
			return nil
		},
	)
	go trigger.Run(*as.CreateGracefulShutdownChan())

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("number of guilds", "guilds", len(as.DgSession.State.Guilds))
	slog.Info("app is now running, press Ctrl+C to exit")

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
