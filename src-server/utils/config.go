package utils

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	port string

	discordGuildID  string
	discordAppToken string
	discordClientId string

	location    *time.Location
	dailyHour   int
	dailyMinute int

	defaultChannelID string

	metricCollectionInterval time.Duration
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		discordGuildID: func() string {
			discordGuildID := os.Getenv("DISCORD_GUILD_ID")
			if discordGuildID == "" {
				slog.Debug("DISCORD_GUILD_ID is not set, commands will be registered globally")
			} else {
				slog.Debug("env", "DISCORD_GUILD_ID", discordGuildID)
			}
			return discordGuildID
		}(),
		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if discordAppToken == "" {
				slog.Error("DISCORD_APP_TOKEN is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			return discordAppToken
		}(),
		discordClientId: func() string {
			discordClientId := os.Getenv("DISCORD_CLIENT_ID")
			if discordClientId == "" {
				slog.Error("DISCORD_CLIENT_ID is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_CLIENT_ID", discordClientId)
			return discordClientId
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				return time.Local
			case "UTC":
				return time.UTC
			default:
				loc, err := time.LoadLocation(timezoneStr)
				if err != nil {
					// degraded mode, not fatal
					slog.Warn("can't resolve TIMEZONE, falling back to UTC", "timezone", timezoneStr, "error", err)
					return time.UTC
				}
				slog.Debug("env", "TIMEZONE", timezoneStr)
				return loc
			}
		}(),
		dailyHour: func() int {
			dailyHourStr := os.Getenv("DAILY_HOUR")
			if dailyHourStr == "" {
				return 9
			}
			dailyHour, err := strconv.Atoi(dailyHourStr)
			if err != nil || dailyHour < 0 || dailyHour > 23 {
				slog.Error("invalid DAILY_HOUR, want 0-23", "DAILY_HOUR", dailyHourStr)
				os.Exit(1)
			}
			slog.Debug("env", "DAILY_HOUR", dailyHour)
			return dailyHour
		}(),
		dailyMinute: func() int {
			dailyMinuteStr := os.Getenv("DAILY_MINUTE")
			if dailyMinuteStr == "" {
				return 0
			}
			dailyMinute, err := strconv.Atoi(dailyMinuteStr)
			if err != nil || dailyMinute < 0 || dailyMinute > 59 {
				slog.Error("invalid DAILY_MINUTE, want 0-59", "DAILY_MINUTE", dailyMinuteStr)
				os.Exit(1)
			}
			slog.Debug("env", "DAILY_MINUTE", dailyMinute)
			return dailyMinute
		}(),

		defaultChannelID: func() string {
			defaultChannelID := os.Getenv("DEFAULT_CHANNEL_ID")
			if defaultChannelID == "" {
				slog.Debug("DEFAULT_CHANNEL_ID is not set, guilds without a configured channel get no broadcast")
			} else {
				slog.Debug("env", "DEFAULT_CHANNEL_ID", defaultChannelID)
			}
			return defaultChannelID
		}(),

		metricCollectionInterval: func() time.Duration {
			intervalStr := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if intervalStr == "" {
				intervalStr = "60s"
			}
			duration, err := time.ParseDuration(intervalStr)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", duration)
			return duration
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DISCORD_GUILD_ID env; empty means commands register globally
func (c *Config) GetDiscordGuildID() string {
	return c.discordGuildID
}

// Get DISCORD_APP_TOKEN env
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get DISCORD_CLIENT_ID env
func (c *Config) GetDiscordClientId() string {
	return c.discordClientId
}

// Get TIMEZONE env; unresolvable identifiers degrade to UTC
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get DAILY_HOUR env, default to 9
func (c *Config) GetDailyHour() int {
	return c.dailyHour
}

// Get DAILY_MINUTE env, default to 0
func (c *Config) GetDailyMinute() int {
	return c.dailyMinute
}

// Get DEFAULT_CHANNEL_ID env; empty means no broadcast fallback
func (c *Config) GetDefaultChannelID() string {
	return c.defaultChannelID
}

// Get METRIC_COLLECTION_INTERVAL env, default to 60s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}
