package metric

import (
	"log/slog"
	"time"

	"aurora/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func register(c prometheus.Collector, name string) bool {
	if err := prometheus.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register metric", "metric", name, "error", err)
			return false
		}
	}
	slog.Debug("metric registered", "metric", name)
	return true
}

func unregister(c prometheus.Collector, name string) {
	switch prometheus.Unregister(c) {
	case true:
		slog.Debug("metric unregistered", "metric", name)
	case false:
		slog.Warn("metric not registered", "metric", name)
	}
}

// gaugeFromChan mirrors samples from a channel into a gauge, zeroing
// it when nothing arrives within clearInterval.
func gaugeFromChan(as *utils.AppState, name, help string, src chan float64, clearInterval time.Duration) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	if register(gauge, name) {
		gauge.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(clearInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(gauge, name)
				return
			case v := <-src:
				gauge.Set(v)
				clearTicker.Reset(clearInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}

// gaugeFromSampler polls sample on a fixed interval into a gauge.
func gaugeFromSampler(as *utils.AppState, name, help string, interval time.Duration, sample func() (float64, error)) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	if register(gauge, name) {
		gauge.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(gauge, name)
				return
			case <-ticker.C:
				v, err := sample()
				if err != nil {
					slog.Error("can't sample metric", "metric", name, "error", err)
					continue
				}
				gauge.Set(v)
			}
		}
	}()
}

// counterFromChan accumulates values from a channel into a counter.
func counterFromChan(as *utils.AppState, name, help string, src chan float64) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	register(counter, name)
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(counter, name)
				return
			case v := <-src:
				counter.Add(v)
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := tickerInterval * 2

	gaugeFromSampler(as,
		"aurora_database_empty_read_microsec",
		"The latency of an empty database read in microseconds",
		tickerInterval,
		func() (float64, error) {
			latency, err := databaseEmptyRead(as)
			return float64(latency.Microseconds()), err
		})
	gaugeFromChan(as,
		"aurora_database_read_microsec",
		"The latency of a database read in microseconds",
		as.MetricChans.DatabaseRead, clearTickerInterval)
	gaugeFromChan(as,
		"aurora_database_write_microsec",
		"The latency of a database write in microseconds",
		as.MetricChans.DatabaseWrite, clearTickerInterval)
	gaugeFromChan(as,
		"aurora_discord_send_message_microsec",
		"The latency of a discord message send in microseconds",
		as.MetricChans.DiscordSendMessage, clearTickerInterval)
	gaugeFromChan(as,
		"aurora_notify_pass_duration_microsec",
		"The duration of the last daily birthday pass in microseconds",
		as.MetricChans.NotifyPassDuration, clearTickerInterval)
	counterFromChan(as,
		"aurora_delivery_failure_total",
		"Broadcast and direct message sends that failed",
		as.MetricChans.DeliveryFailure)
	gaugeFromSampler(as,
		"aurora_discord_heartbeat_latency_microsec",
		"The latency of a discord heartbeat in microseconds",
		tickerInterval,
		func() (float64, error) {
			return float64(as.DgSession.HeartbeatLatency().Microseconds()), nil
		})
}
