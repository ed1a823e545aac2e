package utils

import "time"

// Metric carries latency samples and event counts from the rest of the
// app to the prometheus collectors in src-server/metric.
type Metric struct {
	DatabaseRead       chan float64
	DatabaseWrite      chan float64
	DiscordSendMessage chan float64
	NotifyPassDuration chan float64
	DeliveryFailure    chan float64
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:       make(chan float64),
		DatabaseWrite:      make(chan float64),
		DiscordSendMessage: make(chan float64),
		NotifyPassDuration: make(chan float64),
		DeliveryFailure:    make(chan float64),
	}
}

// The Report helpers drop samples when no collector is listening (e.g.
// in tests, or before metric.Init has run) instead of blocking the
// caller.

func (m *Metric) ReportDatabaseRead(d time.Duration) {
	if m == nil {
		return
	}
	report(m.DatabaseRead, float64(d.Microseconds()))
}

func (m *Metric) ReportDatabaseWrite(d time.Duration) {
	if m == nil {
		return
	}
	report(m.DatabaseWrite, float64(d.Microseconds()))
}

func (m *Metric) ReportDiscordSend(d time.Duration) {
	if m == nil {
		return
	}
	report(m.DiscordSendMessage, float64(d.Microseconds()))
}

func (m *Metric) ReportNotifyPass(d time.Duration) {
	if m == nil {
		return
	}
	report(m.NotifyPassDuration, float64(d.Microseconds()))
}

func (m *Metric) ReportDeliveryFailure() {
	if m == nil {
		return
	}
	report(m.DeliveryFailure, 1)
}

func report(ch chan float64, v float64) {
	select {
	case ch <- v:
	default:
	}
}
