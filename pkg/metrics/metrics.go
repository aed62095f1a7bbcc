// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded for transactions and publishes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeMissing = "not_found"
	OutcomeFatal   = "fatal"
	OutcomeError   = "error"
)

// Metrics groups the collectors.
type Metrics struct {
	Transactions *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	Published    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callorder",
			Name:      "transactions_total",
			Help:      "State store transactions by operation and outcome.",
		}, []string{"op", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "callorder",
			Name:      "transaction_duration_seconds",
			Help:      "Time spent in a state store transaction, lock wait included.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"op"}),
		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callorder",
			Name:      "events_published_total",
			Help:      "Change events handed to publishers, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.Transactions, m.Duration, m.Published)
	return m
}

// Observe records one finished transaction.
func (m *Metrics) Observe(op, outcome string, start time.Time) {
	m.Transactions.WithLabelValues(op, outcome).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// StatsFunc reports the current number of calls and menu items.
type StatsFunc func() (calls, menuItems int, err error)

// RegisterStateGauges exports the state size, read at scrape time.
func RegisterStateGauges(reg prometheus.Registerer, stats StatsFunc) {
	read := func(pick func(calls, items int) int) func() float64 {
		return func() float64 {
			calls, items, err := stats()
			if err != nil {
				return -1
			}
			return float64(pick(calls, items))
		}
	}
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "callorder",
			Name:      "calls",
			Help:      "Calls created since start.",
		}, read(func(calls, _ int) int { return calls })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "callorder",
			Name:      "menu_items",
			Help:      "Items currently on the menu.",
		}, read(func(_, items int) int { return items })),
	)
}
