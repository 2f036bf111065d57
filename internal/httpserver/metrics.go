package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Crystallen1/lyricsWordle/internal/game"
	"github.com/Crystallen1/lyricsWordle/internal/store"
)

// metrics tracks gameplay counters. A nil registry leaves every method a
// no-op.
type metrics struct {
	rounds   *prometheus.CounterVec
	guesses  *prometheus.CounterVec
	wins     prometheus.Counter
	newBests prometheus.Counter
}

func newMetrics(reg *prometheus.Registry, sessions store.Store) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lyrics_rounds_started_total",
			Help: "Rounds started, by selection mode.",
		}, []string{"mode"}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lyrics_guesses_total",
			Help: "Guesses and hints, by kind and result.",
		}, []string{"kind", "result"}),
		wins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyrics_rounds_won_total",
			Help: "Rounds won.",
		}),
		newBests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyrics_new_bests_total",
			Help: "Wins that set a new best for their song.",
		}),
	}
	reg.MustRegister(m.rounds, m.guesses, m.wins, m.newBests)
	if sessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "lyrics_sessions",
			Help: "Live player sessions.",
		}, func() float64 { return float64(sessions.Len()) }))
	}
	return m
}

func (m *metrics) roundStarted(mode string) {
	if m == nil {
		return
	}
	m.rounds.WithLabelValues(mode).Inc()
}

func (m *metrics) guessed(kind string, res game.Result, err error) {
	if m == nil {
		return
	}
	var result string
	switch {
	case err != nil && game.IsPlayerError(err):
		result = "rejected"
	case err != nil:
		result = "error"
	case res.Repeat:
		result = "repeat"
	case res.Absent:
		result = "absent"
	default:
		result = "hit"
	}
	m.guesses.WithLabelValues(kind, result).Inc()
	if res.Won && err == nil {
		m.wins.Inc()
	}
	if res.NewBest {
		m.newBests.Inc()
	}
}
