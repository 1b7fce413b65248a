package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "battleship"

var (
	Commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Inbound commands by tag",
		},
		[]string{"command"},
	)
	Rejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Commands rejected with an error code",
		},
		[]string{"code"},
	)
	Shots = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_total",
			Help:      "Resolved shots by result",
		},
		[]string{"result"},
	)
	MatchesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_finished_total",
			Help:      "Finished matches by reason",
		},
		[]string{"reason"},
	)
	Connections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Player connection events by slot",
		},
		[]string{"slot", "event"},
	)
)

var knownCommands = map[string]bool{"D": true, "I": true, "S": true, "Q": true, "F": true}

func init() {
	prometheus.MustRegister(Commands)
	prometheus.MustRegister(Rejections)
	prometheus.MustRegister(Shots)
	prometheus.MustRegister(MatchesFinished)
	prometheus.MustRegister(Connections)
}

// CommandLabel - keeps the command label bounded, anything unknown is "other".
func CommandLabel(tag string) string {
	if knownCommands[tag] {
		return tag
	}
	return "other"
}

func ShotLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
