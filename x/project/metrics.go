package project

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "milestone",
		Subsystem: "project",
		Name:      "privileged_actions_total",
		Help:      "Number of executed privileged actions by action path and resulting status.",
	}, []string{"path", "status"})
	payouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "milestone",
		Subsystem: "project",
		Name:      "payouts_total",
		Help:      "Number of transfers out of project custody by kind.",
	}, []string{"kind"})
)

func payoutKind(final bool) string {
	if final {
		return "final"
	}
	return "milestone"
}
