package multisig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "milestone",
		Subsystem: "multisig",
		Name:      "transactions_created_total",
		Help:      "Number of proposed multisig transactions.",
	})
	approvalsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "milestone",
		Subsystem: "multisig",
		Name:      "approvals_total",
		Help:      "Number of accepted approvals.",
	})
	executionsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "milestone",
		Subsystem: "multisig",
		Name:      "executions_total",
		Help:      "Number of executed transactions by action path.",
	}, []string{"path"})
)
