package observability

import "github.com/prometheus/client_golang/prometheus"

// Draw outcomes recorded by ObserveDraw.
const (
	DrawServed    = "served"
	DrawReplayed  = "replayed"
	DrawExhausted = "exhausted"
	DrawLocked    = "locked"
	DrawRepeated  = "already_generated"
	DrawMissing   = "not_found"
	DrawFailed    = "error"
)

var (
	// drawsTotal counts single draws by outcome.
	drawsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispenser_draws_total",
			Help: "Single comment draws by outcome.",
		},
		[]string{"outcome"},
	)

	// bulkClaimed counts comments handed out through the bulk gate.
	bulkClaimed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispenser_bulk_claimed_total",
			Help: "Comments claimed through bulk generation.",
		},
	)

	// listClears counts full clears by trigger (admin|daily).
	listClears = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispenser_list_clears_total",
			Help: "Full clears of every comment list.",
		},
		[]string{"trigger"},
	)

	// rejectedCredentials counts failed credential checks by gate (admin|bulk).
	rejectedCredentials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispenser_rejected_credentials_total",
			Help: "Privileged calls rejected by the credential gate.",
		},
		[]string{"gate"},
	)
)

func init() {
	prometheus.MustRegister(drawsTotal, bulkClaimed, listClears, rejectedCredentials)
}

// ObserveDraw records the outcome of one single-draw call.
func ObserveDraw(outcome string) { drawsTotal.WithLabelValues(outcome).Inc() }

// ObserveBulk records n comments claimed by one bulk call.
func ObserveBulk(n int) { bulkClaimed.Add(float64(n)) }

// ObserveClear records a full clear.
func ObserveClear(trigger string) { listClears.WithLabelValues(trigger).Inc() }

// ObserveRejected records a credential rejection.
func ObserveRejected(gate string) { rejectedCredentials.WithLabelValues(gate).Inc() }
