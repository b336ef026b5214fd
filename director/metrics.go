package director

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric outcome constants.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Metric definitions with appropriate labels.
var (
	// actionsCreated counts plain actions built by synthesized creators.
	actionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "director_actions_created_total",
		Help: "Total number of actions built by a director's creators, by director and transition",
	}, []string{"director", "transition"})

	// actionsRouted counts actions a director's reducer dispatched to a transition.
	actionsRouted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "director_actions_routed_total",
		Help: "Total number of actions routed to a transition's reduce logic, by director and transition",
	}, []string{"director", "transition"})

	// actionsIgnored counts foreign actions a director's reducer passed through unchanged.
	actionsIgnored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "director_actions_ignored_total",
		Help: "Total number of actions whose base key matched no transition, by director",
	}, []string{"director"})

	// dispatchErrors counts branching transitions that could not route a matching action.
	dispatchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "director_dispatch_errors_total",
		Help: "Total number of dispatch-time routing errors (missing or unknown sub key), by director and transition",
	}, []string{"director", "transition"})

	// effectsStarted counts effect thunk invocations.
	effectsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "director_effects_started_total",
		Help: "Total number of effect thunks started, by director and transition",
	}, []string{"director", "transition"})

	// effectsCompleted counts effect thunk completions by outcome.
	effectsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "director_effects_completed_total",
		Help: "Total number of effect thunks completed, by director, transition, and outcome (success or error)",
	}, []string{"director", "transition", "outcome"})

	// effectDuration tracks effect thunk execution time.
	effectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "director_effect_duration_seconds",
		Help:    "Duration of effect thunk execution by director, transition, and outcome",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"director", "transition", "outcome"})
)
