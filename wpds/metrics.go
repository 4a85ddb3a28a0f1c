package wpds

import "github.com/prometheus/client_golang/prometheus"

// metrics are the optional saturation-engine counters wired into a
// prometheus.Registerer, grounded on the teacher's poll.NewSet /
// poll.NewEarlyTermFactory constructors, which take a
// prometheus.Registerer the same way. Registration is skipped entirely
// when no registerer is supplied, matching the teacher's tolerance of a
// nil/no-op registerer in tests.
type metrics struct {
	worklistPops prometheus.Counter
	updates      prometheus.Counter
	transitions  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		worklistPops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wpds",
			Name:      "worklist_pops_total",
			Help:      "Number of transitions popped from the saturation worklist.",
		}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wpds",
			Name:      "updates_total",
			Help:      "Number of transition inserts made by the saturation engine (setup copies and update/update_prime calls).",
		}),
		transitions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wpds",
			Name:      "output_transitions",
			Help:      "Number of transitions in the most recently produced output WFA.",
		}),
	}
	reg.MustRegister(m.worklistPops, m.updates, m.transitions)
	return m
}

func (m *metrics) pop() {
	if m != nil {
		m.worklistPops.Inc()
	}
}

func (m *metrics) update() {
	if m != nil {
		m.updates.Inc()
	}
}

func (m *metrics) setTransitions(n int) {
	if m != nil {
		m.transitions.Set(float64(n))
	}
}
