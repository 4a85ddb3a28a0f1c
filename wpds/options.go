package wpds

import (
	"fmt"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/wpds/wfa"
	"github.com/luxfi/wpds/worklist"
)

// Options configures a WPDS: an optional witness Wrapper, an optional
// Worklist factory (defaulting to FIFO), an optional structured Logger
// (defaulting to a no-op), an optional prometheus Registerer for the
// saturation-engine metrics of §11 in SPEC_FULL.md, and an optional
// MaxSteps bound.
//
// MaxSteps is not part of spec.md's pseudocode; it is this module's
// concrete realization of spec.md §7's SemiringOverflow ("domain
// reports non-terminating ascending chain"), since nothing in the core
// contract lets a Element self-report divergence. When MaxSteps is
// positive, PreStar/PostStar return ErrOverflow once the worklist has
// been popped that many times without converging, discarding the
// partial output as spec.md directs. Zero means unlimited.
type Options struct {
	Wrapper     Wrapper
	NewWorklist func() worklist.Worklist[*wfa.Transition]
	Logger      log.Logger
	Registerer  prometheus.Registerer
	MaxSteps    int
}

// OptionsBuilder builds an Options value with a fluent, chainable
// interface, adapted from the teacher's config.Builder (config/
// builder.go): each setter accumulates into a sticky err field,
// surfaced only when Build is finally called.
type OptionsBuilder struct {
	opts Options
	err  error
}

// NewOptionsBuilder returns a builder with no wrapper, a no-op logger,
// and no metrics registration.
func NewOptionsBuilder() *OptionsBuilder {
	return &OptionsBuilder{
		opts: Options{Logger: log.NewNoOpLogger()},
	}
}

// WithWrapper installs a witness wrapper.
func (b *OptionsBuilder) WithWrapper(w Wrapper) *OptionsBuilder {
	if b.err != nil {
		return b
	}
	if w == nil {
		b.err = fmt.Errorf("wpds: WithWrapper called with a nil Wrapper")
		return b
	}
	b.opts.Wrapper = w
	return b
}

// WithWorklist installs a factory for the worklist the saturation
// engine drains. A nil factory is rejected; omit the call to keep the
// FIFO default.
func (b *OptionsBuilder) WithWorklist(factory func() worklist.Worklist[*wfa.Transition]) *OptionsBuilder {
	if b.err != nil {
		return b
	}
	if factory == nil {
		b.err = fmt.Errorf("wpds: WithWorklist called with a nil factory")
		return b
	}
	b.opts.NewWorklist = factory
	return b
}

// WithMaxSteps bounds the number of worklist pops PreStar/PostStar will
// perform before returning ErrOverflow. n must be positive; omit the
// call to run unbounded.
func (b *OptionsBuilder) WithMaxSteps(n int) *OptionsBuilder {
	if b.err != nil {
		return b
	}
	if n <= 0 {
		b.err = fmt.Errorf("wpds: WithMaxSteps called with a non-positive bound")
		return b
	}
	b.opts.MaxSteps = n
	return b
}

// WithLogger installs a structured logger. A nil logger is rejected;
// omit the call to keep the no-op default.
func (b *OptionsBuilder) WithLogger(l log.Logger) *OptionsBuilder {
	if b.err != nil {
		return b
	}
	if l == nil {
		b.err = fmt.Errorf("wpds: WithLogger called with a nil Logger")
		return b
	}
	b.opts.Logger = l
	return b
}

// WithMetrics installs a prometheus registerer for the saturation
// engine's worklist-pop/update/transition-count metrics.
func (b *OptionsBuilder) WithMetrics(reg prometheus.Registerer) *OptionsBuilder {
	if b.err != nil {
		return b
	}
	if reg == nil {
		b.err = fmt.Errorf("wpds: WithMetrics called with a nil Registerer")
		return b
	}
	b.opts.Registerer = reg
	return b
}

// Build returns the accumulated Options, or the first error recorded
// by a setter.
func (b *OptionsBuilder) Build() (Options, error) {
	if b.err != nil {
		return Options{}, b.err
	}
	return b.opts, nil
}
