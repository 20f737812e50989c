package operator

import (
	"fmt"
	"log/slog"

	"github.com/notargets/DGElwise/partitions"
	"gonum.org/v1/gonum/mat"
)

// Config controls which applicator a Dispatcher routes to
type Config struct {
	// DisableFastPath forces the generic path for every call
	DisableFastPath bool

	// Accelerator, when set, replaces Batched as the fast path, e.g. a
	// runner.Device. It sees only uniform partitions with buffer targets.
	Accelerator Applicator

	Logger *slog.Logger
}

// Dispatcher picks the fastest applicator a partition and target support.
// Uniform partitions with buffer targets go to the fast path, everything
// else to Generic.
type Dispatcher struct {
	fast    Applicator
	logger  *slog.Logger
	enabled bool
}

var _ Applicator = (*Dispatcher)(nil)

func NewDispatcher(cfg Config) *Dispatcher {
	d := &Dispatcher{
		fast:    Batched{},
		logger:  cfg.Logger,
		enabled: !cfg.DisableFastPath,
	}
	if cfg.Accelerator != nil {
		d.fast = cfg.Accelerator
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Select returns the applicator used for p and t
func (d *Dispatcher) Select(p partitions.Partition, t Target) Applicator {
	switch {
	case !d.enabled:
		d.logger.Debug("elementwise operator: fast path disabled", "elements", p.Size())
	case !CanBatch(p, t):
		d.logger.Debug("elementwise operator: generic path",
			"partition", typeName(p), "target", typeName(t), "elements", p.Size())
	default:
		d.logger.Debug("elementwise operator: batched path",
			"applicator", typeName(d.fast), "elements", p.Size())
		return d.fast
	}
	return Generic{}
}

func (d *Dispatcher) Apply(p partitions.Partition, m mat.Matrix, t Target) error {
	return d.Select(p, t).Apply(p, m, t)
}

func (d *Dispatcher) ApplyScaled(p partitions.Partition, scale []float64, m mat.Matrix, t Target) error {
	return d.Select(p, t).ApplyScaled(p, scale, m, t)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
