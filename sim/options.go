// Package sim orchestrates the embedding, collision, and ADMM solver
// packages into a single bind-mesh/step-forward lifecycle, and exposes
// the Options surface a caller tunes per simulation.
package sim

import (
	"github.com/soypat/meshcsg/solver"
)

// LogLevel gates Options.Logf calls; the zero value (LogNone) makes
// logging fully opt-in.
type LogLevel int

const (
	LogNone LogLevel = iota
	LogLow
	LogHigh
	LogDebug
)

// Options configures a Solver's construction and per-step behaviour.
// Every field has a documented zero-value-compatible default reachable
// via DefaultOptions.
type Options struct {
	TimestepS       float64
	LinSolver       solver.LinSolver
	MaxADMMIters    int
	MaxCGIters      int
	MinRes          float64
	ElasticMaterial solver.Material
	Youngs          float64
	Poisson         float64
	DensityKgm3     float64
	Grav            [3]float64

	Floor              bool
	FloorZ             float64
	CollisionThickness float64
	SelfCollision      bool

	MultPk float64
	MultCk float64

	Substeps   int
	MaxThreads int // <=0 means auto (runtime.NumCPU)

	LatticeSubdiv int

	LogLevel LogLevel
	// Logf receives (level, format, args); nil is a no-op. Callers wire
	// in whatever logger they use without this module depending on one.
	Logf func(level LogLevel, format string, args ...any)
}

// DefaultOptions returns the zero-value-compatible defaults used when a
// caller leaves a field unset in the common case (dt=1/24, ARAP, LDLT,
// no floor/self-collision, one substep, auto threading).
func DefaultOptions() Options {
	return Options{
		TimestepS:          1.0 / 24,
		LinSolver:          solver.LDLT,
		MaxADMMIters:       10,
		MaxCGIters:         200,
		MinRes:             1e-6,
		ElasticMaterial:    solver.ARAP,
		Youngs:             1e5,
		Poisson:            0.3,
		DensityKgm3:        1000,
		Grav:               [3]float64{0, 0, -9.8},
		CollisionThickness: 1e-3,
		MultPk:             1,
		MultCk:             1,
		Substeps:           1,
		MaxThreads:         -1,
		LatticeSubdiv:      3,
	}
}

func (o Options) logf(level LogLevel, format string, args ...any) {
	if o.Logf == nil || level > o.LogLevel {
		return
	}
	o.Logf(level, format, args...)
}
