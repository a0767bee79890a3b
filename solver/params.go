// Package solver ties the whole stack together: it ingests a Problem
// (variables and constraints), builds the propagator and search space per
// Params, and runs the branch-and-prune Driver to a stream of Solutions.
package solver

import (
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/relax"
	"github.com/gokando-numerics/realpaver/search"
)

// PolytopeKind selects whether (and how) a linear relaxation is folded
// into propagation.
type PolytopeKind int

const (
	PolytopeOff PolytopeKind = iota
	PolytopeTaylor
	PolytopeRLT
)

// SelectorKind names the variable-selection policy a Params value
// requests; the driver resolves it into a concrete search.Selector when it
// builds its NcspSplit.
type SelectorKind int

const (
	SelectRR SelectorKind = iota
	SelectLF
	SelectSF
	SelectSLF
	SelectSSR
)

// PropagatorKind selects the narrowing strategy NewDriver assembles
// around the per-constraint BC4 contractors: plain propagation, the same
// propagation plus a square-subsystem Newton/Gauss-Seidel step ("HC4 +
// Newton" in the original's terms), or ACID's adaptive CID schedule.
type PropagatorKind int

const (
	PropagateBC4 PropagatorKind = iota
	PropagateHC4Newton
	PropagateACID
)

// SpaceKind names the pending-node strategy.
type SpaceKind int

const (
	SpaceDFS SpaceKind = iota
	SpaceBFS
	SpaceDMDFS
	SpaceHybridDFS
)

// Params is the full parameter surface named in the external-interfaces
// section: every BC3/Newton/propagation/ACID/relaxation knob, plus the
// search policy and stopping conditions, constructed programmatically
// (there is no config-file loader — that lives in the out-of-scope CLI).
type Params struct {
	BC3PeelFactor float64
	BC3IterLimit  int

	NewtonRelTol    float64
	NewtonIterLimit int
	InflationDelta  float64
	InflationChi    float64

	GaussSeidelRelTol    float64
	GaussSeidelIterLimit int

	PropagationRelTol    float64
	PropagationAbsTol    float64
	PropagationIterLimit int

	NbSlice3B  int
	NbSliceCID int

	AcidLearnLength int
	AcidCycleLength int
	AcidCtRatio     float64

	PropagationWithPolytope PolytopeKind
	RelaxationEqTol         float64
	// LPSolver is the external linear-programming backend the polytope
	// propagator emits its relaxation to. Required whenever
	// PropagationWithPolytope != PolytopeOff; NewDriver returns an error
	// rather than silently skipping the relaxation if it is nil.
	LPSolver relax.LPSolver

	Propagator PropagatorKind
	Selector   SelectorKind
	Splitter   SpaceKind
	Space      SpaceKind

	SolutionClusterGap float64
	NodeLimit          int
	MaxDepth           int
	FirstSolutionOnly  bool

	DefaultRealTolerance domain.Tolerance

	Logger search.Logger
}

// DefaultParams returns the parameter set the original source ships as its
// out-of-the-box configuration.
func DefaultParams() Params {
	return Params{
		BC3PeelFactor: 0.10,
		BC3IterLimit:  50,

		NewtonRelTol:    1e-10,
		NewtonIterLimit: 20,
		InflationDelta:  1.125,
		InflationChi:    1e-12,

		GaussSeidelRelTol:    1e-10,
		GaussSeidelIterLimit: 20,

		PropagationRelTol:    1e-8,
		PropagationAbsTol:    1e-10,
		PropagationIterLimit: 200,

		NbSlice3B:  7,
		NbSliceCID: 3,

		AcidLearnLength: 10,
		AcidCycleLength: 50,
		AcidCtRatio:     0.01,

		PropagationWithPolytope: PolytopeOff,
		RelaxationEqTol:         1e-8,
		LPSolver:                nil,

		Propagator: PropagateACID,
		Selector:   SelectRR,
		Splitter:   SpaceDFS,
		Space:      SpaceDFS,

		SolutionClusterGap: 1e-6,
		NodeLimit:          1_000_000,
		MaxDepth:           1000,
		FirstSolutionOnly:  false,

		DefaultRealTolerance: domain.Tolerance{Abs: 1e-8, Rel: 1e-10},

		Logger: search.NopLogger{},
	}
}
