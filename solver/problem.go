package solver

import (
	"github.com/gokando-numerics/realpaver/contractor"
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

// VarKind distinguishes the three domain shapes a Variable may own.
type VarKind int

const (
	KindReal VarKind = iota
	KindInteger
	KindBinary
)

// VarSpec is one ingested variable: its identity, kind, canonicalization
// tolerance and initial domain.
type VarSpec struct {
	Name string
	ID   int
	Kind VarKind
	Tol  domain.Tolerance
	Init domain.Domain
}

// CmpKind names the inequality shapes §6 of the original spec accepts.
type CmpKind int

const (
	CmpEq CmpKind = iota
	CmpLe
	CmpLt
	CmpGe
	CmpGt
)

// RelaxEquality turns the equality f(x) = 0 into the inequality
// f(x) in [-nu, nu], the tolerance-relaxed form problem ingestion applies
// to every equality constraint per the original source's ConstraintRelaxor.
func RelaxEquality(nu float64) interval.Interval {
	return interval.New(-nu, nu)
}

// Problem is the constraint visitor external callers build against: it
// owns the shared DAG, the declared variables, the numeric constraints
// (each a *dag.Fun with its target image), and any opaque non-numeric
// constraints accepted as-is.
type Problem struct {
	d      *dag.Dag
	vars   []VarSpec
	funs   []*dag.Fun
	opaque []contractor.Constraint
	eqTol  float64
}

// NewProblem returns an empty Problem relaxing equalities by eqTol.
func NewProblem(eqTol float64) *Problem {
	return &Problem{d: dag.New(), eqTol: eqTol}
}

// Dag returns the shared expression DAG constraints are built against.
func (p *Problem) Dag() *dag.Dag { return p.d }

// AddVariable registers a new variable. id must be unique and is the id
// passed to d.Var(id) when the caller builds expression trees.
func (p *Problem) AddVariable(name string, id int, kind VarKind, tol domain.Tolerance, init domain.Domain) {
	p.vars = append(p.vars, VarSpec{Name: name, ID: id, Kind: kind, Tol: tol, Init: init})
}

// AddEquality registers f(root) = 0, relaxed to f(root) in [-eqTol, eqTol].
func (p *Problem) AddEquality(root int) *dag.Fun {
	f := p.d.NewFun(root, RelaxEquality(p.eqTol))
	p.funs = append(p.funs, f)
	return f
}

// AddInequality registers f(root) cmp bound for cmp in {<=, <, >=, >}.
func (p *Problem) AddInequality(root int, cmp CmpKind, bound float64) *dag.Fun {
	var image interval.Interval
	switch cmp {
	case CmpLe, CmpLt:
		image = interval.New(negInf(), bound)
	case CmpGe, CmpGt:
		image = interval.New(bound, posInf())
	default:
		image = interval.Degenerate(bound)
	}
	f := p.d.NewFun(root, image)
	p.funs = append(p.funs, f)
	return f
}

// AddRange registers f(root) in [lo, hi].
func (p *Problem) AddRange(root int, lo, hi float64) *dag.Fun {
	f := p.d.NewFun(root, interval.New(lo, hi))
	p.funs = append(p.funs, f)
	return f
}

// AddConstraint accepts an opaque, non-numeric constraint (discrete,
// table, or table-encoded) verbatim.
func (p *Problem) AddConstraint(c contractor.Constraint) {
	p.opaque = append(p.opaque, c)
}

// Funs returns every registered numeric constraint.
func (p *Problem) Funs() []*dag.Fun { return p.funs }

// OpaqueConstraints returns every registered non-numeric constraint.
func (p *Problem) OpaqueConstraints() []contractor.Constraint { return p.opaque }

// Variables returns every declared variable, in registration order.
func (p *Problem) Variables() []VarSpec { return p.vars }

// Scope returns the Scope spanning every declared variable.
func (p *Problem) Scope() scope.Scope {
	ids := make([]int, len(p.vars))
	for i, v := range p.vars {
		ids[i] = v.ID
	}
	return scope.New(ids...)
}

// Tolerances returns the per-variable Tolerance slice in Scope().IDs()
// order, the shape every DomainBox/IntervalBox tolerance parameter needs.
func (p *Problem) Tolerances() []domain.Tolerance {
	sc := p.Scope()
	tols := make([]domain.Tolerance, sc.Size())
	byID := make(map[int]domain.Tolerance, len(p.vars))
	for _, v := range p.vars {
		byID[v.ID] = v.Tol
	}
	for i, id := range sc.IDs() {
		tols[i] = byID[id]
	}
	return tols
}

// InitialBox builds the DomainBox of every declared variable's initial
// domain, the seed for the search tree's root node.
func (p *Problem) InitialBox() *domain.DomainBox {
	sc := p.Scope()
	byID := make(map[int]domain.Domain, len(p.vars))
	for _, v := range p.vars {
		byID[v.ID] = v.Init
	}
	return domain.NewDomainBox(sc, func(id int) domain.Domain { return byID[id] })
}

func posInf() float64 { return 1e300 }
func negInf() float64 { return -1e300 }
