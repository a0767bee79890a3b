package relax

import (
	"gonum.org/v1/gonum/mat"
)

// Tableau assembles the equality rows of an RLT model (addCtr calls with
// lo == up) into a dense coefficient matrix and solves a square subsystem
// directly with gonum. It is a standalone helper: Relaxer and
// PolytopeContractor do not call it, and it never reports a relaxation
// infeasible (a singular or non-square subsystem is only inconclusive).
type Tableau struct {
	vars []LinVar
	rows [][]float64
	rhs  []float64
}

// NewTableau returns an empty Tableau tracking the given linear variables,
// in the column order the resulting matrix uses.
func NewTableau(vars []LinVar) *Tableau {
	return &Tableau{vars: vars}
}

func (t *Tableau) colOf(v LinVar) (int, bool) {
	for i, w := range t.vars {
		if w == v {
			return i, true
		}
	}
	return 0, false
}

// AddEquality records expr == value as one row, dropping terms whose
// variable isn't tracked by this Tableau (they contribute nothing to the
// solve, which only covers the variables of interest).
func (t *Tableau) AddEquality(expr LinExpr, value float64) {
	row := make([]float64, len(t.vars))
	for _, term := range expr {
		if col, ok := t.colOf(term.Var); ok {
			row[col] += term.Coef
		}
	}
	t.rows = append(t.rows, row)
	t.rhs = append(t.rhs, value)
}

// Solve attempts an exact solve of the accumulated equality rows via
// gonum's mat.VecDense.SolveVec, returning ok=false (not an error) whenever
// the subsystem isn't square or is singular — both mean the result is
// inconclusive.
func (t *Tableau) Solve() (point []float64, ok bool, err error) {
	n := len(t.vars)
	if n == 0 || len(t.rows) != n {
		return nil, false, nil
	}
	data := make([]float64, 0, n*n)
	for _, row := range t.rows {
		data = append(data, row...)
	}
	a := mat.NewDense(n, n, data)
	b := mat.NewVecDense(n, t.rhs)

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, false, nil
	}
	point = make([]float64, n)
	for i := range point {
		point[i] = x.AtVec(i)
	}
	return point, true, nil
}
