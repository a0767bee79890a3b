// Package dag implements the shared, maximal-sharing expression graph:
// forward interval/real evaluation, reverse-mode automatic
// differentiation, and HC4-style reverse projection over a box. Nodes are
// arena-indexed (a single slice keyed by insertion index) rather than
// reference-counted, so the graph can never contain a cycle and parent
// links are rebuilt as a plain parallel slice.
package dag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

// Op identifies a node's operator.
type Op int

const (
	OpConst Op = iota
	OpVar
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMin
	OpMax
	OpUsb
	OpAbs
	OpSgn
	OpSqr
	OpSqrt
	OpExp
	OpLog
	OpCos
	OpSin
	OpTan
	OpCosh
	OpSinh
	OpTanh
	OpPow
	OpLin
)

func (o Op) String() string {
	names := [...]string{"const", "var", "add", "sub", "mul", "div", "min", "max",
		"usb", "abs", "sgn", "sqr", "sqrt", "exp", "log", "cos", "sin", "tan",
		"cosh", "sinh", "tanh", "pow", "lin"}
	if int(o) < len(names) {
		return names[o]
	}
	return "?"
}

// Node is one arena slot: an operator plus its ordered children (indices
// into the same Dag), the scratch slots forward evaluation and reverse
// differentiation write into, and the bookkeeping fields that make
// maximal sharing possible (parents, and a bitset of every variable the
// node transitively depends on).
type Node struct {
	Op       Op
	Children []int
	Const    interval.Interval // OpConst
	VarID    int               // OpVar
	Exponent int               // OpPow
	LinCst   interval.Interval // OpLin
	LinCoefs []interval.Interval
	LinVars  []int // parallel to LinCoefs for OpLin; Children holds the var-node indices

	Parents []int
	deps    bitset

	// scratch, rewritten by every Eval/Diff pass
	IVal  interval.Interval
	RVal  float64
	IDiff interval.Interval
	RDiff float64
	work  interval.Interval // current top-down working value during hc4Revise
}

// Dag is the arena: nodes in topological (insertion) order, a structural
// hash table for deduplication, and an index from variable id to the
// OpVar node representing it.
type Dag struct {
	nodes    []*Node
	hash     map[string]int
	varNode  map[int]int
	sc       scope.Scope
	scopeIDs []int // insertion-ordered unique var ids, used to build sc lazily
	funs     []*Fun
}

// New creates an empty Dag.
func New() *Dag {
	return &Dag{hash: make(map[string]int), varNode: make(map[int]int)}
}

// Len returns the number of nodes.
func (d *Dag) Len() int { return len(d.nodes) }

// Node returns the node at index i.
func (d *Dag) Node(i int) *Node { return d.nodes[i] }

// VarNodeIndex returns the arena index of the OpVar node for variable id,
// or false if id has never been inserted into this Dag.
func (d *Dag) VarNodeIndex(id int) (int, bool) {
	idx, ok := d.varNode[id]
	return idx, ok
}

// Scope returns the union of every variable the Dag's functions touch.
func (d *Dag) Scope() scope.Scope {
	if d.sc.Size() != len(d.scopeIDs) {
		d.sc = scope.New(d.scopeIDs...)
	}
	return d.sc
}

func keyOf(op Op, children []int, exponent int, c interval.Interval, varID int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(op)))
	switch op {
	case OpConst:
		fmt.Fprintf(&b, ":%v:%v", c.Lo, c.Hi)
	case OpVar:
		fmt.Fprintf(&b, ":%d", varID)
	case OpPow:
		fmt.Fprintf(&b, ":%d", exponent)
	}
	for _, c := range children {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

func (d *Dag) intern(n *Node, key string) int {
	if i, ok := d.hash[key]; ok {
		return i
	}
	idx := len(d.nodes)
	d.nodes = append(d.nodes, n)
	d.hash[key] = idx
	for _, c := range n.Children {
		d.nodes[c].Parents = append(d.nodes[c].Parents, idx)
	}
	n.deps = d.computeDeps(n)
	return idx
}

func (d *Dag) computeDeps(n *Node) bitset {
	if n.Op == OpVar {
		b := newBitset()
		b.set(n.VarID)
		return b
	}
	b := newBitset()
	for _, c := range n.Children {
		b = b.union(d.nodes[c].deps)
	}
	return b
}

// Const inserts (or reuses) a constant node and returns its index.
func (d *Dag) Const(x interval.Interval) int {
	n := &Node{Op: OpConst, Const: x}
	return d.intern(n, keyOf(OpConst, nil, 0, x, 0))
}

// Var inserts (or reuses) a variable node for id and returns its index.
func (d *Dag) Var(id int) int {
	if i, ok := d.varNode[id]; ok {
		return i
	}
	n := &Node{Op: OpVar, VarID: id}
	idx := d.intern(n, keyOf(OpVar, nil, 0, interval.Empty(), id))
	d.varNode[id] = idx
	d.scopeIDs = append(d.scopeIDs, id)
	return idx
}

func (d *Dag) binary(op Op, a, b int) int {
	n := &Node{Op: op, Children: []int{a, b}}
	return d.intern(n, keyOf(op, n.Children, 0, interval.Empty(), 0))
}

func (d *Dag) unary(op Op, a int) int {
	n := &Node{Op: op, Children: []int{a}}
	return d.intern(n, keyOf(op, n.Children, 0, interval.Empty(), 0))
}

func (d *Dag) Add(a, b int) int { return d.binary(OpAdd, a, b) }
func (d *Dag) Sub(a, b int) int { return d.binary(OpSub, a, b) }
func (d *Dag) Mul(a, b int) int { return d.binary(OpMul, a, b) }
func (d *Dag) Div(a, b int) int { return d.binary(OpDiv, a, b) }
func (d *Dag) MinOp(a, b int) int { return d.binary(OpMin, a, b) }
func (d *Dag) MaxOp(a, b int) int { return d.binary(OpMax, a, b) }

func (d *Dag) Usb(a int) int  { return d.unary(OpUsb, a) }
func (d *Dag) Abs(a int) int  { return d.unary(OpAbs, a) }
func (d *Dag) Sgn(a int) int  { return d.unary(OpSgn, a) }
func (d *Dag) Sqr(a int) int  { return d.unary(OpSqr, a) }
func (d *Dag) Sqrt(a int) int { return d.unary(OpSqrt, a) }
func (d *Dag) Exp(a int) int  { return d.unary(OpExp, a) }
func (d *Dag) Log(a int) int  { return d.unary(OpLog, a) }
func (d *Dag) Cos(a int) int  { return d.unary(OpCos, a) }
func (d *Dag) Sin(a int) int  { return d.unary(OpSin, a) }
func (d *Dag) Tan(a int) int  { return d.unary(OpTan, a) }
func (d *Dag) Cosh(a int) int { return d.unary(OpCosh, a) }
func (d *Dag) Sinh(a int) int { return d.unary(OpSinh, a) }
func (d *Dag) Tanh(a int) int { return d.unary(OpTanh, a) }

// Pow inserts x^n for a fixed integer exponent n.
func (d *Dag) Pow(a int, n int) int {
	nd := &Node{Op: OpPow, Children: []int{a}, Exponent: n}
	return d.intern(nd, keyOf(OpPow, nd.Children, n, interval.Empty(), 0))
}

// Lin inserts the affine linear combination cst + sum(coefs[i]*vars[i]).
func (d *Dag) Lin(cst interval.Interval, coefs []interval.Interval, vars []int) int {
	children := append([]int(nil), vars...)
	nd := &Node{Op: OpLin, Children: children, LinCst: cst, LinCoefs: append([]interval.Interval(nil), coefs...), LinVars: vars}
	key := keyOf(OpLin, children, 0, cst, 0)
	for _, c := range coefs {
		key += fmt.Sprintf("|%v:%v", c.Lo, c.Hi)
	}
	return d.intern(nd, key)
}

// Fun is a root index plus the interval image constraining it and the
// lexical scope (the set of variables it depends on).
type Fun struct {
	dag   *Dag
	Root  int
	Image interval.Interval
	sc    scope.Scope
}

// NewFun registers a function rooted at root, constrained to lie in image.
func (d *Dag) NewFun(root int, image interval.Interval) *Fun {
	ids := d.nodes[root].deps.items()
	f := &Fun{dag: d, Root: root, Image: image, sc: scope.New(ids...)}
	d.funs = append(d.funs, f)
	return f
}

// Scope returns the function's lexical scope.
func (f *Fun) Scope() scope.Scope { return f.sc }

// Dag returns the owning Dag.
func (f *Fun) Dag() *Dag { return f.dag }
