package affinebuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/interval"
)

func TestBuildLinearSumEnclosesIntervalImage(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	y := d.Var(2)
	root := d.Add(x, y)

	dom := map[int]interval.Interval{1: interval.New(0, 2), 2: interval.New(1, 3)}
	box := func(id int) interval.Interval { return dom[id] }

	b := NewBuilder(d)
	require.NoError(t, b.Build(root, box))

	image := b.Form(root).Eval()
	want := d.IntervalEval(root, box)
	assert.LessOrEqual(t, image.Lo, want.Lo+1e-9)
	assert.GreaterOrEqual(t, image.Hi, want.Hi-1e-9)
}

func TestBuildSqrEnclosesNonNegativeImage(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	root := d.Sqr(x)

	dom := map[int]interval.Interval{1: interval.New(-2, 3)}
	box := func(id int) interval.Interval { return dom[id] }

	b := NewBuilder(d)
	require.NoError(t, b.Build(root, box))
	image := b.Form(root).Eval()
	assert.GreaterOrEqual(t, image.Lo, -1e-9)
	assert.GreaterOrEqual(t, image.Hi, 9.0-1e-9)
}
