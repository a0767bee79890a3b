package contractor

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/scope"
)

// ThreeBCID runs ThreeB on v; if that strictly contracted v's domain, it
// follows up with CID on the (already narrower) domain.
type ThreeBCID struct {
	threeB *ThreeB
	cid    *CID
	varID  int
}

// NewThreeBCID returns a ThreeBCID contractor wrapping op for variable
// varID, sliced nbSlice3B ways for the 3B phase and nbSliceCID ways for
// the CID phase.
func NewThreeBCID(op Contractor, varID, nbSlice3B, nbSliceCID int) *ThreeBCID {
	return &ThreeBCID{
		threeB: NewThreeB(op, varID, nbSlice3B),
		cid:    NewCID(op, varID, nbSliceCID),
		varID:  varID,
	}
}

func (c *ThreeBCID) Scope() scope.Scope { return c.threeB.Scope() }

func (c *ThreeBCID) Contract(box *domain.IntervalBox) (Proof, error) {
	before := box.At(c.varID)
	p, err := c.threeB.Contract(box)
	if err != nil || p == Empty {
		return p, err
	}
	after := box.At(c.varID)
	if after.Width() >= before.Width() {
		return p, nil
	}
	p2, err := c.cid.Contract(box)
	if err != nil {
		return Maybe, err
	}
	if p2 == Empty {
		return Empty, nil
	}
	return dag.Max(p, p2), nil
}

// VarCID is CID parameterized for use inside ACID: identical behavior to
// CID, kept as a distinct named type so ACID's learning/exploitation
// phases can be read as operating on "the variable-level CID contractor"
// rather than the general composite.
type VarCID = CID

// NewVarCID is an alias constructor for VarCID.
func NewVarCID(op Contractor, varID, nbSlice int) *VarCID {
	return NewCID(op, varID, nbSlice)
}

// Var3BCID is the variable-level 3BCID contractor ACID's learning and
// exploitation phases apply per candidate variable.
type Var3BCID = ThreeBCID

// NewVar3BCID is an alias constructor for Var3BCID.
func NewVar3BCID(op Contractor, varID, nbSlice3B, nbSliceCID int) *Var3BCID {
	return NewThreeBCID(op, varID, nbSlice3B, nbSliceCID)
}
