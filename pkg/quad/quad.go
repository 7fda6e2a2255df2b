package quad

import "fmt"

// Op is a quad operator. Comparison operators are conditional jumps: their
// third argument is the target. Endu closes a translation unit.
type Op int

const (
	OpAssign Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpIfb
	OpJump
	OpArray
	OpDim
	OpPar
	OpCall
	OpRet
	OpRetV
	OpUnit
	OpEndu
)

var opNames = [...]string{
	OpAssign: ":=",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpEq:     "=",
	OpNeq:    "<>",
	OpLt:     "<",
	OpGt:     ">",
	OpLe:     "<=",
	OpGe:     ">=",
	OpIfb:    "ifb",
	OpJump:   "jump",
	OpArray:  "array",
	OpDim:    "dim",
	OpPar:    "par",
	OpCall:   "call",
	OpRet:    "ret",
	OpRetV:   "retv",
	OpUnit:   "unit",
	OpEndu:   "endu",
}

func (o Op) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Quad is one three-address instruction. Op, Arg1 and Arg2 are frozen at
// construction. Arg3 is the jump-target slot and the only mutable one: it
// moves at most once, from Pending to a concrete LabelRef, when the
// backpatch engine resolves it.
type Quad struct {
	Label Label
	Op    Op
	Arg1  Operand
	Arg2  Operand
	Arg3  Operand
}

// List is a quad sequence in generation order.
type List []*Quad

// Merge concatenates l and m preserving the relative order of both, without
// mutating either. The empty list is the identity.
func (l List) Merge(m List) List {
	if len(l) == 0 {
		return m
	}
	if len(m) == 0 {
		return l
	}
	out := make(List, 0, len(l)+len(m))
	out = append(out, l...)
	return append(out, m...)
}

// Last returns the label of the final quad, the usual continuation point
// after a fully translated fragment.
func (l List) Last() Label {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].Label
}
