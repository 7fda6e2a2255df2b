package quad

import (
	"github.com/lyra-lang/lyc/pkg/token"
	"github.com/lyra-lang/lyc/pkg/util"
)

// Translation results threaded through the AST traversal. They are pure data
// produced and consumed per node; this layer retains nothing past the call
// that built them.

// ExprResult is what translating an expression yields: the operand holding
// its value and the exits that still need a continuation.
type ExprResult struct {
	Place Operand
	Next  TargetList
}

// CondResult is what translating a condition yields: the exits taken when it
// holds and when it does not.
type CondResult struct {
	True  TargetList
	False TargetList
}

// StmtResult is what translating a statement yields.
type StmtResult struct {
	Next TargetList
}

// BinOp maps a source binary-operator token to its quad operator. The
// logical operators, sequencing and exponentiation have no quad operator:
// the traversal eliminates them first, and/or by short-circuit control flow,
// sequencing by fragment merging, exponentiation by a library call. Handing
// one of them to this mapping is a translator bug.
func BinOp(t token.Type) Op {
	switch t {
	case token.Plus:
		return OpAdd
	case token.Minus:
		return OpSub
	case token.Star:
		return OpMul
	case token.Slash:
		return OpDiv
	case token.Percent:
		return OpMod
	case token.Eq:
		return OpEq
	case token.Neq:
		return OpNeq
	case token.Lt:
		return OpLt
	case token.Gt:
		return OpGt
	case token.Le:
		return OpLe
	case token.Ge:
		return OpGe
	case token.Assign:
		return OpAssign
	}
	util.Bug("binary operator %s has no quad operator", t)
	return 0
}

// UnOp maps a unary-operator token. Negation becomes subtraction from zero;
// unary plus emits nothing and never reaches this layer, dereference is the
// Deref operand wrapper and logical not is short-circuit expanded, so all
// three are translator bugs here.
func UnOp(t token.Type) Op {
	if t == token.Minus {
		return OpSub
	}
	util.Bug("unary operator %s has no quad operator", t)
	return 0
}
