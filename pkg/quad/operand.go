package quad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lyra-lang/lyc/pkg/symbols"
	"github.com/lyra-lang/lyc/pkg/types"
	"github.com/lyra-lang/lyc/pkg/util"
)

// Operand is anything a quad argument can hold: literal constants, symbol
// references, recursive reference/dereference wrappers, array subscripts,
// size metadata and the translation-internal control markers.
type Operand interface {
	isOperand()
	String() string
}

type Int struct{ Value int64 }
type Float struct{ Value float64 }
type Char struct{ Value rune }
type Bool struct{ Value bool }
type Str struct{ Value string }

// Entry references a symbol-table entry. The table owns the entry; the
// operand holds a non-owning reference and must never outlive the table.
type Entry struct{ Sym *symbols.Entry }

// Ref is the address of the wrapped operand; Deref follows it back.
type Ref struct{ Of Operand }
type Deref struct{ Of Operand }

// Index carries the ordered subscripts of a multi-dimensional array access.
type Index struct{ Subs []Operand }

// Size and Dims attach element-size and dimension-count metadata to the
// array-handling quads.
type Size struct{ Bytes int64 }
type Dims struct{ Count int }

// LabelRef is a resolved jump target.
type LabelRef struct{ To Label }

type marker struct{ name string }

var (
	// Pending marks a jump target that has not been backpatched yet.
	Pending Operand = marker{"*"}
	// Result is the implicit expression-result slot.
	Result Operand = marker{"$$"}
	// Return is the implicit function-return slot.
	Return Operand = marker{"RET"}
	// ByValue marks a by-value argument in a par quad.
	ByValue Operand = marker{"V"}
	// Empty is the explicit absent operand.
	Empty Operand = marker{"-"}
)

func (Int) isOperand()      {}
func (Float) isOperand()    {}
func (Char) isOperand()     {}
func (Bool) isOperand()     {}
func (Str) isOperand()      {}
func (Entry) isOperand()    {}
func (Ref) isOperand()      {}
func (Deref) isOperand()    {}
func (Index) isOperand()    {}
func (Size) isOperand()     {}
func (Dims) isOperand()     {}
func (LabelRef) isOperand() {}
func (marker) isOperand()   {}

func (o Int) String() string   { return strconv.FormatInt(o.Value, 10) }
func (o Float) String() string { return strconv.FormatFloat(o.Value, 'g', -1, 64) }
func (o Char) String() string  { return strconv.QuoteRune(o.Value) }
func (o Bool) String() string  { return strconv.FormatBool(o.Value) }
func (o Str) String() string   { return strconv.Quote(o.Value) }
func (o Entry) String() string {
	if o.Sym == nil {
		return "<nil entry>"
	}
	return o.Sym.Name
}
func (o Ref) String() string   { return "{" + o.Of.String() + "}" }
func (o Deref) String() string { return "[" + o.Of.String() + "]" }
func (o Index) String() string {
	parts := make([]string, len(o.Subs))
	for i, s := range o.Subs {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (o Size) String() string     { return fmt.Sprintf("size(%d)", o.Bytes) }
func (o Dims) String() string     { return fmt.Sprintf("dims(%d)", o.Count) }
func (o LabelRef) String() string { return strconv.Itoa(int(o.To)) }
func (m marker) String() string   { return m.name }

// TypeOf recovers the static type of op. Literals map to their fixed
// primitive types, with strings as one-dimensional character arrays; Ref and
// Deref add and remove one reference level. It assumes a well-typed program:
// dereferencing a non-reference, or querying a control marker or the
// Size/Dims/Index metadata, is a translator bug.
func TypeOf(op Operand) *types.Type {
	switch o := op.(type) {
	case Int:
		return types.TInt
	case Float:
		return types.TFloat
	case Char:
		return types.TChar
	case Bool:
		return types.TBool
	case Str:
		return types.NewArray(types.TChar, 1)
	case Entry:
		return o.Sym.Type
	case Ref:
		return types.NewRef(TypeOf(o.Of))
	case Deref:
		t := TypeOf(o.Of)
		if t.Kind != types.Ref {
			util.Bug("dereference of non-reference operand %s of type %s", op, t)
		}
		return t.Elem
	}
	util.Bug("operand %s has no static type", op)
	return nil
}

// Equal reports whether a and b name the same value or storage location.
// Literals, metadata and control markers compare structurally; entries
// compare by declared identity, so two lookups of one declaration match even
// across distinct records; Ref, Deref and Index recurse.
func Equal(a, b Operand) bool {
	switch x := a.(type) {
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case Char:
		y, ok := b.(Char)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case Entry:
		y, ok := b.(Entry)
		return ok && x.Sym.Same(y.Sym)
	case Ref:
		y, ok := b.(Ref)
		return ok && Equal(x.Of, y.Of)
	case Deref:
		y, ok := b.(Deref)
		return ok && Equal(x.Of, y.Of)
	case Index:
		y, ok := b.(Index)
		if !ok || len(x.Subs) != len(y.Subs) {
			return false
		}
		for i := range x.Subs {
			if !Equal(x.Subs[i], y.Subs[i]) {
				return false
			}
		}
		return true
	case Size:
		y, ok := b.(Size)
		return ok && x == y
	case Dims:
		y, ok := b.(Dims)
		return ok && x == y
	case LabelRef:
		y, ok := b.(LabelRef)
		return ok && x == y
	case marker:
		y, ok := b.(marker)
		return ok && x == y
	}
	return false
}
