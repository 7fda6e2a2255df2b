package types

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Unit Kind = iota
	Int
	Char
	Bool
	Float
	Ref
	Array
	Func
	Variant
)

// Dim counts the dimensions of an array type. A dimension count can be left
// open ("alpha") while inference is still running; such a count matches any
// concrete one.
type Dim struct {
	Count   int
	Unknown bool
}

// Alpha is the not-yet-known dimension count.
var Alpha = Dim{Unknown: true}

func (d Dim) String() string {
	if d.Unknown {
		return "*"
	}
	return fmt.Sprintf("%d", d.Count)
}

// Type is the tagged type value the intermediate-code layer consumes. Only
// the fields relevant to a kind are populated.
type Type struct {
	Kind   Kind
	Elem   *Type   // Ref, Array
	Dim    Dim     // Array
	Params []*Type // Func
	Ret    *Type   // Func
	Name   string  // Variant
}

var (
	TUnit  = &Type{Kind: Unit}
	TInt   = &Type{Kind: Int}
	TChar  = &Type{Kind: Char}
	TBool  = &Type{Kind: Bool}
	TFloat = &Type{Kind: Float}
)

func NewRef(elem *Type) *Type { return &Type{Kind: Ref, Elem: elem} }

func NewArray(elem *Type, dims int) *Type {
	return &Type{Kind: Array, Elem: elem, Dim: Dim{Count: dims}}
}

// NewArrayAlpha builds an array type whose dimension count is still open.
func NewArrayAlpha(elem *Type) *Type {
	return &Type{Kind: Array, Elem: elem, Dim: Alpha}
}

func NewFunc(params []*Type, ret *Type) *Type {
	return &Type{Kind: Func, Params: params, Ret: ret}
}

func NewVariant(name string) *Type { return &Type{Kind: Variant, Name: name} }

func (t *Type) String() string {
	switch t.Kind {
	case Unit:
		return "unit"
	case Int:
		return "int"
	case Char:
		return "char"
	case Bool:
		return "bool"
	case Float:
		return "float"
	case Ref:
		return t.Elem.String() + " ref"
	case Array:
		return fmt.Sprintf("array [%s] of %s", t.Dim, t.Elem)
	case Func:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Ret)
	case Variant:
		return t.Name
	}
	return fmt.Sprintf("type(kind=%d)", t.Kind)
}

// Sizeof returns the storage size of a value of type t in bytes. References,
// arrays (runtime-dimensioned, heap-allocated), functions and variant values
// are pointer-sized; unit values carry no data at all.
func Sizeof(t *Type, wordSize int) int64 {
	switch t.Kind {
	case Unit:
		return 0
	case Char, Bool:
		return 1
	case Int:
		return int64(wordSize)
	case Float:
		return 8
	case Ref, Array, Func, Variant:
		return int64(wordSize)
	}
	return int64(wordSize)
}

// Equal is structural type equality. An alpha dimension count matches any
// count; everything else must agree exactly.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Ref:
		return Equal(a.Elem, b.Elem)
	case Array:
		if !a.Dim.Unknown && !b.Dim.Unknown && a.Dim.Count != b.Dim.Count {
			return false
		}
		return Equal(a.Elem, b.Elem)
	case Func:
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equal(a.Ret, b.Ret)
	case Variant:
		return a.Name == b.Name
	}
	return true
}
