package symbols

import (
	"github.com/lyra-lang/lyc/pkg/config"
	"github.com/lyra-lang/lyc/pkg/types"
	"github.com/lyra-lang/lyc/pkg/util"
)

type Kind int

const (
	KindVariable Kind = iota
	KindParameter
	KindFunction
	KindConstructor
	KindTemporary
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindFunction:
		return "function"
	case KindConstructor:
		return "constructor"
	case KindTemporary:
		return "temporary"
	}
	util.Bug("unexpected symbol entry kind %d", int(k))
	return ""
}

// PassMode is how a parameter is handed to its function.
type PassMode int

const (
	ByValue PassMode = iota
	ByReference
)

// Entry is one symbol-table record. The table owns its entries; everything
// else (quad operands included) holds non-owning references.
type Entry struct {
	Name  string
	Kind  Kind
	Type  *types.Type
	Scope *Scope
	Next  *Entry // next entry in the same scope

	// Frame layout. Parameters sit at positive offsets from the frame base,
	// locals and temporaries at negative ones.
	Offset int64
	Mode   PassMode // parameters

	TempIndex int    // temporaries: process-wide allocation index
	NoReuse   bool   // temporaries: keep the slot pinned, do not recycle it
	Owner     *Entry // temporaries: the function whose frame holds the slot

	Locals    int64 // functions: accumulated size of locals and temporaries
	ParamSize int64 // functions: accumulated size of the parameter area

	// id is the declaration-site identity. Two records carrying the same id
	// name the same declared symbol no matter where they were materialized.
	id int
}

// Same reports whether e and o name the same declared symbol. This is the
// scope-aware equality operand comparison delegates to: it holds across
// distinct in-memory records produced by separate lookups.
func (e *Entry) Same(o *Entry) bool {
	return e != nil && o != nil && e.id == o.id
}

type Scope struct {
	Parent  *Scope
	Depth   int
	entries *Entry
}

// Table is a scoped symbol table. One Table per compilation run.
type Table struct {
	cfg     *config.Config
	current *Scope
	nextID  int
}

func NewTable(cfg *config.Config) *Table {
	return &Table{cfg: cfg, current: &Scope{}, nextID: 1}
}

func (t *Table) CurrentScope() *Scope { return t.current }

func (t *Table) OpenScope() *Scope {
	t.current = &Scope{Parent: t.current, Depth: t.current.Depth + 1}
	return t.current
}

func (t *Table) CloseScope() {
	if t.current.Parent == nil {
		util.Bug("close of the global scope")
	}
	t.current = t.current.Parent
}

func (t *Table) insert(name string, kind Kind, typ *types.Type) *Entry {
	e := &Entry{
		Name:  name,
		Kind:  kind,
		Type:  typ,
		Scope: t.current,
		Next:  t.current.entries,
		id:    t.nextID,
	}
	t.nextID++
	t.current.entries = e
	return e
}

// NewVariable declares a local variable charged to fn's frame. Its slot sits
// below everything fn has already allocated.
func (t *Table) NewVariable(name string, typ *types.Type, fn *Entry) *Entry {
	if fn.Kind != KindFunction {
		util.Bug("variable %q declared in frame of non-function %s %q", name, fn.Kind, fn.Name)
	}
	fn.Locals += types.Sizeof(typ, t.cfg.WordSize)
	e := t.insert(name, KindVariable, typ)
	e.Offset = -fn.Locals
	return e
}

// NewParameter declares a parameter of fn. Parameters live above the frame
// base, past the saved frame pointer and return address, each slot padded to
// a word multiple. By-reference parameters occupy one pointer.
func (t *Table) NewParameter(name string, typ *types.Type, mode PassMode, fn *Entry) *Entry {
	if fn.Kind != KindFunction {
		util.Bug("parameter %q declared on non-function %s %q", name, fn.Kind, fn.Name)
	}
	word := int64(t.cfg.WordSize)
	size := word
	if mode == ByValue {
		size = types.Sizeof(typ, t.cfg.WordSize)
		if r := size % word; r != 0 {
			size += word - r
		}
	}
	e := t.insert(name, KindParameter, typ)
	e.Mode = mode
	e.Offset = 2*word + fn.ParamSize
	fn.ParamSize += size
	return e
}

func (t *Table) NewFunction(name string, typ *types.Type) *Entry {
	return t.insert(name, KindFunction, typ)
}

// NewConstructor declares a constructor of a user-defined variant type.
func (t *Table) NewConstructor(name string, typ *types.Type) *Entry {
	return t.insert(name, KindConstructor, typ)
}

// NewTemp registers a compiler-introduced temporary in the current scope and
// charges its storage to fn's frame. The caller supplies the synthesized
// name and the allocation index; the table does the layout arithmetic.
func (t *Table) NewTemp(name string, typ *types.Type, fn *Entry, index int, noReuse bool) *Entry {
	if fn.Kind != KindFunction {
		util.Bug("temporary %q allocated in frame of non-function %s %q", name, fn.Kind, fn.Name)
	}
	fn.Locals += types.Sizeof(typ, t.cfg.WordSize)
	e := t.insert(name, KindTemporary, typ)
	e.Offset = -fn.Locals
	e.TempIndex = index
	e.NoReuse = noReuse
	e.Owner = fn
	return e
}

// Lookup resolves name against the innermost scope that declares it.
func (t *Table) Lookup(name string) *Entry {
	for s := t.current; s != nil; s = s.Parent {
		for e := s.entries; e != nil; e = e.Next {
			if e.Name == name {
				return e
			}
		}
	}
	return nil
}

// Remove deregisters e from the scope that holds it. Removing an entry the
// table does not hold is a translator bug.
func (t *Table) Remove(e *Entry) {
	s := e.Scope
	if s == nil {
		util.Bug("removal of unregistered symbol %q", e.Name)
	}
	if s.entries == e {
		s.entries = e.Next
		e.Scope = nil
		return
	}
	for p := s.entries; p != nil; p = p.Next {
		if p.Next == e {
			p.Next = e.Next
			e.Scope = nil
			return
		}
	}
	util.Bug("removal of symbol %q absent from its scope", e.Name)
}
