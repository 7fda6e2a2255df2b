package quad

import (
	"fmt"

	"github.com/lyra-lang/lyc/pkg/config"
	"github.com/lyra-lang/lyc/pkg/symbols"
	"github.com/lyra-lang/lyc/pkg/types"
	"github.com/lyra-lang/lyc/pkg/util"
)

// Builder owns the mutable state of one translation run: the label
// generator, the backpatch-destination registry, the temporary counter and
// the symbol table the temporaries are registered in. Construct one per run
// and drive it from a single traversal; nothing here is safe to share
// between concurrent traversal branches.
type Builder struct {
	cfg   *config.Config
	gen   *LabelGen
	tab   *symbols.Table
	temps int
	dests map[Label]bool
}

func NewBuilder(cfg *config.Config, tab *symbols.Table) *Builder {
	return &Builder{
		cfg:   cfg,
		gen:   NewLabelGen(),
		tab:   tab,
		dests: make(map[Label]bool),
	}
}

// Labels exposes the run's label generator.
func (b *Builder) Labels() *LabelGen { return b.gen }

// Gen emits one quad under a fresh label and returns it as a singleton list,
// ready to be merged after fragments translated earlier.
func (b *Builder) Gen(op Op, a1, a2, a3 Operand) List {
	return List{&Quad{Label: b.gen.New(), Op: op, Arg1: a1, Arg2: a2, Arg3: a3}}
}

// Sizeof is types.Sizeof under the run's word size; array-handling quads use
// it to build their Size operands.
func (b *Builder) Sizeof(t *types.Type) int64 {
	return types.Sizeof(t, b.cfg.WordSize)
}

// NewTemp allocates a compiler temporary of type t in fn's frame and returns
// it as an operand. The slot lands below everything fn has already
// allocated, so offsets strictly decrease in allocation order. noReuse asks
// later passes to keep the slot pinned instead of recycling it. The name is
// synthesized with a '$' prefix, which no user identifier can carry.
func (b *Builder) NewTemp(t *types.Type, fn *symbols.Entry, noReuse bool) Operand {
	b.temps++
	name := fmt.Sprintf("$%d", b.temps)
	return Entry{Sym: b.tab.NewTemp(name, t, fn, b.temps, noReuse)}
}

// FreeTemp releases a temporary previously handed out by NewTemp for fn.
// Offsets already assigned are not compacted; any reuse policy belongs to
// the caller. Releasing anything that is not a live temporary of fn is a
// translator bug.
func (b *Builder) FreeTemp(op Operand, fn *symbols.Entry) {
	e, ok := op.(Entry)
	if !ok || e.Sym == nil || e.Sym.Kind != symbols.KindTemporary {
		util.Bug("release of non-temporary operand %s", op)
	}
	if !e.Sym.Owner.Same(fn) {
		util.Bug("release of temporary %s against the wrong frame (%s, allocated in %s)",
			e.Sym.Name, fn.Name, e.Sym.Owner.Name)
	}
	b.tab.Remove(e.Sym)
}
