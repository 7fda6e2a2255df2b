package quad

import (
	"testing"

	"github.com/lyra-lang/lyc/pkg/symbols"
	"github.com/lyra-lang/lyc/pkg/types"
)

func TestTempOffsetsGrowDownward(t *testing.T) {
	// 32-bit words so int is 4 bytes and float is 8.
	b, _, fn := newTestEnv(t, 32)

	t1 := b.NewTemp(types.TInt, fn, false).(Entry).Sym
	t2 := b.NewTemp(types.TFloat, fn, false).(Entry).Sym

	if t1.Offset != -4 {
		t.Fatalf("first temp offset = %d, want -4", t1.Offset)
	}
	if t2.Offset != -12 {
		t.Fatalf("second temp offset = %d, want -12", t2.Offset)
	}
	if fn.Locals != 12 {
		t.Fatalf("frame size = %d, want 12", fn.Locals)
	}

	prev := t2.Offset
	var total int64 = 12
	for i := 0; i < 8; i++ {
		e := b.NewTemp(types.TInt, fn, false).(Entry).Sym
		if e.Offset >= prev {
			t.Fatalf("temp offset %d not below previous %d", e.Offset, prev)
		}
		prev = e.Offset
		total += 4
	}
	if fn.Locals != total {
		t.Fatalf("frame size = %d, want %d", fn.Locals, total)
	}
}

func TestTempNamesAndIndices(t *testing.T) {
	b, tab, fn := newTestEnv(t, 64)

	t1 := b.NewTemp(types.TInt, fn, false).(Entry).Sym
	t2 := b.NewTemp(types.TInt, fn, true).(Entry).Sym

	if t1.Name != "$1" || t2.Name != "$2" {
		t.Fatalf("temp names = %q, %q; want $1, $2", t1.Name, t2.Name)
	}
	if t1.TempIndex == t2.TempIndex {
		t.Fatal("temp indices collide")
	}
	if t1.NoReuse || !t2.NoReuse {
		t.Fatal("reuse hint not recorded as given")
	}
	if t1.Kind != symbols.KindTemporary {
		t.Fatalf("temp kind = %s, want temporary", t1.Kind)
	}
	if tab.Lookup("$1") != t1 {
		t.Fatal("temp not registered in the symbol table")
	}
}

func TestFreeTemp(t *testing.T) {
	b, tab, fn := newTestEnv(t, 64)

	op := b.NewTemp(types.TInt, fn, false)
	b.FreeTemp(op, fn)
	if tab.Lookup("$1") != nil {
		t.Fatal("freed temp still registered")
	}

	// Offsets are not compacted by a release.
	next := b.NewTemp(types.TInt, fn, false).(Entry).Sym
	if next.Offset != -16 {
		t.Fatalf("offset after release = %d, want -16", next.Offset)
	}
}

func TestFreeTempGuards(t *testing.T) {
	b, tab, fn := newTestEnv(t, 64)

	v := tab.NewVariable("v", types.TInt, fn)
	wantBug(t, func() { b.FreeTemp(Entry{Sym: v}, fn) })
	wantBug(t, func() { b.FreeTemp(Int{3}, fn) })

	other := tab.NewFunction("g", types.NewFunc(nil, types.TUnit))
	op := b.NewTemp(types.TInt, fn, false)
	wantBug(t, func() { b.FreeTemp(op, other) })
}
