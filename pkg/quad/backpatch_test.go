package quad

import (
	"testing"

	"github.com/lyra-lang/lyc/pkg/types"
)

// The canonical conditional: if a < b then x := 1 else x := 2. The
// comparison and the fall-through jump both start out pending and must end
// up on the first quads of the two branches.
func TestBackpatchConditional(t *testing.T) {
	b, tab, fn := newTestEnv(t, 64)
	a := Entry{Sym: tab.NewVariable("a", types.TInt, fn)}
	bb := Entry{Sym: tab.NewVariable("b", types.TInt, fn)}
	x := Entry{Sym: tab.NewVariable("x", types.TInt, fn)}

	cmpQ := b.Gen(OpLt, a, bb, Pending)
	cond := CondResult{True: Single(cmpQ.Last()), False: TargetList{}}
	jmpQ := b.Gen(OpJump, Empty, Empty, Pending)
	cond.False = cond.False.Merge(Single(jmpQ.Last()))

	thenQ := b.Gen(OpAssign, Int{1}, Empty, x)
	elseQ := b.Gen(OpAssign, Int{2}, Empty, x)

	all := cmpQ.Merge(jmpQ).Merge(thenQ).Merge(elseQ)
	b.Backpatch(all, cond.True, thenQ.Last())
	b.Backpatch(all, cond.False, elseQ.Last())

	gotTrue, ok := all[0].Arg3.(LabelRef)
	if !ok {
		t.Fatalf("comparison target still %s after backpatch", all[0].Arg3)
	}
	gotFalse, ok := all[1].Arg3.(LabelRef)
	if !ok {
		t.Fatalf("jump target still %s after backpatch", all[1].Arg3)
	}
	if gotTrue.To != thenQ.Last() || gotFalse.To != elseQ.Last() {
		t.Fatalf("targets = %d, %d; want %d, %d", gotTrue.To, gotFalse.To, thenQ.Last(), elseQ.Last())
	}
	if gotTrue.To == gotFalse.To {
		t.Fatal("true and false branches resolved to the same quad")
	}
	for _, q := range all {
		if Equal(q.Arg3, Pending) {
			t.Fatalf("quad %d left pending", q.Label)
		}
	}
	if !b.IsTarget(thenQ.Last()) || !b.IsTarget(elseQ.Last()) {
		t.Fatal("branch heads not registered as jump destinations")
	}
}

func TestBackpatchFrozenSlots(t *testing.T) {
	b, _, _ := newTestEnv(t, 64)

	q := b.Gen(OpLt, Int{1}, Int{2}, Pending)
	dst := b.Gen(OpAssign, Int{0}, Empty, Result)
	all := q.Merge(dst)
	b.Backpatch(all, Single(q.Last()), dst.Last())

	// Op, Arg1 and Arg2 never change; only Arg3 moved, exactly once.
	if all[0].Op != OpLt || !Equal(all[0].Arg1, Int{1}) || !Equal(all[0].Arg2, Int{2}) {
		t.Fatalf("backpatch touched a frozen slot: %s", all[:1])
	}
	wantBug(t, func() { b.Backpatch(all, Single(q.Last()), dst.Last()) })
}

func TestBackpatchEmptyTargetsIsNoop(t *testing.T) {
	b, _, _ := newTestEnv(t, 64)

	all := b.Gen(OpAssign, Int{1}, Empty, Result)
	b.Backpatch(all, TargetList{}, all.Last())
	if b.IsTarget(all.Last()) {
		t.Fatal("empty backpatch registered a destination")
	}
}

func TestBackpatchUnknownLabel(t *testing.T) {
	b, _, _ := newTestEnv(t, 64)

	all := b.Gen(OpJump, Empty, Empty, Pending)
	wantBug(t, func() { b.Backpatch(all, Single(99), all.Last()) })
}
