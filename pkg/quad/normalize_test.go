package quad

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// burn consumes n labels so later quads get non-dense numbers.
func burn(b *Builder, n int) {
	for i := 0; i < n; i++ {
		b.Labels().New()
	}
}

// Generation order [5, 9, 2] with a jump from the first quad to the third
// must come out as [1, 2, 3] with the jump at 3.
func TestNormalizeDensifies(t *testing.T) {
	b, _, _ := newTestEnv(t, 64)

	burn(b, 1)
	q2 := b.Gen(OpAssign, Int{0}, Empty, Result) // label 2
	burn(b, 2)
	q5 := b.Gen(OpJump, Empty, Empty, Pending) // label 5
	burn(b, 3)
	q9 := b.Gen(OpAssign, Int{1}, Empty, Result) // label 9

	all := q5.Merge(q9).Merge(q2) // generation order for this unit: 5, 9, 2
	b.Backpatch(all, Single(5), 2)

	got := b.Normalize(all)
	if diff := cmp.Diff([]Label{1, 2, 3}, labelsOf(got)); diff != "" {
		t.Fatalf("labels not densified (-want +got):\n%s", diff)
	}
	ref, ok := got[0].Arg3.(LabelRef)
	if !ok || ref.To != 3 {
		t.Fatalf("jump target = %s, want 3", got[0].Arg3)
	}
	if !b.IsTarget(3) {
		t.Fatal("destination registry not remapped to the new label")
	}
	if b.IsTarget(2) {
		t.Fatal("stale destination label survived normalization")
	}
}

// Normalization is a pure relabeling: the jump relation over list positions
// must be identical before and after.
func TestNormalizePreservesJumpGraph(t *testing.T) {
	b, _, _ := newTestEnv(t, 64)

	burn(b, 3)
	head := b.Gen(OpLt, Int{1}, Int{2}, Pending)
	exit := b.Gen(OpJump, Empty, Empty, Pending)
	body := b.Gen(OpAssign, Int{1}, Empty, Result)
	back := b.Gen(OpJump, Empty, Empty, Pending)
	done := b.Gen(OpAssign, Int{0}, Empty, Result)

	all := head.Merge(exit).Merge(body).Merge(back).Merge(done)
	b.Backpatch(all, Single(head.Last()), body.Last())
	b.Backpatch(all, Single(back.Last()), head.Last())
	b.Backpatch(all, Single(exit.Last()), done.Last())

	jumpsByPosition := func(l List) map[int]int {
		pos := make(map[Label]int)
		for i, q := range l {
			pos[q.Label] = i
		}
		out := make(map[int]int)
		for i, q := range l {
			if ref, ok := q.Arg3.(LabelRef); ok {
				out[i] = pos[ref.To]
			}
		}
		return out
	}

	before := jumpsByPosition(all)
	got := b.Normalize(all)
	after := jumpsByPosition(got)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("jump graph changed under normalization (-before +after):\n%s", diff)
	}
	for i, q := range got {
		if q.Label != Label(i+1) {
			t.Fatalf("quad at position %d carries label %d", i, q.Label)
		}
	}
}

func TestNormalizeGuards(t *testing.T) {
	// Two quads claiming one label.
	b, _, _ := newTestEnv(t, 64)
	q := b.Gen(OpAssign, Int{1}, Empty, Result)
	dup := &Quad{Label: q.Last(), Op: OpAssign, Arg1: Int{2}, Arg2: Empty, Arg3: Result}
	wantBug(t, func() { b.Normalize(q.Merge(List{dup})) })

	// A jump to a label that never made it into the final list.
	b2, _, _ := newTestEnv(t, 64)
	jmp := b2.Gen(OpJump, Empty, Empty, Pending)
	gone := b2.Gen(OpAssign, Int{1}, Empty, Result)
	b2.Backpatch(jmp.Merge(gone), Single(jmp.Last()), gone.Last())
	wantBug(t, func() { b2.Normalize(jmp) })
}
