package quad

import "github.com/lyra-lang/lyc/pkg/util"

// Backpatch resolves every quad named by targets to jump to dest and, when
// targets is non-empty, records dest as a live jump destination. Each label
// in a target list is patched exactly once over the run: a label missing
// from all, or a slot that is no longer Pending, means the traversal emitted
// or consumed a fragment out of order, which is a translator bug.
func (b *Builder) Backpatch(all List, targets TargetList, dest Label) {
	if targets.IsEmpty() {
		return
	}
	b.dests[dest] = true
	for n := targets.head; n != nil; n = n.next {
		q := findQuad(all, n.label)
		if q == nil {
			util.Bug("backpatch of label %d, which names no quad in the instruction list", n.label)
		}
		if q.Arg3 != Pending {
			util.Bug("backpatch of quad %d whose target is already %s", q.Label, q.Arg3)
		}
		q.Arg3 = LabelRef{To: dest}
	}
}

// IsTarget reports whether l has been the destination of a backpatch, i.e.
// whether some instruction actually jumps there.
func (b *Builder) IsTarget(l Label) bool { return b.dests[l] }

func findQuad(all List, l Label) *Quad {
	for _, q := range all {
		if q.Label == l {
			return q
		}
	}
	return nil
}
