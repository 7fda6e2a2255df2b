package quad

import "github.com/lyra-lang/lyc/pkg/util"

// Normalize renumbers the finished instruction list to the dense range
// 1..len(all) in list order, rewrites every resolved jump target through the
// same mapping, and remaps the destination registry so IsTarget keeps
// answering for the new labels. The jump graph is unchanged; only the
// numbering is densified.
//
// It must run exactly once, after all backpatching: pending target lists
// reference original labels and would be silently corrupted by an early run.
func (b *Builder) Normalize(all List) List {
	remap := make([]Label, b.gen.Next())
	for i, q := range all {
		if q.Label <= 0 || int(q.Label) >= len(remap) {
			util.Bug("normalize saw quad label %d outside the generated range", q.Label)
		}
		if remap[q.Label] != 0 {
			util.Bug("normalize saw label %d on two quads", q.Label)
		}
		remap[q.Label] = Label(i + 1)
	}
	for _, q := range all {
		q.Label = remap[q.Label]
		if ref, ok := q.Arg3.(LabelRef); ok {
			to := remap[ref.To]
			if to == 0 {
				util.Bug("jump to label %d, which names no quad in the instruction list", ref.To)
			}
			q.Arg3 = LabelRef{To: to}
		}
	}
	dests := make(map[Label]bool, len(b.dests))
	for l := range b.dests {
		nl := remap[l]
		if nl == 0 {
			util.Bug("registered jump destination %d names no quad in the instruction list", l)
		}
		dests[nl] = true
	}
	b.dests = dests
	return all
}
