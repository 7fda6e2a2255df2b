package quad

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lyra-lang/lyc/pkg/types"
)

func TestDumpFormat(t *testing.T) {
	b, tab, fn := newTestEnv(t, 64)
	x := Entry{Sym: tab.NewVariable("x", types.TInt, fn)}
	f := Entry{Sym: fn}

	unit := b.Gen(OpUnit, f, Empty, Empty)
	cmpQ := b.Gen(OpLt, x, Int{10}, Pending)
	asgn := b.Gen(OpAssign, Int{1}, Empty, x)
	endu := b.Gen(OpEndu, f, Empty, Empty)

	all := unit.Merge(cmpQ).Merge(asgn).Merge(endu)
	b.Backpatch(all, Single(cmpQ.Last()), endu.Last())
	all = b.Normalize(all)

	want := strings.Join([]string{
		"1: unit, f, -, -",
		"2: <, x, 10, 4",
		"3: :=, 1, -, x",
		"4: endu, f, -, -",
		"", // endu is followed by a blank line
		"",
	}, "\n")
	if diff := cmp.Diff(want, all.String()); diff != "" {
		t.Fatalf("dump mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpDeterministic(t *testing.T) {
	build := func() string {
		b, tab, fn := newTestEnv(t, 64)
		a := Entry{Sym: tab.NewVariable("a", types.NewArray(types.TFloat, 2), fn)}
		addr := b.NewTemp(types.NewRef(types.TFloat), fn, false)

		all := b.Gen(OpPar, Size{8}, Dims{2}, Empty).
			Merge(b.Gen(OpArray, a, Index{Subs: []Operand{Int{0}, Int{1}}}, addr)).
			Merge(b.Gen(OpRetV, Deref{Of: addr}, Empty, Empty)).
			Merge(b.Gen(OpRet, Empty, Empty, Empty))
		return b.Normalize(all).String()
	}
	first := build()
	if first != build() {
		t.Fatal("identical input produced different dumps")
	}
	want := strings.Join([]string{
		"1: par, size(8), dims(2), -",
		"2: array, a, [0, 1], $1",
		"3: retv, [$1], -, -",
		"4: ret, -, -, -",
		"",
	}, "\n")
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("dump mismatch (-want +got):\n%s", diff)
	}
}
