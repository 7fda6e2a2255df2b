package main

import (
	"github.com/lyra-lang/lyc/pkg/config"
	"github.com/lyra-lang/lyc/pkg/quad"
	"github.com/lyra-lang/lyc/pkg/symbols"
	"github.com/lyra-lang/lyc/pkg/token"
	"github.com/lyra-lang/lyc/pkg/types"
)

// unit is one self-contained compilation run: fresh config, symbol table and
// builder, the way a driver would set them up per translation.
type unit struct {
	cfg *config.Config
	tab *symbols.Table
	b   *quad.Builder
}

func newUnit() *unit {
	cfg := config.Default()
	tab := symbols.NewTable(cfg)
	return &unit{cfg: cfg, tab: tab, b: quad.NewBuilder(cfg, tab)}
}

// Each scenario hand-threads the translation of one small program the way
// the AST traversal would, and returns the finished, normalized quad list.
var scenarios = map[string]func(*unit) quad.List{
	"cond-assign": condAssign,
	"loop-count":  loopCount,
	"array-cell":  arrayCell,
	"call-result": callResult,
	"short-and":   shortAnd,
	"renumber":    renumber,
}

func entry(e *symbols.Entry) quad.Operand { return quad.Entry{Sym: e} }

// if a < b then x := 1 else x := 2
func condAssign(u *unit) quad.List {
	fn := u.tab.NewFunction("main", types.NewFunc(nil, types.TUnit))
	u.tab.OpenScope()
	defer u.tab.CloseScope()
	a := entry(u.tab.NewVariable("a", types.TInt, fn))
	b := entry(u.tab.NewVariable("b", types.TInt, fn))
	x := entry(u.tab.NewVariable("x", types.TInt, fn))

	all := u.b.Gen(quad.OpUnit, entry(fn), quad.Empty, quad.Empty)

	cmpQ := u.b.Gen(quad.BinOp(token.Lt), a, b, quad.Pending)
	cond := quad.CondResult{True: quad.Single(cmpQ.Last())}
	jmp := u.b.Gen(quad.OpJump, quad.Empty, quad.Empty, quad.Pending)
	cond.False = cond.False.Merge(quad.Single(jmp.Last()))
	all = all.Merge(cmpQ).Merge(jmp)

	then := u.b.Gen(quad.OpAssign, quad.Int{Value: 1}, quad.Empty, x)
	all = all.Merge(then)
	u.b.Backpatch(all, cond.True, then.Last())

	exit := u.b.Gen(quad.OpJump, quad.Empty, quad.Empty, quad.Pending)
	all = all.Merge(exit)

	els := u.b.Gen(quad.OpAssign, quad.Int{Value: 2}, quad.Empty, x)
	all = all.Merge(els)
	u.b.Backpatch(all, cond.False, els.Last())

	stmt := quad.StmtResult{Next: quad.Single(exit.Last())}
	endu := u.b.Gen(quad.OpEndu, entry(fn), quad.Empty, quad.Empty)
	all = all.Merge(endu)
	u.b.Backpatch(all, stmt.Next, endu.Last())
	return u.b.Normalize(all)
}

// i := 0; while i < n do i := i + 1
func loopCount(u *unit) quad.List {
	fn := u.tab.NewFunction("loop", types.NewFunc(nil, types.TUnit))
	u.tab.OpenScope()
	defer u.tab.CloseScope()
	i := entry(u.tab.NewVariable("i", types.TInt, fn))
	n := entry(u.tab.NewVariable("n", types.TInt, fn))

	all := u.b.Gen(quad.OpUnit, entry(fn), quad.Empty, quad.Empty).
		Merge(u.b.Gen(quad.OpAssign, quad.Int{Value: 0}, quad.Empty, i))

	head := u.b.Gen(quad.BinOp(token.Lt), i, n, quad.Pending)
	cond := quad.CondResult{True: quad.Single(head.Last())}
	exit := u.b.Gen(quad.OpJump, quad.Empty, quad.Empty, quad.Pending)
	cond.False = cond.False.Merge(quad.Single(exit.Last()))
	all = all.Merge(head).Merge(exit)

	t := u.b.NewTemp(types.TInt, fn, false)
	body := u.b.Gen(quad.BinOp(token.Plus), i, quad.Int{Value: 1}, t).
		Merge(u.b.Gen(quad.OpAssign, t, quad.Empty, i))
	all = all.Merge(body)
	u.b.Backpatch(all, cond.True, body[0].Label)

	back := u.b.Gen(quad.OpJump, quad.Empty, quad.Empty, quad.Pending)
	all = all.Merge(back)
	u.b.Backpatch(all, quad.Single(back.Last()), head.Last())
	u.b.FreeTemp(t, fn)

	endu := u.b.Gen(quad.OpEndu, entry(fn), quad.Empty, quad.Empty)
	all = all.Merge(endu)
	u.b.Backpatch(all, cond.False, endu.Last())
	return u.b.Normalize(all)
}

// t := a[i, j]; n := dim 1 of a
func arrayCell(u *unit) quad.List {
	fn := u.tab.NewFunction("cell", types.NewFunc(nil, types.TUnit))
	u.tab.OpenScope()
	defer u.tab.CloseScope()
	elem := types.TFloat
	a := entry(u.tab.NewVariable("a", types.NewArray(elem, 2), fn))
	i := entry(u.tab.NewVariable("i", types.TInt, fn))
	j := entry(u.tab.NewVariable("j", types.TInt, fn))
	t := entry(u.tab.NewVariable("t", elem, fn))
	n := entry(u.tab.NewVariable("n", types.TInt, fn))

	all := u.b.Gen(quad.OpUnit, entry(fn), quad.Empty, quad.Empty)

	addr := u.b.NewTemp(types.NewRef(elem), fn, false)
	all = all.Merge(u.b.Gen(quad.OpPar, quad.Size{Bytes: u.b.Sizeof(elem)}, quad.Dims{Count: 2}, quad.Empty)).
		Merge(u.b.Gen(quad.OpArray, a, quad.Index{Subs: []quad.Operand{i, j}}, addr)).
		Merge(u.b.Gen(quad.OpAssign, quad.Deref{Of: addr}, quad.Empty, t))

	length := u.b.NewTemp(types.TInt, fn, false)
	all = all.Merge(u.b.Gen(quad.OpDim, a, quad.Int{Value: 1}, length)).
		Merge(u.b.Gen(quad.OpAssign, length, quad.Empty, n)).
		Merge(u.b.Gen(quad.OpEndu, entry(fn), quad.Empty, quad.Empty))
	return u.b.Normalize(all)
}

// fun double x = x * 2; r := double 3
func callResult(u *unit) quad.List {
	ft := types.NewFunc([]*types.Type{types.TInt}, types.TInt)
	double := u.tab.NewFunction("double", ft)
	u.tab.OpenScope()
	x := entry(u.tab.NewParameter("x", types.TInt, symbols.ByValue, double))

	t := u.b.NewTemp(types.TInt, double, false)
	all := u.b.Gen(quad.OpUnit, entry(double), quad.Empty, quad.Empty).
		Merge(u.b.Gen(quad.BinOp(token.Star), x, quad.Int{Value: 2}, t)).
		Merge(u.b.Gen(quad.OpRetV, t, quad.Empty, quad.Empty)).
		Merge(u.b.Gen(quad.OpRet, quad.Empty, quad.Empty, quad.Empty)).
		Merge(u.b.Gen(quad.OpEndu, entry(double), quad.Empty, quad.Empty))
	u.tab.CloseScope()

	main := u.tab.NewFunction("main", types.NewFunc(nil, types.TUnit))
	u.tab.OpenScope()
	defer u.tab.CloseScope()
	r := entry(u.tab.NewVariable("r", types.TInt, main))

	// The value of `double 3` lands in the implicit result slot.
	call := quad.ExprResult{Place: quad.Result}
	all = all.Merge(u.b.Gen(quad.OpUnit, entry(main), quad.Empty, quad.Empty)).
		Merge(u.b.Gen(quad.OpPar, quad.Int{Value: 3}, quad.ByValue, quad.Empty)).
		Merge(u.b.Gen(quad.OpCall, quad.Empty, quad.Empty, entry(double))).
		Merge(u.b.Gen(quad.OpAssign, call.Place, quad.Empty, r)).
		Merge(u.b.Gen(quad.OpEndu, entry(main), quad.Empty, quad.Empty))
	return u.b.Normalize(all)
}

// if a < b and b < c then ok := true else ok := false
func shortAnd(u *unit) quad.List {
	fn := u.tab.NewFunction("both", types.NewFunc(nil, types.TUnit))
	u.tab.OpenScope()
	defer u.tab.CloseScope()
	a := entry(u.tab.NewVariable("a", types.TInt, fn))
	b := entry(u.tab.NewVariable("b", types.TInt, fn))
	c := entry(u.tab.NewVariable("c", types.TInt, fn))
	ok := entry(u.tab.NewVariable("ok", types.TBool, fn))

	all := u.b.Gen(quad.OpUnit, entry(fn), quad.Empty, quad.Empty)

	// left operand of `and`
	lt1 := u.b.Gen(quad.BinOp(token.Lt), a, b, quad.Pending)
	left := quad.CondResult{True: quad.Single(lt1.Last())}
	jmp1 := u.b.Gen(quad.OpJump, quad.Empty, quad.Empty, quad.Pending)
	left.False = left.False.Merge(quad.Single(jmp1.Last()))
	all = all.Merge(lt1).Merge(jmp1)

	// `and` short-circuits: the right operand starts where left is true
	lt2 := u.b.Gen(quad.BinOp(token.Lt), b, c, quad.Pending)
	all = all.Merge(lt2)
	u.b.Backpatch(all, left.True, lt2.Last())
	right := quad.CondResult{True: quad.Single(lt2.Last())}
	jmp2 := u.b.Gen(quad.OpJump, quad.Empty, quad.Empty, quad.Pending)
	right.False = right.False.Merge(quad.Single(jmp2.Last()))
	all = all.Merge(jmp2)

	cond := quad.CondResult{True: right.True, False: left.False.Merge(right.False)}

	then := u.b.Gen(quad.OpAssign, quad.Bool{Value: true}, quad.Empty, ok)
	all = all.Merge(then)
	u.b.Backpatch(all, cond.True, then.Last())

	exit := u.b.Gen(quad.OpJump, quad.Empty, quad.Empty, quad.Pending)
	all = all.Merge(exit)

	els := u.b.Gen(quad.OpAssign, quad.Bool{Value: false}, quad.Empty, ok)
	all = all.Merge(els)
	u.b.Backpatch(all, cond.False, els.Last())

	endu := u.b.Gen(quad.OpEndu, entry(fn), quad.Empty, quad.Empty)
	all = all.Merge(endu)
	u.b.Backpatch(all, quad.Single(exit.Last()), endu.Last())
	return u.b.Normalize(all)
}

// The cond-assign shape again, but with labels burned up front so the
// normalizer has real renumbering to do.
func renumber(u *unit) quad.List {
	for i := 0; i < 3; i++ {
		u.b.Labels().New()
	}
	fn := u.tab.NewFunction("renumber", types.NewFunc(nil, types.TUnit))
	u.tab.OpenScope()
	defer u.tab.CloseScope()
	a := entry(u.tab.NewVariable("a", types.TInt, fn))
	b := entry(u.tab.NewVariable("b", types.TInt, fn))
	x := entry(u.tab.NewVariable("x", types.TInt, fn))

	all := u.b.Gen(quad.OpUnit, entry(fn), quad.Empty, quad.Empty)
	cmpQ := u.b.Gen(quad.BinOp(token.Lt), a, b, quad.Pending)
	jmp := u.b.Gen(quad.OpJump, quad.Empty, quad.Empty, quad.Pending)
	all = all.Merge(cmpQ).Merge(jmp)

	then := u.b.Gen(quad.OpAssign, quad.Int{Value: 1}, quad.Empty, x)
	all = all.Merge(then)
	u.b.Backpatch(all, quad.Single(cmpQ.Last()), then.Last())

	exit := u.b.Gen(quad.OpJump, quad.Empty, quad.Empty, quad.Pending)
	all = all.Merge(exit)

	els := u.b.Gen(quad.OpAssign, quad.Int{Value: 2}, quad.Empty, x)
	all = all.Merge(els)
	u.b.Backpatch(all, quad.Single(jmp.Last()), els.Last())

	endu := u.b.Gen(quad.OpEndu, entry(fn), quad.Empty, quad.Empty)
	all = all.Merge(endu)
	u.b.Backpatch(all, quad.Single(exit.Last()), endu.Last())
	return u.b.Normalize(all)
}
