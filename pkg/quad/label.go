package quad

// Label numbers one generated quad. Labels are strictly increasing and
// unique within one compilation run; no two quads ever share one.
type Label int

// LabelGen hands out labels. Construct one per compilation run and thread it
// through the translation context; there is no reset.
type LabelGen struct {
	last Label
}

func NewLabelGen() *LabelGen { return &LabelGen{} }

// New consumes and returns the next label.
func (g *LabelGen) New() Label {
	g.last++
	return g.last
}

// Next reports the label New would return, without consuming it. The
// normalizer uses it to pre-size its renumbering table before the final
// label count is known.
func (g *LabelGen) Next() Label { return g.last + 1 }
