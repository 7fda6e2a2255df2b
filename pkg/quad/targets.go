package quad

import "errors"

// ErrEmptyList is returned when the first element of an empty target list is
// requested. Callers that probe IsEmpty first never see it; callers that do
// not may treat it like any other translator fault.
var ErrEmptyList = errors.New("quad: empty target list")

// TargetList is an ordered collection of labels naming quads whose jump
// target is not known yet. Translation threads these lists out of
// expressions, conditions and statements until Backpatch resolves them.
//
// It is a persistent value: Prepend and Merge build new lists and never
// touch their inputs, so fragments from independently translated
// subexpressions can be combined freely.
type TargetList struct {
	head *targetNode
}

type targetNode struct {
	label Label
	next  *targetNode
}

// Single returns a list holding just l.
func Single(l Label) TargetList {
	return TargetList{head: &targetNode{label: l}}
}

func (t TargetList) IsEmpty() bool { return t.head == nil }

func (t TargetList) Prepend(l Label) TargetList {
	return TargetList{head: &targetNode{label: l, next: t.head}}
}

// Head returns the first label without removing it.
func (t TargetList) Head() (Label, error) {
	if t.head == nil {
		return 0, ErrEmptyList
	}
	return t.head.label, nil
}

// RemoveFirst returns the list without its first label.
func (t TargetList) RemoveFirst() (TargetList, error) {
	if t.head == nil {
		return TargetList{}, ErrEmptyList
	}
	return TargetList{head: t.head.next}, nil
}

// Merge concatenates t and u, keeping every entry of both; entries are never
// deduplicated since each is patched independently. Cost is proportional to
// the length of t.
func (t TargetList) Merge(u TargetList) TargetList {
	if t.head == nil {
		return u
	}
	if u.head == nil {
		return t
	}
	var first, last *targetNode
	for n := t.head; n != nil; n = n.next {
		c := &targetNode{label: n.label}
		if last == nil {
			first = c
		} else {
			last.next = c
		}
		last = c
	}
	last.next = u.head
	return TargetList{head: first}
}

func (t TargetList) Len() int {
	n := 0
	for c := t.head; c != nil; c = c.next {
		n++
	}
	return n
}

// Labels returns the contents in list order.
func (t TargetList) Labels() []Label {
	var out []Label
	for c := t.head; c != nil; c = c.next {
		out = append(out, c.label)
	}
	return out
}
