package quad

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes one line per quad, "label: op, arg1, arg2, arg3", in list
// order. A blank line follows endu so consecutive units stay visually
// separate. The output is deterministic for a given input and is the golden
// surface the tests compare against.
func Dump(w io.Writer, all List) {
	for _, q := range all {
		fmt.Fprintf(w, "%d: %s, %s, %s, %s\n", q.Label, q.Op, q.Arg1, q.Arg2, q.Arg3)
		if q.Op == OpEndu {
			fmt.Fprintln(w)
		}
	}
}

func (l List) String() string {
	var sb strings.Builder
	Dump(&sb, l)
	return sb.String()
}
