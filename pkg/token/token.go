package token

type Type int

const (
	EOF Type = iota
	Ident
	Number
	FloatNumber
	CharConst
	String

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // mod
	Pow     // **
	Eq      // =
	Neq     // <>
	Lt      // <
	Gt      // >
	Le      // <=
	Ge      // >=
	Assign  // :=
	And     // &&
	Or      // ||
	Not     // not
	Bang    // ! (dereference)
	Semi    // ;
)

var typeNames = [...]string{
	EOF:         "EOF",
	Ident:       "identifier",
	Number:      "number",
	FloatNumber: "float number",
	CharConst:   "char constant",
	String:      "string",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "mod",
	Pow:         "**",
	Eq:          "=",
	Neq:         "<>",
	Lt:          "<",
	Gt:          ">",
	Le:          "<=",
	Ge:          ">=",
	Assign:      ":=",
	And:         "&&",
	Or:          "||",
	Not:         "not",
	Bang:        "!",
	Semi:        ";",
}

func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "unknown token"
}

// Token is one lexeme together with where it came from. The intermediate-code
// layer only consumes operator token types; positions ride along so that
// diagnostics raised further down can still point somewhere.
type Token struct {
	Type      Type
	Value     string
	FileIndex int
	Line      int
	Column    int
	Len       int
}
