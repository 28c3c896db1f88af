package syntax

// Token represents a token read in by the scanner
type Token struct {
	Kind  int
	Value string

	// Line is the line number starting at 1
	Line int

	// Col is the column number of the token's last character, counting tabs as
	// four columns
	Col int
}

// The various kinds of tokens supported by the scanner
const (
	// delimiters
	LPAREN = iota
	RPAREN
	LBRACKET
	RBRACKET

	// annotation marker
	COLON

	// arithmetic operators
	PLUS
	MINUS
	STAR
	FSLASH

	// atoms
	SYMBOL
	NUMLIT
)

// tokenKindStrings maps token kinds to human-readable names for error messages
var tokenKindStrings = map[int]string{
	LPAREN:   "`(`",
	RPAREN:   "`)`",
	LBRACKET: "`[`",
	RBRACKET: "`]`",
	COLON:    "`:`",
	PLUS:     "`+`",
	MINUS:    "`-`",
	STAR:     "`*`",
	FSLASH:   "`/`",
	SYMBOL:   "symbol",
	NUMLIT:   "number literal",
}
