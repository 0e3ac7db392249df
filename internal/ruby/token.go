package ruby

import "fmt"

// Position describes a location in a source file. Offset is a byte offset,
// Line and Column are 1-based.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

type TokenType int

const (
	EOF TokenType = iota
	NEWLINE
	IDENT  // foo, bar?, baz!
	CONST  // Foo, StandardError
	INT    // 42
	STRING // "foo", 'foo'
	SYMBOL // :foo

	// keywords
	KWDEF
	KWEND
	KWRETURN
	KWNIL
	KWTRUE
	KWFALSE
	KWBEGIN
	KWRESCUE
	KWENSURE
	KWIF
	KWUNLESS
	KWELSE
	KWTHEN
	KWSELF

	// punctuation
	DOT       // .
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	ASSIGN    // =
	ARROW     // =>
	SEMICOLON // ;

	ILLEGAL
)

var keywords = map[string]TokenType{
	"def":    KWDEF,
	"end":    KWEND,
	"return": KWRETURN,
	"nil":    KWNIL,
	"true":   KWTRUE,
	"false":  KWFALSE,
	"begin":  KWBEGIN,
	"rescue": KWRESCUE,
	"ensure": KWENSURE,
	"if":     KWIF,
	"unless": KWUNLESS,
	"else":   KWELSE,
	"then":   KWTHEN,
	"self":   KWSELF,
}

// Token is a single lexeme with its source span.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     Position
}

// Comment is a `# ...` comment preserved for suppression directives.
type Comment struct {
	Text string // without the leading '#'
	Pos  Position
	End  Position
}

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NEWLINE:
		return "NEWLINE"
	case IDENT:
		return "IDENT"
	case CONST:
		return "CONST"
	case INT:
		return "INT"
	case STRING:
		return "STRING"
	case SYMBOL:
		return "SYMBOL"
	case KWDEF:
		return "def"
	case KWEND:
		return "end"
	case KWRETURN:
		return "return"
	case KWNIL:
		return "nil"
	case KWTRUE:
		return "true"
	case KWFALSE:
		return "false"
	case KWBEGIN:
		return "begin"
	case KWRESCUE:
		return "rescue"
	case KWENSURE:
		return "ensure"
	case KWIF:
		return "if"
	case KWUNLESS:
		return "unless"
	case KWELSE:
		return "else"
	case KWTHEN:
		return "then"
	case KWSELF:
		return "self"
	case DOT:
		return "."
	case COMMA:
		return ","
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case ASSIGN:
		return "="
	case ARROW:
		return "=>"
	case SEMICOLON:
		return ";"
	default:
		return "ILLEGAL"
	}
}
