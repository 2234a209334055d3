package netlist

import "github.com/alecthomas/participle/v2/lexer"

// File is a whole netlist: one net per line, blank and comment-only lines allowed.
type File struct {
	Nets []*Net `parser:"( @@ | Newline )*"`
}

// Net connects every listed pin (component id) with every other one. A net ends at the end of its line, so a
// line holding only pins is a syntax error.
// Example: net7:	1	4	9
type Net struct {
	Pos  lexer.Position
	Name string  `parser:"@Ident Colon"`
	Pins []int64 `parser:"@Integer* ( Newline | EOF )"`
}
