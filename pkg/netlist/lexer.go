package netlist

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// NetlistLexer tokenizes net declarations such as "net1:\t3\t5\t7". Newlines are kept: they end a net.
var NetlistLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_\-\.]*`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Colon", Pattern: `:`},
})
