package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a maximal run of word characters (letters, digits, underscore) or
// a maximal run of anything else, such as "<", ">", "," and spaces.
type Token struct {
	Text string
	Word bool
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits a type string into runs that alternate between word and
// non-word characters. Joining the token texts gives back t.
//
//	Tokenize("map<string,int>") = [map] [<] [string] [,] [int] [>]
func Tokenize(t string) []Token {
	if t == "" {
		return nil
	}
	var tokens []Token
	first, _ := utf8.DecodeRuneInString(t)
	word := isWordRune(first)
	last := 0
	for i, r := range t {
		if isWordRune(r) == word {
			continue
		}
		tokens = append(tokens, Token{Text: t[last:i], Word: word})
		last = i
		word = !word
	}
	return append(tokens, Token{Text: t[last:], Word: word})
}

// ThriftType rewrites a Hive type into its Thrift DDL form by replacing every
// known type name and leaving everything else untouched. Nested types need no
// parser because nesting only happens through the delimiter tokens.
//
//	ThriftType("map<string,array<bigint>>") = "map<string,list<i64>>"
func ThriftType(t string) string {
	var sb strings.Builder
	sb.Grow(len(t))
	for _, tok := range Tokenize(t) {
		if tok.Word {
			if mapped, ok := thriftTypes[tok.Text]; ok {
				sb.WriteString(mapped)
				continue
			}
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func lower(s string) string {
	return strings.ToLower(s)
}
