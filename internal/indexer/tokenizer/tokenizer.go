// Package tokenizer splits raw document text into Text and Punctuation tokens.
// Text is a maximal run of ASCII letters and digits, Punctuation a maximal run
// of ()[]{},.:;"' characters. Whitespace is skipped and any other character
// is reported as a single Invalid event.
package tokenizer

import (
	"iter"
	"unicode/utf8"
)

// Kind is the lexical class of a token.
type Kind int

const (
	Text Kind = iota
	Punctuation
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case Punctuation:
		return "Punctuation"
	default:
		return "Invalid"
	}
}

// Token is a slice of the input together with its class. Offset is the byte
// position of Value in the input.
type Token struct {
	Kind   Kind
	Value  string
	Offset int
}

// Lexer scans a text buffer one token at a time.
type Lexer struct {
	content  string
	position int
}

func NewLexer(content string) *Lexer {
	return &Lexer{content: content}
}

// Next returns the next lexer event, Invalid events included. It reports
// false once the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	l.trimLeft()
	if l.position >= len(l.content) {
		return Token{}, false
	}
	start := l.position
	c := l.content[l.position]
	switch {
	case isAlnum(c):
		return Token{Kind: Text, Value: l.chopWhile(isAlnum), Offset: start}, true
	case isPunct(c):
		return Token{Kind: Punctuation, Value: l.chopWhile(isPunct), Offset: start}, true
	}
	_, size := utf8.DecodeRuneInString(l.content[l.position:])
	l.position += size
	return Token{Kind: Invalid, Value: l.content[start:l.position], Offset: start}, true
}

func (l *Lexer) trimLeft() {
	for l.position < len(l.content) && isSpace(l.content[l.position]) {
		l.position++
	}
}

func (l *Lexer) chopWhile(predicate func(byte) bool) string {
	start := l.position
	for l.position < len(l.content) && predicate(l.content[l.position]) {
		l.position++
	}
	return l.content[start:l.position]
}

// Events yields every lexer event of text, including Invalid ones. Each
// range over the returned sequence starts a fresh scan.
func Events(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l := NewLexer(text)
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokens yields the Text and Punctuation tokens of text and drops Invalid
// events.
func Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for tok := range Events(text) {
			if tok.Kind == Invalid {
				continue
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// Tokenize collects Tokens(text) into a slice.
func Tokenize(text string) []Token {
	tokens := make([]Token, 0, len(text)/4)
	for tok := range Tokens(text) {
		tokens = append(tokens, tok)
	}
	return tokens
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isPunct(c byte) bool {
	switch c {
	case '(', ')', '[', ']', '{', '}', ',', '.', ':', ';', '"', '\'':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
