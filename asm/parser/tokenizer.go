package parser

import (
	"fmt"
	"io"
	"runtime"
	"unicode"
)

// Known token types.
const (
	tokIdent = 1 + iota
	tokNumber
	tokColon
	tokComma
	tokEOL
)

// token defines a single lexical element.
type token struct {
	typ   int
	pos   Position
	value string
}

// tokenFunc is called whenever a new token is read from source.
type tokenFunc func(typ int, pos Position, value string) error

// tokenizer defines tokenizer state.
type tokenizer struct {
	lineSizes []int
	data      []byte
	tf        tokenFunc
	start     Position
	end       Position
	atEOF     byte
}

// tokenize reads source from the given reader and turns it into a flat
// stream of tokens. Each token is passed into the given tokenFunc as it
// is read. The filename provides source context for each token.
func tokenize(r io.Reader, filename string, tf tokenFunc) (err error) {
	var tok tokenizer

	tok.data, err = io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("parse error: %v", err)
	}

	// The tokenizer breaks out of its loop through the use of a panic,
	// We need to catch it here and convert it to a proper error message.
	defer func() {
		x := recover()
		if x == nil || x == io.EOF {
			return
		}

		if _, ok := x.(runtime.Error); ok {
			panic(x)
		}

		err = x.(error)
	}()

	tok.tf = tf
	tok.start = Position{
		File: filename,
		Line: 1,
		Col:  1,
	}
	tok.end = tok.start
	tok.readDocument()
	return
}

// tokenizeAll collects all tokens from the given source.
func tokenizeAll(r io.Reader, filename string) ([]token, error) {
	var list []token
	err := tokenize(r, filename, func(typ int, pos Position, value string) error {
		list = append(list, token{typ, pos, value})
		return nil
	})
	return list, err
}

// readDocument reads a source file.
func (t *tokenizer) readDocument() {
	for {
		switch {
		case t.readSpace():
		case t.readEOL():
		case t.readComment():
		case t.readIdent():
		case t.readNumber():
		case t.readChar(':'):
			t.emit(tokColon)
		case t.readChar(','):
			t.emit(tokComma)
		default:
			t.error("unexpected character %q", t.read())
		}
	}
}

// readSpace skips whitespace, not including line breaks.
func (t *tokenizer) readSpace() bool {
	var n int

	for r := t.read(); r != '\n' && isSpace(r); r = t.read() {
		n++
	}

	t.unread(1)
	t.ignore()
	return n > 0
}

// readEOL reads a line break.
func (t *tokenizer) readEOL() bool {
	if !t.readChar('\n') {
		return false
	}
	t.emit(tokEOL)
	return true
}

// readComment reads a comment. These run from ';' or '#' to the end of the line.
func (t *tokenizer) readComment() bool {
	if !t.readAny(';', '#') {
		return false
	}

	t.readUntil('\n')
	t.ignore()
	return true
}

// readIdent reads an identifier: a letter or underscore, followed by zero
// or more letters, digits or underscores.
func (t *tokenizer) readIdent() bool {
	r := t.read()
	if !isAlpha(r) && r != '_' {
		t.unread(1)
		return false
	}

	for r = t.read(); isAlpha(r) || isDigit(r) || r == '_'; r = t.read() {
	}

	t.unread(1)
	t.emit(tokIdent)
	return true
}

// readNumber reads an optionally signed number with an optional base prefix.
// E.g.: 123, -1, 16#ff, 2#1010_1010
func (t *tokenizer) readNumber() bool {
	t.readChar('-')

	if !t.readDigits() {
		t.unread(-1)
		return false
	}

	if t.readChar('#') && !t.readAlnum() {
		t.error("invalid number %q", t.current())
	}

	t.emit(tokNumber)
	return true
}

// readDigits reads alphanumeric digits and underscores, starting with a decimal digit.
func (t *tokenizer) readDigits() bool {
	r := t.read()
	if !isDigit(r) {
		t.unread(1)
		return false
	}

	for r = t.read(); isDigit(r) || isAlpha(r) || r == '_'; r = t.read() {
	}

	t.unread(1)
	return true
}

// readAlnum reads letters, digits and underscores.
// Returns true if more than zero bytes have been read.
func (t *tokenizer) readAlnum() bool {
	var n int

	for r := t.read(); isDigit(r) || isAlpha(r) || r == '_'; r = t.read() {
		n++
	}

	t.unread(1)
	return n > 0
}

// readUntil reads bytes until it encounters x.
// Returns true if more than zero bytes have been read.
func (t *tokenizer) readUntil(x byte) bool {
	var n int

	for t.read() != x {
		n++
	}

	t.unread(1)
	return n > 0
}

// readAny reads the next byte if it is in the given set.
func (t *tokenizer) readAny(set ...byte) bool {
	if inSet(set, t.read()) {
		return true
	}

	t.unread(1)
	return false
}

// readChar reads the next byte, only if it matches x.
func (t *tokenizer) readChar(x byte) bool {
	if t.read() == x {
		return true
	}
	t.unread(1)
	return false
}

// current returns the current read token.
func (t *tokenizer) current() string {
	end := t.end.Offset
	if end > len(t.data) {
		end = len(t.data)
	}
	if t.start.Offset >= end {
		return ""
	}
	return string(t.data[t.start.Offset:end])
}

// error emits a new error with the given message.
func (t *tokenizer) error(f string, argv ...interface{}) {
	panic(NewError(t.start, f, argv...))
}

// emit emits a new token of the given type, using the currently
// read buffer.
func (t *tokenizer) emit(typ int) {
	value := t.current()

	if err := t.tf(typ, t.start, value); err != nil {
		panic(err)
	}

	t.ignore()
}

// ignore skips the currently read buffer.
func (t *tokenizer) ignore() {
	t.start = t.end
}

// unread unreads the last n read bytes.
// This can not read back into the previous token.
// If n is -1, this unreads the entire token.
func (t *tokenizer) unread(n int) {
	if n == -1 {
		for t.end.Offset > t.start.Offset {
			t.unread(1)
		}
		return
	}

	var r byte
	for ; n > 0; n-- {
		t.end.Offset--
		if t.end.Offset >= len(t.data) {
			r = '\n'
		} else {
			r = t.data[t.end.Offset]
		}

		if r == '\n' {
			t.end.Line--
			t.end.Col = t.lineSizes[len(t.lineSizes)-1]
			t.lineSizes = t.lineSizes[:len(t.lineSizes)-1]
		} else {
			t.end.Col--
		}
	}
}

// read reads the next byte from the stream.
// Past the end of the data, it yields a few line breaks before
// giving up with io.EOF.
func (t *tokenizer) read() byte {
	var r byte

	if t.end.Offset >= len(t.data) {
		if t.atEOF > 3 {
			panic(io.EOF)
		}

		t.atEOF++
		r = '\n'
	} else {
		r = t.data[t.end.Offset]
	}

	t.end.Offset++

	if r == '\n' {
		t.lineSizes = append(t.lineSizes, t.end.Col)
		t.end.Line++
		t.end.Col = 1
	} else {
		t.end.Col++
	}

	return r
}

func isAlpha(x byte) bool {
	return (x >= 'a' && x <= 'z') || (x >= 'A' && x <= 'Z')
}

func isDigit(x byte) bool {
	return x >= '0' && x <= '9'
}

func isSpace(x byte) bool {
	return unicode.IsSpace(rune(x))
}

func inSet(set []byte, x byte) bool {
	for _, v := range set {
		if x == v {
			return true
		}
	}
	return false
}
