// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package script

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Pos is a position in a script.
//
type Pos struct {
	Line, Col int
}

func (p Pos) String() string { return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col) }

// Token types
type tokType int

const (
	tokEOF tokType = iota
	tokNewline
	tokIdent
	tokInt
	tokError
)

const eof = -1

type token struct {
	typ tokType
	pos Pos
	val string
}

type stateFn func(*lexer) stateFn

type lexer struct {
	input       string
	start, pos  int
	width       int
	line, col   int // position of pos
	sline, scol int // position of start
	prevCol     int
	toks        []token
}

// lex splits input into tokens. The last token is always tokEOF or tokError.
//
func lex(input string) []token {
	l := &lexer{input: input, line: 1, col: 1, sline: 1, scol: 1}
	for state := lexAny; state != nil; {
		state = state(l)
	}
	return l.toks
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	if r == '\n' {
		l.line++
		l.prevCol = l.col
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *lexer) backup() {
	if l.width == 0 {
		return
	}
	l.pos -= l.width
	if l.input[l.pos] == '\n' {
		l.line--
		l.col = l.prevCol
	} else {
		l.col--
	}
	l.width = 0
}

func (l *lexer) ignore() {
	l.start = l.pos
	l.sline, l.scol = l.line, l.col
}

func (l *lexer) emit(t tokType) {
	l.toks = append(l.toks, token{t, Pos{l.sline, l.scol}, l.input[l.start:l.pos]})
	l.ignore()
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.toks = append(l.toks, token{tokError, Pos{l.sline, l.scol}, fmt.Sprintf(format, args...)})
	return nil
}

func isWord(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lexAny(l *lexer) stateFn {
	r := l.next()
	switch {
	case r == eof:
		l.emit(tokEOF)
		return nil
	case r == '\n':
		l.emit(tokNewline)
	case r == '#':
		for r != '\n' && r != eof {
			r = l.next()
		}
		l.backup()
		l.ignore()
	case unicode.IsSpace(r):
		l.ignore()
	case isWord(r):
		return lexWord
	default:
		return l.errorf("unexpected character %q", r)
	}
	return lexAny
}

func lexWord(l *lexer) stateFn {
	digits := unicode.IsDigit(rune(l.input[l.start]))
	for {
		r := l.next()
		if !isWord(r) {
			l.backup()
			break
		}
		if !unicode.IsDigit(r) {
			digits = false
		}
	}
	if digits {
		l.emit(tokInt)
	} else {
		l.emit(tokIdent)
	}
	return lexAny
}
