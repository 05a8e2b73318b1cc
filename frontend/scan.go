// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend

import (
	"strconv"

	"github.com/wasmmvp/wasmmvp/internal/panerr"
)

// readModuleForm parses src as a single top-level list form -- (module
// ...), conventionally -- and returns its elements. A list element is
// either a string (a symbol or a string literal), an int64, a uint64, a
// float64, or another []interface{}. Parse failures panic via panerr;
// Build's own recovery boundary turns them into a returned error.
func readModuleForm(src []byte) []interface{} {
	sc := &scanner{src: src}
	sc.skipAtmosphere()
	top := sc.readExpr()
	sc.skipAtmosphere()
	if sc.pos != len(sc.src) {
		panerr.Panic(panerr.Error("trailing data after the top-level form"))
	}

	list, ok := top.([]interface{})
	if !ok {
		panerr.Panic(panerr.Error("expected a list at the top level"))
	}
	return list
}

// scanner walks src one byte at a time. Identifiers and numbers in the
// supported grammar are always ASCII, so a byte cursor is enough -- there
// is no need to decode runes the way a general-purpose reader would.
type scanner struct {
	src []byte
	pos int
}

func (s *scanner) atEnd() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.atEnd() {
		panerr.Panic(panerr.Error("unexpected end of input"))
	}
	return s.src[s.pos]
}

func (s *scanner) advance() byte {
	b := s.peek()
	s.pos++
	return b
}

// skipAtmosphere consumes whitespace and ";"-to-end-of-line comments.
func (s *scanner) skipAtmosphere() {
	for !s.atEnd() {
		switch b := s.src[s.pos]; {
		case isSpace(b):
			s.pos++
		case b == ';':
			for !s.atEnd() && s.src[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

// readExpr reads one expression: a list, a string literal, a number, or a
// symbol.
func (s *scanner) readExpr() interface{} {
	s.skipAtmosphere()
	switch b := s.peek(); {
	case b == '(':
		s.pos++
		return s.readList()
	case b == '"':
		s.pos++
		return s.readStringLiteral()
	case isDigit(b) || b == '-':
		return s.readNumber()
	case isSymbolStart(b):
		return s.readSymbol()
	default:
		panerr.Panic(panerr.Errorf("unexpected character %q", b))
		panic("unreachable")
	}
}

func (s *scanner) readList() []interface{} {
	var items []interface{}
	for {
		s.skipAtmosphere()
		if s.atEnd() {
			panerr.Panic(panerr.Error("unterminated list"))
		}
		if s.src[s.pos] == ')' {
			s.pos++
			return items
		}
		items = append(items, s.readExpr())
	}
}

func (s *scanner) readStringLiteral() string {
	var buf []byte
	for {
		c := s.advance()
		if c == '"' {
			return string(buf)
		}
		if c == '\\' {
			switch e := s.advance(); e {
			case '"', '\\':
				c = e
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case '0':
				c = 0
			default:
				panerr.Panic(panerr.Errorf("unsupported string escape %q", e))
			}
		}
		buf = append(buf, c)
	}
}

func (s *scanner) readToken() string {
	start := s.pos
	for !s.atEnd() && !isTokenBoundary(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) readNumber() interface{} {
	negative := s.src[s.pos] == '-'
	tok := s.readToken()

	if negative {
		v, err := strconv.ParseInt(tok, 0, 64)
		if err == nil {
			return v
		}
	} else {
		v, err := strconv.ParseUint(tok, 0, 64)
		if err == nil {
			return v
		}
	}

	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		panerr.Panic(panerr.Wrap(err, "malformed number literal "+tok))
	}
	return f
}

func (s *scanner) readSymbol() string {
	return s.readToken()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSymbolStart(b byte) bool {
	return b == '$' || b == '_' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isTokenBoundary(b byte) bool {
	return isSpace(b) || b == '(' || b == ')'
}
