// Copyright 2024 The Vix Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser implements a recursive-descent parser for the grammar in
// spec §6, turning a vix/scanner token stream into a vix/ast tree. It plays
// the role original_source/src/parser.c plays: a single-token-lookahead
// descent over the object/property grammar, assigning each ast.Property a
// fresh, file-wide unique ID as it is built (spec invariant 1).
package parser

import (
	"strconv"
	"strings"

	"github.com/vix-lang/vix/vix/ast"
	"github.com/vix-lang/vix/vix/errors"
	"github.com/vix-lang/vix/vix/scanner"
	"github.com/vix-lang/vix/vix/token"
)

// ParseFile parses the whole of src (named filename for diagnostics) as a
// sequence of top-level properties, per spec §6's "program := property*".
// It returns every top-level property parsed before the first syntax
// error, together with any accumulated errors: a caller that only wants the first fatal error should check
// len(errs) > 0 and report errs[0].
func ParseFile(filename string, src []byte) ([]*ast.Property, errors.List) {
	p := &parser{
		sc:       scanner.New(filename, src),
		filename: filename,
	}
	p.next()

	var props []*ast.Property
	for p.tok.Kind != token.EOF {
		prop, ok := p.parseProperty()
		if !ok {
			break
		}
		props = append(props, prop)
	}
	p.errs = append(p.errs, p.sc.Errs()...)
	return props, p.errs
}

type parser struct {
	sc       *scanner.Scanner
	filename string
	tok      scanner.Token
	lastID   uint64
	errs     errors.List
}

func (p *parser) next() { p.tok = p.sc.Scan() }

func (p *parser) nextID() uint64 {
	p.lastID++
	return p.lastID
}

// expectSet reports a parse error naming every acceptable token, matching
// original_source/src/parser.c's synerror, which lists the full expected
// set (spec §7.2).
func (p *parser) expectSet(want ...token.Token) {
	names := make([]string, len(want))
	for i, k := range want {
		names[i] = k.String()
	}
	p.errs = errors.Append(p.errs, errors.Newf(errors.Parse, p.tok.Pos,
		"expected one of [%s], found %s", strings.Join(names, ", "), p.tok.Kind))
}

func (p *parser) expect(k token.Token) (scanner.Token, bool) {
	if p.tok.Kind != k {
		p.expectSet(k)
		return scanner.Token{}, false
	}
	tok := p.tok
	p.next()
	return tok, true
}

// parseProperty parses "property := NAME '=' object ';'".
func (p *parser) parseProperty() (*ast.Property, bool) {
	nameTok, ok := p.expect(token.NAME)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.ASSIGN); !ok {
		return nil, false
	}
	val, ok := p.parseObject()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.SEMICOLON); !ok {
		return nil, false
	}
	return &ast.Property{
		ID:    p.nextID(),
		Name:  nameTok.Text,
		Pos:   nameTok.Pos,
		Value: val,
	}, true
}

// parseObject parses "object := free-params? body".
//
// NAME followed by another NAME, or by GTR, opens a free-parameter list;
// any other continuation after a leading NAME is a "body" in its own
// right (a bare identifier reference, or the start of a copy-tail chain).
func (p *parser) parseObject() (ast.Element, bool) {
	if p.tok.Kind == token.NAME {
		return p.parseObjectAfterName()
	}
	return p.parseBody(nil)
}

func (p *parser) parseObjectAfterName() (ast.Element, bool) {
	first := p.tok
	p.next()

	switch p.tok.Kind {
	case token.NAME:
		// A second bare NAME means this is a free-parameter list:
		// "NAME NAME* '>' body".
		params := []string{first.Text}
		for p.tok.Kind == token.NAME {
			params = append(params, p.tok.Text)
			p.next()
		}
		if _, ok := p.expect(token.GTR); !ok {
			return nil, false
		}
		return p.parseBody(params)

	case token.GTR:
		p.next()
		return p.parseBody([]string{first.Text})

	default:
		// Body is "NAME copy-tail*": a reference, property access, or
		// object-copy application headed by first.
		return p.parseCopyTail(first)
	}
}

// parseBody parses the body alternatives other than a leading free
// standing NAME, which parseObjectAfterName already special-cased:
// "'{' property* '}' | INTEGER | STRING", plus (for the free-params case)
// "NAME copy-tail*" after the '>' has been consumed.
func (p *parser) parseBody(params []string) (ast.Element, bool) {
	start := p.tok.Pos
	switch p.tok.Kind {
	case token.LBRACE:
		p.next()
		var fields []*ast.Property
		for p.tok.Kind != token.RBRACE {
			if p.tok.Kind == token.EOF {
				p.expectSet(token.RBRACE)
				return nil, false
			}
			prop, ok := p.parseProperty()
			if !ok {
				return nil, false
			}
			fields = append(fields, prop)
		}
		p.next() // consume '}'
		return ast.NewProperties(start, params, fields), true

	case token.INTEGER:
		text := p.tok.Text
		p.next()
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			p.errs = errors.Append(p.errs, errors.Newf(errors.Parse, start, "integer literal out of range: %s", text))
			return nil, false
		}
		return ast.NewInteger(start, n), true

	case token.STRING:
		text := p.tok.Text
		p.next()
		return ast.NewString(start, []byte(text)), true

	case token.NAME:
		nameTok := p.tok
		p.next()
		return p.parseCopyTail(nameTok)

	default:
		p.expectSet(token.LBRACE, token.NAME, token.INTEGER, token.STRING)
		return nil, false
	}
}

// parseCopyTail parses "copy-tail*" after a leading NAME has already been
// consumed, collapsing a tail made only of field accesses into a
// PropertyAccess (the subset inference resolves) and anything involving a
// call into the more general ObjectCopy.
func (p *parser) parseCopyTail(head scanner.Token) (ast.Element, bool) {
	var steps []ast.CopyStep
	hasCall := false

loop:
	for {
		switch p.tok.Kind {
		case token.DOT:
			p.next()
			fieldTok, ok := p.expect(token.NAME)
			if !ok {
				return nil, false
			}
			steps = append(steps, ast.FieldStep{Name: fieldTok.Text})

		case token.LPAREN:
			p.next()
			var args []ast.Element
			if p.tok.Kind != token.RPAREN {
				for {
					arg, ok := p.parseObject()
					if !ok {
						return nil, false
					}
					args = append(args, arg)
					if p.tok.Kind != token.COMMA {
						break
					}
					p.next()
				}
			}
			if _, ok := p.expect(token.RPAREN); !ok {
				return nil, false
			}
			steps = append(steps, ast.CallStep{Args: args})
			hasCall = true

		default:
			break loop
		}
	}

	if len(steps) == 0 {
		return ast.NewIdent(head.Pos, head.Text), true
	}
	if !hasCall {
		names := make([]string, 0, len(steps)+1)
		names = append(names, head.Text)
		for _, s := range steps {
			names = append(names, s.(ast.FieldStep).Name)
		}
		return ast.NewPropertyAccess(head.Pos, names), true
	}
	return ast.NewObjectCopy(head.Pos, head.Text, steps), true
}
