// Package attrs resolves the "@nocopy" attributes of a record into a
// schema.Config.
//
// Accepted form:
//
//	// @nocopy(name = "HeaderView", endian = "big")
//
// Recognized keys are name and endian. Attributes are merged left to right and
// a later key overrides an earlier one.
package attrs

import (
	"errors"
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/alexhholmes/nocopy/internal/schema"
)

type pair struct {
	key   string
	value string
}

// Resolve turns the raw attributes of structName into a Config. The first
// problem found aborts resolution with a *schema.ConfigError; no partial
// Config is returned.
func Resolve(structName string, attrs []schema.Attribute) (schema.Config, error) {
	cfg := schema.DefaultConfig(structName)

	for _, attr := range attrs {
		fail := func(format string, args ...any) (schema.Config, error) {
			return schema.Config{}, &schema.ConfigError{
				Struct: structName,
				Attr:   attr.Text,
				Pos:    attr.Pos,
				Msg:    fmt.Sprintf(format, args...),
			}
		}

		if attr.Placement != schema.Outer {
			return fail("@nocopy is only allowed in the doc comment of the type")
		}

		pairs, err := parseList(attr.Text)
		if err != nil {
			return fail(`%v (expected @nocopy(key = "value", ...))`, err)
		}

		for _, p := range pairs {
			switch p.key {
			case "name":
				if !token.IsIdentifier(p.value) || p.value == "_" {
					return fail("name must be a Go identifier, got: %q", p.value)
				}
				if p.value == structName {
					return fail("name %s collides with the record type", p.value)
				}
				cfg.OutputName = p.value

			case "endian":
				switch p.value {
				case "big":
					cfg.Endian = schema.Big
				case "little":
					cfg.Endian = schema.Little
				default:
					return fail("endian must be 'big' or 'little', got: %q", p.value)
				}

			default:
				return fail("unknown key: %s", p.key)
			}
		}
	}

	return cfg, nil
}

// parseList parses `(key = "value", ...)`. A trailing comma and an empty list
// are accepted.
func parseList(text string) ([]pair, error) {
	src := []byte(strings.TrimSpace(text))
	if len(src) == 0 {
		return nil, errors.New("missing parenthesized list")
	}

	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var scanErr error
	var s scanner.Scanner
	s.Init(file, src, func(_ token.Position, msg string) {
		if scanErr == nil {
			scanErr = errors.New(msg)
		}
	}, 0)

	next := func() (token.Token, string) {
		_, tok, lit := s.Scan()
		return tok, lit
	}

	if tok, _ := next(); tok != token.LPAREN {
		return nil, errors.New("missing parenthesized list")
	}

	var pairs []pair
	for {
		tok, lit := next()
		if tok == token.RPAREN {
			break
		}
		if tok != token.IDENT {
			return nil, fmt.Errorf("expected key, found %s", describe(tok, lit))
		}
		key := lit

		if tok, lit = next(); tok != token.ASSIGN {
			return nil, fmt.Errorf("expected = after %s, found %s", key, describe(tok, lit))
		}

		tok, lit = next()
		if tok != token.STRING {
			return nil, fmt.Errorf("value of %s must be a string literal, found %s", key, describe(tok, lit))
		}
		value, err := strconv.Unquote(lit)
		if err != nil {
			return nil, fmt.Errorf("invalid string for %s: %w", key, err)
		}
		pairs = append(pairs, pair{key: key, value: value})

		tok, lit = next()
		if tok == token.RPAREN {
			break
		}
		if tok != token.COMMA {
			return nil, fmt.Errorf("expected , or ), found %s", describe(tok, lit))
		}
	}

	// The scanner inserts a semicolon after the closing paren.
	tok, lit := next()
	if tok == token.SEMICOLON && lit == "\n" {
		tok, lit = next()
	}
	if tok != token.EOF {
		return nil, fmt.Errorf("unexpected %s after closing paren", describe(tok, lit))
	}
	if scanErr != nil {
		return nil, scanErr
	}

	return pairs, nil
}

func describe(tok token.Token, lit string) string {
	if tok == token.EOF {
		return "end of attribute"
	}
	if lit != "" && tok != token.SEMICOLON {
		return strconv.Quote(lit)
	}
	return tok.String()
}
