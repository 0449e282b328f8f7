package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/alexhholmes/nocopy/internal/schema"
)

const (
	nocopyKeyword = "@nocopy"
	reprKeyword   = "@repr"
)

// Directives holds the annotations found in one comment group.
type Directives struct {
	Requested bool // at least one @nocopy line
	Attrs     []schema.Attribute
	Repr      schema.Repr
	ReprPos   token.Position
}

// line is a comment line stripped of its markers.
type line struct {
	text string
	pos  token.Position
}

// ScanDirectives extracts @nocopy and @repr annotations from a comment group.
//
// Expected format:
//
//	// @nocopy
//	// @nocopy(endian = "big")
//	// @nocopy(name = "HeaderView", endian = "little")
//	// @repr(C)
//	// @repr(packed)
//
// A bare @nocopy only requests generation. Any other text after the keyword
// becomes an attribute and is validated by the resolver. A malformed @repr
// does not stop the scan: the whole group is read and the first such error is
// returned with it, so callers can still tell whether generation was
// requested.
func ScanDirectives(fset *token.FileSet, doc *ast.CommentGroup, placement schema.Placement) (Directives, error) {
	var (
		d       Directives
		reprErr error
	)

	for _, l := range commentLines(fset, doc) {
		if rest, ok := cutKeyword(l.text, nocopyKeyword); ok {
			d.Requested = true
			if strings.TrimSpace(rest) != "" {
				d.Attrs = append(d.Attrs, schema.Attribute{
					Text:      strings.TrimSpace(rest),
					Placement: placement,
					Pos:       l.pos,
				})
			}
			continue
		}

		if rest, ok := cutKeyword(l.text, reprKeyword); ok {
			repr, err := ParseRepr(rest)
			if err != nil {
				if reprErr == nil {
					reprErr = fmt.Errorf("%s: %w", l.pos, err)
				}
				continue
			}
			d.Repr = repr
			d.ReprPos = l.pos
		}
	}

	return d, reprErr
}

// ParseRepr parses the argument of a @repr annotation: "(C)" or "(packed)".
func ParseRepr(arg string) (schema.Repr, error) {
	arg = strings.TrimSpace(arg)
	inner, ok := strings.CutPrefix(arg, "(")
	if ok {
		inner, ok = strings.CutSuffix(inner, ")")
	}
	if !ok {
		return schema.ReprNone, fmt.Errorf("@repr must be in the form @repr(C) or @repr(packed), got: %q", arg)
	}

	switch strings.TrimSpace(inner) {
	case "C":
		return schema.ReprC, nil
	case "packed":
		return schema.ReprPacked, nil
	default:
		return schema.ReprNone, fmt.Errorf("unknown representation: %s (expected C or packed)", strings.TrimSpace(inner))
	}
}

// cutKeyword reports whether text starts with keyword as a whole word and
// returns what follows it.
func cutKeyword(text, keyword string) (string, bool) {
	rest, ok := strings.CutPrefix(text, keyword)
	if !ok {
		return "", false
	}
	if rest == "" || rest[0] == '(' || rest[0] == ' ' || rest[0] == '\t' {
		return rest, true
	}
	return "", false
}

func commentLines(fset *token.FileSet, doc *ast.CommentGroup) []line {
	if doc == nil {
		return nil
	}

	var lines []line
	for _, c := range doc.List {
		pos := fset.Position(c.Slash)
		if strings.HasPrefix(c.Text, "/*") {
			body := strings.TrimSuffix(strings.TrimPrefix(c.Text, "/*"), "*/")
			for i, raw := range strings.Split(body, "\n") {
				p := pos
				p.Line += i
				text := strings.TrimSpace(raw)
				text = strings.TrimSpace(strings.TrimPrefix(text, "*"))
				lines = append(lines, line{text: text, pos: p})
			}
			continue
		}
		lines = append(lines, line{text: CleanComment(c.Text), pos: pos})
	}
	return lines
}

// CleanComment removes comment markers from a line
// "// @nocopy" → "@nocopy"
// "/* @repr(C) */" → "@repr(C)"
func CleanComment(line string) string {
	line = strings.TrimSpace(line)

	// Remove // prefix
	if strings.HasPrefix(line, "//") {
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimSpace(line)
		return line
	}

	// Remove /* */ wrapper
	if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)
		return line
	}

	return line
}
