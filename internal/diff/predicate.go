/*
Copyright © 2025 Roy Sowers <inskribe@inskribestudio.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package diff

import (
	"regexp"
	"strings"

	"github.com/inskribe/drift/internal/schema"
)

// TypeComparer judges type equality for one backend. CompareType reports
// whether the observed and declared column types differ. This predicate is
// the only place backend type quirks may leak into the diff decision.
type TypeComparer interface {
	CompareType(observed, declared schema.Column) bool
}

// DefaultComparer judges server default equality for one backend.
// renderedDeclared is the canonical text of the declared default, nil when
// the default is absent or unrenderable. CompareDefault reports whether the
// defaults differ.
type DefaultComparer interface {
	CompareDefault(observed, declared schema.Column, renderedDeclared *string) bool
}

// PostgresTypes compares types by alias-normalized text. PostgreSQL reports
// canonical names through information_schema while declared schemas commonly
// use the short aliases, so both spellings normalize to one form.
type PostgresTypes struct{}

var typeAliases = map[string]string{
	"int":         "integer",
	"int2":        "smallint",
	"int4":        "integer",
	"int8":        "bigint",
	"bool":        "boolean",
	"varchar":     "character varying",
	"char":        "character",
	"float4":      "real",
	"float8":      "double precision",
	"decimal":     "numeric",
	"timestamptz": "timestamp with time zone",
	"timetz":      "time with time zone",
}

func (PostgresTypes) CompareType(observed, declared schema.Column) bool {
	return normalizeType(observed.Type.SQL) != normalizeType(declared.Type.SQL)
}

func normalizeType(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.Join(strings.Fields(text), " ")

	base := text
	var args string
	if open := strings.Index(text, "("); open >= 0 {
		base = strings.TrimSpace(text[:open])
		args = text[open:]
	}
	if canonical, ok := typeAliases[base]; ok {
		base = canonical
	}
	return base + args
}

// PostgresDefaults compares server defaults by normalized text. Stripping
// the wrapping quote characters and trailing type casts is a PostgreSQL
// reporting workaround and is deliberately confined to this comparator
// rather than applied during rendering.
type PostgresDefaults struct{}

var castSuffixExpression = regexp.MustCompile(`::[a-zA-Z_][a-zA-Z0-9_ ]*(\(\d+(,\s*\d+)?\))?$`)

func (PostgresDefaults) CompareDefault(observed, declared schema.Column, renderedDeclared *string) bool {
	var observedText string
	if rendered, ok := observed.Default.Render(); ok {
		observedText = normalizeDefault(rendered)
	}

	var declaredText string
	if renderedDeclared != nil {
		declaredText = normalizeDefault(*renderedDeclared)
	}

	return observedText != declaredText
}

func normalizeDefault(text string) string {
	text = strings.TrimSpace(text)
	text = castSuffixExpression.ReplaceAllString(text, "")
	if len(text) >= 2 && strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'") {
		text = text[1 : len(text)-1]
	}
	return text
}
