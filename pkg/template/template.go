// Package template parses command templates made of two token classes:
// plain placeholders such as {target}, resolved against a dictionary, and
// expansion expressions such as {{$i + 1}} or {{$val}}, evaluated once per
// item when a template is expanded over a list.
//
// Expressions are compiled with expr-lang/expr when the template is parsed.
// Two variables are bound during evaluation: $i, the zero-based item index,
// and $val, the item itself.
package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/arthur-debert/rxr/pkg/errors"
)

var (
	tokenPattern     = regexp.MustCompile(`\{\{(.*?)\}\}|\{([_a-zA-Z0-9.\-]+)\}`)
	expansionPattern = regexp.MustCompile(`\{\{.*?\}\}`)
	variablePattern  = regexp.MustCompile(`\$(i|val)\b`)
)

// stringPattern matches expression string literals, which keep $i and $val
// as written.
var stringPattern = regexp.MustCompile("\"(?:\\\\.|[^\"\\\\])*\"|'(?:\\\\.|[^'\\\\])*'|`[^`]*`")

type segmentKind int

const (
	literal segmentKind = iota
	placeholder
	expansion
)

type segment struct {
	kind    segmentKind
	text    string
	program *vm.Program
}

// Template is a parsed template. It holds no state between calls and can be
// reused for any number of substitutions and expansions.
type Template struct {
	text         string
	segments     []segment
	placeholders []string
	expansions   []string
}

// Parse scans text once for placeholders and expansion expressions and
// compiles every expression.
func Parse(text string) (*Template, error) {
	t := &Template{text: text}

	last := 0
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			t.segments = append(t.segments, segment{kind: literal, text: text[last:m[0]]})
		}
		last = m[1]

		if m[2] >= 0 {
			source := text[m[2]:m[3]]
			program, err := compile(source)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrTemplateParse,
					"invalid expression %q in template %q", source, text).
					WithDetail("expression", source)
			}
			t.segments = append(t.segments, segment{kind: expansion, text: text[m[0]:m[1]], program: program})
			t.expansions = append(t.expansions, source)
			continue
		}

		key := text[m[4]:m[5]]
		t.segments = append(t.segments, segment{kind: placeholder, text: key})
		t.placeholders = append(t.placeholders, key)
	}
	if last < len(text) {
		t.segments = append(t.segments, segment{kind: literal, text: text[last:]})
	}

	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// HasExpansions reports whether text contains at least one closed {{...}}
// token. Plain placeholders alone do not count.
func HasExpansions(text string) bool {
	return expansionPattern.MatchString(text)
}

// rewriteVariables turns $i and $val into the identifiers bound at
// evaluation time, skipping string literals.
func rewriteVariables(source string) string {
	var b strings.Builder
	last := 0
	for _, m := range stringPattern.FindAllStringIndex(source, -1) {
		b.WriteString(variablePattern.ReplaceAllString(source[last:m[0]], "$1"))
		b.WriteString(source[m[0]:m[1]])
		last = m[1]
	}
	b.WriteString(variablePattern.ReplaceAllString(source[last:], "$1"))
	return b.String()
}

func compile(source string) (*vm.Program, error) {
	return expr.Compile(rewriteVariables(source), expr.Env(map[string]interface{}{
		"i":   0,
		"val": "",
	}))
}

// String returns the original template text.
func (t *Template) String() string {
	return t.text
}

// Placeholders returns the plain placeholder keys in order of appearance.
func (t *Template) Placeholders() []string {
	return append([]string(nil), t.placeholders...)
}

// Expansions returns the source of every expansion expression in order of
// appearance.
func (t *Template) Expansions() []string {
	return append([]string(nil), t.expansions...)
}

// Substitute replaces every placeholder with its value in dict. Expansion
// tokens are kept verbatim. A placeholder missing from dict fails the whole
// substitution.
func (t *Template) Substitute(dict map[string]string) (string, error) {
	resolved, err := t.resolve(dict)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, s := range resolved {
		b.WriteString(s.text)
	}
	return b.String(), nil
}

// Expand resolves placeholders against dict once, then renders the template
// for every item, evaluating expansion expressions with the item's index and
// value. The result holds exactly one string per item, in item order. Any
// failure aborts the whole batch.
func (t *Template) Expand(items []string, dict map[string]string) ([]string, error) {
	resolved, err := t.resolve(dict)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		env := map[string]interface{}{"i": i, "val": item}

		var b strings.Builder
		for _, s := range resolved {
			if s.kind != expansion {
				b.WriteString(s.text)
				continue
			}

			value, err := expr.Run(s.program, env)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrTemplateEval,
					"failed to evaluate %s for item %d", s.text, i).
					WithDetail("item", item)
			}
			rendered, err := render(value)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrUnsupportedValue,
					"expression %s produced an unsupported value", s.text)
			}
			b.WriteString(rendered)
		}
		out = append(out, b.String())
	}

	return out, nil
}

// resolve returns the segments with every placeholder turned into a literal.
func (t *Template) resolve(dict map[string]string) ([]segment, error) {
	resolved := make([]segment, len(t.segments))
	for i, s := range t.segments {
		if s.kind != placeholder {
			resolved[i] = s
			continue
		}
		value, ok := dict[s.text]
		if !ok {
			return nil, errors.Newf(errors.ErrMissingKey, "substitution key not found: %s", s.text).
				WithDetail("key", s.text)
		}
		resolved[i] = segment{kind: literal, text: value}
	}
	return resolved, nil
}

func render(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("cannot render %T", value)
	}
}
