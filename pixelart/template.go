package pixelart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrTemplateSyntax = errors.New("format error")
	ErrUnknownField   = errors.New("illegal key")
)

// Field is a substitution field usable in a name template.
type Field uint8

const (
	FieldFilename Field = iota
	FieldUseNodes
	FieldColor
	FieldX
	FieldY
)

var fieldNames = [...]string{
	FieldFilename: "filename",
	FieldUseNodes: "use_nodes",
	FieldColor:    "color",
	FieldX:        "x",
	FieldY:        "y",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "Field(" + strconv.Itoa(int(f)) + ")"
}

func (f Field) numeric() bool {
	return f == FieldX || f == FieldY
}

// TemplateKind selects which fields a template may reference.
type TemplateKind uint8

const (
	// GroupTemplate names the group node: filename and use_nodes.
	GroupTemplate TemplateKind = iota
	// PixelTemplate names per-pixel cubes, meshes and materials.
	PixelTemplate
)

func (k TemplateKind) allows(f Field) bool {
	if k == GroupTemplate {
		return f == FieldFilename || f == FieldUseNodes
	}
	return true
}

func lookupField(kind TemplateKind, name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name && kind.allows(Field(i)) {
			return Field(i), true
		}
	}
	return 0, false
}

// TemplateError reports a template that failed to compile.
type TemplateError struct {
	Setting string // which name setting, e.g. "material names"
	Field   string // offending field for ErrUnknownField
	Msg     string
	Err     error
}

func (e *TemplateError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnknownField):
		return fmt.Sprintf("illegal key used in %s: %q", e.Setting, e.Field)
	case e.Msg != "":
		return fmt.Sprintf("format error in %s: %s", e.Setting, e.Msg)
	default:
		return fmt.Sprintf("format error in %s", e.Setting)
	}
}

func (e *TemplateError) Unwrap() error { return e.Err }

// NameParams are the values substituted into a template.
type NameParams struct {
	Filename string
	UseNodes bool
	Color    Color
	X, Y     int
}

type segment struct {
	literal string
	field   Field
	isField bool
	zero    bool
	width   int
	verb    byte
}

// Template is a compiled name template.
type Template struct {
	kind     TemplateKind
	source   string
	segments []segment
}

// ParseTemplate compiles src for the given kind. setting names the option
// in error messages.
func ParseTemplate(kind TemplateKind, setting, src string) (*Template, error) {
	t := &Template{kind: kind, source: src}
	fail := func(msg string) error {
		return &TemplateError{Setting: setting, Msg: msg, Err: ErrTemplateSyntax}
	}
	var lit strings.Builder
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fail("single '}' encountered in format string")
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexAny(src[i+1:], "{}")
			if end < 0 || src[i+1+end] != '}' {
				return nil, fail("expected '}' before end of string")
			}
			body := src[i+1 : i+1+end]
			seg, err := parseReplacement(kind, body)
			if err != nil {
				var te *TemplateError
				if errors.As(err, &te) {
					te.Setting = setting
				}
				return nil, err
			}
			if lit.Len() > 0 {
				t.segments = append(t.segments, segment{literal: lit.String()})
				lit.Reset()
			}
			t.segments = append(t.segments, seg)
			i += end + 1
		default:
			lit.WriteByte(c)
		}
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}
	return t, nil
}

func parseReplacement(kind TemplateKind, body string) (segment, error) {
	name, spec, hasSpec := strings.Cut(body, ":")
	if strings.ContainsRune(name, '!') {
		return segment{}, &TemplateError{Msg: "conversion flags are not supported", Err: ErrTemplateSyntax}
	}
	if name == "" {
		return segment{}, &TemplateError{Msg: "empty field name", Err: ErrTemplateSyntax}
	}
	f, ok := lookupField(kind, name)
	if !ok {
		return segment{}, &TemplateError{Field: name, Err: ErrUnknownField}
	}
	seg := segment{field: f, isField: true}
	if !hasSpec {
		return seg, nil
	}
	if err := parseSpec(&seg, spec); err != nil {
		return segment{}, &TemplateError{Msg: err.Error(), Err: ErrTemplateSyntax}
	}
	return seg, nil
}

// parseSpec accepts [0][width][type].
func parseSpec(seg *segment, spec string) error {
	if strings.HasPrefix(spec, "0") {
		seg.zero = true
		spec = spec[1:]
	}
	digits := 0
	for digits < len(spec) && spec[digits] >= '0' && spec[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		w, err := strconv.Atoi(spec[:digits])
		if err != nil {
			return fmt.Errorf("invalid width %q", spec[:digits])
		}
		seg.width = w
		spec = spec[digits:]
	}
	switch spec {
	case "":
	case "d", "x", "X":
		if !seg.field.numeric() {
			return fmt.Errorf("unknown format code '%s' for field %s", spec, seg.field)
		}
		seg.verb = spec[0]
	case "s":
		if seg.field.numeric() {
			return fmt.Errorf("unknown format code 's' for field %s", seg.field)
		}
		seg.verb = 's'
	default:
		return fmt.Errorf("invalid format specifier %q", spec)
	}
	return nil
}

// Kind returns the template kind it was compiled for.
func (t *Template) Kind() TemplateKind { return t.kind }

func (t *Template) String() string { return t.source }

// Fields lists the fields referenced by the template, in order.
func (t *Template) Fields() []Field {
	var out []Field
	for _, s := range t.segments {
		if s.isField {
			out = append(out, s.field)
		}
	}
	return out
}

// Execute renders the template.
func (t *Template) Execute(p NameParams) string {
	var b strings.Builder
	for _, s := range t.segments {
		if !s.isField {
			b.WriteString(s.literal)
			continue
		}
		b.WriteString(s.render(p))
	}
	return b.String()
}

func (s segment) render(p NameParams) string {
	var v string
	switch s.field {
	case FieldFilename:
		v = p.Filename
	case FieldUseNodes:
		if p.UseNodes {
			v = "nodes"
		}
	case FieldColor:
		v = p.Color.Hex()
	case FieldX, FieldY:
		n := p.X
		if s.field == FieldY {
			n = p.Y
		}
		verb := s.verb
		if verb == 0 {
			verb = 'd'
		}
		format := "%"
		if s.zero {
			format += "0"
		}
		if s.width > 0 {
			format += strconv.Itoa(s.width)
		}
		return fmt.Sprintf(format+string(verb), n)
	}
	if s.width > len(v) {
		// strings are left-aligned
		v += strings.Repeat(" ", s.width-len(v))
	}
	return v
}
