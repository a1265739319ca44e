package codec

import (
	"bytes"
	"fmt"
	"strings"
)

// ArrayCodec converts nested []any values to and from the database's array
// literal syntax. Encode appends an explicit element-type cast suffix when
// ElemName is set, because the backend cannot infer the element type of an
// empty array literal on its own.
type ArrayCodec struct {
	Elem     Codec  // codec for the leaf elements
	ElemName string // database-side element type name, optional
}

// Encode renders v, which must be a []any (possibly nested), as an array
// literal such as {a,b,{c,d}}::text[].
func (c *ArrayCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.encode(&buf, v); err != nil {
		return nil, err
	}
	if c.ElemName != "" {
		fmt.Fprintf(&buf, "::%s[]", c.ElemName)
	}
	return buf.Bytes(), nil
}

func (c *ArrayCodec) encode(buf *bytes.Buffer, v any) error {
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("codec: cannot encode %T as array", v)
	}
	buf.WriteByte('{')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		switch item := item.(type) {
		case nil:
			buf.WriteString("NULL")
		case []any:
			if err := c.encode(buf, item); err != nil {
				return err
			}
		default:
			data, err := c.Elem.Encode(item)
			if err != nil {
				return err
			}
			writeArrayElem(buf, data)
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeArrayElem writes one leaf element, quoting it when the wire form
// contains characters that are significant inside an array literal.
func writeArrayElem(buf *bytes.Buffer, data []byte) {
	s := string(data)
	if s != "" && !strings.EqualFold(s, "NULL") && !strings.ContainsAny(s, `{},"\ `) {
		buf.WriteString(s)
		return
	}
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(s[i])
	}
	buf.WriteByte('"')
}

// Decode parses an array literal back into a nested []any. A trailing
// ::name[] cast suffix is tolerated and ignored.
func (c *ArrayCodec) Decode(data []byte) (any, error) {
	s := string(data)
	if i := strings.LastIndex(s, "}::"); i >= 0 && strings.HasSuffix(s, "[]") {
		s = s[:i+1]
	}
	p := &arrayParser{src: s, elem: c.Elem}
	v, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("codec: trailing data in array literal %q", data)
	}
	return v, nil
}

// arrayParser is a recursive-descent parser for array literals.
type arrayParser struct {
	src  string
	pos  int
	elem Codec
}

func (p *arrayParser) parse() ([]any, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return nil, fmt.Errorf("codec: malformed array literal %q", p.src)
	}
	p.pos++
	var items []any
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return []any{}, nil
	}
	for {
		item, err := p.element()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("codec: unterminated array literal %q", p.src)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return items, nil
		default:
			return nil, fmt.Errorf("codec: malformed array literal %q at %d", p.src, p.pos)
		}
	}
}

func (p *arrayParser) element() (any, error) {
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("codec: unterminated array literal %q", p.src)
	}
	switch p.src[p.pos] {
	case '{':
		return p.parse()
	case '"':
		return p.quoted()
	default:
		return p.bare()
	}
}

func (p *arrayParser) quoted() (any, error) {
	p.pos++ // opening quote
	var sb strings.Builder
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch ch {
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return nil, fmt.Errorf("codec: unterminated escape in %q", p.src)
			}
			sb.WriteByte(p.src[p.pos])
			p.pos++
		case '"':
			p.pos++
			return p.elem.Decode([]byte(sb.String()))
		default:
			sb.WriteByte(ch)
			p.pos++
		}
	}
	return nil, fmt.Errorf("codec: unterminated quoted element in %q", p.src)
}

func (p *arrayParser) bare() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != '}' {
		p.pos++
	}
	s := p.src[start:p.pos]
	if s == "NULL" {
		return nil, nil
	}
	return p.elem.Decode([]byte(s))
}
