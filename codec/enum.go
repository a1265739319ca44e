package codec

import "fmt"

// EnumCodec passes enumerated values through unchanged. The wire form of an
// enumerated type is its label text; membership in the enumerated domain is
// enforced at the field layer, not here.
type EnumCodec struct{}

func (EnumCodec) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case string:
		return []byte(v), nil
	case fmt.Stringer:
		return []byte(v.String()), nil
	default:
		return nil, fmt.Errorf("codec: cannot encode %T as enum label", v)
	}
}

func (EnumCodec) Decode(data []byte) (any, error) {
	return string(data), nil
}
