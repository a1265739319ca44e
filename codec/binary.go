package codec

import (
	"encoding/base64"
	"fmt"
)

// BinaryCodec converts binary values through a reversible text-safe
// transformation before the driver's bytea escaping sees them. Decode
// tolerates columns written before the codec existed: when the payload is
// not valid base64 it is returned as raw bytes.
type BinaryCodec struct{}

func (BinaryCodec) Encode(v any) ([]byte, error) {
	var raw []byte
	switch v := v.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil, fmt.Errorf("codec: cannot encode %T as binary", v)
	}
	dst := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(dst, raw)
	return dst, nil
}

func (BinaryCodec) Decode(data []byte) (any, error) {
	dst := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(dst, data)
	if err != nil {
		raw := make([]byte, len(data))
		copy(raw, data)
		return raw, nil
	}
	return dst[:n], nil
}
