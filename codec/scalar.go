package codec

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Wire layouts for the date/time types.
const (
	DateLayout        = "2006-01-02"
	TimestampLayout   = "2006-01-02 15:04:05.999999"
	TimestampTZLayout = "2006-01-02 15:04:05.999999-07"
)

// TextCodec passes text through unchanged.
type TextCodec struct{}

func (TextCodec) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case fmt.Stringer:
		return []byte(v.String()), nil
	default:
		return nil, fmt.Errorf("codec: cannot encode %T as text", v)
	}
}

func (TextCodec) Decode(data []byte) (any, error) {
	return string(data), nil
}

// IntCodec converts integer values to and from their decimal text form.
// Decoded values are always int64.
type IntCodec struct{}

func (IntCodec) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case int:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int16:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int32:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int64:
		return strconv.AppendInt(nil, v, 10), nil
	case uint64:
		return strconv.AppendUint(nil, v, 10), nil
	default:
		return nil, fmt.Errorf("codec: cannot encode %T as integer", v)
	}
}

func (IntCodec) Decode(data []byte) (any, error) {
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("codec: invalid integer %q: %w", data, err)
	}
	return n, nil
}

// FloatCodec converts floating point values to and from text.
// Decoded values are always float64.
type FloatCodec struct{}

func (FloatCodec) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case float32:
		return strconv.AppendFloat(nil, float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
	case int:
		return strconv.AppendFloat(nil, float64(v), 'g', -1, 64), nil
	case int64:
		return strconv.AppendFloat(nil, float64(v), 'g', -1, 64), nil
	default:
		return nil, fmt.Errorf("codec: cannot encode %T as float", v)
	}
}

func (FloatCodec) Decode(data []byte) (any, error) {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return nil, fmt.Errorf("codec: invalid float %q: %w", data, err)
	}
	return f, nil
}

// BoolCodec converts booleans to and from the single-letter wire form.
type BoolCodec struct{}

func (BoolCodec) Encode(v any) ([]byte, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("codec: cannot encode %T as bool", v)
	}
	if b {
		return []byte("t"), nil
	}
	return []byte("f"), nil
}

func (BoolCodec) Decode(data []byte) (any, error) {
	switch string(data) {
	case "t", "true":
		return true, nil
	case "f", "false":
		return false, nil
	}
	return nil, fmt.Errorf("codec: invalid bool %q", data)
}

// TimeCodec converts time.Time values using a fixed wire layout.
type TimeCodec struct {
	Layout string
}

func (c TimeCodec) Encode(v any) ([]byte, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("codec: cannot encode %T as time", v)
	}
	return []byte(t.Format(c.Layout)), nil
}

func (c TimeCodec) Decode(data []byte) (any, error) {
	t, err := time.Parse(c.Layout, string(data))
	if err != nil {
		return nil, fmt.Errorf("codec: invalid time %q: %w", data, err)
	}
	return t, nil
}

// UUIDCodec converts uuid.UUID values to and from their canonical text form.
type UUIDCodec struct{}

func (UUIDCodec) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case uuid.UUID:
		return []byte(v.String()), nil
	case string:
		u, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("codec: invalid uuid %q: %w", v, err)
		}
		return []byte(u.String()), nil
	default:
		return nil, fmt.Errorf("codec: cannot encode %T as uuid", v)
	}
}

func (UUIDCodec) Decode(data []byte) (any, error) {
	u, err := uuid.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("codec: invalid uuid %q: %w", data, err)
	}
	return u, nil
}

// InetCodec converts netip.Addr values to and from the inet text form.
type InetCodec struct{}

func (InetCodec) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case netip.Addr:
		return []byte(v.String()), nil
	case netip.Prefix:
		// Decode yields a prefix for inet values carrying a mask.
		return []byte(v.String()), nil
	case string:
		a, err := netip.ParseAddr(v)
		if err != nil {
			p, perr := netip.ParsePrefix(v)
			if perr != nil {
				return nil, fmt.Errorf("codec: invalid inet %q: %w", v, err)
			}
			return []byte(p.String()), nil
		}
		return []byte(a.String()), nil
	default:
		return nil, fmt.Errorf("codec: cannot encode %T as inet", v)
	}
}

func (InetCodec) Decode(data []byte) (any, error) {
	// inet values may carry a prefix length.
	s := string(data)
	if strings.ContainsRune(s, '/') {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return nil, fmt.Errorf("codec: invalid inet %q: %w", data, err)
		}
		return p, nil
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return nil, fmt.Errorf("codec: invalid inet %q: %w", data, err)
	}
	return a, nil
}

// CidrCodec converts netip.Prefix values to and from the cidr text form.
type CidrCodec struct{}

func (CidrCodec) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case netip.Prefix:
		return []byte(v.String()), nil
	case string:
		p, err := netip.ParsePrefix(v)
		if err != nil {
			return nil, fmt.Errorf("codec: invalid cidr %q: %w", v, err)
		}
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("codec: cannot encode %T as cidr", v)
	}
}

func (CidrCodec) Decode(data []byte) (any, error) {
	p, err := netip.ParsePrefix(string(data))
	if err != nil {
		return nil, fmt.Errorf("codec: invalid cidr %q: %w", data, err)
	}
	return p, nil
}

// MacCodec converts net.HardwareAddr values to and from the macaddr text form.
type MacCodec struct{}

func (MacCodec) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case net.HardwareAddr:
		return []byte(v.String()), nil
	case string:
		hw, err := net.ParseMAC(v)
		if err != nil {
			return nil, fmt.Errorf("codec: invalid macaddr %q: %w", v, err)
		}
		return []byte(hw.String()), nil
	default:
		return nil, fmt.Errorf("codec: cannot encode %T as macaddr", v)
	}
}

func (MacCodec) Decode(data []byte) (any, error) {
	hw, err := net.ParseMAC(string(data))
	if err != nil {
		return nil, fmt.Errorf("codec: invalid macaddr %q: %w", data, err)
	}
	return hw, nil
}

// BitCodec converts bit strings (sequences of '0' and '1') to and from text.
type BitCodec struct{}

func (BitCodec) Encode(v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("codec: cannot encode %T as bit string", v)
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return nil, fmt.Errorf("codec: invalid bit string %q", s)
		}
	}
	return []byte(s), nil
}

func (BitCodec) Decode(data []byte) (any, error) {
	for i := 0; i < len(data); i++ {
		if data[i] != '0' && data[i] != '1' {
			return nil, fmt.Errorf("codec: invalid bit string %q", data)
		}
	}
	return string(data), nil
}
