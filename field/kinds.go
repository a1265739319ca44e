package field

import (
	"encoding/json"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/cargo"
	"github.com/syssam/cargo/codec"
)

// A Kind identifies the database type a field maps to and selects its
// normalizer.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindText
	KindSmallInt
	KindInt
	KindBigInt
	KindFloat
	KindBool
	KindDate
	KindTime
	KindTimestamp
	KindUID
	KindIP
	KindCidr
	KindMacAddress
	KindBit
	KindVarbit
	KindBinary
	KindJSON
	KindEnum
	KindArray
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindString:     "string",
	KindText:       "text",
	KindSmallInt:   "smallint",
	KindInt:        "int",
	KindBigInt:     "bigint",
	KindFloat:      "float",
	KindBool:       "bool",
	KindDate:       "date",
	KindTime:       "time",
	KindTimestamp:  "timestamp",
	KindUID:        "uuid",
	KindIP:         "inet",
	KindCidr:       "cidr",
	KindMacAddress: "macaddr",
	KindBit:        "bit",
	KindVarbit:     "varbit",
	KindBinary:     "bytea",
	KindJSON:       "json",
	KindEnum:       "enum",
	KindArray:      "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// OID returns the logical type identifier matching the kind.
func (k Kind) OID() codec.OID {
	switch k {
	case KindString:
		return codec.TypeVarchar
	case KindText:
		return codec.TypeText
	case KindSmallInt:
		return codec.TypeInt2
	case KindInt:
		return codec.TypeInt4
	case KindBigInt:
		return codec.TypeInt8
	case KindFloat:
		return codec.TypeFloat8
	case KindBool:
		return codec.TypeBool
	case KindDate:
		return codec.TypeDate
	case KindTime:
		return codec.TypeTimestampTZ
	case KindTimestamp:
		return codec.TypeTimestamp
	case KindUID:
		return codec.TypeUUID
	case KindIP:
		return codec.TypeInet
	case KindCidr:
		return codec.TypeCidr
	case KindMacAddress:
		return codec.TypeMacaddr
	case KindBit:
		return codec.TypeBit
	case KindVarbit:
		return codec.TypeVarbit
	case KindBinary:
		return codec.TypeBytea
	case KindJSON:
		return codec.TypeJSONB
	default:
		return 0
	}
}

// KindOf maps a database type name to the field kind that stores it.
// Names translate through the codec catalog, so aliases like "integer"
// or "character varying" resolve too. Array names ("_int4", "text[]")
// map to KindArray. An unknown name reports a TranslationError.
func KindOf(name string) (Kind, error) {
	if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "[]") {
		return KindArray, nil
	}
	oid, err := codec.TypeOID(name)
	if err != nil {
		return KindInvalid, err
	}
	switch oid {
	case codec.TypeVarchar:
		return KindString, nil
	case codec.TypeText:
		return KindText, nil
	case codec.TypeInt2:
		return KindSmallInt, nil
	case codec.TypeInt4:
		return KindInt, nil
	case codec.TypeInt8:
		return KindBigInt, nil
	case codec.TypeFloat4, codec.TypeFloat8, codec.TypeNumeric:
		return KindFloat, nil
	case codec.TypeBool:
		return KindBool, nil
	case codec.TypeDate:
		return KindDate, nil
	case codec.TypeTimestampTZ:
		return KindTime, nil
	case codec.TypeTimestamp:
		return KindTimestamp, nil
	case codec.TypeUUID:
		return KindUID, nil
	case codec.TypeInet:
		return KindIP, nil
	case codec.TypeCidr:
		return KindCidr, nil
	case codec.TypeMacaddr:
		return KindMacAddress, nil
	case codec.TypeBit:
		return KindBit, nil
	case codec.TypeVarbit:
		return KindVarbit, nil
	case codec.TypeBytea:
		return KindBinary, nil
	case codec.TypeJSON, codec.TypeJSONB:
		return KindJSON, nil
	default:
		return KindInvalid, cargo.NewTranslationError(name)
	}
}

func (k Kind) normalizer() Normalizer {
	switch k {
	case KindString, KindText:
		return normalizeString
	case KindSmallInt, KindInt, KindBigInt:
		return normalizeInt
	case KindFloat:
		return normalizeFloat
	case KindBool:
		return normalizeBool
	case KindDate:
		return normalizeDate
	case KindTime, KindTimestamp:
		return normalizeTime
	case KindUID:
		return normalizeUUID
	case KindIP:
		return normalizeIP
	case KindCidr:
		return normalizeCidr
	case KindMacAddress:
		return normalizeMac
	case KindBit, KindVarbit:
		return normalizeBit
	case KindBinary:
		return normalizeBinary
	case KindJSON:
		return normalizeJSON
	default:
		return func(f *Field, v any) (any, error) {
			return nil, cargo.Validationf(f.name, cargo.CodeType, "field has no kind")
		}
	}
}

// String returns a varchar field. Bound length is enforced at Validate
// time, not at Set time.
func String(name string) *Field {
	f := New(KindString, name)
	f.length = 255
	f.validator = &LengthValidator{Max: f.length}
	return f
}

// Text returns an unbounded text field.
func Text(name string) *Field {
	return New(KindText, name)
}

// SmallInt returns a 16-bit integer field.
func SmallInt(name string) *Field {
	f := New(KindSmallInt, name)
	f.validator = &RangeValidator{Min: ptr(int64(-1 << 15)), Max: ptr(int64(1<<15 - 1))}
	return f
}

// Int returns a 32-bit integer field.
func Int(name string) *Field {
	f := New(KindInt, name)
	f.validator = &RangeValidator{Min: ptr(int64(-1 << 31)), Max: ptr(int64(1<<31 - 1))}
	return f
}

// BigInt returns a 64-bit integer field.
func BigInt(name string) *Field {
	return New(KindBigInt, name)
}

// Float returns a double precision field.
func Float(name string) *Field {
	return New(KindFloat, name)
}

// Bool returns a boolean field.
func Bool(name string) *Field {
	return New(KindBool, name)
}

// Date returns a date field. Values normalize to midnight UTC.
func Date(name string) *Field {
	return New(KindDate, name)
}

// Time returns a timestamptz field.
func Time(name string) *Field {
	return New(KindTime, name)
}

// Timestamp returns a timestamp field without a time zone.
func Timestamp(name string) *Field {
	return New(KindTimestamp, name)
}

// UID returns a uuid field.
func UID(name string) *Field {
	return New(KindUID, name)
}

// IP returns an inet field holding a host address.
func IP(name string) *Field {
	return New(KindIP, name)
}

// Cidr returns a cidr field holding a network prefix.
func Cidr(name string) *Field {
	return New(KindCidr, name)
}

// MacAddress returns a macaddr field.
func MacAddress(name string) *Field {
	return New(KindMacAddress, name)
}

// Bit returns a fixed-length bit string field.
func Bit(name string, length int) *Field {
	f := New(KindBit, name)
	f.length = length
	f.validator = &BitValidator{Length: length, Exact: true}
	return f
}

// Varbit returns a variable-length bit string field bounded by length.
func Varbit(name string, length int) *Field {
	f := New(KindVarbit, name)
	f.length = length
	f.validator = &BitValidator{Length: length}
	return f
}

// Binary returns a bytea field.
func Binary(name string) *Field {
	return New(KindBinary, name)
}

// JSON returns a jsonb field. Values must marshal with encoding/json.
func JSON(name string) *Field {
	return New(KindJSON, name)
}

func ptr[T any](v T) *T { return &v }

func normalizeString(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeInt(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return nil, cargo.Validationf(f.name, cargo.CodeType, "%v is not an integer", v)
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, cargo.Validationf(f.name, cargo.CodeType, "%q is not an integer", v)
		}
		return n, nil
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeFloat(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, cargo.Validationf(f.name, cargo.CodeType, "%q is not a number", v)
		}
		return n, nil
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeBool(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "t", "true", "1", "yes", "on":
			return true, nil
		case "f", "false", "0", "no", "off":
			return false, nil
		}
		return nil, cargo.Validationf(f.name, cargo.CodeType, "%q is not a boolean", v)
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeDate(f *Field, v any) (any, error) {
	t, err := normalizeTime(f, v)
	if err != nil {
		return nil, err
	}
	tt := t.(time.Time)
	y, m, d := tt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	codec.TimestampTZLayout,
	codec.TimestampLayout,
	codec.DateLayout,
}

func normalizeTime(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return nil, cargo.Validationf(f.name, cargo.CodeType, "%q is not a timestamp", v)
	case int64:
		return time.Unix(v, 0).UTC(), nil
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeUUID(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case uuid.UUID:
		return v, nil
	case [16]byte:
		return uuid.UUID(v), nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "%q is not a valid uuid", v)
		}
		return id, nil
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "%q is not a valid uuid", v)
		}
		return id, nil
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeIP(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case netip.Addr:
		return v, nil
	case net.IP:
		addr, ok := netip.AddrFromSlice(v)
		if !ok {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "%v is not a valid address", v)
		}
		return addr.Unmap(), nil
	case string:
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "%q is not a valid address", v)
		}
		return addr, nil
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeCidr(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case netip.Prefix:
		return v, nil
	case string:
		p, err := netip.ParsePrefix(v)
		if err != nil {
			// A bare address is a /32 or /128 network.
			addr, aerr := netip.ParseAddr(v)
			if aerr != nil {
				return nil, cargo.Validationf(f.name, cargo.CodeValue, "%q is not a valid network", v)
			}
			return netip.PrefixFrom(addr, addr.BitLen()), nil
		}
		return p.Masked(), nil
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeMac(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case net.HardwareAddr:
		return v, nil
	case string:
		hw, err := net.ParseMAC(v)
		if err != nil {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "%q is not a valid mac address", v)
		}
		return hw, nil
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeBit(f *Field, v any) (any, error) {
	var s string
	switch v := v.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "bit string may contain only 0 and 1")
		}
	}
	return s, nil
}

func normalizeBinary(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case []byte:
		b := make([]byte, len(v))
		copy(b, v)
		return b, nil
	case string:
		return []byte(v), nil
	default:
		return nil, cargo.Validationf(f.name, cargo.CodeType, "cannot store %T in a %s field", v, f.kind)
	}
}

func normalizeJSON(f *Field, v any) (any, error) {
	switch v := v.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "invalid json document")
		}
		return v, nil
	case []byte:
		if !json.Valid(v) {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "invalid json document")
		}
		return json.RawMessage(v), nil
	case string:
		if !json.Valid([]byte(v)) {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "invalid json document")
		}
		return json.RawMessage(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, cargo.Validationf(f.name, cargo.CodeValue, "value does not marshal to json: %v", err)
		}
		return json.RawMessage(b), nil
	}
}
