package codec

import (
	"strconv"
	"strings"

	"github.com/syssam/cargo"
)

// typeNames maps catalog type names to OIDs. Array types use the catalog's
// leading-underscore convention.
var typeNames = map[string]OID{
	"bool":        TypeBool,
	"boolean":     TypeBool,
	"bytea":       TypeBytea,
	"int2":        TypeInt2,
	"smallint":    TypeInt2,
	"int4":        TypeInt4,
	"int":         TypeInt4,
	"integer":     TypeInt4,
	"int8":        TypeInt8,
	"bigint":      TypeInt8,
	"text":        TypeText,
	"varchar":     TypeVarchar,
	"json":        TypeJSON,
	"jsonb":       TypeJSONB,
	"float4":      TypeFloat4,
	"real":        TypeFloat4,
	"float8":      TypeFloat8,
	"numeric":     TypeNumeric,
	"decimal":     TypeNumeric,
	"cidr":        TypeCidr,
	"macaddr":     TypeMacaddr,
	"inet":        TypeInet,
	"date":        TypeDate,
	"timestamp":   TypeTimestamp,
	"timestamptz": TypeTimestampTZ,
	"bit":         TypeBit,
	"varbit":      TypeVarbit,
	"uuid":        TypeUUID,

	"_bool":        TypeBoolArray,
	"_bytea":       TypeByteaArray,
	"_int2":        TypeInt2Array,
	"_int4":        TypeInt4Array,
	"_int8":        TypeInt8Array,
	"_text":        TypeTextArray,
	"_varchar":     TypeVarcharArray,
	"_float8":      TypeFloat8Array,
	"_inet":        TypeInetArray,
	"_timestamp":   TypeTimestampArray,
	"_timestamptz": TypeTimestampTZArray,
	"_bit":         TypeBitArray,
	"_varbit":      TypeVarbitArray,
	"_numeric":     TypeNumericArray,
	"_uuid":        TypeUUIDArray,
	"_jsonb":       TypeJSONBArray,
}

// oidNames is the reverse mapping. It carries the canonical catalog name
// for each OID, not the aliases, so a name translated back always
// round-trips through TypeOID.
var oidNames = map[OID]string{
	TypeBool:        "bool",
	TypeBytea:       "bytea",
	TypeInt2:        "int2",
	TypeInt4:        "int4",
	TypeInt8:        "int8",
	TypeText:        "text",
	TypeVarchar:     "varchar",
	TypeJSON:        "json",
	TypeJSONB:       "jsonb",
	TypeFloat4:      "float4",
	TypeFloat8:      "float8",
	TypeNumeric:     "numeric",
	TypeCidr:        "cidr",
	TypeMacaddr:     "macaddr",
	TypeInet:        "inet",
	TypeDate:        "date",
	TypeTimestamp:   "timestamp",
	TypeTimestampTZ: "timestamptz",
	TypeBit:         "bit",
	TypeVarbit:      "varbit",
	TypeUUID:        "uuid",

	TypeBoolArray:        "_bool",
	TypeByteaArray:       "_bytea",
	TypeInt2Array:        "_int2",
	TypeInt4Array:        "_int4",
	TypeInt8Array:        "_int8",
	TypeTextArray:        "_text",
	TypeVarcharArray:     "_varchar",
	TypeFloat8Array:      "_float8",
	TypeInetArray:        "_inet",
	TypeTimestampArray:   "_timestamp",
	TypeTimestampTZArray: "_timestamptz",
	TypeBitArray:         "_bit",
	TypeVarbitArray:      "_varbit",
	TypeNumericArray:     "_numeric",
	TypeUUIDArray:        "_uuid",
	TypeJSONBArray:       "_jsonb",
}

// TypeOID translates a database-native type name to its OID. Names are
// matched case-insensitively; modifiers such as length are stripped, so
// "varchar(255)" and "VARCHAR" both translate. Unknown names produce a
// TranslationError.
func TypeOID(name string) (OID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i >= 0 {
		n = n[:i]
	}
	if strings.HasSuffix(n, "[]") {
		n = "_" + strings.TrimSuffix(n, "[]")
	}
	if oid, ok := typeNames[n]; ok {
		return oid, nil
	}
	return 0, cargo.NewTranslationError(name)
}

// TypeName translates an OID back to its canonical catalog name. Unknown
// OIDs produce a TranslationError.
func TypeName(oid OID) (string, error) {
	if name, ok := oidNames[oid]; ok {
		return name, nil
	}
	return "", cargo.NewTranslationError("oid:" + strconv.FormatUint(uint64(oid), 10))
}
