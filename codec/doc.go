// Package codec converts between native Go values and database wire
// representations.
//
// Each logical database type is identified by an OID and served by a Codec,
// an encode/decode pair over the textual wire form. A Registry holds the
// OID-to-codec table; NewRegistry seeds it with codecs for the built-in
// scalar and array types.
//
// # Registries are explicit
//
// There is no process-global registration table. Construct a Registry at
// application start and thread it through to whatever builds fields and
// decodes rows:
//
//	reg := codec.NewRegistry()
//	v, err := reg.Decode(codec.TypeInt4Array, []byte("{1,2,3}"))
//
// # Late-bound types
//
// Enumerated types receive their OIDs from the database at runtime.
// RegisterEnum resolves the name through a TypeResolver, registers the enum
// and enum-array codecs, and caches the result; concurrent and repeated
// calls are deduplicated:
//
//	oid, arrayOID, err := reg.RegisterEnum(ctx, resolver, "users_role_enumtype")
//	if errors.Is(err, codec.ErrTypeNotFound) {
//	    // the type does not exist yet; registration is skipped, not fatal
//	}
//
// # Arrays
//
// The array codec is recursive: nested []any values encode to nested array
// literals, and Decode parses them back. Encoded literals carry an explicit
// ::type[] cast suffix so that empty arrays keep their element type.
package codec
