package mock

// Category names a classifier result. The string values are the `type`
// discriminants of the serialized metadata format.
type Category string

const (
	TypeFunction   Category = "function"
	TypeArray      Category = "array"
	TypeObject     Category = "object"
	TypeConstant   Category = "constant"
	TypeCollection Category = "collection"
	TypeRegexp     Category = "regexp"
	TypeUndefined  Category = "undefined"
	TypeNull       Category = "null"

	// Unrecognized signals the caller to skip the value rather than fail.
	Unrecognized Category = ""
)

// Classify categorizes a value. Deterministic and side-effect-free;
// first match wins in the order callable, ordered list, plain record,
// primitive, keyed collection, pattern matcher, undefined, null.
// Anything else (opaque handles included) is unrecognized.
func Classify(v Value) Category {
	switch v.Tag {
	case TagFunction:
		return TypeFunction
	case TagArray:
		return TypeArray
	case TagObject:
		return TypeObject
	case TagConstant:
		if isPrimitive(v.Data) {
			return TypeConstant
		}
		return Unrecognized
	case TagCollection:
		return TypeCollection
	case TagRegexp:
		return TypeRegexp
	case TagUndefined:
		return TypeUndefined
	case TagNull:
		return TypeNull
	default:
		return Unrecognized
	}
}

// knownCategory reports whether t is one of the classifier categories.
// Used by generation to reject corrupted metadata.
func knownCategory(t Category) bool {
	switch t {
	case TypeFunction, TypeArray, TypeObject, TypeConstant,
		TypeCollection, TypeRegexp, TypeUndefined, TypeNull:
		return true
	}
	return false
}

// isPrimitive reports whether data is a supported constant payload:
// a boolean, an integer, a float or a string.
func isPrimitive(data any) bool {
	switch data.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
