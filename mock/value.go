package mock

import "regexp"

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag uint8

const (
	TagUndefined  ValueTag = iota // absent value (no payload)
	TagNull                       // explicit null (no payload)
	TagConstant                   // bool / integer / float / string payload
	TagObject                     // *Object
	TagArray                      // *Array
	TagFunction                   // *Function
	TagCollection                 // *Collection (keyed collection held by reference)
	TagRegexp                     // *Regexp
	TagHandle                     // *Handle (opaque host value)
)

// Value is the universal runtime representation handled by the mocker.
//
// It is a small tagged struct:
//   - Tag: discriminant indicating which case is active.
//   - Data: payload appropriate for Tag (e.g. *Object for TagObject,
//     a plain Go scalar for TagConstant).
//
// The zero Value is Undefined. Identity for objects, arrays, functions,
// collections, regexps and handles is pointer identity of the boxed
// payload; constants compare by ==.
type Value struct {
	Tag  ValueTag
	Data any
}

// Pre-defined leaf values.
var (
	Undefined = Value{Tag: TagUndefined}
	Null      = Value{Tag: TagNull}
)

// Collection boxes a keyed collection (typically a Go map) so it has a
// stable identity. The payload is held by reference and never cloned.
type Collection struct {
	Data any
}

// Handle is an opaque host value the mocker does not understand.
// Classification reports it as unrecognized and extraction skips it.
type Handle struct {
	Kind string
	Data any
}

// Regexp boxes a compiled pattern. Like objects and functions it can
// carry its own members; the pattern-configuration intrinsics are never
// part of its observable shape.
type Regexp struct {
	memberTable
	Re *regexp.Regexp
}

// Array is an ordered sequence. Its elements are opaque to extraction:
// only the array's identity and kind are captured.
type Array struct {
	Elems []Value
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// Constant wraps a primitive payload (bool, integer, float or string).
func Constant(data any) Value {
	return Value{Tag: TagConstant, Data: data}
}

// NewCollection boxes a keyed collection payload by reference.
func NewCollection(data any) Value {
	return Value{Tag: TagCollection, Data: &Collection{Data: data}}
}

// HandleVal wraps an opaque host value.
func HandleVal(kind string, data any) Value {
	return Value{Tag: TagHandle, Data: &Handle{Kind: kind, Data: data}}
}

// NewRegexp boxes a compiled pattern.
func NewRegexp(re *regexp.Regexp) Value {
	return Value{Tag: TagRegexp, Data: &Regexp{Re: re}}
}

// NewArray creates an array value holding the given elements.
func NewArray(elems ...Value) Value {
	return Value{Tag: TagArray, Data: &Array{Elems: elems}}
}

// ---------------------------------------------------------------------------
// Payload accessors
// ---------------------------------------------------------------------------

// AsObject returns the object payload, or nil if v is not an object.
func (v Value) AsObject() *Object {
	if v.Tag != TagObject {
		return nil
	}
	return v.Data.(*Object)
}

// AsArray returns the array payload, or nil if v is not an array.
func (v Value) AsArray() *Array {
	if v.Tag != TagArray {
		return nil
	}
	return v.Data.(*Array)
}

// AsFunction returns the function payload, or nil if v is not a function.
func (v Value) AsFunction() *Function {
	if v.Tag != TagFunction {
		return nil
	}
	return v.Data.(*Function)
}

// AsRegexp returns the regexp payload, or nil if v is not a regexp.
func (v Value) AsRegexp() *Regexp {
	if v.Tag != TagRegexp {
		return nil
	}
	return v.Data.(*Regexp)
}

// AsCollection returns the collection box, or nil if v is not a collection.
func (v Value) AsCollection() *Collection {
	if v.Tag != TagCollection {
		return nil
	}
	return v.Data.(*Collection)
}

// IsUndefined returns true if v is the undefined value.
func (v Value) IsUndefined() bool {
	return v.Tag == TagUndefined
}

// ---------------------------------------------------------------------------
// Identity
// ---------------------------------------------------------------------------

// Is reports whether v and w are the same value: the same boxed payload
// for reference kinds, equal scalars for constants.
func (v Value) Is(w Value) bool {
	if v.Tag != w.Tag {
		return false
	}
	switch v.Tag {
	case TagUndefined, TagNull:
		return true
	case TagConstant:
		return v.Data == w.Data
	default:
		// All remaining kinds box their payload in a pointer.
		return v.Data == w.Data
	}
}

// identityKey returns a map key for the identity table. Only reference
// kinds that participate in graph traversal have an identity; leaves
// captured by value (constants, null, undefined) do not.
func identityKey(v Value) (any, bool) {
	switch v.Tag {
	case TagObject, TagArray, TagFunction, TagRegexp:
		return v.Data, true
	default:
		return nil, false
	}
}
