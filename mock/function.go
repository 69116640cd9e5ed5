package mock

// Impl is the native implementation of a callable: it receives the
// invocation receiver and the argument list and returns a result.
type Impl func(this Value, args []Value) Value

// Function is a callable component. Like objects it carries own members;
// in addition it has a display name, a native implementation, a behavior
// template shared by constructed instances, and, for instrumented
// callables, a MockState record driving every invocation.
type Function struct {
	memberTable

	name  string
	bound bool
	impl  Impl

	// behavior is the template constructed instances delegate to. Its
	// owner link points back here.
	behavior *Object

	// mock is non-nil exactly for instrumented callables.
	mock *MockState
}

// NewFunction creates a plain (non-instrumented) callable with the given
// display name and implementation. A fresh behavior template is attached.
func NewFunction(name string, impl Impl) *Function {
	f := &Function{name: name, impl: impl}
	f.behavior = &Object{proto: Root, owner: f}
	return f
}

// ToValue wraps the function in a Value.
func (f *Function) ToValue() Value {
	return Value{Tag: TagFunction, Data: f}
}

// Name returns the raw captured name.
func (f *Function) Name() string {
	return f.name
}

// DisplayName returns the runtime label: the sanitized name, re-prefixed
// when the callable reports having been bound. Display only; never
// affects invocation.
func (f *Function) DisplayName() string {
	if f.bound {
		return "bound " + f.name
	}
	return f.name
}

// Behavior returns the behavior template shared by constructed instances.
func (f *Function) Behavior() *Object {
	return f.behavior
}

// SetBehavior replaces the behavior template and re-links its owner
// marker to f.
func (f *Function) SetBehavior(b *Object) {
	f.behavior = b
	if b != nil {
		b.owner = f
	}
}

// Call invokes the callable with an explicit receiver. Instrumented
// callables run the full override-resolution algorithm and record the
// invocation; plain callables dispatch straight to their implementation.
func (f *Function) Call(this Value, args ...Value) Value {
	if f.mock != nil {
		return f.invokeMock(this, args)
	}
	if f.impl != nil {
		return f.impl(this, args)
	}
	return Undefined
}

// Invoke calls the callable with an undefined receiver.
func (f *Function) Invoke(args ...Value) Value {
	return f.Call(Undefined, args...)
}

// New emulates constructor-style invocation: a fresh receiver delegating
// to the behavior template is created and the callable is invoked on it.
// The receiver is returned unless the invocation produced an object.
func (f *Function) New(args ...Value) Value {
	recv := NewObject()
	if f.behavior != nil {
		recv.SetProto(f.behavior)
	}
	res := f.Call(recv.ToValue(), args...)
	if res.Tag == TagObject {
		return res
	}
	return recv.ToValue()
}

// asImpl adapts the callable into an Impl, preserving its full call
// semantics (a mock invoked through the adapter still records).
func (f *Function) asImpl() Impl {
	return func(this Value, args []Value) Value {
		return f.Call(this, args...)
	}
}
