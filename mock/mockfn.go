package mock

// ---------------------------------------------------------------------------
// Instrumented-callable runtime
// ---------------------------------------------------------------------------

// MockState is the runtime record of one instrumented callable: its call
// ledger and the layered override configuration consulted on every
// invocation. One record is created per synthesized callable and lives
// for the callable's lifetime; MockClear resets the ledger only.
//
// The record is mutable shared state with no locking: a single logical
// caller is assumed to configure and invoke a given mock at a time.
type MockState struct {
	calls     [][]Value
	instances []Value

	pendingReturns []Value
	pendingImpls   []Impl

	defaultReturn Value
	defaultImpl   Impl

	// favorReturn is true when the most recent configuration call was a
	// return-value setter. It decides which override family is tried
	// first at invocation time.
	favorReturn bool

	// templateImpl is the fallback captured from the behavior template
	// this callable shadows. Set only on instance copies created during
	// constructor emulation.
	templateImpl Impl
}

// mockConfigMembers are the configuration-surface member names installed
// on every synthesized callable. Extraction regenerates these instead of
// capturing them.
var mockConfigMembers = map[string]bool{
	"mock":                   true,
	"mockClear":              true,
	"mockReturnValue":        true,
	"mockReturnValueOnce":    true,
	"mockImplementation":     true,
	"mockImplementationOnce": true,
	"mockReturnThis":         true,
}

// NewMockFunction synthesizes an instrumented callable with the given
// display name and no captured shape.
func NewMockFunction(name string) *Function {
	f := &Function{name: name, mock: &MockState{defaultReturn: Undefined}}
	f.behavior = &Object{proto: Root, owner: f}
	installConfigMembers(f)
	return f
}

// GetMockFunction returns a bare instrumented callable with no captured
// shape.
func GetMockFunction() *Function {
	return NewMockFunction("")
}

// IsMockFunction reports whether v carries the instrumented-callable
// marker.
func IsMockFunction(v Value) bool {
	f := v.AsFunction()
	return f != nil && f.mock != nil
}

// IsMock reports whether f is an instrumented callable.
func (f *Function) IsMock() bool {
	return f.mock != nil
}

func (f *Function) mustMock() *MockState {
	if f.mock == nil {
		panic("mock: not an instrumented callable")
	}
	return f.mock
}

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

// Calls returns the recorded argument lists, one per invocation, in
// invocation order.
func (f *Function) Calls() [][]Value {
	return f.mustMock().calls
}

// Instances returns the recorded receiver of each invocation, in
// invocation order.
func (f *Function) Instances() []Value {
	return f.mustMock().instances
}

// MockClear empties the call ledger. Override configuration is untouched.
func (f *Function) MockClear() *Function {
	st := f.mustMock()
	st.calls = nil
	st.instances = nil
	return f
}

// ---------------------------------------------------------------------------
// Override configuration (all chainable)
// ---------------------------------------------------------------------------

// MockReturnValueOnce queues a one-shot return value.
func (f *Function) MockReturnValueOnce(v Value) *Function {
	st := f.mustMock()
	st.pendingReturns = append(st.pendingReturns, v)
	st.favorReturn = true
	return f
}

// MockReturnValue sets the persistent return value.
func (f *Function) MockReturnValue(v Value) *Function {
	st := f.mustMock()
	st.defaultReturn = v
	st.favorReturn = true
	return f
}

// MockImplementationOnce queues a one-shot substitute implementation.
func (f *Function) MockImplementationOnce(impl Impl) *Function {
	st := f.mustMock()
	st.pendingImpls = append(st.pendingImpls, impl)
	st.favorReturn = false
	return f
}

// MockImplementation sets the persistent substitute implementation.
func (f *Function) MockImplementation(impl Impl) *Function {
	st := f.mustMock()
	st.defaultImpl = impl
	st.favorReturn = false
	return f
}

// MockReturnThis sets a persistent substitute implementation returning
// the invocation receiver.
func (f *Function) MockReturnThis() *Function {
	return f.MockImplementation(func(this Value, args []Value) Value {
		return this
	})
}

// MockImplementationFn returns the currently configured persistent
// substitute implementation, or nil.
func (f *Function) MockImplementationFn() Impl {
	return f.mustMock().defaultImpl
}

// ---------------------------------------------------------------------------
// Invocation
// ---------------------------------------------------------------------------

// invokeMock runs the invocation algorithm for instrumented callables.
//
// The ledger is appended first, uniformly for plain and constructor-style
// invocation. Constructor style is detected from the receiver: its
// delegate chain contains this callable's behavior template. Plain
// invocation resolves a result through the strict precedence of §spec:
// the override family favored by the last configuration call, each
// family's one-shot queue before its persistent fallback, then the
// inherited template behavior, then undefined.
func (f *Function) invokeMock(this Value, args []Value) Value {
	st := f.mock
	st.instances = append(st.instances, this)
	st.calls = append(st.calls, args)

	if recv := this.AsObject(); recv != nil && f.behavior != nil && recv.hasDelegate(f.behavior) {
		return f.invokeConstructor(recv, this, args)
	}

	if st.favorReturn {
		v := st.defaultReturn
		if len(st.pendingReturns) > 0 {
			v = st.pendingReturns[0]
			st.pendingReturns = st.pendingReturns[1:]
		}
		if !v.IsUndefined() {
			return v
		}
	}

	impl := st.defaultImpl
	if len(st.pendingImpls) > 0 {
		impl = st.pendingImpls[0]
		st.pendingImpls = st.pendingImpls[1:]
	}
	if impl != nil {
		return impl(this, args)
	}

	if st.templateImpl != nil {
		return st.templateImpl(this, args)
	}
	return Undefined
}

// invokeConstructor handles constructor-style invocation: every
// function-typed member of the behavior template is shadowed on the
// receiver by a fresh instrumented callable that remembers the template
// member as its fallback. Only the persistent substitute implementation
// is consulted; one-shot configuration does not apply in constructor
// mode.
func (f *Function) invokeConstructor(recv *Object, this Value, args []Value) Value {
	for _, name := range f.behavior.OwnNames() {
		tv, _ := f.behavior.OwnMember(name)
		tf := tv.AsFunction()
		if tf == nil {
			continue
		}
		inst := NewMockFunction(tf.name)
		inst.mock.templateImpl = tf.asImpl()
		recv.SetMember(name, inst.ToValue())
	}

	if f.mock.defaultImpl != nil {
		return f.mock.defaultImpl(this, args)
	}
	return Undefined
}

// ---------------------------------------------------------------------------
// Configuration surface as members
// ---------------------------------------------------------------------------

// installConfigMembers exposes the configuration surface as own members
// of the synthesized callable, so mocks describe the same shape the
// original instrumented callables had. Extraction skips these names.
func installConfigMembers(f *Function) {
	self := func() Value { return f.ToValue() }

	f.SetMember("mockClear", NewFunction("mockClear", func(this Value, args []Value) Value {
		f.MockClear()
		return self()
	}).ToValue())

	f.SetMember("mockReturnValue", NewFunction("mockReturnValue", func(this Value, args []Value) Value {
		f.MockReturnValue(arg(args, 0))
		return self()
	}).ToValue())

	f.SetMember("mockReturnValueOnce", NewFunction("mockReturnValueOnce", func(this Value, args []Value) Value {
		f.MockReturnValueOnce(arg(args, 0))
		return self()
	}).ToValue())

	f.SetMember("mockImplementation", NewFunction("mockImplementation", func(this Value, args []Value) Value {
		if impl := arg(args, 0).AsFunction(); impl != nil {
			f.MockImplementation(impl.asImpl())
		}
		return self()
	}).ToValue())

	f.SetMember("mockImplementationOnce", NewFunction("mockImplementationOnce", func(this Value, args []Value) Value {
		if impl := arg(args, 0).AsFunction(); impl != nil {
			f.MockImplementationOnce(impl.asImpl())
		}
		return self()
	}).ToValue())

	f.SetMember("mockReturnThis", NewFunction("mockReturnThis", func(this Value, args []Value) Value {
		f.MockReturnThis()
		return self()
	}).ToValue())
}

// arg returns the i-th argument or Undefined.
func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Undefined
}
