package mock

import (
	"testing"
)

func TestCallLedger(t *testing.T) {
	f := GetMockFunction()
	f.Invoke(Constant(1))
	f.Invoke(Constant(2), Constant(3))
	f.Invoke()

	calls := f.Calls()
	if len(calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(calls))
	}
	if len(calls[0]) != 1 || !calls[0][0].Is(Constant(1)) {
		t.Errorf("first call args = %v", calls[0])
	}
	if len(calls[1]) != 2 || !calls[1][1].Is(Constant(3)) {
		t.Errorf("second call args = %v", calls[1])
	}
	if len(calls[2]) != 0 {
		t.Errorf("third call args = %v, want empty", calls[2])
	}
}

func TestInstancesRecordReceivers(t *testing.T) {
	f := GetMockFunction()
	recv := NewObject().ToValue()
	f.Call(recv)
	f.Invoke()

	inst := f.Instances()
	if len(inst) != 2 {
		t.Fatalf("instances = %d, want 2", len(inst))
	}
	if !inst[0].Is(recv) {
		t.Error("first receiver not recorded")
	}
	if !inst[1].IsUndefined() {
		t.Error("receiver of plain invocation should be undefined")
	}
}

func TestOneShotReturnValue(t *testing.T) {
	f := GetMockFunction()
	f.MockReturnValueOnce(Constant("A"))

	if got := f.Invoke(); !got.Is(Constant("A")) {
		t.Errorf("first call = %v, want A", got)
	}
	if got := f.Invoke(); !got.IsUndefined() {
		t.Errorf("second call = %v, want undefined", got)
	}
}

func TestOneShotThenPersistentReturnValue(t *testing.T) {
	f := GetMockFunction()
	f.MockReturnValue(Constant("default"))
	f.MockReturnValueOnce(Constant("A"))

	if got := f.Invoke(); !got.Is(Constant("A")) {
		t.Errorf("first call = %v, want A", got)
	}
	if got := f.Invoke(); !got.Is(Constant("default")) {
		t.Errorf("second call = %v, want default", got)
	}
}

func TestLastConfigurationKindWins(t *testing.T) {
	f := GetMockFunction()
	f.MockReturnValue(Constant(1))
	f.MockImplementation(func(this Value, args []Value) Value { return Constant(2) })

	if got := f.Invoke(); !got.Is(Constant(2)) {
		t.Errorf("implementation configured last: got %v, want 2", got)
	}

	f.MockReturnValue(Constant(3))
	if got := f.Invoke(); !got.Is(Constant(3)) {
		t.Errorf("return value configured last: got %v, want 3", got)
	}
}

func TestUndefinedReturnFallsThroughToImplementation(t *testing.T) {
	f := GetMockFunction()
	f.MockImplementation(func(this Value, args []Value) Value { return Constant("impl") })
	f.MockReturnValueOnce(Undefined)

	if got := f.Invoke(); !got.Is(Constant("impl")) {
		t.Errorf("got %v, want impl fallback after undefined return", got)
	}
}

func TestOneShotImplementationDrainedBeforeDefault(t *testing.T) {
	f := GetMockFunction()
	f.MockImplementation(func(this Value, args []Value) Value { return Constant("persistent") })
	f.MockImplementationOnce(func(this Value, args []Value) Value { return Constant("once") })

	if got := f.Invoke(); !got.Is(Constant("once")) {
		t.Errorf("first call = %v, want once", got)
	}
	if got := f.Invoke(); !got.Is(Constant("persistent")) {
		t.Errorf("second call = %v, want persistent", got)
	}
}

func TestMockReturnThis(t *testing.T) {
	f := GetMockFunction()
	f.MockReturnThis()
	recv := NewObject().ToValue()

	if got := f.Call(recv); !got.Is(recv) {
		t.Errorf("got %v, want the receiver", got)
	}
}

func TestMockClearKeepsConfiguration(t *testing.T) {
	f := GetMockFunction()
	f.MockReturnValue(Constant("kept"))
	f.Invoke()
	f.Invoke()

	f.MockClear()
	if len(f.Calls()) != 0 || len(f.Instances()) != 0 {
		t.Error("ledger not emptied")
	}
	if got := f.Invoke(); !got.Is(Constant("kept")) {
		t.Errorf("after clear got %v, want kept", got)
	}
}

func TestConfigurationChains(t *testing.T) {
	f := GetMockFunction()
	if f.MockReturnValue(Constant(1)).MockClear().MockReturnValueOnce(Constant(2)) != f {
		t.Error("configuration calls must return the callable itself")
	}
}

func TestConfigurationSurfaceMembers(t *testing.T) {
	f := GetMockFunction()
	mv, ok := f.OwnMember("mockReturnValue")
	if !ok {
		t.Fatal("mockReturnValue member not installed")
	}
	got := mv.AsFunction().Invoke(Constant("via member"))
	if !got.Is(f.ToValue()) {
		t.Error("member setter did not return the callable")
	}
	if res := f.Invoke(); !res.Is(Constant("via member")) {
		t.Errorf("after member configuration got %v, want via member", res)
	}
}

// ---------------------------------------------------------------------------
// Constructor emulation
// ---------------------------------------------------------------------------

func TestConstructorInstallsFreshInstanceMocks(t *testing.T) {
	ctor := NewMockFunction("Person")
	greet := NewMockFunction("greet")
	greet.MockReturnValue(Constant("hello"))
	ctor.Behavior().SetMember("greet", greet.ToValue())

	a := ctor.New()
	b := ctor.New()

	ga, _ := a.AsObject().OwnMember("greet")
	gb, _ := b.AsObject().OwnMember("greet")
	if !IsMockFunction(ga) || !IsMockFunction(gb) {
		t.Fatal("instances did not receive instrumented greet members")
	}
	if ga.Is(gb) {
		t.Error("instance mocks must be distinct per instance")
	}
	if ga.AsFunction() == greet {
		t.Error("instance member must shadow the template, not alias it")
	}
}

func TestConstructorInstanceFallsBackToTemplate(t *testing.T) {
	ctor := NewMockFunction("Person")
	greet := NewMockFunction("greet")
	greet.MockReturnValue(Constant("hello"))
	ctor.Behavior().SetMember("greet", greet.ToValue())

	inst := ctor.New()
	gv, _ := inst.AsObject().OwnMember("greet")
	gf := gv.AsFunction()

	if got := gf.Call(inst); !got.Is(Constant("hello")) {
		t.Errorf("fallback result = %v, want hello", got)
	}
	if len(greet.Calls()) != 1 {
		t.Errorf("template ledger = %d calls, want 1", len(greet.Calls()))
	}

	gf.MockReturnValue(Constant("hi"))
	if got := gf.Call(inst); !got.Is(Constant("hi")) {
		t.Errorf("reconfigured instance mock = %v, want hi", got)
	}
	if len(greet.Calls()) != 1 {
		t.Error("override must bypass the template")
	}
}

func TestConstructorRecordsLedger(t *testing.T) {
	ctor := NewMockFunction("Thing")
	inst := ctor.New(Constant(1), Constant(2))

	if len(ctor.Calls()) != 1 || len(ctor.Calls()[0]) != 2 {
		t.Fatalf("constructor call not recorded: %v", ctor.Calls())
	}
	if !ctor.Instances()[0].Is(inst) {
		t.Error("constructor receiver not recorded as instance")
	}
}

func TestConstructorUsesPersistentImplementationOnly(t *testing.T) {
	ctor := NewMockFunction("Thing")
	ctor.MockImplementationOnce(func(this Value, args []Value) Value {
		t.Error("one-shot implementation must not run in constructor mode")
		return Undefined
	})
	ctor.New()

	called := false
	ctor.MockImplementation(func(this Value, args []Value) Value {
		called = true
		if this.AsObject() == nil {
			t.Error("persistent implementation must receive the instance")
		}
		return Undefined
	})
	ctor.New()
	if !called {
		t.Error("persistent implementation did not run in constructor mode")
	}
}

func TestIsMockFunction(t *testing.T) {
	if !IsMockFunction(GetMockFunction().ToValue()) {
		t.Error("IsMockFunction(mock) = false")
	}
	if IsMockFunction(NewFunction("f", nil).ToValue()) {
		t.Error("IsMockFunction(plain function) = true")
	}
	if IsMockFunction(Constant(1)) {
		t.Error("IsMockFunction(constant) = true")
	}
}
