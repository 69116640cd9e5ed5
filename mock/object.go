package mock

// ---------------------------------------------------------------------------
// Member storage shared by objects, functions and regexps
// ---------------------------------------------------------------------------

// memberTable stores own members in insertion order.
type memberTable struct {
	keys    []string
	entries map[string]Value
}

// SetMember installs or replaces an own member.
func (t *memberTable) SetMember(name string, v Value) {
	if t.entries == nil {
		t.entries = make(map[string]Value)
	}
	if _, ok := t.entries[name]; !ok {
		t.keys = append(t.keys, name)
	}
	t.entries[name] = v
}

// DeleteMember removes an own member if present.
func (t *memberTable) DeleteMember(name string) {
	if _, ok := t.entries[name]; !ok {
		return
	}
	delete(t.entries, name)
	for i, k := range t.keys {
		if k == name {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// OwnMember returns an own member by name.
func (t *memberTable) OwnMember(name string) (Value, bool) {
	v, ok := t.entries[name]
	return v, ok
}

// HasOwn reports whether name is an own member.
func (t *memberTable) HasOwn(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// OwnNames returns the own member names in insertion order.
// The returned slice must not be mutated.
func (t *memberTable) OwnNames() []string {
	return t.keys
}

// ---------------------------------------------------------------------------
// Object: keyed record with a delegated-behavior chain
// ---------------------------------------------------------------------------

// Object is a plain keyed record. Members live in the own member table;
// lookups that miss walk the delegate chain up to the Root sentinel.
//
// A computed accessor is a member backed by a getter instead of a stored
// value. Accessors are excluded from the observable shape unless the
// object is flagged as a module-style namespace, which mirrors read-only
// module exports.
type Object struct {
	memberTable

	proto     *Object
	accessors map[string]func() Value
	accKeys   []string

	// moduleNS marks module-style namespaces, whose accessors are part
	// of the observable shape.
	moduleNS bool

	// owner is the callable this object serves as behavior template for,
	// if any. Resolved once at construction (or generation rewiring),
	// never walked at lookup time.
	owner *Function
}

// Root is the sentinel terminating every delegate chain. Member walks
// stop here; members equal to a Root default are treated as inherited
// and left out of extracted shapes.
var Root = &Object{}

// NewObject creates an empty object delegating to Root.
func NewObject() *Object {
	return &Object{proto: Root}
}

// NewModuleNamespace creates an object flagged as a module-style
// namespace: its computed accessors are enumerated like plain members.
func NewModuleNamespace() *Object {
	return &Object{proto: Root, moduleNS: true}
}

// ToValue wraps the object in a Value.
func (o *Object) ToValue() Value {
	return Value{Tag: TagObject, Data: o}
}

// Proto returns the delegate object, or nil for Root itself.
func (o *Object) Proto() *Object {
	return o.proto
}

// SetProto replaces the delegate link.
func (o *Object) SetProto(p *Object) {
	o.proto = p
}

// IsModuleNamespace reports the module-style namespace flag.
func (o *Object) IsModuleNamespace() bool {
	return o.moduleNS
}

// Owner returns the callable this object is the behavior template of.
func (o *Object) Owner() *Function {
	return o.owner
}

// DefineAccessor installs a computed-accessor member.
func (o *Object) DefineAccessor(name string, get func() Value) {
	if o.accessors == nil {
		o.accessors = make(map[string]func() Value)
	}
	if _, ok := o.accessors[name]; !ok {
		o.accKeys = append(o.accKeys, name)
	}
	o.accessors[name] = get
}

// HasAccessor reports whether name is a computed-accessor member.
func (o *Object) HasAccessor(name string) bool {
	_, ok := o.accessors[name]
	return ok
}

// AccessorNames returns the accessor member names in definition order.
func (o *Object) AccessorNames() []string {
	return o.accKeys
}

// Get resolves a member by name: own stored members first, then computed
// accessors, then the delegate chain. The boolean is false when the name
// resolves nowhere.
func (o *Object) Get(name string) (Value, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if v, ok := cur.entries[name]; ok {
			return v, true
		}
		if get, ok := cur.accessors[name]; ok {
			return get(), true
		}
	}
	return Undefined, false
}

// hasDelegate reports whether target appears anywhere on o's delegate
// chain. Used by the callable runtime to detect constructor-style
// invocation.
func (o *Object) hasDelegate(target *Object) bool {
	for cur := o; cur != nil; cur = cur.proto {
		if cur == target {
			return true
		}
	}
	return false
}
