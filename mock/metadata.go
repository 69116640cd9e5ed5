package mock

// ---------------------------------------------------------------------------
// Metadata tree
// ---------------------------------------------------------------------------

// Node is the serializable description of one component's shape: a
// discriminated union keyed by Type. A node with only Ref set is a pure
// back-reference to a previously visited node.
//
// Value and MockImpl carry in-process payloads by reference and are not
// part of the wire form (see wire.go for what survives marshaling).
type Node struct {
	// Type is the classifier category, or empty for a back-reference.
	Type Category

	// Ref identifies a previously visited node by its assigned id.
	// Present only on back-reference nodes.
	Ref *int

	// RefID is assigned to every non-back-reference node that
	// participates in graph traversal, dense in visitation order and
	// scoped to one extraction pass.
	RefID *int

	// Name is the captured display name of function nodes.
	Name string

	// Value holds the original value by reference for constant,
	// collection, null and undefined nodes. Never cloned.
	Value Value

	// Members maps member names to child nodes. For function nodes the
	// "prototype" member describes the behavior template.
	Members map[string]*Node

	// MockImpl captures the configured substitute implementation of a
	// source that was itself an instrumented callable, so mocks of
	// mocks preserve behavior.
	MockImpl Impl
}

// TemplateMember is the reserved member name under which a function
// node's behavior template is attached.
const TemplateMember = "prototype"

// ---------------------------------------------------------------------------
// Identity table
// ---------------------------------------------------------------------------

// identityTable assigns each newly visited component a dense integer id
// on first visit. Scoped to a single extraction pass.
type identityTable struct {
	ids  map[any]int
	next int
}

func newIdentityTable() *identityTable {
	return &identityTable{ids: make(map[any]int)}
}

func (t *identityTable) lookup(key any) (int, bool) {
	id, ok := t.ids[key]
	return id, ok
}

// register assigns the next id to key. Must be called before recursing
// into members so self-referential members resolve to a back-reference.
func (t *identityTable) register(key any) int {
	id := t.next
	t.ids[key] = id
	t.next++
	return id
}

// ---------------------------------------------------------------------------
// Extraction
// ---------------------------------------------------------------------------

// GetMetadata extracts the metadata tree describing a component's shape,
// using a fresh identity table. Returns nil for unrecognized values; the
// caller must treat that as "drop this member", not a failure.
func GetMetadata(v Value) *Node {
	return extract(v, newIdentityTable())
}

func extract(v Value, tab *identityTable) *Node {
	if key, ok := identityKey(v); ok {
		if id, seen := tab.lookup(key); seen {
			return &Node{Ref: intptr(id)}
		}
	}

	cat := Classify(v)
	switch cat {
	case Unrecognized:
		return nil

	case TypeConstant, TypeCollection, TypeNull, TypeUndefined:
		// Leaves: captured as themselves, no member walk.
		return &Node{Type: cat, Value: v}
	}

	n := &Node{Type: cat}

	var fn *Function
	if cat == TypeFunction {
		fn = v.AsFunction()
		n.Name = fn.DisplayName()
		if fn.mock != nil {
			n.MockImpl = fn.mock.defaultImpl
		}
	}

	key, _ := identityKey(v)
	n.RefID = intptr(tab.register(key))

	if cat != TypeArray {
		for _, name := range EnumerateMembers(v) {
			if fn != nil && fn.mock != nil && mockConfigMembers[name] {
				continue
			}
			mv, ok := memberForExtraction(v, name)
			if !ok {
				continue
			}
			child := extract(mv, tab)
			if child == nil {
				continue
			}
			if n.Members == nil {
				n.Members = make(map[string]*Node)
			}
			n.Members[name] = child
		}
	}

	if fn != nil && fn.behavior != nil {
		proto := extract(fn.behavior.ToValue(), tab)
		if proto != nil && len(proto.Members) > 0 {
			if n.Members == nil {
				n.Members = make(map[string]*Node)
			}
			n.Members[TemplateMember] = proto
		}
	}

	return n
}

// memberForExtraction resolves a member and decides whether it is "own"
// in the applicable sense. Callables and pattern matchers only ever
// enumerate own members. For plain objects an inherited member is kept
// only when its value differs from the shared-root default; a member
// deliberately set equal to a root default is under-captured, a known
// fidelity gap of this heuristic.
func memberForExtraction(v Value, name string) (Value, bool) {
	o := v.AsObject()
	if o == nil {
		switch v.Tag {
		case TagFunction:
			return v.AsFunction().OwnMember(name)
		case TagRegexp:
			return v.AsRegexp().OwnMember(name)
		}
		return Undefined, false
	}

	if o.HasOwn(name) || o.HasAccessor(name) {
		mv, _ := o.Get(name)
		return mv, true
	}
	mv, ok := o.Get(name)
	if !ok {
		return Undefined, false
	}
	if def, ok := Root.Get(name); ok && mv.Is(def) {
		return Undefined, false
	}
	return mv, true
}

func intptr(i int) *int {
	return &i
}
