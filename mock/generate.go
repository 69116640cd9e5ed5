package mock

import (
	"fmt"
	"regexp"
	"sort"
)

// ---------------------------------------------------------------------------
// Mock generation: two-pass reconstruction with deferred rewiring
// ---------------------------------------------------------------------------

// deferredAssign is a member assignment postponed until every refID has a
// constructed component: write comp[name] = table[ref].
type deferredAssign struct {
	comp Value
	name string
	ref  int
}

// generator holds the per-call identity table (refID → constructed
// component) and the deferred-assignment queue.
type generator struct {
	table    map[int]Value
	deferred []deferredAssign
}

// GenerateFromMetadata reconstructs a component graph from a metadata
// tree. Shared and cyclic references are restored exactly: pass one
// builds every shell, registering it under its refID before recursing,
// and queues back-reference members; pass two executes the queued
// assignments in enqueue order once all ids are resolvable.
//
// A node carrying a type outside the known category set is a fatal
// input-contract violation and yields an error naming the type.
func GenerateFromMetadata(n *Node) (Value, error) {
	g := &generator{table: make(map[int]Value)}

	root, err := g.build(n)
	if err != nil {
		return Undefined, err
	}

	for _, d := range g.deferred {
		target, ok := g.table[d.ref]
		if !ok {
			return Undefined, fmt.Errorf("mock: unresolved back-reference %d", d.ref)
		}
		assignMember(d.comp, d.name, target)
	}
	return root, nil
}

// build constructs the component for one node and, recursively, its
// member subtree.
func (g *generator) build(n *Node) (Value, error) {
	if n == nil {
		return Undefined, fmt.Errorf("mock: nil metadata node")
	}
	if n.Type == Unrecognized {
		return Undefined, fmt.Errorf("mock: unexpected back-reference node")
	}

	shell, err := g.buildShell(n)
	if err != nil {
		return Undefined, err
	}

	// Register before recursing so self-referential members resolve.
	if n.RefID != nil {
		g.table[*n.RefID] = shell
	}

	for _, name := range sortedMemberNames(n.Members) {
		child := n.Members[name]
		if child.Type == Unrecognized && child.Ref != nil {
			g.deferred = append(g.deferred, deferredAssign{comp: shell, name: name, ref: *child.Ref})
			continue
		}
		cv, err := g.build(child)
		if err != nil {
			return Undefined, err
		}
		assignMember(shell, name, cv)
	}

	return shell, nil
}

// buildShell dispatches on the node type to produce an empty shell, or
// the captured value itself for leaves.
func (g *generator) buildShell(n *Node) (Value, error) {
	switch n.Type {
	case TypeObject:
		return NewObject().ToValue(), nil

	case TypeArray:
		return NewArray(), nil

	case TypeRegexp:
		return NewRegexp(regexp.MustCompile("")), nil

	case TypeConstant, TypeCollection, TypeNull, TypeUndefined:
		// Shared identity with the original, not a copy.
		return n.Value, nil

	case TypeFunction:
		return g.buildFunction(n), nil

	default:
		return Undefined, fmt.Errorf("mock: unrecognized type %q in metadata", string(n.Type))
	}
}

// buildFunction synthesizes an instrumented callable from a function
// node: sanitized label, bound marker, and the captured substitute
// implementation of a source that was itself a mock.
func (g *generator) buildFunction(n *Node) Value {
	name, bound := SanitizeName(n.Name)
	f := NewMockFunction(name)
	f.bound = bound
	if n.MockImpl != nil {
		f.mock.defaultImpl = n.MockImpl
	}
	return f.ToValue()
}

// assignMember writes one member on a constructed shell. For function
// shells the reserved template member replaces the behavior template,
// re-linking its owning-callable marker to the shell.
func assignMember(comp Value, name string, v Value) {
	switch comp.Tag {
	case TagObject:
		comp.AsObject().SetMember(name, v)
	case TagFunction:
		f := comp.AsFunction()
		if name == TemplateMember {
			if b := v.AsObject(); b != nil {
				f.SetBehavior(b)
				return
			}
		}
		f.SetMember(name, v)
	case TagRegexp:
		comp.AsRegexp().SetMember(name, v)
	}
}

func sortedMemberNames(members map[string]*Node) []string {
	if len(members) == 0 {
		return nil
	}
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
