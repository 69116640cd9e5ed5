package mock

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical mode for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("mock: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// wireNode is the persisted form of a metadata node. It carries exactly
// the fields that survive a process boundary: in-process payloads
// (collection handles, captured mock implementations) are in-process
// only and are dropped on marshal.
type wireNode struct {
	Type    string               `cbor:"type,omitempty"`
	Ref     *int                 `cbor:"ref,omitempty"`
	RefID   *int                 `cbor:"refID,omitempty"`
	Name    string               `cbor:"name,omitempty"`
	Value   any                  `cbor:"value,omitempty"`
	Members map[string]*wireNode `cbor:"members,omitempty"`
}

// MarshalMetadata serializes a metadata tree to canonical CBOR. The
// tree is plain and acyclic (cycles are ref indirections), so the wire
// form can be stored or transmitted verbatim.
func MarshalMetadata(n *Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("mock: marshal nil metadata")
	}
	return cborEncMode.Marshal(toWire(n))
}

// UnmarshalMetadata deserializes a metadata tree from CBOR bytes.
func UnmarshalMetadata(data []byte) (*Node, error) {
	var w wireNode
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("mock: unmarshal metadata: %w", err)
	}
	return fromWire(&w), nil
}

func toWire(n *Node) *wireNode {
	w := &wireNode{
		Type:  string(n.Type),
		Ref:   n.Ref,
		RefID: n.RefID,
		Name:  n.Name,
	}
	if n.Type == TypeConstant {
		w.Value = n.Value.Data
	}
	for name, child := range n.Members {
		if w.Members == nil {
			w.Members = make(map[string]*wireNode, len(n.Members))
		}
		w.Members[name] = toWire(child)
	}
	return w
}

func fromWire(w *wireNode) *Node {
	n := &Node{
		Type:  Category(w.Type),
		Ref:   w.Ref,
		RefID: w.RefID,
		Name:  w.Name,
	}
	switch n.Type {
	case TypeConstant:
		n.Value = Constant(normalizeScalar(w.Value))
	case TypeCollection:
		// The live payload did not cross the boundary.
		n.Value = NewCollection(nil)
	case TypeNull:
		n.Value = Null
	case TypeUndefined:
		n.Value = Undefined
	}
	for name, child := range w.Members {
		if n.Members == nil {
			n.Members = make(map[string]*Node, len(w.Members))
		}
		n.Members[name] = fromWire(child)
	}
	return n
}

// normalizeScalar folds CBOR's default integer decoding back into int64
// so constants round-trip to a comparable payload.
func normalizeScalar(data any) any {
	switch d := data.(type) {
	case uint64:
		if d <= 1<<62 {
			return int64(d)
		}
		return d
	default:
		return data
	}
}
