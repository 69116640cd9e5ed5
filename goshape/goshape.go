// Package goshape builds metadata trees from the exported API of real
// Go packages, so structurally faithful mocks of a package surface can
// be generated without hand-writing its shape.
package goshape

import (
	"fmt"
	"go/constant"
	"go/types"

	"github.com/tliron/commonlog"
	"golang.org/x/tools/go/packages"

	"github.com/chazu/mimic/mock"
)

var log = commonlog.GetLogger("mimic.goshape")

// Introspect loads a Go package by import path and returns a metadata
// tree describing its exported API. The includeFilter, if non-nil,
// restricts which exported names are included.
func Introspect(importPath string, includeFilter map[string]bool) (*mock.Node, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
	}

	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", importPath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %s", importPath)
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkgs[0].Errors)
	}

	pkg := pkgs[0]
	if pkg.Types == nil {
		return nil, fmt.Errorf("type information not available for %s", importPath)
	}

	return PackageNode(pkg.Types, includeFilter), nil
}

// PackageNode builds the metadata tree for a type-checked package. The
// root is an object node standing in for the package's namespace:
// exported functions become function nodes, exported named types with
// methods become constructor-style function nodes whose behavior
// template carries the method members, and exported constants become
// constant nodes. Unrepresentable values are skipped, mirroring the
// extractor's soft-skip contract.
func PackageNode(pkg *types.Package, includeFilter map[string]bool) *mock.Node {
	root := &mock.Node{Type: mock.TypeObject}
	scope := pkg.Scope()

	for _, name := range scope.Names() {
		if includeFilter != nil && !includeFilter[name] {
			continue
		}
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}

		var child *mock.Node
		switch o := obj.(type) {
		case *types.Func:
			child = &mock.Node{Type: mock.TypeFunction, Name: o.Name()}

		case *types.TypeName:
			child = typeNode(o)

		case *types.Const:
			child = constNode(o)
		}
		if child == nil {
			continue
		}
		if root.Members == nil {
			root.Members = make(map[string]*mock.Node)
		}
		root.Members[name] = child
	}

	log.Debugf("introspected %s: %d exported members", pkg.Path(), len(root.Members))
	return root
}

// typeNode describes an exported named type as a constructor-style
// function node. Exported pointer-receiver methods defined directly on
// the type become function members of the behavior template.
func typeNode(tn *types.TypeName) *mock.Node {
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil
	}

	n := &mock.Node{Type: mock.TypeFunction, Name: tn.Name()}

	proto := &mock.Node{Type: mock.TypeObject}
	mset := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < mset.Len(); i++ {
		sel := mset.At(i)
		fn, ok := sel.Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}
		// Only include methods directly defined on this type (not inherited)
		if sel.Index() != nil && len(sel.Index()) > 1 {
			continue
		}
		if proto.Members == nil {
			proto.Members = make(map[string]*mock.Node)
		}
		proto.Members[fn.Name()] = &mock.Node{Type: mock.TypeFunction, Name: fn.Name()}
	}

	if len(proto.Members) > 0 {
		n.Members = map[string]*mock.Node{mock.TemplateMember: proto}
	}
	return n
}

// constNode describes an exported constant. Only basic kinds the value
// model supports are captured; anything else is skipped.
func constNode(c *types.Const) *mock.Node {
	val := c.Val()
	var data any
	switch val.Kind() {
	case constant.Bool:
		data = constant.BoolVal(val)
	case constant.String:
		data = constant.StringVal(val)
	case constant.Int:
		i, exact := constant.Int64Val(val)
		if !exact {
			return nil
		}
		data = i
	case constant.Float:
		f, _ := constant.Float64Val(val)
		data = f
	default:
		return nil
	}
	return &mock.Node{Type: mock.TypeConstant, Value: mock.Constant(data)}
}
