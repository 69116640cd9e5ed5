package mock

// callableIntrinsics are the call-metadata members of a callable. They
// are never part of the observable shape.
var callableIntrinsics = map[string]bool{
	"arguments": true,
	"caller":    true,
	"callee":    true,
	"name":      true,
	"length":    true,
}

// regexpIntrinsics are the pattern-configuration members of a pattern
// matcher. They are never part of the observable shape.
var regexpIntrinsics = map[string]bool{
	"source":     true,
	"global":     true,
	"ignoreCase": true,
	"multiline":  true,
}

// EnumerateMembers computes the ordered set of member names belonging to
// a component's observable shape.
//
// For objects the delegate chain is walked upward until the Root
// sentinel; at each link own member names not already seen are
// collected, first-seen order, each name once. Computed accessors are
// excluded unless the component is a module-style namespace. Callables
// and pattern matchers contribute their own members minus the relevant
// intrinsic exclusions.
func EnumerateMembers(v Value) []string {
	switch v.Tag {
	case TagObject:
		return enumerateObject(v.AsObject())
	case TagFunction:
		return filtered(v.AsFunction().OwnNames(), callableIntrinsics)
	case TagRegexp:
		return filtered(v.AsRegexp().OwnNames(), regexpIntrinsics)
	default:
		return nil
	}
}

func enumerateObject(o *Object) []string {
	var names []string
	seen := make(map[string]bool)
	includeAccessors := o.moduleNS

	for cur := o; cur != nil && cur != Root; cur = cur.proto {
		for _, name := range cur.OwnNames() {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
		if !includeAccessors {
			continue
		}
		for _, name := range cur.AccessorNames() {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func filtered(names []string, exclude map[string]bool) []string {
	var out []string
	for _, name := range names {
		if exclude[name] {
			continue
		}
		out = append(out, name)
	}
	return out
}
