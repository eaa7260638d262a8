package bconf

// unwrap replaces internal-only node types with their external shape,
// recursing through arrays and objects. Scalars and already-external types
// pass through untouched. See §4.7.
func unwrap(v Value) Value {
	switch t := v.(type) {
	case *Array:
		out := make([]Value, t.Len())
		for i, item := range t.Items {
			out[i] = unwrap(item)
		}

		return out

	case []Value:
		out := make([]Value, len(t))
		for i, item := range t {
			out[i] = unwrap(item)
		}

		return out

	case *Object:
		out := NewObject()
		t.Range(func(key string, child Value) bool {
			out.Set(key, unwrap(child))

			return true
		})

		return out

	case *Tag:
		return []Value{t.Name, unwrap(t.Arg)}

	case *Statement:
		return unwrap(Value(statementArgsToValue(t.Args)))

	case KeyPath:
		return t.String()

	case *Collection:
		return unwrap(t.Last())

	default:
		return v
	}
}

// statementArgsToValue flattens a Statement's [][]Value into a single
// *Array of *Array (one inner array per invocation line), matching
// "unwraps to unwrap(args)" where args is itself array-of-array-of-Value.
func statementArgsToValue(args [][]Value) *Array {
	out := NewArray()

	for _, line := range args {
		inner := NewArray()
		for _, v := range line {
			inner.Append(v)
		}

		out.Append(inner)
	}

	return out
}
