package bconf

// ckind is the container shape required at a given step of a key-path
// walk: determined entirely by the *next* key part, per §4.3.
type ckind int

const (
	ckindObject ckind = iota
	ckindArray
)

func containerKindFor(part KeyPart) ckind {
	if part.Kind == KeyIndex {
		return ckindArray
	}

	return ckindObject
}

// ensureContainerKind returns existing if it already has the needed shape,
// or a fresh empty container of that shape otherwise (§4.3: "created if
// absent, replaced if the wrong type").
func ensureContainerKind(existing Value, needed ckind) Value {
	switch needed {
	case ckindArray:
		if a, ok := existing.(*Array); ok {
			return a
		}

		return NewArray()
	default:
		if o, ok := existing.(*Object); ok {
			return o
		}

		return NewObject()
	}
}

// walkToParent materializes every container between root and the last part
// of kp, growing objects/arrays as needed, and returns the immediate
// parent container of the terminal part together with that part.
//
// root must already be a container matching kp[0]'s addressing mode: an
// *Object if kp[0] is not an index (the only case that occurs, since an
// index never leads a KeyPath) or an *Array if the caller has specifically
// rooted a walk at an array (used for variable paths like "$x[0]").
func walkToParent(root Value, kp KeyPath) (Value, KeyPart) {
	cur := root

	for i := 0; i < len(kp)-1; i++ {
		part := kp[i]
		needed := containerKindFor(kp[i+1])

		switch part.Kind {
		case KeyIndex:
			arr := cur.(*Array)
			child, _ := arr.Get(part.Index)
			child = ensureContainerKind(child, needed)
			arr.Set(part.Index, child)
			cur = child
		default:
			obj := cur.(*Object)
			child, _ := obj.Get(part.Name)
			child = ensureContainerKind(child, needed)
			obj.Set(part.Name, child)
			cur = child
		}
	}

	return cur, kp[len(kp)-1]
}

// applyAssign stores value at name in obj, applying the duplicate-key
// policy if name is already bound (§4.2).
func applyAssign(obj *Object, name string, value Value, dup DuplicatePolicy) error {
	existing, ok := obj.Get(name)
	if !ok {
		obj.Set(name, value)

		return nil
	}

	switch dup {
	case DuplicateCollect:
		if coll, ok := existing.(*Collection); ok {
			coll.Collected = append(coll.Collected, value)

			return nil
		}

		obj.Set(name, &Collection{Collected: []Value{existing, value}})

		return nil

	case DuplicateDisallow:
		return errDuplicateKey(name)

	default: // DuplicateOverride
		obj.Set(name, value)

		return nil
	}
}

// assignPath writes value at kp within root, honoring dup for the terminal
// step if it is a non-index (named) part; index writes always overwrite
// (§8 invariant: "Index assignment preserves denseness").
func assignPath(root Value, kp KeyPath, value Value, dup DuplicatePolicy) error {
	if len(kp) == 1 {
		return assignTerminal(root, kp[0], value, dup)
	}

	parent, last := walkToParent(root, kp)

	return assignTerminal(parent, last, value, dup)
}

func assignTerminal(parent Value, last KeyPart, value Value, dup DuplicatePolicy) error {
	if last.Kind == KeyIndex {
		parent.(*Array).Set(last.Index, value)

		return nil
	}

	return applyAssign(parent.(*Object), last.Name, value, dup)
}

// appendPath pushes value onto the array found (or created) at kp within
// root, per §4.2's append operator.
func appendPath(root Value, kp KeyPath, value Value) error {
	if len(kp) == 1 {
		return appendTerminal(root, kp[0], value)
	}

	parent, last := walkToParent(root, kp)

	return appendTerminal(parent, last, value)
}

func appendTerminal(parent Value, last KeyPart, value Value) error {
	if last.Kind == KeyIndex {
		arr := parent.(*Array)
		existing, _ := arr.Get(last.Index)

		target, ok := existing.(*Array)
		if !ok {
			target = NewArray()
		}

		target.Append(value)
		arr.Set(last.Index, target)

		return nil
	}

	obj := parent.(*Object)
	existing, _ := obj.Get(last.Name)

	target, ok := existing.(*Array)
	if !ok {
		target = NewArray()
	}

	target.Append(value)
	obj.Set(last.Name, target)

	return nil
}

// lookupPath reads a value out of an already-materialized container
// without creating anything, used by ResolverContext.Lookup.
func lookupPath(root Value, kp KeyPath) (Value, bool) {
	cur := root

	for _, part := range kp {
		switch part.Kind {
		case KeyIndex:
			arr, ok := cur.(*Array)
			if !ok {
				return nil, false
			}

			v, ok := arr.Get(part.Index)
			if !ok {
				return nil, false
			}

			cur = v
		default:
			obj, ok := cur.(*Object)
			if !ok {
				return nil, false
			}

			v, ok := obj.Get(part.Name)
			if !ok {
				return nil, false
			}

			cur = v
		}
	}

	return cur, true
}

// deepMerge recursively merges src into dst per §4.6's StatementActionMerge
// rule: object-object pairs recurse, a key absent from dst is filled in from
// src, and a key already present in dst as anything but a mergeable object
// pair keeps dst's value untouched. This makes merging order-preserving:
// prior content always wins over a later extends, which only fills gaps.
func deepMerge(dst, src *Object) {
	src.Range(func(key string, v Value) bool {
		existing, ok := dst.Get(key)
		if !ok {
			dst.Set(key, v)

			return true
		}

		dstObj, dstOK := existing.(*Object)
		srcObj, srcOK := v.(*Object)
		if dstOK && srcOK {
			deepMerge(dstObj, srcObj)
		}

		return true
	})
}
