package bconf

import (
	"strconv"
	"strings"
)

// KeyPartKind discriminates the variants of a KeyPart.
type KeyPartKind int

const (
	// KeyAlphanumeric is a bare identifier key part.
	KeyAlphanumeric KeyPartKind = iota
	// KeyString is a quoted-key part.
	KeyString
	// KeyVariable is a $-prefixed key part; only legal at index 0.
	KeyVariable
	// KeyIndex is a non-negative array index.
	KeyIndex
)

// KeyPart is one segment of a KeyPath.
type KeyPart struct {
	Kind  KeyPartKind
	Name  string // Alphanumeric, String, Variable
	Index int    // Index
}

// KeyPath is an ordered, non-empty sequence of KeyParts addressing a
// position in a result tree. Variable parts only ever appear at index 0.
type KeyPath []KeyPart

// String serializes a KeyPath: named parts joined by '.', index parts as
// "[N]" immediately following the preceding part with no dot. This is a
// left inverse of key-path parsing for any path without embedded
// whitespace.
func (kp KeyPath) String() string {
	var b strings.Builder

	for i, part := range kp {
		switch part.Kind {
		case KeyIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(part.Index))
			b.WriteByte(']')
		default:
			if i > 0 {
				b.WriteByte('.')
			}

			b.WriteString(part.Name)
		}
	}

	return b.String()
}

// First returns the leading part of the path.
func (kp KeyPath) First() KeyPart {
	return kp[0]
}

// IsVariable reports whether the path begins with a variable reference.
func (kp KeyPath) IsVariable() bool {
	return len(kp) > 0 && kp[0].Kind == KeyVariable
}
