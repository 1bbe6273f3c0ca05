package quill

import (
	"sort"
	"strings"
)

// ### DOM Value ###

// member is one key/value pair of an object. Objects keep members sorted by
// key, so iteration order is always ascending key order and lookups are
// binary searches.
type member struct {
	key string
	val *Value
}

// Value is a dynamic JSON DOM node: exactly one of null, bool, number
// (float64), string, array, or object is active at a time, discriminated by
// Kind.
//
// Accessors come in three families:
//   - strict (Bool, Float, Str, Elems, At): panic if the active kind does
//     not match; misuse is a programming error, not a recoverable one.
//   - checked (AsBool, AsFloat, AsStr, Find): comma-ok, never mutate.
//   - converting (ToArray, ToObject, Index, Key, Append): destructively
//     replace the current contents with an empty container when the kind
//     does not match, then operate on it.
//
// A Value owns its children exclusively. Distinct Values may be used from
// different goroutines; mutating one Value concurrently requires external
// synchronization.
type Value struct {
	arena *Arena
	s     string
	arr   []*Value
	obj   []member
	f     float64
	kind  Kind
	b     bool
}

// ### Constructors ###

// NewValue returns a null Value allocated through the arena.
func (a *Arena) NewValue() *Value {
	return &Value{arena: a.track()}
}

// NewBool returns a boolean Value allocated through the arena.
func (a *Arena) NewBool(b bool) *Value {
	return &Value{arena: a.track(), kind: KindBool, b: b}
}

// NewNumber returns a number Value allocated through the arena.
func (a *Arena) NewNumber(f float64) *Value {
	return &Value{arena: a.track(), kind: KindNumber, f: f}
}

// NewString returns a string Value allocated through the arena. The string
// must be valid UTF-8 for serialized output to be valid JSON.
func (a *Arena) NewString(s string) *Value {
	return &Value{arena: a.track(), kind: KindString, s: s}
}

// NewArray returns an array Value holding the given elements.
func (a *Arena) NewArray(elems ...*Value) *Value {
	v := &Value{arena: a.track(), kind: KindArray}
	v.arr = append(v.arr, elems...)
	return v
}

// NewObject returns an empty object Value allocated through the arena.
func (a *Arena) NewObject() *Value {
	return &Value{arena: a.track(), kind: KindObject, obj: []member{}}
}

// Package-level constructors allocate through the default arena.

func NewValue() *Value            { return defaultArena.NewValue() }
func NewBool(b bool) *Value       { return defaultArena.NewBool(b) }
func NewNumber(f float64) *Value  { return defaultArena.NewNumber(f) }
func NewString(s string) *Value   { return defaultArena.NewString(s) }
func NewArray(e ...*Value) *Value { return defaultArena.NewArray(e...) }
func NewObject() *Value           { return defaultArena.NewObject() }

// ### Kind Queries ###

// Kind returns the active variant discriminator.
func (v *Value) Kind() Kind { return v.kind }

// Arena returns the allocation context this Value is associated with.
func (v *Value) Arena() *Arena { return v.ctx() }

func (v *Value) IsNull() bool   { return v.kind == KindNull }
func (v *Value) IsBool() bool   { return v.kind == KindBool }
func (v *Value) IsNumber() bool { return v.kind == KindNumber }
func (v *Value) IsString() bool { return v.kind == KindString }
func (v *Value) IsArray() bool  { return v.kind == KindArray }
func (v *Value) IsObject() bool { return v.kind == KindObject }

// ctx tolerates zero-literal Values, which have no arena recorded.
func (v *Value) ctx() *Arena {
	if v.arena == nil {
		return &defaultArena
	}
	return v.arena
}

func (v *Value) mustKind(k Kind) {
	if v.kind != k {
		panic("quill: " + k.String() + " accessor on " + v.kind.String() + " value")
	}
}

// ### Strict Accessors ###

// Bool returns the boolean payload. Panics unless Kind is KindBool.
func (v *Value) Bool() bool {
	v.mustKind(KindBool)
	return v.b
}

// Float returns the number payload. Panics unless Kind is KindNumber.
func (v *Value) Float() float64 {
	v.mustKind(KindNumber)
	return v.f
}

// Str returns the string payload. Panics unless Kind is KindString.
func (v *Value) Str() string {
	v.mustKind(KindString)
	return v.s
}

// Elems returns the array elements. Panics unless Kind is KindArray. The
// slice aliases the array; reordering entries is fine, replacing elements
// keeps ownership with this Value.
func (v *Value) Elems() []*Value {
	v.mustKind(KindArray)
	return v.arr
}

// At returns the array element at index i. Panics unless Kind is KindArray
// and i is in range.
func (v *Value) At(i int) *Value {
	v.mustKind(KindArray)
	return v.arr[i]
}

// ### Checked Accessors ###

// AsBool returns the boolean payload and whether the kind matched.
func (v *Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsFloat returns the number payload and whether the kind matched.
func (v *Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindNumber
}

// AsStr returns the string payload and whether the kind matched.
func (v *Value) AsStr() (string, bool) {
	return v.s, v.kind == KindString
}

// ### Converting Accessors ###

// ToArray converts v into an empty array if it is not one already,
// discarding the current contents. Returns v.
func (v *Value) ToArray() *Value {
	if v.kind != KindArray {
		v.clear()
		v.kind = KindArray
		v.arr = []*Value{}
	}
	return v
}

// ToObject converts v into an empty object if it is not one already,
// discarding the current contents. Returns v.
func (v *Value) ToObject() *Value {
	if v.kind != KindObject {
		v.clear()
		v.kind = KindObject
		v.obj = []member{}
	}
	return v
}

// Index returns the array element at i, converting v to an array first if
// needed. The array grows to i+1 elements, filling new slots with nulls
// allocated through v's arena.
func (v *Value) Index(i int) *Value {
	v.ToArray()
	for len(v.arr) <= i {
		v.arr = append(v.arr, v.ctx().NewValue())
	}
	return v.arr[i]
}

// Key returns the member value for key, converting v to an object first if
// needed. A missing key is inserted with a null value.
func (v *Value) Key(key string) *Value {
	v.ToObject()
	i, ok := v.search(key)
	if ok {
		return v.obj[i].val
	}
	v.obj = append(v.obj, member{})
	copy(v.obj[i+1:], v.obj[i:])
	v.obj[i] = member{key: key, val: v.ctx().NewValue()}
	return v.obj[i].val
}

// Append adds elements to the array, converting v to an array first if
// needed. Returns v.
func (v *Value) Append(elems ...*Value) *Value {
	v.ToArray()
	v.arr = append(v.arr, elems...)
	return v
}

// ### Object Lookup ###

// search locates key among the sorted members. Returns the index where the
// key is, or where it would be inserted, and whether it was found.
func (v *Value) search(key string) (int, bool) {
	i := sort.Search(len(v.obj), func(i int) bool { return v.obj[i].key >= key })
	return i, i < len(v.obj) && v.obj[i].key == key
}

// Find returns the member value for key without converting or inserting.
// The second result is false if v is not an object or the key is absent.
func (v *Value) Find(key string) (*Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	if i, ok := v.search(key); ok {
		return v.obj[i].val, true
	}
	return nil, false
}

// Get returns the member value for key, or a *KeyError if v is not an
// object or the key is absent.
func (v *Value) Get(key string) (*Value, error) {
	if child, ok := v.Find(key); ok {
		return child, nil
	}
	return nil, &KeyError{Key: key}
}

// Keys returns the object's keys in ascending order, or nil if v is not an
// object.
func (v *Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.obj))
	for i, m := range v.obj {
		keys[i] = m.key
	}
	return keys
}

// Delete removes key from the object. Reports whether it was present.
func (v *Value) Delete(key string) bool {
	if v.kind != KindObject {
		return false
	}
	i, ok := v.search(key)
	if !ok {
		return false
	}
	v.obj = append(v.obj[:i], v.obj[i+1:]...)
	return true
}

// Len returns the element count for arrays, the member count for objects,
// and 0 otherwise.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// setMember inserts or overwrites a member, last write wins.
func (v *Value) setMember(key string, val *Value) {
	i, ok := v.search(key)
	if ok {
		v.obj[i].val = val
		return
	}
	v.obj = append(v.obj, member{})
	copy(v.obj[i+1:], v.obj[i:])
	v.obj[i] = member{key: key, val: val}
}

// ### Mutators ###

func (v *Value) clear() {
	v.b = false
	v.f = 0
	v.s = ""
	v.arr = nil
	v.obj = nil
	v.kind = KindNull
}

// SetNull resets v to null. Returns v.
func (v *Value) SetNull() *Value {
	v.clear()
	return v
}

// SetBool replaces v's contents with a boolean. Returns v.
func (v *Value) SetBool(b bool) *Value {
	v.clear()
	v.kind = KindBool
	v.b = b
	return v
}

// SetNumber replaces v's contents with a number. Returns v.
func (v *Value) SetNumber(f float64) *Value {
	v.clear()
	v.kind = KindNumber
	v.f = f
	return v
}

// SetString replaces v's contents with a string. Returns v.
func (v *Value) SetString(s string) *Value {
	v.clear()
	v.kind = KindString
	v.s = s
	return v
}

// ### Copy and Move ###

// Clone returns an independent deep copy of v, associated with v's arena.
func (v *Value) Clone() *Value {
	return v.cloneInto(v.ctx())
}

// CloneInto returns an independent deep copy of v allocated through the
// given arena.
func (v *Value) CloneInto(a *Arena) *Value {
	return v.cloneInto(a)
}

func (v *Value) cloneInto(a *Arena) *Value {
	out := &Value{arena: a.track(), kind: v.kind, b: v.b, f: v.f, s: v.s}
	switch v.kind {
	case KindArray:
		out.arr = make([]*Value, len(v.arr))
		for i, e := range v.arr {
			out.arr[i] = e.cloneInto(a)
		}
	case KindObject:
		out.obj = make([]member, len(v.obj))
		for i, m := range v.obj {
			out.obj[i] = member{key: m.key, val: m.val.cloneInto(a)}
		}
	}
	return out
}

// CopyFrom deep-copies src into v. v adopts src's arena; no state is shared
// with src afterwards. Returns v.
func (v *Value) CopyFrom(src *Value) *Value {
	if v == src {
		return v
	}
	c := src.Clone()
	v.arena = c.arena
	v.kind = c.kind
	v.b, v.f, v.s, v.arr, v.obj = c.b, c.f, c.s, c.arr, c.obj
	return v
}

// MoveFrom steals src's contents and arena, leaving src null. Returns v.
func (v *Value) MoveFrom(src *Value) *Value {
	if v == src {
		return v
	}
	v.arena = src.arena
	v.kind = src.kind
	v.b, v.f, v.s, v.arr, v.obj = src.b, src.f, src.s, src.arr, src.obj
	src.clear()
	return v
}

// ### Comparison ###

// Equal reports structural equality.
func (v *Value) Equal(o *Value) bool {
	return v.Compare(o) == 0
}

// Compare defines a total order over Values: first by kind in declaration
// order (null < bool < number < string < array < object), then structurally
// within the same kind. Arrays compare lexicographically; objects compare
// their sorted members pairwise, key before value. NaN numbers compare equal
// to every number so the order stays total.
func (v *Value) Compare(o *Value) int {
	if v.kind != o.kind {
		if v.kind < o.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindBool:
		switch {
		case v.b == o.b:
			return 0
		case o.b:
			return -1
		}
		return 1
	case KindNumber:
		switch {
		case v.f < o.f:
			return -1
		case v.f > o.f:
			return 1
		}
		return 0
	case KindString:
		return strings.Compare(v.s, o.s)
	case KindArray:
		for i := 0; i < len(v.arr) && i < len(o.arr); i++ {
			if c := v.arr[i].Compare(o.arr[i]); c != 0 {
				return c
			}
		}
		return len(v.arr) - len(o.arr)
	case KindObject:
		for i := 0; i < len(v.obj) && i < len(o.obj); i++ {
			if c := strings.Compare(v.obj[i].key, o.obj[i].key); c != 0 {
				return c
			}
			if c := v.obj[i].val.Compare(o.obj[i].val); c != 0 {
				return c
			}
		}
		return len(v.obj) - len(o.obj)
	}
	return 0
}

// ### Interop ###

// Interface converts the tree to plain Go values: nil, bool, float64,
// string, []interface{}, and map[string]interface{}.
func (v *Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.obj))
		for _, m := range v.obj {
			out[m.key] = m.val.Interface()
		}
		return out
	}
	return nil
}

// String renders v as compact JSON.
func (v *Value) String() string {
	return DumpString(v, WriteOptions{})
}
