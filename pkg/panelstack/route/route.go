// Package route defines the declarative values that name what should be on
// screen, and the per-kind policy table features use to decide how each
// route is presented and whether its surface survives a pop.
package route

import "reflect"

// Kind names a route variant. Features define their own kinds as constants.
type Kind string

// KindCustom is reserved for Custom routes.
const KindCustom Kind = "custom"

// Route is an immutable value identifying a desired panel or dialog.
//
// Routes are compared with == and used as map keys, so every variant must be
// a comparable type: a struct of comparable fields, or a pointer when the
// variant carries closures or other non-comparable data.
type Route interface {
	Kind() Kind
}

// Comparable reports whether r can be compared and hashed without panicking.
func Comparable(r Route) bool {
	if r == nil {
		return false
	}
	return isComparable(reflect.ValueOf(r))
}

func isComparable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		return isComparable(v.Elem())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !isComparable(v.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !isComparable(v.Index(i)) {
				return false
			}
		}
		return true
	default:
		return v.Type().Comparable()
	}
}

// Equal reports whether two stacks hold equal routes in the same order.
func Equal(a, b []Route) bool {
	if len(a) != len(b) {
		return false
	}
	return IsPrefix(a, b)
}

// IsPrefix reports whether p is a prefix of s (p == s counts).
func IsPrefix(p, s []Route) bool {
	if len(p) > len(s) {
		return false
	}
	for i := range p {
		if p[i] != s[i] {
			return false
		}
	}
	return true
}

// Kinds returns the kind of every route in stack, oldest first.
// Useful for logging without formatting route payloads.
func Kinds(stack []Route) []Kind {
	kinds := make([]Kind, len(stack))
	for i, r := range stack {
		kinds[i] = r.Kind()
	}
	return kinds
}
