package internal

import (
	"fmt"
	"strconv"
)

// Runtime values are nil, loxBool, loxNumber, loxString or one of the
// reference types: *loxFunction, *nativeFn, *loxClass and *loxInstance.
// All of them are comparable, so equality is plain interface equality.

type loxBool bool

func (b loxBool) String() string {
	return strconv.FormatBool(bool(b))
}

type loxNumber float64

func (n loxNumber) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

type loxString string

func (s loxString) String() string {
	return string(s)
}

// Repr returns the string as it would be written in source.
func (s loxString) Repr() string {
	return "\"" + string(s) + "\""
}

// truthy: only false and nil are falsy.
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case loxBool:
		return bool(v)
	default:
		return true
	}
}

func isEqual(a, b interface{}) bool {
	return a == b
}

func stringify(value interface{}) string {
	if value == nil {
		return "nil"
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", value)
}
