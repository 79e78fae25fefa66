package dbg

import (
	"fmt"
	"reflect"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/kr/pretty"
)

// This converts arbitrary comparable values (vertex handles, face handles,
// pointers) into random readable names. It flagrantly leaks memory but
// generates the names lazily, so it's not a problem unless you're actually
// using it. This is helpful for telling apart handles in logs and drawings,
// where arena indices all look alike.

var memo map[interface{}]string

func init() {
	memo = make(map[interface{}]string)
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if isNil(obj) {
		return "Ø"
	}

	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}

// Handles carry an IsNil method; pointers, maps and the like are nil in the
// reflect sense.
func isNil(obj interface{}) bool {
	if obj == nil {
		return true
	}
	if n, ok := obj.(interface{ IsNil() bool }); ok {
		return n.IsNil()
	}
	switch v := reflect.ValueOf(obj); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Dump renders any value, unexported fields included, for log messages.
func Dump(obj interface{}) string {
	return pretty.Sprint(obj)
}
