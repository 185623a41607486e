// Package module is the module contract plus the port lookups the api wires modules with
// It sits apart from modkit so a module can export its own port types without a cycle
package module

import (
	"reflect"
	"sync"

	phttp "chatguard/internal/platform/net/http"
)

// Module is a mountable unit of routes with an optional port bundle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// extract finds a T in ports, either ports itself or one of its exported struct fields
func extract[T any](ports any) (T, bool) {
	var zero T
	if ports == nil {
		return zero, false
	}
	if v, ok := ports.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(ports)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// PortsOf pulls a T out of m's port bundle
func PortsOf[T any](m Module) (T, bool) { return extract[T](m.Ports()) }

// MustPortsOf is PortsOf that panics naming the module
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: " + m.Name() + " exports no " + reflect.TypeFor[T]().String())
	}
	return v
}

var (
	regMu sync.RWMutex
	reg   = map[string]any{}
)

// Register publishes a module's port bundle under its name
func Register(name string, ports any) {
	regMu.Lock()
	defer regMu.Unlock()
	reg[name] = ports
}

// Lookup pulls a T out of the bundle registered under name
func Lookup[T any](name string) (T, bool) {
	regMu.RLock()
	ports, ok := reg[name]
	regMu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return extract[T](ports)
}

// Reset empties the registry
func Reset() {
	regMu.Lock()
	defer regMu.Unlock()
	reg = map[string]any{}
}
