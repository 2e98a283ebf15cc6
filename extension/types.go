package extension

import (
	"reflect"
	"strings"

	"github.com/viant/x"
)

// Types registers the Go types action services exchange, so that loosely
// typed tool arguments can be materialised into the right structs.
type Types struct {
	x.Registry
}

// Lookup returns a data type from the registry; an optional "[]" prefix
// yields the slice form.
func (t *Types) Lookup(dataType string) *x.Type {
	typeModifier := ""
	if idx := strings.LastIndex(dataType, "]"); idx != -1 {
		typeModifier = dataType[:idx+1]
		dataType = dataType[idx+1:]
	}
	ret := t.Registry.Lookup(dataType)
	if ret == nil {
		return nil
	}
	if strings.TrimSpace(typeModifier) == "[]" {
		return x.NewType(reflect.SliceOf(ret.Type))
	}
	return ret
}

// NewTypes creates a new types registry
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{Registry: *x.NewRegistry(options...)}
}
