package extension

import (
	"reflect"
	"sync"

	"github.com/commandant-mcp/commandant/model/types"
	"github.com/viant/x"
)

// Actions holds the registered action services
type Actions struct {
	types    *Types
	services map[string]types.Service
	mux      sync.RWMutex
}

func (s *Actions) Types() *Types {
	return s.types
}

// Lookup returns a service by name
func (s *Actions) Lookup(name string) types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.services[name]
}

// Services returns the registered services
func (s *Actions) Services() []types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]types.Service, 0, len(s.services))
	for _, service := range s.services {
		ret = append(ret, service)
	}
	return ret
}

// Register registers a service together with its method input/output types
func (s *Actions) Register(service types.Service) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, signature := range service.Methods() {
		for _, rType := range []reflect.Type{signature.Input, signature.Output} {
			if rType == nil {
				continue
			}
			if rType.Kind() == reflect.Ptr {
				rType = rType.Elem()
			}
			s.types.Register(x.NewType(rType))
		}
	}
	s.services[service.Name()] = service
}

// NewActions creates a new action service registry
func NewActions(goTypes ...*x.Type) *Actions {
	ret := &Actions{
		types:    NewTypes(),
		services: make(map[string]types.Service),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}
