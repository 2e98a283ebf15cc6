// Package dispatcher routes invocations to registered action services. It
// converts loosely typed payloads into the method's input struct, allocates
// the output, opens a span per invocation and calls an optional listener
// afterwards.
package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"reflect"

	"github.com/viant/structology/conv"

	"github.com/commandant-mcp/commandant/extension"
	"github.com/commandant-mcp/commandant/internal/idgen"
	"github.com/commandant-mcp/commandant/tracing"
)

// Listener is invoked once an action completes, whether it returned an error
// or not. Implementations can log, collect metrics or perform any other
// side-effects they require.
type Listener func(invocationID, service, method string, input, output interface{}, err error)

// LogListener writes one line per invocation to the standard logger.
func LogListener(invocationID, service, method string, input, output interface{}, err error) {
	in, _ := json.Marshal(input)
	if err != nil {
		log.Printf("[%s] %s.%s input=%s error=%v", invocationID, service, method, in, err)
		return
	}
	out, _ := json.Marshal(output)
	log.Printf("[%s] %s.%s input=%s output=%s", invocationID, service, method, in, out)
}

// Option customises the dispatcher.
type Option func(*Service)

// WithListener overrides the listener invoked after every dispatched action.
// Passing nil disables the callback entirely.
func WithListener(l Listener) Option {
	return func(s *Service) {
		s.listener = l
	}
}

// Service dispatches by service and method name.
type Service struct {
	actions   *extension.Actions
	converter *conv.Converter
	listener  Listener
}

// New creates a dispatcher over the supplied action registry.
func New(actions *extension.Actions, opts ...Option) *Service {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	options.AccessUnexported = true

	s := &Service{
		actions:   actions,
		converter: conv.NewConverter(options),
		listener:  LogListener,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Invoke resolves the named method, converts payload into its input type,
// executes it and returns the populated output.
func (s *Service) Invoke(ctx context.Context, service, method string, payload interface{}) (interface{}, error) {
	actionService := s.actions.Lookup(service)
	if actionService == nil {
		return nil, fmt.Errorf("service %v not found", service)
	}
	executable, err := actionService.Method(method)
	if err != nil {
		return nil, fmt.Errorf("failed to find method %v for service %v: %w", method, service, err)
	}
	signature := actionService.Methods().Lookup(method)
	if signature == nil {
		return nil, fmt.Errorf("missing signature for %v.%v", service, method)
	}

	input, err := s.typedValue(signature.Input, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to convert input for %v.%v: %w", service, method, err)
	}
	output, err := s.typedValue(signature.Output, map[string]interface{}{})
	if err != nil {
		return nil, err
	}

	invocationID := idgen.New()
	spanCtx, span := tracing.StartSpan(ctx, fmt.Sprintf("%s.%s", service, method), "INTERNAL")
	span.WithAttributes(map[string]string{
		"invocation.id":  invocationID,
		"action.service": service,
		"action.method":  method,
	})
	err = executable(spanCtx, input, output)
	tracing.EndSpan(span, err)

	if s.listener != nil {
		s.listener(invocationID, service, method, input, output, err)
	}
	if err != nil {
		return nil, err
	}
	return output, nil
}

// typedValue converts a value to the specified type; a value that already has
// the target type is passed through untouched.
func (s *Service) typedValue(aType reflect.Type, value interface{}) (interface{}, error) {
	if value != nil && reflect.TypeOf(value) == aType {
		return value, nil
	}
	instance := newInstancePtr(aType)
	err := s.converter.Convert(value, instance)
	return instance, err
}

func newInstancePtr(aType reflect.Type) interface{} {
	if aType.Kind() == reflect.Ptr {
		return reflect.New(aType.Elem()).Interface()
	}
	return reflect.New(aType).Interface()
}
