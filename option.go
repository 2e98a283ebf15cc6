package commandant

import (
	"github.com/viant/x"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/commandant-mcp/commandant/model/types"
	"github.com/commandant-mcp/commandant/service/dispatcher"
	"github.com/commandant-mcp/commandant/tracing"
)

// Option customises the Service façade.
type Option func(s *Service)

// WithConfig supplies a complete configuration; unset nested fields keep
// their package defaults.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithBlacklistURL overrides the location of the persisted command
// blacklist.
func WithBlacklistURL(URL string) Option {
	return func(s *Service) {
		s.config.Gate.BlacklistURL = URL
	}
}

// WithExtensionTypes registers additional go types with the action registry
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = types
	}
}

// WithExtensionServices registers additional action services
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = services
	}
}

// WithDispatcherOptions lets the caller supply additional options passed to
// dispatcher.New (e.g. disabling the default LogListener).
func WithDispatcherOptions(opts ...dispatcher.Option) Option {
	return func(s *Service) {
		s.dispatcherOptions = append(s.dispatcherOptions, opts...)
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile
// is empty the stderr exporter is used; otherwise traces are written to the
// supplied file path. Safe to call multiple times - the first successful
// initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, for example OTLP, Jaeger or Zipkin. Safe to call multiple
// times - the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
