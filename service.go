package commandant

import (
	"context"

	"github.com/viant/x"

	"github.com/commandant-mcp/commandant/extension"
	"github.com/commandant-mcp/commandant/internal/platform"
	"github.com/commandant-mcp/commandant/model/types"
	"github.com/commandant-mcp/commandant/service/dispatcher"
	"github.com/commandant-mcp/commandant/service/edit"
	"github.com/commandant-mcp/commandant/service/gate"
	"github.com/commandant-mcp/commandant/service/process"
	"github.com/commandant-mcp/commandant/service/storage"
	"github.com/commandant-mcp/commandant/service/terminal"
)

// Service is the façade wiring the command gate, the terminal session
// manager, the process inspector and the file tooling behind a single action
// registry and dispatcher.
type Service struct {
	config            *Config
	caps              platform.Capabilities
	actions           *extension.Actions
	dispatcher        *dispatcher.Service
	dispatcherOptions []dispatcher.Option
	extensionTypes    []*x.Type
	extensionServices []types.Service

	gate     *gate.Service
	terminal *terminal.Service
	process  *process.Service
	storage  *storage.Service
	edit     *edit.Service
}

// New creates the façade; the gate loads its persisted blacklist during
// construction, so a corrupt blacklist document surfaces here.
func New(ctx context.Context, options ...Option) (*Service, error) {
	s := &Service{
		config: DefaultConfig(),
		caps:   platform.Detect(),
	}
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init(ctx context.Context) error {
	gateService, err := gate.New(ctx, gate.NewStore(s.config.Gate.BlacklistURL))
	if err != nil {
		return err
	}
	s.gate = gateService
	s.terminal = terminal.New(gateService, s.caps, s.config.Terminal)
	s.process, err = process.New(ctx, s.caps, s.config.Process)
	if err != nil {
		return err
	}
	s.storage = storage.New()
	s.edit = edit.New()

	s.actions = extension.NewActions(s.extensionTypes...)
	s.actions.Register(s.gate)
	s.actions.Register(s.terminal)
	s.actions.Register(s.process)
	s.actions.Register(s.storage)
	s.actions.Register(s.edit)
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}
	s.dispatcher = dispatcher.New(s.actions, s.dispatcherOptions...)
	return nil
}

// RegisterExtensionTypes registers additional go types after construction.
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.actions.Types().Register(types[i])
	}
}

// RegisterExtensionServices registers additional action services after
// construction.
func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.actions.Register(services[i])
	}
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Actions returns the action registry.
func (s *Service) Actions() *extension.Actions {
	return s.actions
}

// Dispatcher returns the invocation dispatcher.
func (s *Service) Dispatcher() *dispatcher.Service {
	return s.dispatcher
}

// Gate returns the command gate.
func (s *Service) Gate() *gate.Service {
	return s.gate
}

// Terminal returns the terminal session manager.
func (s *Service) Terminal() *terminal.Service {
	return s.terminal
}
