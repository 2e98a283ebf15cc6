package types

// Service is an action service exposed to the agent. Each service groups a
// set of named methods with typed input/output structs.
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}
