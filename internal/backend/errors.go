package backend

// ConfigurationError reports a backend that cannot start as configured,
// such as a missing credential. It is fatal to session start and never
// retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "backend configuration: " + e.Reason
}

// ProtocolError reports a fault on the live stream: an explicit error
// event from the service or an unexpectedly closed connection. It ends
// the current session loop.
type ProtocolError struct {
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	return "translation backend: " + e.Message
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
