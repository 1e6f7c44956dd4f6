package config

// ConfigInitError reports a configuration directory that cannot be set up.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}
