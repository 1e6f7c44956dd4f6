package cmd

import (
	"io"

	"github.com/spf13/viper"

	"github.com/Paintersrp/fx/internal/state"
)

// Viper keys bound to the root persistent flags.
const (
	KeyConfigDir = "config_dir"
	KeyLogLevel  = "log_level"
)

// Env builds the shared state on first use, after cobra has parsed the
// persistent flags it depends on.
type Env struct {
	// LogWriter overrides the log file; tests use io.Discard.
	LogWriter io.Writer

	state *state.State
}

func (env *Env) State() (*state.State, error) {
	if env.state != nil {
		return env.state, nil
	}

	s, err := state.NewState(state.Options{
		ConfigDir: viper.GetString(KeyConfigDir),
		LogLevel:  viper.GetString(KeyLogLevel),
		LogWriter: env.LogWriter,
	})
	if err != nil {
		return nil, err
	}
	env.state = s
	return s, nil
}

func (env *Env) Close() error {
	if env == nil || env.state == nil {
		return nil
	}
	err := env.state.Close()
	env.state = nil
	return err
}
