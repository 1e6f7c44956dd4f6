package state

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/config"
	"github.com/Paintersrp/fx/internal/engine"
	"github.com/Paintersrp/fx/internal/logging"
	"github.com/Paintersrp/fx/internal/preview"
	"github.com/Paintersrp/fx/internal/progress"
	"github.com/Paintersrp/fx/internal/session"
	"github.com/Paintersrp/fx/internal/trash"
)

type Options struct {
	ConfigDir string
	LogLevel  string
	// LogWriter replaces the log file; tests pass io.Discard.
	LogWriter io.Writer
}

type State struct {
	Config     *config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Vault      *trash.Vault
	Session    session.Session
	Progress   *progress.LogProgress
	Watcher    *DirWatcher
	RootStatus *RootStatus
	Home       string

	logFile io.Closer
}

func NewState(opts Options) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	dir, err := config.ResolveDir(opts.ConfigDir)
	if err != nil {
		return nil, err
	}

	if err := config.EnsureConfigExists(dir); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}

	s := &State{ConfigDir: dir, Home: home, RootStatus: &RootStatus{}}
	if opts.LogWriter != nil {
		s.Logger = logging.New(opts.LogWriter, level)
	} else {
		logger, closer, err := logging.OpenFile(dir, level)
		if err != nil {
			return nil, err
		}
		s.Logger, s.logFile = logger, closer
	}

	cfg, warnings, err := config.Load(dir)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	for _, w := range warnings {
		s.Logger.Warn().Str("config", config.GetConfigPath(dir)).Msg(w)
	}
	s.Config = cfg

	s.Progress = progress.NewLogProgress(s.Logger)
	vault, err := trash.New(cfg.TrashPath(), trash.Options{
		Every:    cfg.ProgressEvery,
		Reporter: s.Progress,
		Logger:   s.Logger,
	})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to open trash: %w", err)
	}
	s.Vault = vault
	s.Session = session.Load(session.Path(dir))

	s.Logger.Info().
		Str("config_dir", dir).
		Str("trash", vault.Dir()).
		Msg("state initialised")
	return s, nil
}

// EngineOptions overrides the session values for one launch.
type EngineOptions struct {
	Dir        string
	Rows       int
	Sort       *catalog.SortKey
	ShowHidden *bool
}

// NewEngine builds the engine for dir and starts watching it.
func (s *State) NewEngine(opts EngineOptions) (*engine.Engine, error) {
	sortKey := s.Session.Sort()
	if opts.Sort != nil {
		sortKey = *opts.Sort
	}
	showHidden := s.Session.ShowHidden
	if opts.ShowHidden != nil {
		showHidden = *opts.ShowHidden
	}

	e, err := engine.New(engine.Options{
		Dir:        opts.Dir,
		Sort:       sortKey,
		ShowHidden: showHidden,
		Rows:       opts.Rows,
		Vault:      s.Vault,
		Classifier: preview.NewClassifier(preview.MimeSniffer{}),
		Logger:     s.Logger,
	})
	if err != nil {
		return nil, err
	}

	if s.Watcher == nil {
		watcher, err := NewDirWatcher(e.Dir())
		if err != nil {
			// The browser still works without live refresh.
			s.Logger.Warn().Err(err).Str("dir", e.Dir()).Msg("directory watcher unavailable")
		} else {
			s.Watcher = watcher
		}
	}
	return e, nil
}

// SaveSession records the view settings for the next launch.
func (s *State) SaveSession(e *engine.Engine, previewOn bool, split session.Split) error {
	s.Session = session.From(e.Sort(), e.ShowHidden(), previewOn, split)
	if err := s.Session.Save(session.Path(s.ConfigDir)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return home, nil
}

// Close releases the watcher and the log file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.logFile != nil {
		if err := s.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logFile = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
