package cmd

import (
	"os"

	"golang.org/x/term"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/constants"
	"github.com/Paintersrp/fx/internal/fxerr"
	"github.com/Paintersrp/fx/internal/state"
	"github.com/Paintersrp/fx/internal/tui/browser"
)

type LaunchOptions struct {
	Dir        string
	ChooseDir  string
	Sort       *catalog.SortKey
	ShowHidden *bool
}

// Launch checks the terminal, builds the engine and runs the browser.
func Launch(env *Env, opts LaunchOptions) error {
	rows := 0
	if cols, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if cols < constants.MinTermSize || height < constants.MinTermSize {
			return fxerr.TooSmall(cols, height)
		}
		rows = height - 2
	}

	s, err := env.State()
	if err != nil {
		return err
	}

	e, err := s.NewEngine(state.EngineOptions{
		Dir:        opts.Dir,
		Rows:       rows,
		Sort:       opts.Sort,
		ShowHidden: opts.ShowHidden,
	})
	if err != nil {
		return err
	}

	return browser.Run(s, e, opts.ChooseDir)
}
