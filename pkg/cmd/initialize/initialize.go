package initialize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"
)

// SelectShell picks a shell when none is given; replaced in tests.
var SelectShell = func(shells []string) (string, error) {
	return selection.New("Which shell?", shells).RunPrompt()
}

var scripts = map[string]string{
	"bash": heredoc.Doc(`
		fx() {
		  local choice
		  choice="$(mktemp -t fx-choice.XXXXXX)" || return
		  command fx --choose-dir "$choice" "$@"
		  local code=$?
		  if [ -s "$choice" ]; then
		    cd -- "$(cat "$choice")" || code=$?
		  fi
		  rm -f -- "$choice"
		  return $code
		}
	`),
	"fish": heredoc.Doc(`
		function fx
		    set -l choice (mktemp -t fx-choice.XXXXXX); or return
		    command fx --choose-dir $choice $argv
		    set -l code $status
		    if test -s $choice
		        cd (cat $choice); or set code $status
		    end
		    rm -f -- $choice
		    return $code
		end
	`),
}

func init() {
	scripts["zsh"] = scripts["bash"]
}

// Script returns the wrapper function for shell.
func Script(shell string) (string, error) {
	script, ok := scripts[strings.ToLower(shell)]
	if !ok {
		return "", fmt.Errorf("unsupported shell %q: use one of %s", shell, strings.Join(Shells(), ", "))
	}
	return script, nil
}

func Shells() []string {
	shells := make([]string, 0, len(scripts))
	for name := range scripts {
		shells = append(shells, name)
	}
	sort.Strings(shells)
	return shells
}

func NewCmdInit() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init [bash|zsh|fish]",
		Short:     "Print a shell function that changes to the last browsed directory.",
		ValidArgs: []string{"bash", "zsh", "fish"},
		Long: heredoc.Doc(`
			This command prints a wrapper function for your shell. The wrapper
			runs fx with --choose-dir and changes into the directory you were
			browsing when you quit. Without an argument you are asked to pick
			a shell.

			Example:
			  eval "$(fx init bash)"
			  fx init fish | source
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var shell string
			if len(args) == 1 {
				shell = args[0]
			} else {
				picked, err := SelectShell(Shells())
				if err != nil {
					return err
				}
				shell = picked
			}

			script, err := Script(shell)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		},
	}

	return cmd
}
