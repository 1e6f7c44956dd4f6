package jump

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/fx/internal/fzf"
	cmdpkg "github.com/Paintersrp/fx/pkg/cmd"
)

func NewCmdJump(env *cmdpkg.Env) *cobra.Command {
	var (
		all       bool
		printOnly bool
		chooseDir string
	)

	cmd := &cobra.Command{
		Use:     "jump [query]",
		Aliases: []string{"j"},
		Short:   "Fuzzy-find a directory below the working directory and open it.",
		Long: heredoc.Doc(`
			This command lists every directory below the working directory in
			a fuzzy finder and launches the browser in the chosen one.

			Example:
			  fx jump src
			  cd "$(fx jump --print)"
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}

			finder := fzf.NewFuzzyFinder(wd, "Jump to directory")
			finder.ShowHidden = all
			dir, err := finder.Run(strings.Join(args, " "))
			if err != nil {
				if errors.Is(err, fzf.ErrNoSelection) {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return nil
				}
				return err
			}

			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			}
			return cmdpkg.Launch(env, cmdpkg.LaunchOptions{Dir: dir, ChooseDir: chooseDir})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden directories.")
	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the chosen directory instead of browsing it.")
	cmd.Flags().StringVar(&chooseDir, "choose-dir", "", "Write the final directory to this file on exit.")
	return cmd
}
