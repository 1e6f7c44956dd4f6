package root

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/constants"
	cmdpkg "github.com/Paintersrp/fx/pkg/cmd"
	"github.com/Paintersrp/fx/pkg/cmd/emptyTrash"
	"github.com/Paintersrp/fx/pkg/cmd/initialize"
	"github.com/Paintersrp/fx/pkg/cmd/jump"
	"github.com/Paintersrp/fx/pkg/cmd/ls"
	"github.com/Paintersrp/fx/pkg/cmd/trash"
	"github.com/Paintersrp/fx/pkg/cmd/trashList"
	"github.com/Paintersrp/fx/pkg/cmd/untrash"
)

func NewCmdRoot(env *cmdpkg.Env) (*cobra.Command, error) {
	var (
		showHidden bool
		sortFlag   string
		chooseDir  string
	)

	cmd := &cobra.Command{
		Use:     constants.AppName + " [dir]",
		Short:   "Browse and manage files from the terminal.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			A keyboard-driven file browser with an undoable trash.

			Deletes go to a timestamped trash directory and can be undone,
			pasted elsewhere or restored later from the command line.

			  fx                 browse the working directory
			  fx ~/src --sort time
			  fx trash-list --since 2024-03-01
		`),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cmdpkg.LaunchOptions{ChooseDir: chooseDir}
			if len(args) == 1 {
				dir, err := cmdpkg.ResolvePath(args[0])
				if err != nil {
					return err
				}
				opts.Dir = dir
			}
			if cmd.Flags().Changed("hidden") {
				opts.ShowHidden = &showHidden
			}
			if cmd.Flags().Changed("sort") {
				key, ok := catalog.ParseSortKey(sortFlag)
				if !ok {
					return fmt.Errorf("invalid sort key %q: use name or time", sortFlag)
				}
				opts.Sort = &key
			}
			return cmdpkg.Launch(env, opts)
		},
	}

	cmd.SetUsageTemplate(constants.Help)

	cmd.Flags().BoolVar(&showHidden, "hidden", true, "Show hidden files (defaults to the saved session).")
	cmd.Flags().StringVar(&sortFlag, "sort", "name", "Sort order: name or time (defaults to the saved session).")
	cmd.Flags().StringVar(&chooseDir, "choose-dir", "", "Write the final directory to this file on exit.")

	cmd.PersistentFlags().String("config-dir", "", "Configuration directory (default $FX_CONFIG_DIR or ~/.config/fx).")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error.")
	if err := viper.BindPFlag(cmdpkg.KeyConfigDir, cmd.PersistentFlags().Lookup("config-dir")); err != nil {
		return nil, err
	}
	if err := viper.BindPFlag(cmdpkg.KeyLogLevel, cmd.PersistentFlags().Lookup("log-level")); err != nil {
		return nil, err
	}

	cmd.AddCommand(
		ls.NewCmdLs(env),
		trash.NewCmdTrash(env),
		untrash.NewCmdUntrash(env),
		trashList.NewCmdTrashList(env),
		emptyTrash.NewCmdEmptyTrash(env),
		jump.NewCmdJump(env),
		initialize.NewCmdInit(),
	)

	return cmd, nil
}
