package untrash

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/fx/internal/fxerr"
	cmdpkg "github.com/Paintersrp/fx/pkg/cmd"
)

func NewCmdUntrash(env *cmdpkg.Env) *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "untrash [trash-name] [target-dir]",
		Short: "Restore an item from the trash.",
		Long: heredoc.Doc(`
			This command restores a trash entry into target-dir, or the
			working directory when omitted. The timestamp prefix is stripped
			and an existing name is never overwritten. The entry leaves the
			trash unless --keep is given.

			Use 'fx trash-list' to see entry names.

			Example:
			  fx untrash 1700000000_notes.txt ~/docs
		`),
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("path argument is required")
			}

			target := ""
			if len(args) == 2 {
				dir, err := cmdpkg.ResolvePath(args[1])
				if err != nil {
					return err
				}
				target = dir
			} else {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				target = wd
			}

			s, err := env.State()
			if err != nil {
				return err
			}

			entry, err := cmdpkg.ResolveTrashEntry(s.Vault, args[0])
			if err != nil {
				return err
			}

			restored, err := s.Vault.Restore(entry, target)
			if err != nil {
				return err
			}
			if !keep {
				if err := os.RemoveAll(entry); err != nil {
					return fxerr.Remove(entry, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", restored)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "Leave the entry in the trash.")

	return cmd
}
