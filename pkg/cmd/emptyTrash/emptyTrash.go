package emptyTrash

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	cmdpkg "github.com/Paintersrp/fx/pkg/cmd"
)

// Confirm asks before deleting; replaced in tests.
var Confirm = func(prompt string) (bool, error) {
	return confirmation.New(prompt, confirmation.No).RunPrompt()
}

func NewCmdEmptyTrash(env *cmdpkg.Env) *cobra.Command {
	var (
		before string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "empty-trash",
		Short: "Permanently delete trash entries.",
		Long: heredoc.Doc(`
			This command permanently removes entries from the trash. With
			--before only entries deleted before that date are removed.
			Deletion cannot be undone.

			Example:
			  fx empty-trash --before "2024-01-31 18:00" --yes
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoff, err := cmdpkg.ParseDate(before)
			if err != nil {
				return err
			}

			s, err := env.State()
			if err != nil {
				return err
			}

			if !yes {
				prompt := fmt.Sprintf("Permanently delete everything in %s?", s.Vault.Dir())
				if !cutoff.IsZero() {
					prompt = fmt.Sprintf("Permanently delete trash entries older than %s?", cutoff.Format("2006-01-02 15:04"))
				}
				ok, err := Confirm(prompt)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}

			removed, err := s.Vault.Empty(cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Only remove entries deleted before this date.")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt.")
	return cmd
}
