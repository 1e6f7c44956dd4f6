package trashList

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/trash"
	cmdpkg "github.com/Paintersrp/fx/pkg/cmd"
)

func NewCmdTrashList(env *cmdpkg.Env) *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:     "trash-list",
		Aliases: []string{"tl"},
		Short:   "List the trash, oldest first.",
		Long: heredoc.Doc(`
			This command lists every entry in the trash directory with its
			original name, size and deletion time.

			Example:
			  fx trash-list --since "2024-03-01"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			after, err := cmdpkg.ParseDate(since)
			if err != nil {
				return err
			}

			s, err := env.State()
			if err != nil {
				return err
			}

			entries, err := s.Vault.List()
			if err != nil {
				return err
			}
			return Write(cmd.OutOrStdout(), Filter(entries, after), time.Now())
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only list entries deleted at or after this date.")
	return cmd
}

// Filter keeps entries deleted at or after since; a zero since keeps all.
func Filter(entries []trash.Entry, since time.Time) []trash.Entry {
	if since.IsZero() {
		return entries
	}
	kept := entries[:0:0]
	for _, e := range entries {
		if !e.Deleted.IsZero() && !e.Deleted.Before(since) {
			kept = append(kept, e)
		}
	}
	return kept
}

func Write(out io.Writer, entries []trash.Entry, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "trash is empty")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tORIGINAL\tSIZE\tDELETED")
	for _, e := range entries {
		original := e.Original
		if e.Kind == catalog.Dir {
			original += "/"
		}
		deleted := "unknown"
		if !e.Deleted.IsZero() {
			deleted = humanize.RelTime(e.Deleted, now, "ago", "from now")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, original, humanize.Bytes(uint64(e.Size)), deleted)
	}
	return w.Flush()
}
