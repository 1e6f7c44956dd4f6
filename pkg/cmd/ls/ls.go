package ls

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/fx/internal/catalog"
	cmdpkg "github.com/Paintersrp/fx/pkg/cmd"
)

func NewCmdLs(env *cmdpkg.Env) *cobra.Command {
	var (
		all      bool
		sortFlag string
	)

	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "Print a directory the way the browser lists it.",
		Long: heredoc.Doc(`
			This command prints the directory listing used by the browser:
			directories first, each group sorted by name or by modification
			time, with permissions, sizes and timestamps.

			Example:
			  fx ls --all --sort time ~/Downloads
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := catalog.ParseSortKey(sortFlag)
			if !ok {
				return fmt.Errorf("invalid sort key %q: use name or time", sortFlag)
			}

			dir := ""
			if len(args) == 1 {
				resolved, err := cmdpkg.ResolvePath(args[0])
				if err != nil {
					return err
				}
				dir = resolved
			} else {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}

			items, err := catalog.Rebuild(dir, key, all)
			if err != nil {
				return err
			}
			return Write(cmd.OutOrStdout(), items)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden entries.")
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "name", "Sort order: name or time.")
	return cmd
}

func Write(out io.Writer, items []catalog.Item) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, item := range items {
		perm := item.Permissions()
		if perm == "" {
			perm = "?"
		}
		size := "-"
		if item.Kind == catalog.File && !item.Degraded {
			size = humanize.Bytes(uint64(item.Size))
		}
		modified := item.Timestamp()
		if modified == "" {
			modified = "?"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", perm, size, modified, item.DisplayName())
	}
	return w.Flush()
}
