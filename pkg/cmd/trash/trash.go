package trash

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/progress"
	cmdpkg "github.com/Paintersrp/fx/pkg/cmd"
)

func NewCmdTrash(env *cmdpkg.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash [path]...",
		Short: "Move files or directories to the trash.",
		Long: heredoc.Doc(`
			This command moves each path into the trash directory under a
			timestamped name. Directories are copied with a progress bar and
			then removed. Broken symlinks are removed outright.

			Example:
			  fx trash build/ notes.txt
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("path argument is required")
			}

			paths := make([]string, 0, len(args))
			for _, arg := range args {
				path, err := cmdpkg.ResolvePath(arg)
				if err != nil {
					return err
				}
				paths = append(paths, path)
			}

			s, err := env.State()
			if err != nil {
				return err
			}
			s.Vault.SetReporter(progress.NewCLIProgress())

			out := cmd.OutOrStdout()
			for _, path := range paths {
				trashed, err := s.Vault.Delete(catalog.Stat(path))
				if err != nil {
					return err
				}
				if trashed == "" {
					fmt.Fprintf(out, "removed broken symlink %s\n", path)
					continue
				}
				fmt.Fprintf(out, "%s -> %s\n", path, trashed)
			}
			return nil
		},
	}

	return cmd
}
