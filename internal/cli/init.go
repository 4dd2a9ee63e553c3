package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/mkr1/internal/domain"
	"github.com/aalvaropc/mkr1/internal/infra/fsproject"
	"github.com/aalvaropc/mkr1/internal/infra/projectfinder"
	"github.com/aalvaropc/mkr1/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create an mkr1 folder with a seed INPUT.txt and config template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := strings.TrimSpace(path)
			if p == "" {
				p = "."
			}
			root, err := filepath.Abs(p)
			if err != nil {
				return fmt.Errorf("invalid project path: %w", err)
			}

			// Re-running init on an existing project keeps its history dir ignored.
			cfg, err := projectfinder.LoadConfig(root)
			if err != nil {
				return err
			}

			uc := usecase.NewInitProject(fsproject.NewInitializer())
			spec := domain.ProjectSpec{Root: root, HistoryDir: cfg.History.Dir}
			if err := uc.Execute(spec, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized mkr1 project at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", ".", "Directory that will contain the mkr1 folder")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}
