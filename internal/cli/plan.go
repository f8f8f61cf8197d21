package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgload/internal/files/scanner"
	"github.com/vvka-141/pgload/internal/tui"
	"github.com/vvka-141/pgload/pkg/pgload"
)

var planCmd = &cobra.Command{
	Use:   "plan <source_dir>",
	Short: "Show which table each input file would be loaded into",
	Long: `Plan lists the input files of source_dir in processing order together with
the table each one maps to. Files whose names differ only in case map to the
same table; plan reports these collisions. The last file in order wins.

No file is parsed and no database connection is made.

Examples:
  pgload plan ./exports
  pgload plan ./exports --extension .txt`,
	Args:              RequireSourcePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runPlan,
}

var planExtension string

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&planExtension, "extension", "",
		"File extension selecting input files (default: pgload.yaml load.extension, or .csv)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]

	projectCfg, err := loadProjectConfig(sourcePath)
	if err != nil {
		return err
	}
	var fileExt string
	if projectCfg != nil {
		fileExt = projectCfg.Load.Extension
	}
	extension := stringSetting(cmd, "extension", planExtension, "", fileExt, pgload.DefaultExtension)

	result, err := scanner.NewScanner().Scan(sourcePath, extension)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}
	if len(result.Files) == 0 {
		return fmt.Errorf("%w: no %s files in %s", pgload.ErrNoInputFiles, extension, sourcePath)
	}

	tui.RenderPlan(cmd.OutOrStdout(), sourcePath, result, tui.DetectMode(os.Stdout))
	return nil
}
