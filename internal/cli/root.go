package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgload",
	Short: "Bulk-load a directory of CSV files into PostgreSQL",
	Long: `pgload loads every delimited text file of a directory into PostgreSQL,
one table per file. The table name is the lower-cased file name without its
extension. Existing tables are dropped and recreated, filled with COPY, then
read back with SELECT * and compared against the source file.

Files are processed one at a time in name order. By default the run stops at
the first failing file; tables loaded before it keep their new contents.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  13 - Load failed (parse, write or verification)
  14 - No input files found
  15 - Partial load (--continue-on-error and some files failed)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// -h is --host, as in psql.
	rootCmd.PersistentFlags().Bool("help", false, "Help for pgload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
