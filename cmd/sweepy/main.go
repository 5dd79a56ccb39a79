package main

import (
	"fmt"
	"os"

	"github.com/joris-gallot/sweepy/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sweepy",
		Short: "sweepy - finds unused exports across a JS/TS/Vue module graph",
		Long: `sweepy analyzes a JavaScript/TypeScript/Vue source tree and reports
exported symbols that no reachable module imports, starting from one
or more entry files.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(unusedCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("sweepy version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
