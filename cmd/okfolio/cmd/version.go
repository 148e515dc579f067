package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the okfolio CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("okfolio version %s\n", version)
		fmt.Println("Daily futures portfolio tracker and report generator")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
