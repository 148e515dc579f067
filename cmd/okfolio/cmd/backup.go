package cmd

import (
	"fmt"

	"github.com/chaiwat/okfolio/store"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write an xz-compressed snapshot of the observation database",
	Args:  cobra.NoArgs,
	RunE:  runBackup,
}

var backupDir string

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().StringVarP(&backupDir, "out", "o", "./backups", "directory to write the snapshot into")
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := store.Backup(cfg.DatabaseFile, backupDir)
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	fmt.Printf("Backup written to %s\n", path)
	return nil
}
