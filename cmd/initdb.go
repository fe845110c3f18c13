package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glmirror/internal/store"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new mirror database",
	Long:  "Creates .glmirror.db in the current directory (or at the given path) with the full schema applied.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ".glmirror.db"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to reuse it)", path)
		}

		s, err := store.Open(path)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Migrate(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("Initialized mirror database at %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Apply schema even if the file exists")
	rootCmd.AddCommand(initCmd)
}
