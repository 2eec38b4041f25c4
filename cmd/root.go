package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "petcarex-seed [command]",
	Short: "Synthetic data seeder for the PetCareX clinic database",
	Long: `Create the clinic schema, load master data and fill the customer, pet, checkup,
receipt and review tables with realistic random records for load tests and demos.`,
	SilenceUsage: true,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		return loadDotEnv(".env")
	},
}

func init() {
	bindConnFlags(rootCmd)
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
