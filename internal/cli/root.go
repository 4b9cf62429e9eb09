package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sup-routine-backend/internal/config"
	"sup-routine-backend/internal/store"
	"sup-routine-backend/internal/week"
)

var rootCmd = &cobra.Command{
	Use:   "routinectl",
	Short: "Admin tool for the routine scheduling backend",
	Long: `routinectl administers the routine backend directly against its store:
seeding the task catalog, assigning weekly duties and managing remote days.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(dutyCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(tokenCmd)
}

// openStore connects to the configured store. Callers own the handle
// and must Close it.
func openStore(cfg *config.Config) (store.Store, error) {
	st, err := store.Open(cfg.StoreDriver, cfg.RedisURL, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func resolver(cfg *config.Config) *week.Resolver {
	return week.New(cfg.Location())
}
