package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sup-routine-backend/internal/catalog"
	"sup-routine-backend/internal/config"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load the task catalog from a YAML file into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	tasks, err := catalog.LoadSeedFile(args[0])
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	cat := catalog.New(st)
	if err := cat.Save(context.Background(), tasks); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	fmt.Printf("Seeded %d tasks from %s\n", len(tasks), args[0])
	return nil
}
