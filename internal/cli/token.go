package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sup-routine-backend/internal/auth"
	"sup-routine-backend/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token <caller>",
	Short: "Issue a service token for the HTTP API",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.APISecret == "" {
		return fmt.Errorf("API_SECRET is not set; the API runs unguarded without it")
	}

	token, err := auth.GenerateToken([]byte(cfg.APISecret), args[0])
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
