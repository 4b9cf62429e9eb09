package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sup-routine-backend/internal/config"
	"sup-routine-backend/internal/directory"
	"sup-routine-backend/internal/remote"
)

var remoteWeekRef string

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage remote work days",
}

var remoteSetCmd = &cobra.Command{
	Use:   "set <employee> <date>...",
	Short: "Set an employee's remote days for a week",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runRemoteSet,
}

var remoteClearCmd = &cobra.Command{
	Use:   "clear <employee>",
	Short: "Clear an employee's remote days for a week",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoteClear,
}

var remoteSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show who is remote on each day of a week",
	Args:  cobra.NoArgs,
	RunE:  runRemoteSummary,
}

func init() {
	remoteCmd.PersistentFlags().StringVar(&remoteWeekRef, "week", "next",
		`Week to operate on: "current", "next" or a dd/mm date`)
	remoteCmd.AddCommand(remoteSetCmd)
	remoteCmd.AddCommand(remoteClearCmd)
	remoteCmd.AddCommand(remoteSummaryCmd)
}

func remoteDeps(cfg *config.Config) (*remote.Scheduler, func(), error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	weeks := resolver(cfg)
	dir := directory.New(st)
	return remote.NewScheduler(dir, weeks), func() { st.Close() }, nil
}

func runRemoteSet(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	scheduler, closeStore, err := remoteDeps(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	monday, err := resolver(cfg).Monday(remoteWeekRef)
	if err != nil {
		return fmt.Errorf("resolve week %q: %w", remoteWeekRef, err)
	}

	ok, msg := scheduler.Set(ctx, args[0], monday, args[1:])
	if !ok {
		return fmt.Errorf("%s", msg)
	}
	fmt.Println(msg)
	return nil
}

func runRemoteClear(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	scheduler, closeStore, err := remoteDeps(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	monday, err := resolver(cfg).Monday(remoteWeekRef)
	if err != nil {
		return fmt.Errorf("resolve week %q: %w", remoteWeekRef, err)
	}

	ok, msg := scheduler.Clear(ctx, args[0], monday)
	if !ok {
		return fmt.Errorf("%s", msg)
	}
	fmt.Println(msg)
	return nil
}

func runRemoteSummary(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	scheduler, closeStore, err := remoteDeps(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	monday, err := resolver(cfg).Monday(remoteWeekRef)
	if err != nil {
		return fmt.Errorf("resolve week %q: %w", remoteWeekRef, err)
	}

	summary, err := scheduler.Summary(ctx, monday)
	if err != nil {
		return err
	}

	fmt.Printf("Week %s\n", summary.WeekMonday)
	for _, day := range summary.Days {
		names := make([]string, 0, len(day.Employees))
		for _, e := range day.Employees {
			names = append(names, e.Name)
		}
		line := "-"
		if len(names) > 0 {
			line = strings.Join(names, ", ")
		}
		fmt.Printf("  %-9s %s  %s\n", day.Weekday, day.Date, line)
	}
	fmt.Printf("Employees remote: %d, remote days total: %d\n",
		summary.UniqueEmployees, summary.TotalRemoteDays)
	return nil
}
