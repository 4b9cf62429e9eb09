package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sup-routine-backend/internal/config"
	"sup-routine-backend/internal/directory"
	"sup-routine-backend/internal/duty"
	"sup-routine-backend/internal/week"
)

var dutyWeekRef string

var dutyCmd = &cobra.Command{
	Use:   "duty",
	Short: "Manage weekly duty assignments",
}

var dutySetCmd = &cobra.Command{
	Use:   "set <duty> <employee>",
	Short: "Assign a duty to an employee for a week",
	Args:  cobra.ExactArgs(2),
	RunE:  runDutySet,
}

var dutyClearCmd = &cobra.Command{
	Use:   "clear <duty>",
	Short: "Remove a duty assignment for a week",
	Args:  cobra.ExactArgs(1),
	RunE:  runDutyClear,
}

var dutyWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the duty roster for a week",
	Args:  cobra.NoArgs,
	RunE:  runDutyWeek,
}

func init() {
	dutyCmd.PersistentFlags().StringVar(&dutyWeekRef, "week", "current",
		`Week to operate on: "current", "next" or a dd/mm date`)
	dutyCmd.AddCommand(dutySetCmd)
	dutyCmd.AddCommand(dutyClearCmd)
	dutyCmd.AddCommand(dutyWeekCmd)
}

func resolveDutyName(input string) (string, error) {
	if full, ok := duty.ResolveType(input); ok {
		return full, nil
	}
	upper := strings.ToUpper(input)
	for _, full := range config.DutyTypes {
		if full == upper {
			return full, nil
		}
	}
	return "", fmt.Errorf("unknown duty %q (known aliases: %s)",
		input, strings.Join(duty.TypeAliases(), ", "))
}

func dutyDeps(cfg *config.Config) (*duty.Manager, *directory.Directory, *week.Resolver, func(), error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	weeks := resolver(cfg)
	dir := directory.New(st)
	return duty.NewManager(st, dir, weeks), dir, weeks, func() { st.Close() }, nil
}

func runDutySet(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	dutyName, err := resolveDutyName(args[0])
	if err != nil {
		return err
	}

	manager, dir, weeks, closeStore, err := dutyDeps(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	monday, err := weeks.Monday(dutyWeekRef)
	if err != nil {
		return fmt.Errorf("resolve week %q: %w", dutyWeekRef, err)
	}

	emp, ok := dir.Resolve(ctx, args[1])
	if !ok {
		if emp, ok = dir.FindByUsername(ctx, args[1]); !ok {
			return fmt.Errorf("unknown employee %q", args[1])
		}
	}

	if ok, reason := manager.CanAssign(ctx, emp.SlackID, monday); !ok {
		return fmt.Errorf("cannot assign: %s", reason)
	}
	if err := manager.Assign(ctx, dutyName, monday, emp.SlackID); err != nil {
		return err
	}

	fmt.Printf("Assigned %s to %s for week %s\n", dutyName, emp.Name, monday)
	return nil
}

func runDutyClear(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	dutyName, err := resolveDutyName(args[0])
	if err != nil {
		return err
	}

	manager, _, weeks, closeStore, err := dutyDeps(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	monday, err := weeks.Monday(dutyWeekRef)
	if err != nil {
		return fmt.Errorf("resolve week %q: %w", dutyWeekRef, err)
	}

	if err := manager.Remove(ctx, dutyName, monday); err != nil {
		return err
	}
	fmt.Printf("Cleared %s for week %s\n", dutyName, monday)
	return nil
}

func runDutyWeek(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	manager, dir, weeks, closeStore, err := dutyDeps(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	monday, err := weeks.Monday(dutyWeekRef)
	if err != nil {
		return fmt.Errorf("resolve week %q: %w", dutyWeekRef, err)
	}

	roster := manager.ForWeek(ctx, monday)
	if len(roster) == 0 {
		fmt.Printf("No duties assigned for week %s\n", monday)
		return nil
	}

	names := make([]string, 0, len(roster))
	for name := range roster {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Week %s\n", monday)
	for _, name := range names {
		who := roster[name]
		if emp, ok := dir.FindBySlackID(ctx, who); ok {
			who = emp.Name
		}
		fmt.Printf("  %-20s %s\n", name, who)
	}
	return nil
}
