package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newGainExpCmd(o *rootOptions) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "gain-exp <character-id> <amount>",
		Short: "Add experience; each level gained credits the level-up reward",
		Args:  cobra.ExactArgs(2),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseInt64("amount", args[1])
			if err != nil {
				return err
			}
			res, err := a.leveling.GainExperience(ctx, id, amount, reason)
			if res != nil {
				if printErr := a.print(newExperienceView(res)); printErr != nil && err == nil {
					return printErr
				}
			}
			return err
		}),
	}
	cmd.Flags().StringVar(&reason, "reason", "", "why the experience was granted")
	return cmd
}

func newProgressCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <character-id>",
		Short: "Show experience progress toward the next level",
		Args:  cobra.ExactArgs(1),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			p, err := a.leveling.Progress(ctx, id)
			if err != nil {
				return err
			}
			return a.print(newProgressView(p))
		}),
	}
}

func newExpTableCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exp-table <level>",
		Short: "Show the experience required for a level and the cumulative total",
		Args:  cobra.ExactArgs(1),
		RunE: o.withMemoryApp(func(_ context.Context, a *App, args []string) error {
			level, err := parseInt32("level", args[0])
			if err != nil {
				return err
			}
			required, err := a.leveling.ExpRequired(level)
			if err != nil {
				return err
			}
			total, err := a.leveling.TotalExpForLevel(level)
			if err != nil {
				return err
			}
			return a.print(struct {
				Level       int32 `json:"level" yaml:"level"`
				ExpRequired int64 `json:"exp_required" yaml:"exp_required"`
				TotalExp    int64 `json:"total_exp" yaml:"total_exp"`
			}{level, required, total})
		}),
	}
}

func newSetLevelCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-level <character-id> <level>",
		Short: "Operator override: force a level and zero experience, no rewards",
		Args:  cobra.ExactArgs(2),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			level, err := parseInt32("level", args[1])
			if err != nil {
				return err
			}
			if err := a.leveling.SetLevel(ctx, id, level); err != nil {
				return err
			}
			p, err := a.leveling.Progress(ctx, id)
			if err != nil {
				return err
			}
			return a.print(newProgressView(p))
		}),
	}
}

func newResetExpCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-exp <character-id>",
		Short: "Operator override: zero experience within the current level",
		Args:  cobra.ExactArgs(1),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			if err := a.leveling.ResetExperience(ctx, id); err != nil {
				return err
			}
			p, err := a.leveling.Progress(ctx, id)
			if err != nil {
				return err
			}
			return a.print(newProgressView(p))
		}),
	}
}
