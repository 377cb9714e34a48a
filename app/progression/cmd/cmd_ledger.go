package main

import (
	"context"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/spf13/cobra"
)

func newAllocateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate <character-id> <attribute> <points>",
		Short: "Spend points to raise a base attribute (STR DEX CON WIL MND SPI)",
		Long: `Spend points to raise a base attribute.

Each point is priced by the value it produces: up to 50 costs 1,
up to 80 costs 2, up to 120 costs 3.`,
		Args: cobra.ExactArgs(3),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			points, err := parseInt32("points", args[2])
			if err != nil {
				return err
			}
			res, err := a.ledger.Allocate(ctx, id, args[1], points)
			if err != nil {
				return err
			}
			return a.print(newAllocationView(res))
		}),
	}
}

// ledgerFlags credit/spend 共用参数
type ledgerFlags struct {
	category string
	reason   string
}

func (f *ledgerFlags) register(cmd *cobra.Command, defaultCategory string) {
	cmd.Flags().StringVar(&f.category, "category", defaultCategory,
		"ledger category: MINIGAME MASTER EVENT ACHIEVEMENT SKILL TRANSFORMATION")
	cmd.Flags().StringVar(&f.reason, "reason", "", "free-text reason")
}

func newCreditCmd(o *rootOptions) *cobra.Command {
	var f ledgerFlags
	cmd := &cobra.Command{
		Use:   "credit <character-id> <amount>",
		Short: "Credit points to a character",
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
			entry, err := a.ledger.Credit(ctx, id, amount, f.category, f.reason, o.actorOption())
			if err != nil {
				return err
			}
			return a.print(newEntryView(entry))
		}),
	}
	f.register(cmd, model.CategoryEvent.String())
	return cmd
}

func newSpendCmd(o *rootOptions) *cobra.Command {
	var f ledgerFlags
	cmd := &cobra.Command{
		Use:   "spend <character-id> <amount>",
		Short: "Debit points from a character (not for attribute allocation)",
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
			entry, err := a.ledger.Spend(ctx, id, amount, f.category, f.reason, o.actorOption())
			if err != nil {
				return err
			}
			return a.print(newEntryView(entry))
		}),
	}
	f.register(cmd, model.CategorySkill.String())
	return cmd
}

func newHistoryCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <character-id>",
		Short: "List ledger entries, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			entries, err := a.ledger.History(ctx, id)
			if err != nil {
				return err
			}
			return a.print(newEntryViews(entries))
		}),
	}
}

func newSummaryCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <character-id>",
		Short: "Summarize the ledger by category",
		Args:  cobra.ExactArgs(1),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			s, err := a.ledger.Summary(ctx, id)
			if err != nil {
				return err
			}
			return a.print(newSummaryView(s))
		}),
	}
}

func newAuditCmd(o *rootOptions) *cobra.Command {
	var (
		all         bool
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "audit [character-id]",
		Short: "Compare the stored balance with the sum of ledger entries",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			if all {
				reports, err := a.ledger.AuditAll(ctx, concurrency)
				if err != nil {
					return err
				}
				views := make([]auditView, 0, len(reports))
				for _, r := range reports {
					views = append(views, newAuditView(r))
				}
				return a.print(views)
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			report, err := a.ledger.Audit(ctx, id)
			if err != nil {
				return err
			}
			return a.print(newAuditView(report))
		}),
	}
	cmd.Flags().BoolVar(&all, "all", false, "audit every character")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "number of characters audited in parallel with --all")
	return cmd
}

// actorOption --actor 未指定时表示系统发起
func (o *rootOptions) actorOption() model.Optional[int64] {
	if o.actor > 0 {
		return model.Some(o.actor)
	}
	return model.None[int64]()
}
