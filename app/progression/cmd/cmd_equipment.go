package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newEquipCmd(o *rootOptions) *cobra.Command {
	var (
		itemFile string
		itemID   int64
	)
	cmd := &cobra.Command{
		Use:   "equip <character-id> <WEAPON|ARMOR>",
		Short: "Equip an item read from a YAML item file, swapping any occupant",
		Args:  cobra.ExactArgs(2),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			if itemFile == "" {
				return fmt.Errorf("--item-file is required")
			}
			item, err := loadCatalogItem(itemFile, itemID)
			if err != nil {
				return err
			}
			res, err := a.equipment.Equip(ctx, id, args[1], item)
			if err != nil {
				return err
			}
			return a.print(newEquipResultView(res))
		}),
	}
	cmd.Flags().StringVar(&itemFile, "item-file", "", "YAML file with an items list")
	cmd.Flags().Int64Var(&itemID, "item", 0, "item id to pick when the file holds several items")
	return cmd
}

func newUnequipCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unequip <character-id> <WEAPON|ARMOR>",
		Short: "Remove the item in a slot",
		Args:  cobra.ExactArgs(2),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			res, err := a.equipment.Unequip(ctx, id, args[1])
			if err != nil {
				return err
			}
			return a.print(newEquipResultView(res))
		}),
	}
}

func newBonusCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bonus <character-id> <attribute>",
		Short: "Show the equipment bonus for one attribute",
		Args:  cobra.ExactArgs(2),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			bonus, err := a.equipment.TotalBonus(ctx, id, args[1])
			if err != nil {
				return err
			}
			return a.print(map[string]int32{"bonus": bonus})
		}),
	}
}

func newStatsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <character-id>",
		Short: "Derive combat stats from base attributes, equipment, race and transformation",
		Args:  cobra.ExactArgs(1),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			stats, err := a.stats.DeriveStats(ctx, id)
			if err != nil {
				return err
			}
			return a.print(newStatsView(stats))
		}),
	}
}
