package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd(o *rootOptions) *cobra.Command {
	var (
		accountID int64
		name      string
		race      string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a character at level 1 with the starting balance",
		Args:  cobra.NoArgs,
		RunE: o.withApp(func(ctx context.Context, a *App, _ []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			c, err := a.characters.Create(ctx, accountID, name, race)
			if err != nil {
				return err
			}
			return a.print(newCharacterView(c))
		}),
	}
	cmd.Flags().Int64Var(&accountID, "account", 0, "owning account id")
	cmd.Flags().StringVar(&name, "name", "", "character name")
	cmd.Flags().StringVar(&race, "race", "HUMAN", "race code from the rules table")
	return cmd
}

func newShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <character-id>",
		Short: "Show a character with its equipment",
		Args:  cobra.ExactArgs(1),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			c, err := a.characters.Get(ctx, id)
			if err != nil {
				return err
			}
			eq, err := a.equipment.Equipment(ctx, id)
			if err != nil {
				return err
			}
			return a.print(struct {
				Character characterView `json:"character" yaml:"character"`
				Equipment equipmentView `json:"equipment" yaml:"equipment"`
			}{newCharacterView(c), newEquipmentView(eq)})
		}),
	}
}

func newRetireCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "retire <character-id>",
		Short: "Retire a character; it can no longer be modified",
		Args:  cobra.ExactArgs(1),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			if err := a.characters.Retire(ctx, id); err != nil {
				return err
			}
			c, err := a.characters.Get(ctx, id)
			if err != nil {
				return err
			}
			return a.print(newCharacterView(c))
		}),
	}
}
