package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newTransformationCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transformation",
		Aliases: []string{"tf"},
		Short:   "Unlock, activate and deactivate transformations",
	}

	unlock := &cobra.Command{
		Use:   "unlock <character-id> <transformation>",
		Short: "Unlock a transformation, paying its unlock cost",
		Args:  cobra.ExactArgs(2),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			res, err := a.transformations.Unlock(ctx, id, args[1], o.actorOption())
			if err != nil {
				return err
			}
			return a.print(newUnlockView(res))
		}),
	}

	activate := &cobra.Command{
		Use:   "activate <character-id> <transformation>",
		Short: "Activate an unlocked transformation",
		Args:  cobra.ExactArgs(2),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			if err := a.transformations.Activate(ctx, id, args[1]); err != nil {
				return err
			}
			return printCharacter(ctx, a, id)
		}),
	}

	deactivate := &cobra.Command{
		Use:   "deactivate <character-id>",
		Short: "Return to the base form",
		Args:  cobra.ExactArgs(1),
		RunE: o.withApp(func(ctx context.Context, a *App, args []string) error {
			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}
			if err := a.transformations.Deactivate(ctx, id); err != nil {
				return err
			}
			return printCharacter(ctx, a, id)
		}),
	}

	cmd.AddCommand(unlock, activate, deactivate)
	return cmd
}

func printCharacter(ctx context.Context, a *App, id int64) error {
	c, err := a.characters.Get(ctx, id)
	if err != nil {
		return err
	}
	return a.print(newCharacterView(c))
}
