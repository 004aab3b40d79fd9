package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/ncobase/tasklist/config"
	"github.com/ncobase/tasklist/ctxutil"
	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/store"
	"github.com/ncobase/tasklist/types"
	"github.com/ncobase/tasklist/validator"
	"github.com/spf13/cobra"
)

// withStore loads the collection, runs fn and prints the resulting collection.
func withStore(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, s *store.Store) error) error {
	s, cleanup, err := initStore(config.Path(opts.configFile))
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer cleanup()

	ctx, _ := ctxutil.EnsureTraceID(cmd.Context())
	if err := s.Load(ctx); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	if fn != nil {
		if err := fn(ctx, s); err != nil {
			return err
		}
	}
	return printTasks(cmd.OutOrStdout(), s.Tasks())
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, nil)
		},
	}
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := validator.ValidateTask(args[0], normalizeColor(color))
			if err != nil {
				return err
			}
			return withStore(cmd, opts, func(ctx context.Context, s *store.Store) error {
				_, err := s.Add(ctx, title, normalizeColor(color))
				return err
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", string(types.Red), "task color: "+types.ColorList())
	return cmd
}

func newEditCommand(opts *rootOptions) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "edit <id> <title>",
		Short: "Change the title and color of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			colorSet := cmd.Flags().Changed("color")

			title := strings.TrimSpace(args[1])
			if colorSet {
				var err error
				if title, err = validator.ValidateTask(args[1], normalizeColor(color)); err != nil {
					return err
				}
			} else if err := validator.ValidateTitle(args[1]); err != nil {
				return err
			}

			return withStore(cmd, opts, func(ctx context.Context, s *store.Store) error {
				c := normalizeColor(color)
				if !colorSet {
					// keep the current color, as the edit form does
					current, ok := s.FindByID(id)
					if !ok {
						return fmt.Errorf("edit %s: %w", id, ecode.ErrNotFound)
					}
					c = current.Color
				}
				_, err := s.Update(ctx, id, title, c)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "new task color: "+types.ColorList())
	return cmd
}

func newToggleCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed or not completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(ctx context.Context, s *store.Store) error {
				_, err := s.ToggleCompletion(ctx, args[0])
				return err
			})
		},
	}
}

func newRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(ctx context.Context, s *store.Store) error {
				return s.Remove(ctx, args[0])
			})
		},
	}
}

func normalizeColor(s string) types.Color {
	return types.Color(strings.ToLower(strings.TrimSpace(s)))
}
