package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"alcyxob/workout-tracker/internal/app"
	"alcyxob/workout-tracker/internal/service"

	"github.com/spf13/cobra"
)

// NewStatsCommand prints the statistics and history of one exercise.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "stats <exercise-id>",
		Short: "Show performance statistics of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(_ context.Context, a *app.App) error {
				return runStats(a.Store, args[0], history, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().BoolVar(&history, "history", false, "include every completed occurrence")

	return cmd
}

type statsOutput struct {
	Exercise string `json:"exercise"`
	Stats    any    `json:"stats"`
	History  any    `json:"history,omitempty"`
}

func runStats(store *service.Store, exerciseID string, history bool, out io.Writer) error {
	exercise, ok := store.ExerciseByID(exerciseID)
	if !ok {
		return fmt.Errorf("%w: %s", service.ErrExerciseNotFound, exerciseID)
	}

	result := statsOutput{
		Exercise: exercise.Name,
		Stats:    store.ExerciseStats(exerciseID),
	}
	if history {
		result.History = store.ExerciseHistory(exerciseID)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
