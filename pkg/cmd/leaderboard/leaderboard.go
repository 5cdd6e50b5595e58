package leaderboard

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/accstats/log"
	"github.com/mpapenbr/accstats/pkg/cmd/cmdutil"
	"github.com/mpapenbr/accstats/pkg/config"
	"github.com/mpapenbr/accstats/pkg/leaderboard"
	"github.com/mpapenbr/accstats/pkg/render"
	"github.com/mpapenbr/accstats/pkg/resultfile"
)

var colors bool

func NewLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "prints the leaderboard of each track",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(svc *leaderboard.Service) error {
				lb, err := svc.Leaderboard(cmd.Context(), config.Tracks)
				if err != nil {
					return err
				}
				return render.Leaderboard(cmd.OutOrStdout(), lb, render.WithColors(colors))
			})
		},
	}
	cmd.Flags().StringSliceVarP(&config.Tracks,
		"track",
		"t",
		[]string{},
		"restrict output to these tracks (default: all tracks)")
	addColorFlag(cmd)
	return cmd
}

func NewDriverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driver",
		Short: "prints all laps of a driver",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := parseDriverID(config.DriverID)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseDriverID(config.DriverID)
			return withService(cmd.Context(), func(svc *leaderboard.Service) error {
				dv, err := svc.Driver(cmd.Context(), id)
				if err != nil {
					return err
				}
				return render.Driver(cmd.OutOrStdout(), dv, render.WithColors(colors))
			})
		},
	}
	cmd.Flags().StringVar(&config.DriverID,
		"id",
		"",
		"driver id, either the player id (S76561198000000001) or the plain number")
	//nolint:errcheck // flag exists
	cmd.MarkFlagRequired("id")
	addColorFlag(cmd)
	return cmd
}

func NewTracksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "lists the tracks with recorded sessions, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(svc *leaderboard.Service) error {
				tracks, err := svc.Tracks(cmd.Context())
				if err != nil {
					return err
				}
				return render.Tracks(cmd.OutOrStdout(), tracks)
			})
		},
	}
}

func addColorFlag(cmd *cobra.Command) {
	fi, err := os.Stdout.Stat()
	isTerminal := err == nil && fi.Mode()&os.ModeCharDevice != 0
	cmd.Flags().BoolVar(&colors,
		"color",
		isTerminal,
		"highlight track best (purple) and personal best (green) times")
}

// parseDriverID accepts the player id as found in result files or the plain number
func parseDriverID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	return resultfile.ParseDriverID(s)
}

func withService(ctx context.Context, f func(svc *leaderboard.Service) error) error {
	env, err := cmdutil.Setup(ctx)
	if err != nil {
		log.Error("setup failed", log.ErrorField(err))
		return err
	}
	defer env.Close(context.Background())
	svc := leaderboard.NewService(env.Pool,
		leaderboard.WithTTL(cmdutil.ParseDuration(config.CacheTTL, time.Minute)),
		leaderboard.WithLogger(env.Logger.Named("leaderboard")))
	return f(svc)
}
