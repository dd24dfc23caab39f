package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"eld-trip-service/internal/adapters/route"
	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/services"
)

var rootCmd = &cobra.Command{
	Use:          "hosctl",
	Short:        "Plan hours-of-service compliant trip schedules offline",
	SilenceUsage: true,
}

var planCmd = &cobra.Command{
	Use:   "plan <request.json>",
	Short: "Synthesize a duty-status schedule from a trip request file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read request: %w", err)
		}
		var req dto.PlanTripRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("parse request: %w", err)
		}

		waypoints := []domain.Coordinates{
			{Lat: req.CurrentLocation.Lat, Lon: req.CurrentLocation.Lon},
			{Lat: req.PickupLocation.Lat, Lon: req.PickupLocation.Lon},
			{Lat: req.DropoffLocation.Lat, Lon: req.DropoffLocation.Lon},
		}
		provider := route.NewHaversineRouteProvider()
		legs, err := provider.GetRoute(context.Background(), waypoints)
		if err != nil {
			return fmt.Errorf("route: %w", err)
		}
		last := len(legs) - 1
		for i := range legs {
			if i == last {
				legs[i].Kind = domain.LegToDropoff
				legs[i].Label = "Pickup to Dropoff"
			} else {
				legs[i].Kind = domain.LegToPickup
				legs[i].Label = "Current Location to Pickup"
			}
		}

		start := time.Now().UTC().Truncate(time.Minute)
		if req.StartTime != nil {
			start = req.StartTime.UTC()
		}
		plan := domain.TripPlan{Legs: legs, StartTime: start}

		mode := domain.WeeklyMode(req.WeeklyMode)
		if req.WeeklyMode == "" {
			mode = domain.Mode70x8
		}
		schedule, err := services.Synthesize(plan, services.SeedState{
			CycleHoursUsed: req.CurrentCycleUsed,
			WeeklyMode:     mode,
			DailyHistory:   req.DailyHoursHistory,
			Exceptions: domain.ExceptionSet{
				SplitSleeper:      req.UseSplitSleeper,
				AdverseConditions: req.UseAdverseConditions,
				AirMile:           req.UseAirMileException,
				ShortHaul16Hr:     req.UseShortHaul16Hr,
			},
			ShortHaulUsedInPrior7Days: req.ShortHaulUsedInPrior7Days,
			RequestRestart:            req.Request34HrRestart,
		})
		if err != nil {
			return err
		}

		out := struct {
			Summary   domain.TripSummary `json:"summary"`
			Segments  []domain.Segment   `json:"segments"`
			DailyLogs []domain.DailyLog  `json:"daily_logs"`
		}{
			Summary:   services.BuildSummary(plan, *schedule),
			Segments:  schedule.Segments,
			DailyLogs: services.BuildDailyLogs(*schedule),
		}
		return printJSON(cmd, out)
	},
}

var rollingMode string

var rollingCmd = &cobra.Command{
	Use:   "rolling-hours <history.json>",
	Short: "Compute rolling on-duty hours used and available from a daily history file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		var history []domain.DailyHoursRecord
		if err := json.Unmarshal(raw, &history); err != nil {
			return fmt.Errorf("parse history: %w", err)
		}

		result, err := services.CalculateRollingHours(history, domain.WeeklyMode(rollingMode))
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rollingCmd.Flags().StringVar(&rollingMode, "mode", "70/8", "rolling window mode: 60/7 or 70/8")
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(rollingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hosctl: %v\n", err)
		os.Exit(1)
	}
}
