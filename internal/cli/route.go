package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"meal-delivery-service/internal/config"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/services"
)

func routeCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Plan and inspect delivery routes",
	}

	cmd.AddCommand(routeShowCmd(cfg))
	cmd.AddCommand(routeOptimizeCmd(cfg))
	cmd.AddCommand(routeSaveCmd(cfg))
	cmd.AddCommand(routeClientsCmd(cfg))
	cmd.AddCommand(routeSheetCmd(cfg))

	return cmd
}

func routeShowCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [route-id]",
		Short: "Show the stops of a route for a day",
		Long: `Show the clients having an order on a route for a day, in delivery order.

Modes:
  euclidean - order computed from the stop coordinates
  retrieve  - order saved for the route

Examples:
  kitchenctl route show 1
  kitchenctl route show 1 --mode retrieve --date 2026-10-19`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routeID, err := routeArg(args[0])
			if err != nil {
				return err
			}
			date, err := dateFlag(cmd)
			if err != nil {
				return err
			}
			mode, _ := cmd.Flags().GetString("mode")

			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				stops, err := a.planner.Waypoints(ctx, routeID, date, mode)
				if err != nil {
					return fmt.Errorf("failed to get waypoints: %w", err)
				}
				displayWaypoints(cmd.OutOrStdout(), stops)
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "delivery date (YYYY-MM-DD, default today)")
	cmd.Flags().String("mode", services.ModeEuclidean, "euclidean or retrieve")
	return cmd
}

func routeOptimizeCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [route-id]",
		Short: "Compute a delivery order over every client of a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routeID, err := routeArg(args[0])
			if err != nil {
				return err
			}
			save, _ := cmd.Flags().GetBool("save")

			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				ids, err := a.planner.OptimizedSequence(ctx, routeID)
				if err != nil {
					return fmt.Errorf("failed to optimize route: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Route %d: %v\n", routeID, ids)

				if !save {
					return nil
				}
				if err := a.planner.SaveRouteSequence(ctx, routeID, ids); err != nil {
					return fmt.Errorf("failed to save sequence: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved as the sequence of route %d\n", routeID)
				return nil
			})
		},
	}
	cmd.Flags().Bool("save", false, "save the result as the route sequence")
	return cmd
}

func routeSaveCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [route-id] [client-id...]",
		Short: "Save a delivery order for a route",
		Long: `Save the order in which clients are visited. With --date the order only
applies to that day's deliveries.

Examples:
  kitchenctl route save 1 12 7 31
  kitchenctl route save 1 7 12 --date 2026-10-19`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			routeID, err := routeArg(args[0])
			if err != nil {
				return err
			}
			ids := make([]int, 0, len(args)-1)
			for _, raw := range args[1:] {
				id, err := strconv.Atoi(raw)
				if err != nil {
					return fmt.Errorf("invalid client id %q", raw)
				}
				ids = append(ids, id)
			}
			raw, _ := cmd.Flags().GetString("date")

			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				if raw == "" {
					if err := a.planner.SaveRouteSequence(ctx, routeID, ids); err != nil {
						return fmt.Errorf("failed to save sequence: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved sequence of route %d\n", routeID)
					return nil
				}

				date, err := dateFlag(cmd)
				if err != nil {
					return err
				}
				if err := a.planner.SaveDeliverySequence(ctx, routeID, date, ids); err != nil {
					return fmt.Errorf("failed to save sequence: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved sequence of route %d for %s\n", routeID, raw)
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "save for this delivery date only (YYYY-MM-DD)")
	return cmd
}

func routeClientsCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients [route-id]",
		Short: "List the clients of a route in saved order",
		Long: `List the clients of a route following the saved sequence. With --date,
list the clients delivered that day following that day's sequence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routeID, err := routeArg(args[0])
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetString("date")

			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				if raw == "" {
					clients, err := a.planner.ClientsOnRoute(ctx, routeID)
					if err != nil {
						return fmt.Errorf("failed to list clients: %w", err)
					}
					displayClients(cmd.OutOrStdout(), clients, nil)
					return nil
				}

				date, err := dateFlag(cmd)
				if err != nil {
					return err
				}
				clients, stale, err := a.planner.ClientsOnDeliveryHistory(ctx, routeID, date)
				if err != nil {
					return fmt.Errorf("failed to list clients: %w", err)
				}
				displayClients(cmd.OutOrStdout(), clients, stale)
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "delivery date (YYYY-MM-DD)")
	return cmd
}

func routeSheetCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet [route-id]",
		Short: "Print the driver sheet of a route for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routeID, err := routeArg(args[0])
			if err != nil {
				return err
			}
			date, err := dateFlag(cmd)
			if err != nil {
				return err
			}

			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				sheet, err := a.planner.RouteSheet(ctx, routeID, date)
				if err != nil {
					return fmt.Errorf("failed to build route sheet: %w", err)
				}
				displaySheet(cmd.OutOrStdout(), sheet)
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "delivery date (YYYY-MM-DD, default today)")
	return cmd
}

func routeArg(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid route id %q", raw)
	}
	return id, nil
}

func displayWaypoints(out io.Writer, stops []domain.RouteWaypoint) {
	if len(stops) == 0 {
		fmt.Fprintln(out, "No deliveries on this route")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCLIENT\tMEMBER\tADDRESS\tLEG")
	for i, s := range stops {
		leg := color.New(color.FgHiBlack).Sprint("unlocated")
		if s.Coordinates != nil {
			leg = strconv.FormatFloat(s.Distance, 'f', 5, 64)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", i+1, s.StopID, s.Member, s.Address, leg)
	}
	w.Flush()
}

func displayClients(out io.Writer, clients []services.Sequenced[domain.RouteWaypoint], stale []int) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCLIENT\tMEMBER\tADDRESS\tSEQUENCED")
	for i, c := range clients {
		mark := ""
		if c.HasBeenConfigured {
			mark = color.New(color.FgGreen).Sprint("yes")
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", i+1, c.Item.StopID, c.Item.Member, c.Item.Address, mark)
	}
	w.Flush()

	if len(stale) > 0 {
		fmt.Fprintln(out, color.New(color.FgYellow).Sprintf("Stale client ids in the saved sequence: %v", stale))
	}
}

func displaySheet(out io.Writer, sheet *services.RouteSheet) {
	fmt.Fprintf(out, "Route %d %s, %s\n\n", sheet.RouteID, sheet.RouteName, sheet.Date.Format(time.DateOnly))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tREGULAR\tLARGE")
	for _, l := range sheet.Summary {
		fmt.Fprintf(w, "%s\t%d\t%d\n", l.ComponentGroup, l.RegularQty, l.LargeQty)
	}
	w.Flush()

	for _, d := range sheet.Deliveries {
		fmt.Fprintf(out, "\n%s (%d)\n  %s\n", d.ClientName, d.ClientID, d.Address)
		for _, it := range d.DeliveryItems {
			fmt.Fprintf(out, "  %-12s %-2s x%d\n", it.ComponentGroup, it.Size, it.TotalQuantity)
		}
	}
}
