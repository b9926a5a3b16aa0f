package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"meal-delivery-service/internal/config"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/services"
)

func kitchenCountCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kitchen-count",
		Short: "Print the quantities to cook and the special meals of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFlag(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				report, err := a.kitchen.KitchenCount(ctx, date)
				if err != nil {
					return fmt.Errorf("failed to build kitchen count: %w", err)
				}
				displayKitchenCount(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "delivery date (YYYY-MM-DD, default today)")
	return cmd
}

func labelsCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Print the meal labels of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFlag(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				report, err := a.kitchen.KitchenCount(ctx, date)
				if err != nil {
					return fmt.Errorf("failed to build labels: %w", err)
				}
				displayLabels(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "delivery date (YYYY-MM-DD, default today)")
	return cmd
}

func displayKitchenCount(out io.Writer, report *services.KitchenReport) {
	fmt.Fprintf(out, "Kitchen count for %s\n\n", report.Date.Format("Mon 2006-01-02"))

	if len(report.ComponentLines) == 0 {
		fmt.Fprintln(out, "No orders for this day")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tREGULAR\tLARGE\tNAME\tINGREDIENTS")
	for _, l := range report.ComponentLines {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", l.ComponentGroup, l.RegularQty, l.LargeQty, l.Name, l.Ingredients)
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Special meals:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CLIENT\tREGULAR\tLARGE\tCLASH\tOTHER INGREDIENTS\tOTHER ITEMS")
	for _, l := range report.MealLines {
		fmt.Fprintln(w, mealRow(l))
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d label(s)\n", report.NumLabels)
}

func mealRow(l domain.MealLine) string {
	row := strings.Join([]string{l.Client, l.RegularQty, l.LargeQty, l.IngredientClash, l.RestIngredients, l.RestItems}, "\t")
	switch {
	case l.Client == "SUBTOTAL":
		return color.New(color.FgYellow).Sprint(row)
	case l.IngredientClash == "TOTAL SPECIALS":
		return color.New(color.FgHiGreen).Sprint(row)
	}
	return row
}

func displayLabels(out io.Writer, report *services.KitchenReport) {
	if len(report.Labels) == 0 {
		fmt.Fprintln(out, "No labels for this day")
		return
	}

	for i, l := range report.Labels {
		if i > 0 {
			fmt.Fprintln(out, strings.Repeat("-", 40))
		}
		fmt.Fprintf(out, "%s  %s  %s\n", l.Route, l.Date, color.New(color.FgHiBlue).Sprint(l.Size))
		fmt.Fprintln(out, l.Name)
		fmt.Fprintln(out, l.MainDishName)
		for _, line := range l.MainDishIngredientLines {
			fmt.Fprintln(out, "  "+line)
		}
		for _, line := range l.DishClashes {
			fmt.Fprintln(out, "  "+color.New(color.FgRed).Sprint(line))
		}
		for _, line := range l.RequirementLines {
			fmt.Fprintln(out, "  "+line)
		}
	}

	fmt.Fprintf(out, "\n%d label(s)\n", report.NumLabels)
}
