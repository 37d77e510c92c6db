// Package cli implements the groupbuy command-line tool.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/groupbuy/internal/config"
	"github.com/mmynk/groupbuy/internal/groupbuy"
	"github.com/mmynk/groupbuy/internal/models"
	"github.com/mmynk/groupbuy/internal/service"
	"github.com/mmynk/groupbuy/internal/storage"
	"github.com/mmynk/groupbuy/internal/storage/backend"
	"github.com/mmynk/groupbuy/pkg/logging"
)

type options struct {
	dsn string
}

// NewRootCommand builds the root groupbuy command.
func NewRootCommand() *cobra.Command {
	cfg := config.Load()
	opts := &options{}

	root := &cobra.Command{
		Use:           "groupbuy",
		Short:         "Track group-buy orders and payments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cfg.LogLevel)
		},
	}
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", cfg.StorageDSN, "storage DSN (file path, libsql://, redis://, memory:)")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newCreateCmd(opts))
	root.AddCommand(newAddCmd(opts))
	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newToggleCmd(opts))
	root.AddCommand(newDeleteCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newImportCmd(opts))

	return root
}

// Execute runs the groupbuy CLI.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

// withService opens the configured medium, loads the collection and runs fn.
func withService(ctx context.Context, opts *options, fn func(svc *service.GroupBuyService) error) error {
	medium := backend.Open(ctx, opts.dsn)
	defer medium.Close()

	store := storage.NewPersistent(medium, storage.CollectionKey, models.Collection{})
	return fn(service.NewGroupBuyService(ctx, store, groupbuy.NewReducer(), nil))
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List group buys, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *service.GroupBuyService) error {
				rows := svc.List()
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no group buys")
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTITLE\tCREATED\tORDERS\tTOTAL")
				for _, r := range rows {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
						r.ID, r.Title, formatDate(r.CreatedAt), r.OrderCount, formatMoney(r.Total))
				}
				return tw.Flush()
			})
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a group buy's orders, totals and collection progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *service.GroupBuyService) error {
				d, err := svc.Detail(args[0], query)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%d orders)\n", d.Title, d.OrderCount)
				fmt.Fprintf(out, "collected %s of %s (%d%%)\n\n",
					formatMoney(d.Collected), formatMoney(d.Total), d.ProgressRounded)

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "BUYER\tITEM\tPRICE\tQTY\tTOTAL\tPAID")
				for _, o := range d.Orders {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
						o.BuyerName, o.ItemName, formatMoney(o.Price), o.Quantity, formatMoney(o.LineTotal()), paidMark(o.IsPaid))
				}
				fmt.Fprintf(tw, "\t\tTOTAL\t%d\t%s\t\n", d.FilteredQuantity, formatMoney(d.FilteredTotal))
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "only show orders whose buyer or item contains this text")
	return cmd
}

func newCreateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title>",
		Short: "Create a group buy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *service.GroupBuyService) error {
				gb, err := svc.CreateGroupBuy(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), gb.ID)
				return nil
			})
		},
	}
}

// orderFlags binds the order form fields to a command's flags.
func orderFlags(cmd *cobra.Command, in *models.OrderInput) {
	cmd.Flags().StringVar(&in.BuyerName, "buyer", "", "buyer name")
	cmd.Flags().StringVar(&in.ItemName, "item", "", "item name")
	cmd.Flags().StringVar(&in.Price, "price", "", "unit price")
	cmd.Flags().StringVar(&in.Quantity, "qty", "1", "quantity")
	cmd.Flags().BoolVar(&in.IsPaid, "paid", false, "mark the order as paid")
}

func newAddCmd(opts *options) *cobra.Command {
	var in models.OrderInput
	cmd := &cobra.Command{
		Use:   "add <group-buy-id>",
		Short: "Add an order to a group buy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *service.GroupBuyService) error {
				o, err := svc.AddOrder(cmd.Context(), args[0], in)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), o.ID)
				return nil
			})
		},
	}
	orderFlags(cmd, &in)
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	var in models.OrderInput
	cmd := &cobra.Command{
		Use:   "edit <group-buy-id> <order-id>",
		Short: "Edit an order; flags not given keep their current value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *service.GroupBuyService) error {
				gb, err := svc.Get(args[0])
				if err != nil {
					return err
				}
				current, ok := groupbuy.FindOrder(gb, args[1])
				if !ok {
					return fmt.Errorf("order %s: %w", args[1], groupbuy.ErrNotFound)
				}

				flags := cmd.Flags()
				if !flags.Changed("buyer") {
					in.BuyerName = current.BuyerName
				}
				if !flags.Changed("item") {
					in.ItemName = current.ItemName
				}
				if !flags.Changed("price") {
					in.Price = strconv.FormatFloat(current.Price, 'f', -1, 64)
				}
				if !flags.Changed("qty") {
					in.Quantity = strconv.Itoa(current.Quantity)
				}
				if !flags.Changed("paid") {
					in.IsPaid = current.IsPaid
				}

				o, err := svc.EditOrder(cmd.Context(), args[0], args[1], in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s x%d %s %s\n",
					o.BuyerName, o.ItemName, o.Quantity, formatMoney(o.LineTotal()), paidMark(o.IsPaid))
				return nil
			})
		},
	}
	orderFlags(cmd, &in)
	return cmd
}

func newToggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <group-buy-id> <order-id>",
		Short: "Flip an order between paid and unpaid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *service.GroupBuyService) error {
				o, err := svc.ToggleOrderPaid(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s paid: %s\n", o.BuyerName, paidMark(o.IsPaid))
				return nil
			})
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <group-buy-id> [order-id]",
		Short: "Delete a group buy with all its orders, or a single order",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *service.GroupBuyService) error {
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					p, err := svc.PreviewDeleteGroupBuy(args[0])
					if err != nil {
						return err
					}
					if err := svc.DeleteGroupBuy(cmd.Context(), args[0]); err != nil {
						return err
					}
					fmt.Fprintf(out, "deleted %s (%d orders, %s)\n", p.Title, p.OrderCount, formatMoney(p.Total))
					return nil
				}

				p, err := svc.PreviewDeleteOrder(args[0], args[1])
				if err != nil {
					return err
				}
				if err := svc.DeleteOrder(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(out, "deleted order %s (%s)\n", p.Title, formatMoney(p.Total))
				return nil
			})
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the whole collection as JSON to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *service.GroupBuyService) error {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(svc.Snapshot())
			})
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the collection with the contents of a JSON export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			var c models.Collection
			if err := json.Unmarshal(raw, &c); err != nil {
				return fmt.Errorf("decode %s: %w", file, err)
			}

			return withService(cmd.Context(), opts, func(svc *service.GroupBuyService) error {
				if err := svc.Replace(cmd.Context(), c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d group buys\n", len(c))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file produced by export")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func formatDate(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02")
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func paidMark(paid bool) string {
	if paid {
		return "yes"
	}
	return "no"
}
