package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rezonia/efaktura/internal/model"
	"github.com/rezonia/efaktura/pkg/efaktura"
)

var (
	purchaseComment string
	purchaseByCir   bool
	purchaseOutput  string
	purchaseNewOnly bool
)

var purchaseCmd = &cobra.Command{
	Use:   "purchase",
	Short: "Manage purchase invoices",
}

var purchaseGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a purchase invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			inv, err := client.Purchase.Get(ctx, id)
			if err != nil {
				return err
			}
			return output(inv, func() *table {
				t := &table{header: []string{"ID", "NUMBER", "STATUS", "ISSUE DATE", "SUPPLIER", "PAYABLE", "CIR"}}
				supplier := ""
				if inv.AccountingSupplierParty != nil {
					supplier = str(inv.AccountingSupplierParty.Name)
				}
				t.add(str(inv.PurchaseInvoiceID), str(inv.InvoiceNumber), str(inv.Status),
					str(inv.IssueDate), supplier, str(inv.PayableAmount), str(inv.CirStatus))
				return t
			})
		})
	},
}

var purchaseAcceptCmd = &cobra.Command{
	Use:   "accept <id>",
	Short: "Accept a purchase invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAcceptReject(cmd, args[0], true)
	},
}

var purchaseRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a purchase invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAcceptReject(cmd, args[0], false)
	},
}

var purchaseOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "List purchase invoices with their amounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := idsFilter()
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			var list []model.PurchaseInvoiceOverview
			if purchaseNewOnly {
				list, err = client.Purchase.NewInvoices(ctx, f.DateFrom, f.DateTo)
			} else {
				list, err = client.Purchase.Overview(ctx, f)
			}
			if err != nil {
				return err
			}
			return output(list, func() *table {
				t := &table{header: []string{"ID", "NUMBER", "STATUS", "ISSUE DATE", "DUE DATE", "SUPPLIER", "PAYABLE", "CURRENCY"}}
				for _, o := range list {
					t.add(str(o.PurchaseInvoiceID), str(o.InvoiceNumber), str(o.Status), str(o.IssueDate),
						str(o.DueDate), str(o.SupplierName), str(o.PayableAmount), str(o.CurrencyCode))
				}
				return t
			})
		})
	},
}

var purchaseChangesCmd = &cobra.Command{
	Use:   "changes <YYYY-MM-DD>",
	Short: "List purchase invoice status changes on a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(args[0])
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			changes, err := client.Purchase.Changes(ctx, date)
			if err != nil {
				return err
			}
			return output(changes, func() *table {
				t := &table{header: []string{"ID", "NUMBER", "STATUS", "CHANGED", "SUPPLIER", "TOTAL"}}
				for _, c := range changes {
					t.add(str(c.PurchaseInvoiceID), str(c.InvoiceNumber), str(c.Status),
						str(c.StatusChangeDate), str(c.SupplierName), str(c.TotalAmount))
				}
				return t
			})
		})
	},
}

var purchaseIDsCmd = &cobra.Command{
	Use:   "ids",
	Short: "List purchase invoice ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := idsFilter()
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			ids, err := client.Purchase.IDs(ctx, f)
			if err != nil {
				return err
			}
			return output(ids, func() *table { return idsTable(ids) })
		})
	},
}

var purchasePdfCmd = &cobra.Command{
	Use:   "pdf <id>",
	Short: "Download the PDF of a purchase invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(cmd, args[0], purchaseOutput, "pdf", func(ctx context.Context, client *efaktura.Client, id int64) ([]byte, error) {
			return client.Purchase.Pdf(ctx, id)
		})
	},
}

var purchaseXmlCmd = &cobra.Command{
	Use:   "xml <id>",
	Short: "Download the UBL XML of a purchase invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(cmd, args[0], purchaseOutput, "xml", func(ctx context.Context, client *efaktura.Client, id int64) ([]byte, error) {
			return client.Purchase.Xml(ctx, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(purchaseCmd)
	purchaseCmd.AddCommand(purchaseGetCmd, purchaseAcceptCmd, purchaseRejectCmd, purchaseOverviewCmd,
		purchaseChangesCmd, purchaseIDsCmd, purchasePdfCmd, purchaseXmlCmd)

	for _, c := range []*cobra.Command{purchaseAcceptCmd, purchaseRejectCmd} {
		c.Flags().StringVar(&purchaseComment, "comment", "", "Comment sent with the decision")
		c.Flags().BoolVar(&purchaseByCir, "cir", false, "Treat the argument as a CIR invoice id")
	}
	for _, c := range []*cobra.Command{purchasePdfCmd, purchaseXmlCmd} {
		c.Flags().StringVarP(&purchaseOutput, "output", "o", "", "Output file (default: <id>.<ext>)")
	}
	addIDsFlags(purchaseOverviewCmd)
	addIDsFlags(purchaseIDsCmd)
	purchaseOverviewCmd.Flags().BoolVar(&purchaseNewOnly, "new", false, "Only invoices still waiting for a decision")
}

func runAcceptReject(cmd *cobra.Command, arg string, accepted bool) error {
	var id int64
	if !purchaseByCir {
		var err error
		if id, err = parseID(arg); err != nil {
			return err
		}
	}
	return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
		var (
			res *model.AcceptRejectResponse
			err error
		)
		if purchaseByCir {
			res, err = client.Purchase.AcceptOrRejectByCirID(ctx, arg, accepted, purchaseComment)
		} else {
			res, err = client.Purchase.AcceptOrReject(ctx, id, accepted, purchaseComment)
		}
		if err != nil {
			return err
		}
		return output(res, func() *table {
			t := &table{header: []string{"NUMBER", "STATUS", "SUCCESS", "MESSAGE"}}
			number, status := "", ""
			if res.Invoice != nil {
				number, status = str(res.Invoice.InvoiceNumber), str(res.Invoice.Status)
			}
			t.add(number, status, str(res.Success), str(res.Message))
			return t
		})
	})
}
