package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rezonia/efaktura/internal/document"
	"github.com/rezonia/efaktura/internal/model"
	"github.com/rezonia/efaktura/internal/service"
	"github.com/rezonia/efaktura/pkg/efaktura"
)

var (
	ublRequestID      string
	ublSendToCir      string
	ublSkipValidation bool

	salesComment string
	salesOutput  string

	idsStatus string
	idsFrom   string
	idsTo     string
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Manage sales invoices",
}

var salesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a sales invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			inv, err := client.Sales.Get(ctx, id)
			if err != nil {
				return err
			}
			return output(inv, func() *table {
				t := &table{header: []string{"ID", "NUMBER", "STATUS", "ISSUE DATE", "BUYER", "PAYABLE", "CIR"}}
				buyer := ""
				if inv.AccountingCustomerParty != nil {
					buyer = str(inv.AccountingCustomerParty.Name)
				}
				t.add(str(inv.SalesInvoiceID), str(inv.InvoiceNumber), str(inv.Status),
					str(inv.IssueDate), buyer, str(inv.PayableAmount), str(inv.CirStatus))
				return t
			})
		})
	},
}

var salesInspectCmd = &cobra.Command{
	Use:   "inspect <file.xml>",
	Short: "Summarize a UBL file locally without uploading it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		summary, err := document.InspectUBL(data)
		if err != nil {
			return err
		}
		return output(summary, func() *table { return ublTable(summary) })
	},
}

var salesUploadCmd = &cobra.Command{
	Use:   "upload <file.xml>",
	Short: "Upload a UBL file as a multipart form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUbl(cmd, args[0], func(ctx context.Context, client *efaktura.Client, opts service.UblOptions) (*model.MiniInvoice, error) {
			return client.Sales.UploadUbl(ctx, args[0], opts)
		})
	},
}

var salesImportCmd = &cobra.Command{
	Use:   "import <file.xml>",
	Short: "Send a UBL file as the raw request body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUbl(cmd, args[0], func(ctx context.Context, client *efaktura.Client, opts service.UblOptions) (*model.MiniInvoice, error) {
			return client.Sales.ImportUblFromFile(ctx, args[0], opts)
		})
	},
}

var salesDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete draft sales invoices",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			deleted, err := client.Sales.DeleteMultiple(ctx, ids)
			if err != nil {
				return err
			}
			return output(map[string][]int64{"deleted": deleted}, func() *table {
				t := &table{header: []string{"DELETED"}}
				for _, id := range deleted {
					t.add(strconv.FormatInt(id, 10))
				}
				return t
			})
		})
	},
}

var salesCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a sent sales invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInvoiceResult(cmd, args[0], func(ctx context.Context, client *efaktura.Client, id int64) (*model.InvoiceResult, error) {
			return client.Sales.Cancel(ctx, id, salesComment)
		})
	},
}

var salesStornoCmd = &cobra.Command{
	Use:   "storno <id>",
	Short: "Storno an approved sales invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInvoiceResult(cmd, args[0], func(ctx context.Context, client *efaktura.Client, id int64) (*model.InvoiceResult, error) {
			return client.Sales.Storno(ctx, id, salesComment)
		})
	},
}

var salesPdfCmd = &cobra.Command{
	Use:   "pdf <id>",
	Short: "Download the PDF of a sales invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(cmd, args[0], salesOutput, "pdf", func(ctx context.Context, client *efaktura.Client, id int64) ([]byte, error) {
			return client.Sales.Pdf(ctx, id)
		})
	},
}

var salesXmlCmd = &cobra.Command{
	Use:   "xml <id>",
	Short: "Download the UBL XML of a sales invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(cmd, args[0], salesOutput, "xml", func(ctx context.Context, client *efaktura.Client, id int64) ([]byte, error) {
			return client.Sales.Xml(ctx, id)
		})
	},
}

var salesChangesCmd = &cobra.Command{
	Use:   "changes <YYYY-MM-DD>",
	Short: "List sales invoice status changes on a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(args[0])
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			changes, err := client.Sales.Changes(ctx, date)
			if err != nil {
				return err
			}
			return output(changes, func() *table {
				t := &table{header: []string{"ID", "NUMBER", "STATUS", "CHANGED", "BUYER", "TOTAL"}}
				for _, c := range changes {
					t.add(str(c.SalesInvoiceID), str(c.InvoiceNumber), str(c.Status),
						str(c.StatusChangeDate), str(c.BuyerName), str(c.TotalAmount))
				}
				return t
			})
		})
	},
}

var salesIDsCmd = &cobra.Command{
	Use:   "ids",
	Short: "List sales invoice ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := idsFilter()
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			ids, err := client.Sales.IDs(ctx, f)
			if err != nil {
				return err
			}
			return output(ids, func() *table { return idsTable(ids) })
		})
	},
}

func init() {
	rootCmd.AddCommand(salesCmd)
	salesCmd.AddCommand(salesGetCmd, salesInspectCmd, salesUploadCmd, salesImportCmd, salesDeleteCmd,
		salesCancelCmd, salesStornoCmd, salesPdfCmd, salesXmlCmd, salesChangesCmd, salesIDsCmd)

	for _, c := range []*cobra.Command{salesUploadCmd, salesImportCmd} {
		c.Flags().StringVar(&ublRequestID, "request-id", "", "Idempotency key (default: a new UUID)")
		c.Flags().StringVar(&ublSendToCir, "send-to-cir", "", "Register on CIR: Yes or No")
		c.Flags().BoolVar(&ublSkipValidation, "skip-validation", false, "Skip server-side validation")
	}
	salesCancelCmd.Flags().StringVar(&salesComment, "comment", "", "Cancellation comment")
	salesStornoCmd.Flags().StringVar(&salesComment, "reason", "", "Storno reason")
	for _, c := range []*cobra.Command{salesPdfCmd, salesXmlCmd} {
		c.Flags().StringVarP(&salesOutput, "output", "o", "", "Output file (default: <id>.<ext>)")
	}
	addIDsFlags(salesIDsCmd)
}

func runUbl(cmd *cobra.Command, path string, send func(context.Context, *efaktura.Client, service.UblOptions) (*model.MiniInvoice, error)) error {
	if data, err := os.ReadFile(path); err == nil && verbose {
		if summary, err := document.InspectUBL(data); err == nil {
			printVerbose("Sending %s %s issued %s, payable %s %s\n", summary.DocumentType, summary.ID,
				summary.IssueDate, str(summary.PayableAmount), summary.Currency)
		} else {
			printVerbose("Warning: %v\n", err)
		}
	}

	opts := service.UblOptions{
		RequestID:      ublRequestID,
		SendToCir:      model.SendToCir(ublSendToCir),
		SkipValidation: ublSkipValidation,
	}
	if opts.RequestID == "" {
		opts.RequestID = uuid.NewString()
	}
	printVerbose("Request id %s\n", opts.RequestID)

	return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
		inv, err := send(ctx, client, opts)
		if err != nil {
			return err
		}
		return output(inv, func() *table {
			t := &table{header: []string{"ID", "NUMBER", "STATUS", "REQUEST ID", "MESSAGE"}}
			t.add(str(inv.SalesInvoiceID), str(inv.InvoiceNumber), str(inv.Status), str(inv.RequestID), str(inv.Message))
			return t
		})
	})
}

func runInvoiceResult(cmd *cobra.Command, arg string, call func(context.Context, *efaktura.Client, int64) (*model.InvoiceResult, error)) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
		res, err := call(ctx, client, id)
		if err != nil {
			return err
		}
		return output(res, func() *table {
			t := &table{header: []string{"ID", "NUMBER", "STATUS", "MESSAGE"}}
			t.add(str(res.InvoiceID), str(res.InvoiceNumber), str(res.Status), str(res.Message))
			return t
		})
	})
}

// runDownload fetches a file and writes it to path, or <id>.<ext>.
func runDownload(cmd *cobra.Command, arg, path, ext string, fetch func(context.Context, *efaktura.Client, int64) ([]byte, error)) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	if path == "" {
		path = fmt.Sprintf("%d.%s", id, ext)
	}
	return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
		data, err := fetch(ctx, client, id)
		if err != nil {
			return err
		}
		if ext == "pdf" {
			if pages, err := document.PDFPageCount(data); err != nil {
				printVerbose("Warning: %v\n", err)
			} else {
				printVerbose("PDF has %d page(s)\n", pages)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return output(map[string]any{"file": path, "bytes": len(data)}, nil)
	})
}

func addIDsFlags(c *cobra.Command) {
	c.Flags().StringVar(&idsStatus, "status", "", "Filter by status")
	c.Flags().StringVar(&idsFrom, "from", "", "From date (YYYY-MM-DD)")
	c.Flags().StringVar(&idsTo, "to", "", "To date (YYYY-MM-DD)")
}

func idsFilter() (service.Filter, error) {
	from, err := optionalDate(idsFrom)
	if err != nil {
		return service.Filter{}, err
	}
	to, err := optionalDate(idsTo)
	if err != nil {
		return service.Filter{}, err
	}
	return service.Filter{Status: idsStatus, DateFrom: from, DateTo: to}, nil
}

func idsTable(ids *model.InvoiceIDs) *table {
	t := &table{header: []string{"ID"}}
	for _, id := range ids.InvoiceIDs {
		t.add(strconv.FormatInt(id, 10))
	}
	return t
}

func ublTable(s *document.UBLSummary) *table {
	t := &table{header: []string{"TYPE", "ID", "ISSUE DATE", "SUPPLIER", "CUSTOMER", "LINES", "PAYABLE", "CURRENCY"}}
	t.add(s.DocumentType, s.ID, s.IssueDate, s.Supplier.Name, s.Customer.Name,
		strconv.Itoa(s.LineCount), str(s.PayableAmount), s.Currency)
	return t
}
