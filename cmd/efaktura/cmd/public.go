package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/efaktura/internal/model"
	"github.com/rezonia/efaktura/internal/service"
	"github.com/rezonia/efaktura/pkg/efaktura"
)

var (
	companiesAll bool
	checkPib     string
	checkMb      string
	checkJbkjs   string
	checkID      string
)

var publicCmd = &cobra.Command{
	Use:   "public",
	Short: "Query the public eFaktura endpoints",
}

var publicVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the eFaktura API version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			v, err := client.Public.Version(ctx)
			if err != nil {
				return err
			}
			return output(v, func() *table {
				t := &table{header: []string{"VERSION", "RELEASED"}}
				t.add(str(v.Version), str(v.ReleaseDate))
				return t
			})
		})
	},
}

var publicCompaniesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List companies registered on eFaktura",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			companies, err := client.Public.AllCompanies(ctx, companiesAll)
			if err != nil {
				return err
			}
			return output(companies, func() *table {
				t := &table{header: []string{"PIB", "MB", "JBKJS", "NAME", "STATUS"}}
				for _, c := range companies {
					t.add(str(c.Pib), str(c.Mb), str(c.Jbkjs), str(c.Name), str(c.RegistrationStatus))
				}
				return t
			})
		})
	},
}

var publicCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a company has an eFaktura account",
	Example: `  efaktura public check --pib 101134702
  efaktura public check --jbkjs 10520`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lookup := service.CompanyLookup{CompanyID: checkID, Pib: checkPib, Mb: checkMb, Jbkjs: checkJbkjs}
		if lookup == (service.CompanyLookup{}) {
			return fmt.Errorf("one of --pib, --mb, --jbkjs or --company-id is required")
		}
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			acc, err := client.Public.CheckIfCompanyRegistered(ctx, lookup)
			if err != nil {
				return err
			}
			return output(acc, func() *table {
				t := &table{header: []string{"PIB", "NAME", "ACCOUNT", "ACTIVE"}}
				t.add(str(acc.Pib), str(acc.Name), str(acc.HasAccount), str(acc.IsActive))
				return t
			})
		})
	},
}

var publicUnitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List unit of measure codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			units, err := client.Public.UnitMeasures(ctx)
			if err != nil {
				return err
			}
			return output(units, func() *table {
				t := &table{header: []string{"CODE", "SYMBOL", "NAME", "SHORT LIST"}}
				for _, u := range units {
					t.add(str(u.Code), str(u.Symbol), str(u.NameSrbLtn), str(u.IsOnShortList))
				}
				return t
			})
		})
	},
}

var publicVatReasonsCmd = &cobra.Command{
	Use:   "vat-reasons",
	Short: "List VAT exemption reason codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			reasons, err := client.Sales.VatExemptionReasons(ctx)
			if err != nil {
				return err
			}
			return output(reasons, func() *table { return vatReasonsTable(reasons) })
		})
	},
}

var publicClearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Drop cached companies, units and VAT exemption reasons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client *efaktura.Client) error {
			if err := client.Public.ClearCache(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "eFaktura cache cleared")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(publicCmd)
	publicCmd.AddCommand(publicVersionCmd, publicCompaniesCmd, publicCheckCmd, publicUnitsCmd,
		publicVatReasonsCmd, publicClearCacheCmd)

	publicCompaniesCmd.Flags().BoolVar(&companiesAll, "all", false, "Include inactive and deleted companies")
	publicCheckCmd.Flags().StringVar(&checkPib, "pib", "", "Tax id (PIB)")
	publicCheckCmd.Flags().StringVar(&checkMb, "mb", "", "Registration number (MB)")
	publicCheckCmd.Flags().StringVar(&checkJbkjs, "jbkjs", "", "Public funds user number (JBKJS)")
	publicCheckCmd.Flags().StringVar(&checkID, "company-id", "", "eFaktura company id")
}

func vatReasonsTable(reasons []model.VatExemptionReason) *table {
	t := &table{header: []string{"CODE", "CATEGORY", "DESCRIPTION"}}
	for _, r := range reasons {
		t.add(str(r.Code), str(r.TaxCategory), str(r.Description))
	}
	return t
}
