package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage customer records",
}

var customersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List customers",
	RunE:    runCustomersList,
}

var customersAddCmd = &cobra.Command{
	Use:   "add <company-name>",
	Short: "Register a new customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomersAdd,
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage service provider records",
	Long: `Service providers are the clearance agents, hauliers and shipping
lines whose names are excluded from supplier detection and used to correct
noisy OCR company names.`,
}

var providersListKind string

var providersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List service providers",
	RunE:    runProvidersList,
}

var providersAddKind string

var providersAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new service provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersAdd,
}

func init() {
	rootCmd.AddCommand(customersCmd)
	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersAddCmd)

	rootCmd.AddCommand(providersCmd)
	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersAddCmd)

	providersListCmd.Flags().StringVarP(&providersListKind, "kind", "k", "", "Filter by kind (clearance_agent, haulier, shipping_line)")
	providersAddCmd.Flags().StringVarP(&providersAddKind, "kind", "k", "", "Provider kind (clearance_agent, haulier, shipping_line) (required)")
	providersAddCmd.MarkFlagRequired("kind")
}

func runCustomersList(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	customers, err := client.GetCustomers()
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintCustomers(customers)
}

func runCustomersAdd(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	customer, err := client.CreateCustomer(args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if !config.Quiet {
		formatter.PrintSuccess(fmt.Sprintf("Customer %d registered", customer.ID))
	}

	return nil
}

func runProvidersList(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	providers, err := client.GetProviders(providersListKind)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintProviders(providers)
}

func runProvidersAdd(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	provider, err := client.CreateProvider(args[0], providersAddKind)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if !config.Quiet {
		formatter.PrintSuccess(fmt.Sprintf("Provider %d registered", provider.ID))
	}

	return nil
}
