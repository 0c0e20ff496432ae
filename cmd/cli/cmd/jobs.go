package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cliapi "invoice-matching/internal/cli"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage job records",
	Long:  `List and register the shipment and customs clearance jobs invoices are matched against.`,
}

var jobsListType string

var jobsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List jobs",
	RunE:    runJobsList,
}

var (
	addJobRef      int
	addJobType     string
	addBookingDate string
	addContainer   string
	addCustomerRef string
	addAgentRef    string
	addWeight      string
	addVessel      string
	addCustomerID  int
)

var jobsAddCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"create"},
	Short:   "Register a new job",
	Long:    `Register a new job with its reference number, type and matchable fields.`,
	RunE:    runJobsAdd,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsAddCmd)

	jobsListCmd.Flags().StringVarP(&jobsListType, "type", "t", "", "Filter by job type (import, export, clearance)")

	// Required flags
	jobsAddCmd.Flags().IntVarP(&addJobRef, "ref", "r", 0, "Job reference number (required)")
	jobsAddCmd.Flags().StringVarP(&addJobType, "type", "t", "", "Job type (import, export, clearance) (required)")
	jobsAddCmd.Flags().StringVarP(&addBookingDate, "booked", "b", "", "Booking date (e.g. 15/06/2024)")
	jobsAddCmd.Flags().StringVarP(&addContainer, "container", "c", "", "Container number")
	jobsAddCmd.Flags().StringVar(&addCustomerRef, "customer-ref", "", "Customer reference")
	jobsAddCmd.Flags().StringVar(&addAgentRef, "agent-ref", "", "Agent reference")
	jobsAddCmd.Flags().StringVarP(&addWeight, "weight", "w", "", "Cargo weight in kg")
	jobsAddCmd.Flags().StringVar(&addVessel, "vessel", "", "Vessel name")
	jobsAddCmd.Flags().IntVar(&addCustomerID, "customer", 0, "Customer ID")

	// Mark required flags
	jobsAddCmd.MarkFlagRequired("ref")
	jobsAddCmd.MarkFlagRequired("type")
}

func runJobsList(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	jobs, err := client.GetJobs(jobsListType)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintJobs(jobs)
}

func runJobsAdd(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	req := &cliapi.CreateJobRequest{
		JobRef:            addJobRef,
		JobType:           addJobType,
		BookingDate:       addBookingDate,
		ContainerNumber:   addContainer,
		CustomerReference: addCustomerRef,
		AgentReference:    addAgentRef,
		Weight:            addWeight,
		VesselName:        addVessel,
		CustomerID:        addCustomerID,
	}

	job, err := client.CreateJob(req)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if !config.Quiet {
		formatter.PrintSuccess(fmt.Sprintf("Job %d registered", job.JobRef))
	}

	return formatter.PrintJob(job)
}
