package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shasank123/Fresh-Prints-OS/internal/api"
	"github.com/shasank123/Fresh-Prints-OS/internal/config"
	"github.com/shasank123/Fresh-Prints-OS/internal/models"
	"github.com/shasank123/Fresh-Prints-OS/internal/presets"
	"github.com/shasank123/Fresh-Prints-OS/internal/storage"
	"github.com/shasank123/Fresh-Prints-OS/internal/tui"
	"github.com/shasank123/Fresh-Prints-OS/internal/workflow"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fpos",
		Short: "Fresh Prints OS",
		Long:  "Fresh Prints OS is the operations console for the scout, designer and logistics agent workflows.",
		RunE:  runTUI,
	}

	rootCmd.AddCommand(newScoutCommand())
	rootCmd.AddCommand(newDesignerCommand())
	rootCmd.AddCommand(newLogisticsCommand())
	rootCmd.AddCommand(newLogsCommand())
	rootCmd.AddCommand(newApproveCommand())
	rootCmd.AddCommand(newRejectCommand())
	rootCmd.AddCommand(newSendCommand())
	rootCmd.AddCommand(newRatesCommand())
	rootCmd.AddCommand(newCarbonCommand())
	rootCmd.AddCommand(newRoutesCommand())
	rootCmd.AddCommand(newForecastCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newRoleCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config and opens the backend client and the file logger.
// Every subcommand goes through here so they all honor the same config
// precedence.
func setup() (*config.Config, *api.Client, *slog.Logger, io.Closer, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	logger, closer, err := cfg.OpenLogger(slog.LevelInfo)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return cfg, api.New(cfg.BackendURL), logger, closer, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, client, logger, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	pre, err := presets.Load(cfg.PresetsPath)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	role, err := store.LoadRole()
	if err != nil {
		return fmt.Errorf("failed to load saved role: %w", err)
	}

	app, err := tui.NewApp(cfg, client, store, logger, pre, role)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newScoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scout <lead title>",
		Short: "Launch a sales scout job for a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := models.ScoutParams{Title: args[0]}
			if err := params.Validate(); err != nil {
				return err
			}
			follow, _ := cmd.Flags().GetBool("follow")

			cfg, client, logger, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			ctrl := workflow.NewController(workflow.ScoutOps{Client: client})
			id, err := ctrl.Launch(ctx, func(ctx context.Context, id models.JobID) error {
				return client.RunScout(ctx, id, params.Title)
			})
			if err != nil {
				return fmt.Errorf("failed to start scout job: %w", err)
			}

			fmt.Printf("Started scout job %d\n", id.Int64())
			if !follow {
				return nil
			}
			return followJob(ctx, cfg, client, logger, id, func(ctx context.Context) (bool, string, error) {
				draft, waiting, err := workflow.ScoutOps{Client: client}.Pending(ctx, id)
				if err != nil || !waiting {
					return false, "", err
				}
				return true, formatDraft(draft), nil
			}, "scout")
		},
	}
	cmd.Flags().Bool("follow", true, "Stream the agent feed until the job pauses or finishes")
	return cmd
}

func newDesignerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "designer <vibe>",
		Short: "Launch an apparel design job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := models.DesignParams{Vibe: args[0]}
			if err := params.Validate(); err != nil {
				return err
			}
			follow, _ := cmd.Flags().GetBool("follow")

			cfg, client, logger, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			ctrl := workflow.NewController(workflow.DesignOps{Client: client})
			id, err := ctrl.Launch(ctx, func(ctx context.Context, id models.JobID) error {
				return client.RunDesigner(ctx, id, params.Vibe)
			})
			if err != nil {
				return fmt.Errorf("failed to start designer job: %w", err)
			}

			fmt.Printf("Started designer job %d\n", id.Int64())
			if !follow {
				return nil
			}
			return followJob(ctx, cfg, client, logger, id, func(ctx context.Context) (bool, string, error) {
				review, waiting, err := workflow.DesignOps{Client: client}.Pending(ctx, id)
				if err != nil || !waiting {
					return false, "", err
				}
				return true, formatReview(review), nil
			}, "designer")
		},
	}
	cmd.Flags().Bool("follow", true, "Stream the agent feed until the job pauses or finishes")
	return cmd
}

func newLogisticsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logistics <zip> <qty> <sku>",
		Short: "Launch a fulfillment planning job",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			params := models.LogisticsParams{CustomerZip: args[0], OrderQty: qty, SKU: args[2]}
			if err := params.Validate(); err != nil {
				return err
			}
			follow, _ := cmd.Flags().GetBool("follow")

			cfg, client, logger, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			ctrl := workflow.NewController(workflow.LogisticsOps{Client: client})
			id, err := ctrl.Launch(ctx, func(ctx context.Context, id models.JobID) error {
				return client.RunLogistics(ctx, id, params)
			})
			if err != nil {
				return fmt.Errorf("failed to start logistics job: %w", err)
			}

			fmt.Printf("Started logistics job %d\n", id.Int64())
			if !follow {
				return nil
			}
			return followJob(ctx, cfg, client, logger, id, func(ctx context.Context) (bool, string, error) {
				plan, waiting, err := workflow.LogisticsOps{Client: client}.Pending(ctx, id)
				if err != nil || !waiting {
					return false, "", err
				}
				return true, formatPlan(plan), nil
			}, "logistics")
		},
	}
	cmd.Flags().Bool("follow", true, "Stream the agent feed until the job pauses or finishes")
	return cmd
}

// pendingProbe fetches the job's pending artifact and renders it when
// the backend reports it is awaiting approval.
type pendingProbe func(ctx context.Context) (waiting bool, rendered string, err error)

// followJob streams new feed entries to stdout until the job finishes,
// fails, or pauses for approval. On pause it prints the pending artifact
// and the approve/reject commands for it.
func followJob(ctx context.Context, cfg *config.Config, client *api.Client, logger *slog.Logger, id models.JobID, probe pendingProbe, domain string) error {
	var lastID int64
	return workflow.Poll(ctx, cfg.LogPollInterval, logger, func(ctx context.Context) (bool, error) {
		logs, err := client.Logs(ctx, id)
		if err != nil {
			return false, err
		}
		for _, e := range logs {
			if e.ID <= lastID {
				continue
			}
			lastID = e.ID
			fmt.Printf("[%s] %-11s %s\n", e.Timestamp, e.AgentType, e.LogMessage)
		}

		switch workflow.FeedState(logs) {
		case workflow.PhaseFinished:
			fmt.Println("Job finished.")
			return true, nil
		case workflow.PhaseFailed:
			fmt.Println("Job failed.")
			return true, nil
		}

		waiting, rendered, err := probe(ctx)
		if err != nil {
			return false, err
		}
		if waiting {
			fmt.Println("\nAwaiting approval:")
			fmt.Println(rendered)
			fmt.Printf("\nApprove with: fpos approve %s %d\n", domain, id.Int64())
			fmt.Printf("Reject with:  fpos reject %s %d \"<feedback>\"\n", domain, id.Int64())
			return true, nil
		}
		return false, nil
	})
}

func formatDraft(d *models.LeadDraft) string {
	var b strings.Builder
	if d.Sentiment != "" {
		fmt.Fprintf(&b, "Sentiment: %s  Score: %d/100\n", d.Sentiment, d.LeadScore)
	}
	if d.Strategy != "" {
		fmt.Fprintf(&b, "Strategy: %s\n", d.Strategy)
	}
	b.WriteString(d.PendingDraft)
	return b.String()
}

func formatReview(r *models.DesignReview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mockup: %s\n", r.ImageURL)
	if r.PrintTechnique != "" {
		fmt.Fprintf(&b, "Technique: %s\n", r.PrintTechnique)
	}
	if len(r.ColorPalette) > 0 {
		fmt.Fprintf(&b, "Palette: %s\n", strings.Join(r.ColorPalette, ", "))
	}
	if r.Profitability != "" {
		fmt.Fprintf(&b, "Profitability: %s\n", r.Profitability)
	}
	b.WriteString(r.CostReport)
	return b.String()
}

func formatPlan(p *models.LogisticsPlan) string {
	var b strings.Builder
	b.WriteString(p.PlanDetails)
	fmt.Fprintf(&b, "\nTotal: $%.2f  ETA: %d days  Carbon: %.1f kg\n", p.TotalCost, p.ETADays, p.CarbonKg)
	return b.String()
}

func parseJobID(arg string) (models.JobID, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q", arg)
	}
	return models.JobID(n), nil
}

func newLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs <job-id>",
		Short: "Print a job's agent feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}
			follow, _ := cmd.Flags().GetBool("follow")

			cfg, client, logger, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			if !follow {
				logs, err := client.Logs(ctx, id)
				if err != nil {
					return err
				}
				for _, e := range logs {
					fmt.Printf("[%s] %-11s %s\n", e.Timestamp, e.AgentType, e.LogMessage)
				}
				return nil
			}

			var lastID int64
			return workflow.Poll(ctx, cfg.LogPollInterval, logger, func(ctx context.Context) (bool, error) {
				logs, err := client.Logs(ctx, id)
				if err != nil {
					return false, err
				}
				for _, e := range logs {
					if e.ID <= lastID {
						continue
					}
					lastID = e.ID
					fmt.Printf("[%s] %-11s %s\n", e.Timestamp, e.AgentType, e.LogMessage)
				}
				return workflow.FeedState(logs).Terminal(), nil
			})
		},
	}
	cmd.Flags().BoolP("follow", "f", false, "Keep polling until the job reaches a terminal state")
	return cmd
}

func newApproveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <scout|designer|logistics> <job-id>",
		Short: "Approve a job's pending artifact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseJobID(args[1])
			if err != nil {
				return err
			}

			_, client, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			switch args[0] {
			case "scout":
				err = client.ApproveLead(ctx, id)
			case "designer":
				err = client.ApproveDesign(ctx, id)
			case "logistics":
				err = client.ApproveLogistics(ctx, id)
			default:
				return fmt.Errorf("unknown workflow %q", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("Approved job %d\n", id.Int64())
			return nil
		},
	}
}

func newRejectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <scout|designer|logistics> <job-id> <feedback>",
		Short: "Reject a job's pending artifact with feedback",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseJobID(args[1])
			if err != nil {
				return err
			}
			feedback := args[2]
			if feedback == "" {
				return workflow.ErrEmptyFeedback
			}

			_, client, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			switch args[0] {
			case "scout":
				err = client.RejectLead(ctx, id, feedback)
			case "designer":
				err = client.RejectDesign(ctx, id, feedback)
			case "logistics":
				err = client.RejectLogistics(ctx, id, feedback)
			default:
				return fmt.Errorf("unknown workflow %q", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("Rejected job %d, the agent will regenerate\n", id.Int64())
			return nil
		},
	}
}

func newSendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send <job-id> <email> <name>",
		Short: "Send an approved design to the customer for final approval",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}

			_, client, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			ticket, err := client.SendToCustomer(ctx, id, args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("Sent to %s <%s>\n", ticket.CustomerName, ticket.CustomerEmail)
			fmt.Printf("Approval URL: %s\n", ticket.ApprovalURL)
			fmt.Printf("Reject URL:   %s\n", ticket.RejectURL)
			return nil
		},
	}
}

func newRatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates <origin-zip> <dest-zip> <weight-lbs>",
		Short: "Compare carrier rates for a shipment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", args[2])
			}

			_, client, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			rates, err := client.Rates(ctx, args[0], args[1], weight)
			if err != nil {
				return err
			}

			cheapest, _ := rates.Cheapest()
			fastest, _ := rates.Fastest()
			fmt.Printf("Source: %s\n", rates.Source)
			for _, r := range rates.Rates {
				tags := ""
				if r.Carrier == cheapest.Carrier && r.Service == cheapest.Service {
					tags += " CHEAPEST"
				}
				if r.Carrier == fastest.Carrier && r.Service == fastest.Service && fastest != cheapest {
					tags += " FASTEST"
				}
				fmt.Printf("%-8s %-18s $%8.2f  %s days%s\n", r.Carrier, r.Service, r.Price, r.Days, tags)
			}
			fmt.Printf("Potential savings: $%.2f\n", rates.Savings())
			return nil
		},
	}
	return cmd
}

func newCarbonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carbon <origin-zip> <dest-zip> <weight-lbs>",
		Short: "Estimate a shipment's carbon footprint",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", args[2])
			}
			mode, _ := cmd.Flags().GetString("mode")

			_, client, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			est, err := client.Carbon(ctx, args[0], args[1], weight, mode)
			if err != nil {
				return err
			}
			fmt.Printf("%.1f kg CO2 over %.0f km by %s\n", est.CarbonKg, est.DistanceKm, est.ShippingMode)
			fmt.Printf("Trees to offset: %d  Eco rating: %s\n", est.TreesToOffset, est.EcoRating)
			return nil
		},
	}
	cmd.Flags().String("mode", "ground", "Shipping mode (ground, air)")
	return cmd
}

func newRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes <customer-zip>",
		Short: "Show warehouse routes to a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			route, err := client.RouteData(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Customer: %s (%s)\n", route.Customer.City, route.Customer.Zip)
			for _, w := range route.Warehouses {
				mark := " "
				if w.Active {
					mark = "*"
				}
				fmt.Printf("%s %s, %s\n", mark, w.Name, w.City)
			}
			for _, leg := range route.Routes {
				fmt.Printf("%s -> %s: %.0f mi, est. $%.2f\n",
					leg.From, route.Customer.City, leg.DistanceMiles, leg.EstimatedCost)
			}
			return nil
		},
	}
}

func newForecastCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forecast <sku>",
		Short: "Show the demand forecast for a SKU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := signalContext()
			defer cancel()

			f, err := client.DemandForecast(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Predicted orders: %d  Avg/day: %.1f  Peak: %s (%d)\n",
				f.TotalPredictedOrders, f.AvgDaily, f.PeakDay, f.PeakOrders)
			if f.Recommendation != "" {
				fmt.Printf("Recommendation: %s\n", f.Recommendation)
			}
			for _, p := range f.DailyForecast {
				fmt.Printf("%-10s %d\n", p.Date, p.Orders)
			}
			return nil
		},
	}
}

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the design history gallery",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			store, err := storage.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			entries, err := store.DesignHistory()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No designs yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s  %s", e.Timestamp.Format("2006-01-02 15:04"), e.URL)
				if e.Style != "" {
					fmt.Printf("  (%s)", e.Style)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newRoleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role [role]",
		Short: "Show or set the saved role",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clear, _ := cmd.Flags().GetBool("clear")

			cfg, _, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			store, err := storage.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			if clear {
				if err := store.ClearRole(); err != nil {
					return err
				}
				fmt.Println("Role cleared.")
				return nil
			}

			if len(args) == 1 {
				role := models.Role(args[0])
				if !role.Valid() {
					names := make([]string, 0, len(models.Roles()))
					for _, r := range models.Roles() {
						names = append(names, string(r))
					}
					return fmt.Errorf("unknown role %q (valid: %s)", args[0], strings.Join(names, ", "))
				}
				if err := store.SaveRole(role); err != nil {
					return err
				}
				rc, _ := role.Config()
				fmt.Printf("Signed in as %s\n", rc.Name)
				return nil
			}

			role, err := store.LoadRole()
			if err != nil {
				return err
			}
			if role == "" {
				fmt.Println("No role saved.")
				return nil
			}
			rc, ok := role.Config()
			if !ok {
				fmt.Printf("Saved role %q is no longer valid.\n", role)
				return nil
			}
			fmt.Printf("%s (pages: ", rc.Name)
			pages := make([]string, 0, len(rc.AllowedPages))
			for _, p := range rc.AllowedPages {
				pages = append(pages, string(p))
			}
			fmt.Printf("%s)\n", strings.Join(pages, ", "))
			return nil
		},
	}
	cmd.Flags().Bool("clear", false, "Clear the saved role (log out)")
	return cmd
}
