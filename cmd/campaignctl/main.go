package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	restadapter "campaignboard/internal/adapter/rest"
	"campaignboard/internal/adapter/store"
	"campaignboard/internal/config"
	"campaignboard/internal/core/domain"
	"campaignboard/internal/core/port"
	"campaignboard/internal/validation"
)

const usage = `usage: campaignctl <command> [flags]

commands:
  list      list campaigns (-page, -limit, -status)
  search    search campaigns by name: search <query>
  get       show one campaign: get <id>
  create    create a campaign (-name, -status, -budget, -start, -end, -description, -audience)
  update    update a campaign: update <id> (same flags as create)
  delete    delete a campaign: delete <id>
  status    change status: status <id> <draft|active|paused|completed>
  stats     show aggregate statistics
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	client := restadapter.NewClient(cfg.API)
	svc := restadapter.NewCampaignService(client)
	st := store.New(svc, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var cmdErr error
	switch os.Args[1] {
	case "list":
		cmdErr = runList(ctx, st, os.Args[2:])
	case "search":
		cmdErr = runSearch(ctx, st, os.Args[2:])
	case "get":
		cmdErr = runGet(ctx, st, os.Args[2:])
	case "create":
		cmdErr = runCreate(ctx, st, os.Args[2:])
	case "update":
		cmdErr = runUpdate(ctx, st, os.Args[2:])
	case "delete":
		cmdErr = runDelete(ctx, st, os.Args[2:])
	case "status":
		cmdErr = runStatus(ctx, st, os.Args[2:])
	case "stats":
		cmdErr = runStats(ctx, st)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if cmdErr != nil {
		logger.Error("command failed", slog.String("command", os.Args[1]), slog.Any("error", cmdErr))
		os.Exit(1)
	}
}

func runList(ctx context.Context, st *store.CampaignStore, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "items per page")
	status := fs.String("status", "", "filter by status")
	_ = fs.Parse(args)

	st.SetFilters(store.Filters{Status: *status, Page: *page, Limit: *limit})
	if err := st.FetchCampaigns(ctx, port.ListParams{}); err != nil {
		return err
	}
	printCampaigns(st.Campaigns(), st.Pagination())
	return nil
}

func runSearch(ctx context.Context, st *store.CampaignStore, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("search requires a query")
	}
	st.SetSearchQuery(args[0])
	if err := st.FetchCampaigns(ctx, port.ListParams{}); err != nil {
		return err
	}
	printCampaigns(st.FilteredCampaigns(), st.Pagination())
	return nil
}

func runGet(ctx context.Context, st *store.CampaignStore, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("get requires a campaign id")
	}
	err := st.FetchCampaignByID(ctx, args[0], false)
	if st.NotFound() {
		fmt.Println("campaign not found")
		return nil
	}
	if err != nil {
		return err
	}
	printCampaignDetail(st.Current())
	return nil
}

func campaignFlags(fs *flag.FlagSet) map[string]*string {
	return map[string]*string{
		"name":        fs.String("name", "", "campaign name"),
		"status":      fs.String("status", "", "campaign status"),
		"budget":      fs.String("budget", "", "campaign budget"),
		"start":       fs.String("start", "", "start date (YYYY-MM-DD)"),
		"end":         fs.String("end", "", "end date (YYYY-MM-DD)"),
		"description": fs.String("description", "", "description"),
		"audience":    fs.String("audience", "", "target audience"),
	}
}

func runCreate(ctx context.Context, st *store.CampaignStore, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	f := campaignFlags(fs)
	_ = fs.Parse(args)

	status := *f["status"]
	if status == "" {
		status = domain.StatusDraft
	}
	form := validation.CampaignForm{
		Name:      *f["name"],
		Status:    status,
		Budget:    *f["budget"],
		StartDate: *f["start"],
		EndDate:   *f["end"],
	}
	if errs := validation.ValidateCampaignForm(form); len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		return fmt.Errorf("invalid campaign form")
	}

	created, err := st.CreateCampaign(ctx, port.CreateCampaignInput{
		Name:           *f["name"],
		Status:         status,
		Budget:         *f["budget"],
		StartDate:      *f["start"],
		EndDate:        *f["end"],
		Description:    *f["description"],
		TargetAudience: *f["audience"],
	})
	if err != nil {
		return err
	}
	fmt.Printf("created campaign %s\n", created.ID)
	return nil
}

func runUpdate(ctx context.Context, st *store.CampaignStore, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("update requires a campaign id")
	}
	id := args[0]
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	f := campaignFlags(fs)
	_ = fs.Parse(args[1:])

	var input port.UpdateCampaignInput
	set := func(dst **string, name string) {
		if v := *f[name]; v != "" {
			*dst = &v
		}
	}
	set(&input.Name, "name")
	set(&input.Status, "status")
	set(&input.Budget, "budget")
	set(&input.StartDate, "start")
	set(&input.EndDate, "end")
	set(&input.Description, "description")
	set(&input.TargetAudience, "audience")

	updated, err := st.UpdateCampaign(ctx, id, input)
	if err != nil {
		return err
	}
	fmt.Printf("updated campaign %s\n", updated.ID)
	return nil
}

func runDelete(ctx context.Context, st *store.CampaignStore, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("delete requires a campaign id")
	}
	if err := st.DeleteCampaign(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("campaign deleted")
	return nil
}

func runStatus(ctx context.Context, st *store.CampaignStore, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("status requires a campaign id and a new status")
	}
	if err := st.UpdateStatus(ctx, args[0], args[1]); err != nil {
		return err
	}
	if toast := st.Toast(); toast != nil {
		fmt.Println(toast.Message)
	}
	return nil
}

func runStats(ctx context.Context, st *store.CampaignStore) error {
	if err := st.FetchStats(ctx); err != nil {
		return err
	}
	stats := st.Stats()
	fmt.Printf("campaigns: %d (active %d, paused %d, completed %d, draft %d)\n",
		stats.TotalCampaigns, stats.ActiveCampaigns, stats.PausedCampaigns,
		stats.CompletedCampaigns, stats.DraftCampaigns)
	fmt.Printf("budget: %.2f  spent: %.2f  utilization: %d%%\n",
		stats.TotalBudget, stats.TotalSpent, st.BudgetUtilization())
	fmt.Printf("clicks: %d  average CPC: %s\n", stats.TotalClicks, st.AverageCPC())
	return nil
}

func printCampaigns(campaigns []domain.Campaign, p domain.Pagination) {
	for _, c := range campaigns {
		fmt.Printf("%s  %-24s %-10s budget %.2f  %s → %s\n",
			c.ID, c.Name, c.Status, c.Budget, c.StartDate, c.EndDate)
	}
	fmt.Printf("page %d/%d (%d total)\n", p.Page, p.TotalPages, p.Total)
}

func printCampaignDetail(c *domain.Campaign) {
	if c == nil {
		return
	}
	fmt.Printf("id:       %s\nname:     %s\nstatus:   %s\nbudget:   %.2f\nspent:    %.2f\nclicks:   %d\nperiod:   %s → %s\n",
		c.ID, c.Name, c.Status, c.Budget, c.Spent, c.Clicks, c.StartDate, c.EndDate)
	if c.Description != "" {
		fmt.Printf("about:    %s\n", c.Description)
	}
	if c.TargetAudience != "" {
		fmt.Printf("audience: %s\n", c.TargetAudience)
	}
}
