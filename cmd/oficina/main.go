package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/bootstrap"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/infrastructure/auth"
	"github.com/oficina/backend/internal/infrastructure/config"
	"github.com/oficina/backend/internal/infrastructure/logger"
)

func main() {
	var (
		logLevel string
		status   string
		pageSize int
	)

	flag.StringVar(&logLevel, "log-level", "", "Log level (default: log.level from config)")
	flag.StringVar(&status, "status", "", "Work order status filter: open, in_progress, completed, delivered, cancelled")
	flag.IntVar(&pageSize, "limit", 50, "Maximum rows to list")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to start application", zap.Error(err))
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			log.Error("Shutdown finished with errors", zap.Error(err))
		}
	}()

	filter := shared.DefaultFilter()
	filter.PageSize = pageSize

	if err := run(ctx, app, command, args[1:], filter, status); err != nil {
		log.Error("Command failed", zap.String("command", command), zap.Error(err))
		_ = app.Close(context.Background())
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, app *bootstrap.App, command string, args []string, filter shared.Filter, status string) error {
	switch command {
	case "check":
		if err := app.Check(ctx); err != nil {
			return err
		}
		stats, err := app.DB.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("ok open_connections=%d in_use=%d idle=%d\n", stats.OpenConnections, stats.InUse, stats.Idle)
		return nil

	case "watch":
		if err := app.StartBackground(ctx); err != nil {
			return err
		}
		if len(args) > 0 && args[0] == "-now" {
			app.Reports.Fire()
		}
		next := app.Reports.NextRun(time.Now())
		app.Logger.Info("Watching stock levels; interrupt to stop",
			zap.Time("next_report", next))
		<-ctx.Done()
		return nil

	case "low-stock":
		items, err := app.Services.Inventory.ListBelowMinimum(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tQUANTITY\tMINIMUM")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", item.Code, item.Name, item.Quantity, item.Minimum)
		}
		return w.Flush()

	case "work-orders":
		if status != "" {
			filter.Filters = map[string]interface{}{"status": status}
		}
		orders, err := app.Services.WorkOrders.List(ctx, filter)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tCUSTOMER\tTOTAL\tOPENED")
		for _, o := range orders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
				o.ID, o.Status, o.CustomerName, o.Currency, o.Total.StringFixed(2), o.CreatedAt.Format(time.DateOnly))
		}
		return w.Flush()

	case "token":
		if len(args) < 1 {
			return fmt.Errorf("username required. Usage: oficina token <username> [role,...]")
		}
		input := auth.IssueInput{UserID: shared.NewID(), Username: args[0]}
		if len(args) > 1 {
			input.Roles = strings.Split(args[1], ",")
		}
		token, err := app.Tokens.Issue(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\nexpires_at=%s\n", token.TokenType, token.Value, token.ExpiresAt.Format(time.RFC3339))
		return nil

	case "revoke":
		if len(args) < 1 {
			return fmt.Errorf("user id required. Usage: oficina revoke <user-id>")
		}
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		return app.Tokens.RevokeAll(ctx, userID)

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage() {
	fmt.Println(`Oficina Operations Tool

Usage:
  oficina [flags] <command> [arguments]

Commands:
  check                     Ping the database and Redis, verify the identity source
  watch [-now]              Run the daily low-stock report until interrupted
  low-stock                 List inventory items below their minimum
  work-orders               List work orders, newest first
  token <user> [roles]      Issue an access token (roles comma separated)
  revoke <user-id>          Revoke every token issued to a user

Flags:
  -status string            Work order status filter
  -limit int                Maximum rows to list (default: 50)
  -log-level string         Log level: debug, info, warn, error

Environment Variables:
  OFICINA_DATABASE_DRIVER, OFICINA_DATABASE_HOST, OFICINA_DATABASE_PATH,
  OFICINA_REDIS_ENABLED, OFICINA_JWT_SECRET, OFICINA_TELEMETRY_ENABLED`)
}
