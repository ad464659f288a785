// Command fintrackctl manages transactions from the terminal, against the
// same store the server uses.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/session"
	"fintrack/internal/settings"
	"fintrack/internal/storage"
)

const usage = `usage: fintrackctl <command> [flags] [args]

commands:
  parse TEXT...            preview the draft for a free-text entry
  add [flags]              record a transaction (-text, -amount, -type, -category, -desc, -date)
  list [-q Q] [-category C] list transactions, newest first
  edit [flags] ID          change fields of a transaction
  delete ID                remove a transaction
  summary                  totals, expenses by category and monthly trend
  export [-o FILE]         write all transactions as CSV
  import [-f FILE]         read transactions from CSV ("-" for stdin)
  login | logout | whoami  manage the local session
  theme [dark|light|toggle] show or change the theme
`

// errUsage marks errors caused by bad arguments; main prints the usage.
var errUsage = errors.New("invalid usage")

func main() {
	cli.LoadEnvFile()
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger := log.New(log.Config{
		Level:     log.ParseLevel(os.Getenv("LOG_LEVEL")),
		Component: log.ComponentCLI,
		Output:    os.Stderr,
	})
	log.SetDefault(logger)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kv := cli.OpenStore(ctx, logger, cfg)
	defer kv.Close()

	opts := []services.Option{services.WithLogger(logger.WithComponent(log.ComponentTransaction).Slog())}
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, changes will not be mirrored", log.FieldError, err)
		} else {
			defer client.Close()
			opts = append(opts, services.WithPublisher(client))
		}
	}

	a := &app{
		svc:      services.NewTransactionService(storage.NewTransactionStore(kv), opts...),
		sessions: session.NewManager(kv),
		theme:    settings.NewTheme(kv),
		in:       os.Stdin,
		out:      os.Stdout,
	}
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "fintrackctl:", err)
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type app struct {
	svc      *services.TransactionService
	sessions *session.Manager
	theme    *settings.Theme
	in       io.Reader
	out      io.Writer
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "parse":
		return a.parse(args)
	case "add":
		return a.add(ctx, args)
	case "list":
		return a.list(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "summary":
		return a.summary(ctx)
	case "export":
		return a.export(ctx, args)
	case "import":
		return a.importCSV(ctx, args)
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "theme":
		return a.setTheme(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}
