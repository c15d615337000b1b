package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"santiice/internal/config"
	"santiice/internal/gateway"
	"santiice/internal/logger"
	"santiice/internal/usecase"

	"go.uber.org/zap"
)

// app holds the wired use cases shared by every command.
type app struct {
	cfg          config.Config
	auth         *usecase.AuthUseCase
	catalog      *usecase.CatalogUseCase
	review       *usecase.ReviewUseCase
	tickets      *usecase.TicketsUseCase
	conciliation *usecase.ConciliationUseCase
	history      *usecase.HistoryUseCase
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":          {"login -u USER -p PASS", runLogin},
	"logout":         {"logout", runLogout},
	"whoami":         {"whoami", runWhoAmI},
	"process":        {"process [-additional] IMAGE...", runProcess},
	"review":         {"review [-json]", runReview},
	"edit":           {"edit -id ID -field FIELD -value VALUE", runEdit},
	"qty":            {"qty -id ID -index N -value N", runQuantity},
	"add-product":    {"add-product -id ID -size 5kg|15kg [-qty N]", runAddProduct},
	"delete-product": {"delete-product -id ID -index N", runDeleteProduct},
	"delete-ticket":  {"delete-ticket -id ID", runDeleteTicket},
	"select":         {"select [-all] [-clear] ID...", runSelect},
	"confirm":        {"confirm [ID...]", runConfirm},
	"export-tickets": {"export-tickets -out FILE.xlsx [ID...]", runExportTickets},
	"manual":         {"manual -client OXXO|KIOSKO -fecha DATE -sucursal NAME [-p5 N] [-p15 N] [-send]", runManual},
	"reset":          {"reset", runReset},
	"catalog":        {"catalog list|add|rename|delete|sort|price|bulk|dark-mode|policy ...", runCatalog},
	"clients":        {"clients", runClients},
	"conciliate":     {"conciliate -client C -start DATE -end DATE -source FILE -looker FILE [-export csv|xlsx]", runConciliate},
	"history":        {"history [list|show ID|delete ID|clear]", runHistory},
	"download":       {"download -session ID [-type xlsx|csv] [-dir DIR]", runDownload},
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: santiice [-config FILE] COMMAND [flags]")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}

func main() {
	configPath := flag.String("config", "", "Path to santiice.yaml")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := wire(ctx, cfg)
	if err != nil {
		log.Fatalf("Error starting: %v", err)
	}

	if err := cmd.run(ctx, a, flag.Args()[1:]); err != nil {
		zap.L().Debug("main: command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

// wire builds the gateways and use cases and restores persisted state.
func wire(ctx context.Context, cfg config.Config) (*app, error) {
	store, err := gateway.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	creds := &gateway.Credentials{}
	ticketsHTTP := &http.Client{Timeout: cfg.API.Timeout}
	conciliatorHTTP := &http.Client{Timeout: cfg.Conciliator.Timeout}

	authGateway := gateway.NewAuthClient(cfg.API.BaseURL, ticketsHTTP, creds)
	ticketsGateway := gateway.NewTicketsClient(cfg.API.BaseURL, ticketsHTTP, creds)
	conciliatorGateway := gateway.NewConciliatorClient(cfg.Conciliator.BaseURL, cfg.Conciliator.WSURL, conciliatorHTTP, creds)
	exporter := gateway.NewExporter()

	catalog := usecase.NewCatalogUseCase(store)
	if err := catalog.Load(ctx); err != nil {
		return nil, err
	}
	review := usecase.NewReviewUseCase(store, catalog)
	if err := review.Restore(ctx); err != nil {
		return nil, err
	}
	auth := usecase.NewAuthUseCase(authGateway, store)
	if _, err := auth.Restore(ctx); err != nil {
		return nil, err
	}
	history := usecase.NewHistoryUseCase(store)
	poll := usecase.PollOptions{
		Interval:    cfg.Conciliator.PollInterval,
		MaxInterval: cfg.Conciliator.PollMaxInterval,
		MaxAttempts: cfg.Conciliator.PollMaxAttempts,
	}

	return &app{
		cfg:          cfg,
		auth:         auth,
		catalog:      catalog,
		review:       review,
		tickets:      usecase.NewTicketsUseCase(ticketsGateway, review, usecase.NewSubmissionFormatter(catalog), exporter),
		conciliation: usecase.NewConciliationUseCase(conciliatorGateway, history, exporter, poll),
		history:      history,
	}, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: santiice %s [flags]\n", name)
		fs.PrintDefaults()
	}
	return fs
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login")
	user := fs.String("u", "", "Username")
	pass := fs.String("p", os.Getenv("SANTIICE_PASSWORD"), "Password (defaults to $SANTIICE_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *pass == "" {
		fs.Usage()
		return flag.ErrHelp
	}
	tok, err := a.auth.Login(ctx, *user, *pass)
	if err != nil {
		return err
	}
	fmt.Printf("Sesión iniciada como %s (%s)\n", tok.User.Username, tok.User.Role)
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Sesión cerrada")
	return nil
}

func runWhoAmI(ctx context.Context, a *app, _ []string) error {
	u, err := a.auth.WhoAmI(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s) permisos: %s\n", u.Username, u.Role, strings.Join(u.Permissions, ", "))
	return nil
}
