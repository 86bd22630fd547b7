// Command customerctl imports and exports customers as semicolon-delimited
// CSV against the configured database, without the web server.
//
// Usage:
//
//	customerctl [-config file] export <path|->
//	customerctl [-config file] import <path|->
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/msomdec/customer-desk/internal/config"
	"github.com/msomdec/customer-desk/internal/repository"
	"github.com/msomdec/customer-desk/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("customerctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", os.Getenv("CONFIG_FILE"), "YAML config file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: customerctl [-config file] export|import <path|->")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	cmd, path := fs.Arg(0), fs.Arg(1)
	if cmd != "export" && cmd != "import" {
		fs.Usage()
		return 2
	}

	_ = godotenv.Load()
	cfg, err := config.Load(*configFile)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return 1
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := repository.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(stderr, "open database:", err)
		return 1
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		fmt.Fprintln(stderr, "migrate:", err)
		return 1
	}

	customers := service.NewCustomerService(db.Customers())
	if cmd == "export" {
		err = export(ctx, customers, path, stdout)
	} else {
		err = importFile(ctx, customers, path, stdin, stdout)
	}
	if err != nil {
		fmt.Fprintln(stderr, cmd+":", err)
		return 1
	}
	return 0
}

func export(ctx context.Context, customers *service.CustomerService, path string, stdout io.Writer) error {
	if path == "-" {
		_, err := customers.Export(ctx, stdout)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	n, err := customers.Export(ctx, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Exported %d rows to %s\n", n, path)
	return nil
}

func importFile(ctx context.Context, customers *service.CustomerService, path string, stdin io.Reader, stdout io.Writer) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	report, err := customers.Import(ctx, r)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, report.Message())
	for _, e := range report.Errors {
		fmt.Fprintln(stdout, e)
	}
	return nil
}
