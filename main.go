package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strconv"
	"syscall"

	"github.com/danielhkuo/ranked-choice/ballot"
	"github.com/danielhkuo/ranked-choice/cliparse"
	"github.com/danielhkuo/ranked-choice/db"
	"github.com/danielhkuo/ranked-choice/middleware"
	"github.com/danielhkuo/ranked-choice/router"
	"github.com/danielhkuo/ranked-choice/source"
	"github.com/danielhkuo/ranked-choice/tabulate"
	"github.com/danielhkuo/ranked-choice/trace"
)

var errQuestionsFailed = errors.New("one or more questions failed")

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Serve {
		err = serve(ctx, cfg)
	} else {
		err = run(ctx, cfg, os.Stdout)
	}
	if err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg cliparse.Config) (*db.Store, error) {
	store, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)
	return store, nil
}

func serve(ctx context.Context, cfg cliparse.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Create server
	server := http.Server{
		Handler: middleware.CORS(router.NewRouter(store, cfg)),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	slog.Info("Server closed")
	return nil
}

// run fetches the source once and tabulates every question in order.
// A failing question does not stop the rest.
func run(ctx context.Context, cfg cliparse.Config, out io.Writer) error {
	src, err := source.Open(cfg.Source)
	if err != nil {
		return err
	}
	records, err := src.Records(ctx)
	if err != nil {
		return err
	}

	var store *db.Store
	if cfg.DatabaseURL != "" {
		if store, err = openStore(cfg); err != nil {
			return err
		}
		defer store.Close()
	}

	tables, errs := source.Tables(records, cfg.Questions)

	failed := 0
	for _, question := range cfg.Questions {
		err, ok := errs[question]
		if !ok {
			err = tabulateQuestion(ctx, cfg, store, tables[question], question, out)
		}
		if err != nil {
			slog.Error("question failed", "question", question, "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errQuestionsFailed, failed, len(cfg.Questions))
	}
	return nil
}

func tabulateQuestion(ctx context.Context, cfg cliparse.Config, store *db.Store, table *ballot.Table, question string, out io.Writer) error {
	history, err := tabulate.Run(table)
	if err != nil {
		return err
	}
	result, err := history.Result()
	if err != nil {
		return err
	}

	printResult(out, question, result)

	if cfg.Chart {
		path, err := writeChart(ctx, cfg.OutputDir, question, history)
		if err != nil {
			return err
		}
		slog.Info("chart written", "question", question, "path", path)
	}

	if store != nil {
		snap, err := db.NewSnapshot(question, cfg.Source, table, history)
		if err != nil {
			return err
		}
		if err := store.SaveSnapshot(ctx, snap); err != nil {
			return err
		}
		slog.Info("snapshot stored", "question", question, "snapshot_id", snap.ID)
	}

	return nil
}

func printResult(out io.Writer, question string, result tabulate.Result) {
	fmt.Fprintf(out, "%s\n", question)
	if result.IsTie() {
		fmt.Fprintln(out, "There is a draw")
	} else {
		fmt.Fprintf(out, "The final winner is… %s!\n", result.Winner)
	}
	for _, c := range result.Counts {
		fmt.Fprintf(out, "  %s: %d\n", c.Candidate, c.Votes)
	}
	fmt.Fprintln(out)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// chartPath names the chart file after the question
func chartPath(dir, question string) string {
	return filepath.Join(dir, unsafeFileChars.ReplaceAllString(question, "_")+".html")
}

func writeChart(ctx context.Context, dir, question string, history *tabulate.History) (string, error) {
	path := chartPath(dir, question)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart: %w", err)
	}
	defer f.Close()

	sink := trace.PlotlySink{W: f}
	if err := sink.Render(ctx, trace.Export(history, question)); err != nil {
		return "", err
	}
	return path, f.Close()
}
