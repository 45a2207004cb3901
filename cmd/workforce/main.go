package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"workforce/internal/app/bootstrap"
	"workforce/internal/app/cli"
	"workforce/internal/platform/config"
	"workforce/internal/platform/jobs"
	"workforce/internal/platform/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run returns the process exit code so deferred cleanup always happens
// before main exits.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	cfg := config.Load()

	flags := flag.NewFlagSet("workforce", flag.ContinueOnError)
	var batch bool
	var seedEmployees int
	var outputDir string
	flags.BoolVar(&batch, "batch", false, "run every analysis, then write charts and PDFs without the menu")
	flags.IntVar(&seedEmployees, "seed-employees", cfg.SeedEmployees, "sample employees generated when the store is empty")
	flags.StringVar(&outputDir, "output", cfg.OutputDir, "directory for charts and PDF reports")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer log.Sync()
	zap.ReplaceGlobals(log.SugaredLogger.Desugar())

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Error("init failed", "err", err)
		return 1
	}
	defer rt.Close()

	app := cli.New(rt, stdin, stdout, cli.Options{OutputDir: outputDir, SeedEmployees: seedEmployees})
	if err := app.Prepare(ctx); err != nil {
		log.Error("sample data failed", "err", err)
		return 1
	}

	if batch {
		if failed := jobs.Failed(app.Batch(ctx)); len(failed) > 0 {
			names := make([]string, 0, len(failed))
			for _, res := range failed {
				names = append(names, res.Name)
			}
			log.Error("batch finished with failures", "steps", names)
			return 1
		}
		return 0
	}
	if err := app.Menu(ctx); err != nil && ctx.Err() == nil {
		log.Error("menu failed", "err", err)
		return 1
	}
	return 0
}
