// Command rankgrid converts a pdf2json dump of a scoreboard PDF into a
// standard ranklist, or serves the same pipeline over HTTP.
//
// Usage:
//
//	rankgrid [-config f] -p N [-o out.srk.json] [-html report.html]
//	         [-debug] [-debug-dir d] [-debug-page n] [-debug-fills 1,2]
//	         [-pdf source.pdf] <pdf2json.json>
//	rankgrid serve [-config f] [-addr :8080]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/rankgrid"
	"github.com/tsawler/rankgrid/config"
	"github.com/tsawler/rankgrid/logger"
	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/overlay"
	"github.com/tsawler/rankgrid/report"
	"github.com/tsawler/rankgrid/server"
	"github.com/tsawler/rankgrid/srk"
	"github.com/tsawler/rankgrid/tables"
)

func main() {
	var err error
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		err = serve(os.Args[2:])
	} else {
		err = run(os.Args[1:])
	}
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rankgrid:", err)
		os.Exit(1)
	}
}

// setup loads the config file named on the command line and initialises
// the global logger
func setup(fs *flag.FlagSet, args []string, apply func(*config.Config)) (*config.Config, error) {
	configPath := fs.String("config", "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	apply(cfg)

	if err := logger.Init(cfg.Env, cfg.Debug); err != nil {
		return nil, fmt.Errorf("failed to initialise logger: %w", err)
	}
	return cfg, nil
}

func run(args []string) error {
	fs := flag.NewFlagSet("rankgrid", flag.ContinueOnError)
	problems := fs.Int("p", 0, "number of problem columns (required)")
	output := fs.String("o", "", "ranklist output path")
	htmlOut := fs.String("html", "", "write an HTML review page to this path")
	debug := fs.Bool("debug", false, "write debug dumps and overlays")
	debugDir := fs.String("debug-dir", "", "directory for debug output")
	debugPage := fs.Int("debug-page", -1, "page whose fills are highlighted in the overlay PDF")
	debugFills := fs.String("debug-fills", "", "comma separated fill indices to highlight on -debug-page")
	sourcePDF := fs.String("pdf", "", "source PDF for the overlay")

	// flags only override values that were set explicitly
	cfg, err := setup(fs, args, func(cfg *config.Config) {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "p":
				cfg.ProblemCount = *problems
			case "o":
				cfg.Output = *output
			case "html":
				cfg.HTML = *htmlOut
			case "debug":
				cfg.Debug = *debug
			case "debug-dir":
				cfg.DebugDir = *debugDir
			case "debug-page":
				cfg.DebugPage = *debugPage
			case "pdf":
				cfg.SourcePDF = *sourcePDF
			}
		})
	})
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected one pdf2json file, got %d arguments", fs.NArg())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	fills, err := parseIndices(*debugFills)
	if err != nil {
		return err
	}

	log := logger.L()
	doc, err := rankgrid.Open(fs.Arg(0)).Document()
	if err != nil {
		return err
	}
	res, warnings, err := rankgrid.FromPages(doc.Pages).WithConfig(cfg.Engine()).WithLogger(log).Result()
	if err != nil {
		return err
	}

	list, err := srk.Build(cfg.SrkContest(), res.Records, cfg.ProblemCount, log)
	if err != nil {
		return err
	}
	if err := writeRanklist(cfg.Output, list); err != nil {
		return err
	}
	log.Info("ranklist written",
		zap.String("path", cfg.Output),
		zap.Int("rows", len(list.Rows)),
		zap.Int("warnings", len(warnings)))

	if cfg.HTML != "" {
		if err := writeReport(cfg, res, warnings); err != nil {
			return err
		}
		log.Info("report written", zap.String("path", cfg.HTML))
	}

	if cfg.Debug {
		opts := overlay.PDFOptions{HighlightPage: cfg.DebugPage, HighlightFills: fills}
		if err := writeDebug(cfg, doc.Pages, res, opts, log); err != nil {
			return err
		}
	}
	return nil
}

func serve(args []string) error {
	fs := flag.NewFlagSet("rankgrid serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "listen address")

	cfg, err := setup(fs, args, func(cfg *config.Config) {
		if *addr != "" {
			cfg.Server.Addr = *addr
		}
	})
	if err != nil {
		return err
	}
	return server.New(cfg, logger.L()).ListenAndServe()
}

func parseIndices(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid fill index %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func writeRanklist(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ranklist: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ranklist: %w", err)
	}
	return nil
}

func writeReport(cfg *config.Config, res *tables.Result, warnings []rankgrid.Warning) error {
	f, err := os.Create(cfg.HTML)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := report.WriteHTML(f, cfg.Contest.Title, res.Columns, res.Records, warnings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeDebug writes the JSON dumps, one PNG per page and, when a source PDF
// is configured, the grid overlay PDF
func writeDebug(cfg *config.Config, pages []model.Page, res *tables.Result, opts overlay.PDFOptions, log *zap.Logger) error {
	if err := overlay.DumpJSON(cfg.DebugDir, pages, res); err != nil {
		return err
	}

	for _, grid := range res.Grid {
		path := filepath.Join(cfg.DebugDir, fmt.Sprintf("page-%d.png", grid.PageIndex))
		if err := writePNG(path, pages[grid.PageIndex], grid, res); err != nil {
			return err
		}
	}
	log.Info("debug dumps written", zap.String("dir", cfg.DebugDir), zap.Int("pages", len(pages)))

	if cfg.SourcePDF == "" {
		return nil
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dst := filepath.Join(cfg.DebugDir, "debug.pdf")
	if err := overlay.WritePDF(ctx, cfg.SourcePDF, dst, pages, res, opts); err != nil {
		return err
	}
	log.Info("overlay written", zap.String("path", dst))
	return nil
}

func writePNG(path string, page model.Page, grid model.PageGrid, res *tables.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := overlay.RenderPNG(f, page, grid, res, overlay.DefaultScale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
