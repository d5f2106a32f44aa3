// Command revmatch builds the reviewer-matching integer program from a
// directory of normalized tables and runs top-trading-cycle reallocation on
// a solved assignment.
//
// Usage:
//
//	revmatch build -data DIR [-config FILE] [-out PREFIX]
//	revmatch ttc -assignment FILE -prefs FILE [-type meta] [-round final] [-threshold 5]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/revmatch/assign"
	"github.com/katalvlaran/revmatch/logging"
	"github.com/katalvlaran/revmatch/lpmodel"
	"github.com/katalvlaran/revmatch/tables"
	"github.com/katalvlaran/revmatch/ttc"
)

const usage = `Usage: revmatch <command> [options]

Commands:
  build   write <out>.lp and <out>.yml from the tables in -data
  ttc     trade a solved assignment and print clear/assign records

Run "revmatch <command> -h" for the options of a command.
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "revmatch: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}

	switch args[0] {
	case "build":
		return runBuild(args[1:], stderr)
	case "ttc":
		return runTTC(args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	fmt.Fprint(stderr, usage)

	return fmt.Errorf("unknown command %q", args[0])
}

type buildOptions struct {
	configPath      string
	dataDir         string
	out             string
	deriveCoReviews bool
	verbose         bool
}

func runBuild(args []string, stderr io.Writer) error {
	var opts buildOptions
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration (default: built-in defaults)")
	fs.StringVar(&opts.dataDir, "data", "", "directory holding reviewers.csv, candidates.csv and optional tables")
	fs.StringVar(&opts.out, "out", "model", "output prefix; writes <out>.lp and <out>.yml")
	fs.BoolVar(&opts.deriveCoReviews, "derive-coreviews", true, "derive the co-review set from distances when coreviews.csv is absent")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts.dataDir = strings.TrimSpace(opts.dataDir)
	if opts.dataDir == "" {
		fs.Usage()
		return errors.New("missing required -data directory")
	}

	log := newLogger(stderr, opts.verbose)

	cfg := assign.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = assign.LoadConfig(opts.configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	t, err := tables.LoadDir(opts.dataDir, tables.DefaultLayout(), log)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	if t.CoReviews == nil && t.Distances != nil && opts.deriveCoReviews {
		t.CoReviews = assign.DeriveCoReviews(t)
		log.Info("derived co-review set", "count", len(t.CoReviews))
	}

	b, err := assign.NewBuilder(cfg, t, assign.WithLogger(log), assign.WithModelName(filepath.Base(opts.out)))
	if err != nil {
		return err
	}
	m, err := b.Build()
	if err != nil {
		return err
	}

	if err := writeFile(opts.out+".lp", m.WriteLP); err != nil {
		return err
	}
	if err := writeFile(opts.out+".yml", func(w io.Writer) error { return lpmodel.WriteSnapshot(w, cfg) }); err != nil {
		return err
	}
	log.Info("wrote model", "lp", opts.out+".lp", "config", opts.out+".yml", "bidding_cycles", len(b.BiddingCycles()))

	return nil
}

type ttcOptions struct {
	assignmentPath string
	prefsPath      string
	reviewType     string
	round          string
	threshold      float64
	topicGate      int
	useTopicGate   bool
	newAssignment  string
	verbose        bool
}

func runTTC(args []string, stdout, stderr io.Writer) error {
	var opts ttcOptions
	fs := flag.NewFlagSet("ttc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.assignmentPath, "assignment", "", "current assignment CSV (paper,reviewer,action)")
	fs.StringVar(&opts.prefsPath, "prefs", "", "preference CSV (paper,reviewer,preference,topic_score,conflict)")
	fs.StringVar(&opts.reviewType, "type", ttc.DefaultReviewType, "review type to trade")
	fs.StringVar(&opts.round, "round", ttc.DefaultRound, "round written on assign records")
	fs.Float64Var(&opts.threshold, "threshold", ttc.DefaultBidThreshold, "only pairs with bid <= threshold trade")
	fs.IntVar(&opts.topicGate, "min-topic-score", 0, "minimum topic score of a received paper (with -topic-gate)")
	fs.BoolVar(&opts.useTopicGate, "topic-gate", false, "exclude papers below -min-topic-score")
	fs.StringVar(&opts.newAssignment, "write-assignment", "", "also write the new assignment to this CSV")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.assignmentPath == "" || opts.prefsPath == "" {
		fs.Usage()
		return errors.New("missing required -assignment or -prefs file")
	}

	log := newLogger(stderr, opts.verbose)

	holdings, err := readFile(opts.assignmentPath, tables.ReadHoldings)
	if err != nil {
		return err
	}
	prefs, err := readFile(opts.prefsPath, tables.ReadPreferences)
	if err != nil {
		return err
	}

	tradeOpts := []ttc.Option{
		ttc.WithBidThreshold(opts.threshold),
		ttc.WithReviewType(opts.reviewType),
		ttc.WithRound(opts.round),
		ttc.WithLogger(log),
	}
	if opts.useTopicGate {
		tradeOpts = append(tradeOpts, ttc.WithTopicScoreGate(opts.topicGate))
	}
	res, err := ttc.Reallocate(holdings, prefs, tradeOpts...)
	if err != nil {
		return err
	}

	if err := tables.WriteRecords(stdout, res.Records); err != nil {
		return err
	}
	if opts.newAssignment != "" {
		return writeFile(opts.newAssignment, func(w io.Writer) error { return tables.WriteAssignment(w, res.Assignment) })
	}

	return nil
}

func newLogger(w io.Writer, verbose bool) logging.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return logging.NewSlog(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return out, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
