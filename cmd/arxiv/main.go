package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	arxiv "github.com/tmc/arxivid"
)

// env carries what every subcommand needs.
type env struct {
	cfg *Config
	log zerolog.Logger
	out io.Writer
}

func (e *env) openLedger() *arxiv.Ledger {
	ledger, err := arxiv.OpenLedger(e.cfg.Ledger.Path, e.cfg.Ledger.CacheSize)
	if err != nil {
		e.log.Fatal().Err(err).Str("path", e.cfg.Ledger.Path).Msg("open ledger")
	}
	return ledger
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(os.Getenv("ARXIV_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "arxiv: %v\n", err)
		os.Exit(1)
	}
	e := &env{cfg: cfg, log: newLogger(cfg.Logging, os.Stderr), out: os.Stdout}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	var ok bool
	switch cmd {
	case "id":
		ok = cmdID(e, args)
	case "category", "cat":
		ok = cmdCategory(e, args)
	case "stamp":
		ok = cmdStamp(e, args)
	case "refs":
		ok = cmdRefs(e, args)
	case "record":
		ok = cmdRecord(ctx, e, args)
	case "lookup", "get":
		ok = cmdLookup(ctx, e, args)
	case "list", "ls":
		ok = cmdList(ctx, e, args)
	case "stats":
		ok = cmdStats(ctx, e, args)
	case "serve":
		cmdServe(ctx, e, args)
		ok = true
	case "help":
		usage()
		ok = true
	default:
		e.log.Fatal().Str("command", cmd).Msg("unknown command")
	}
	if !ok {
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`arxiv - parse and validate arXiv identifiers, categories and stamps

Usage: arxiv <command> [options]

Commands:
  id         Parse arXiv identifiers (arXiv:YYMM.NNNNN{vV})
  category   Parse categories (archive.subject)
  stamp      Parse a PDF stamp line
  refs       Extract identifiers from .tex/.bib/.bbl files in a directory
  record     Parse stamp lines and record them in the ledger
  lookup     Show the recorded stamp for an identifier
  list       List recorded stamps
  stats      Show ledger statistics
  serve      Start the HTTP API

Environment:
  ARXIV_CONFIG        Config file (default: ./arxiv.yaml if present)
  ARXIV_LEDGER_PATH   Ledger database (default: ~/.cache/arxiv/ledger.db)
  ARXIV_LOGGING_LEVEL Log level (default: info)

Examples:
  arxiv id arXiv:2301.00001v2
  arxiv category cs.LG hep-th.
  arxiv stamp "arXiv:2001.00001 [cs.LG] 1 Jan 2020"
  arxiv refs ./paper-src
  arxiv record "arXiv:2001.00001 [cs.LG] 1 Jan 2020"
  arxiv list -archive cs -limit 10
  arxiv serve -addr :8080`)
}

func cmdID(e *env, args []string) bool {
	if len(args) == 0 {
		e.log.Error().Msg("usage: arxiv id <id> [id...]")
		return false
	}
	ok := true
	for _, s := range args {
		id, err := arxiv.ParseID(s)
		if err != nil {
			e.log.Error().Err(err).Str("input", s).Msg("invalid identifier")
			ok = false
			continue
		}
		fmt.Fprintf(e.out, "%s\n", id)
		fmt.Fprintf(e.out, "  Year:     %d\n", id.Year)
		fmt.Fprintf(e.out, "  Month:    %d\n", id.Month)
		fmt.Fprintf(e.out, "  Number:   %s\n", id.Number)
		if id.IsLatest() {
			fmt.Fprintf(e.out, "  Version:  latest\n")
		} else {
			fmt.Fprintf(e.out, "  Version:  %d\n", id.Version)
		}
		fmt.Fprintf(e.out, "  Abstract: %s\n", id.AbstractURL())
	}
	return ok
}

func cmdCategory(e *env, args []string) bool {
	if len(args) == 0 {
		e.log.Error().Msg("usage: arxiv category <archive.subject> [...]")
		return false
	}
	ok := true
	for _, s := range args {
		c, err := arxiv.ParseCategory(s)
		if err != nil {
			e.log.Error().Err(err).Str("input", s).Msg("invalid category")
			ok = false
			continue
		}
		fmt.Fprintf(e.out, "%s\n", c)
		fmt.Fprintf(e.out, "  Archive: %s (%s)\n", c.Archive(), c.Archive().Name())
		fmt.Fprintf(e.out, "  Group:   %s (%s)\n", c.Group(), c.Group().Name())
		if c.Subject() != "" {
			fmt.Fprintf(e.out, "  Subject: %s\n", c.Subject())
		}
	}
	return ok
}

func cmdStamp(e *env, args []string) bool {
	fs := flag.NewFlagSet("stamp", flag.ContinueOnError)
	bibtex := fs.Bool("bibtex", false, "Print a BibTeX entry instead")
	if err := fs.Parse(args); err != nil {
		return false
	}
	if fs.NArg() == 0 {
		e.log.Error().Msg(`usage: arxiv stamp [-bibtex] "<stamp line>"`)
		return false
	}
	line := strings.Join(fs.Args(), " ")
	s, err := arxiv.ParseStamp(line)
	if err != nil {
		e.log.Error().Err(err).Str("input", line).Msg("invalid stamp")
		return false
	}
	if *bibtex {
		fmt.Fprint(e.out, s.BibTeX())
		return true
	}
	printStamp(e.out, s)
	return true
}

func printStamp(w io.Writer, s arxiv.Stamp) {
	fmt.Fprintf(w, "%s\n", s)
	fmt.Fprintf(w, "  ID:        %s\n", s.ID())
	if c, ok := s.Category(); ok {
		fmt.Fprintf(w, "  Category:  %s (%s)\n", c, c.Group().Name())
	}
	fmt.Fprintf(w, "  Submitted: %s\n", s.Submitted())
}

func cmdRefs(e *env, args []string) bool {
	if len(args) == 0 {
		e.log.Error().Msg("usage: arxiv refs <dir> [dir...]")
		return false
	}
	ok := true
	for _, dir := range args {
		ids, err := arxiv.ExtractReferences(dir)
		if err != nil {
			e.log.Error().Err(err).Str("dir", dir).Msg("extract references")
			ok = false
			continue
		}
		e.log.Debug().Str("dir", dir).Int("count", len(ids)).Msg("references extracted")
		for _, id := range ids {
			fmt.Fprintln(e.out, id)
		}
	}
	return ok
}

func cmdRecord(ctx context.Context, e *env, args []string) bool {
	if len(args) == 0 {
		e.log.Error().Msg(`usage: arxiv record "<stamp line>" [...]`)
		return false
	}
	ledger := e.openLedger()
	defer ledger.Close()

	ok := true
	for _, line := range args {
		s, err := ledger.RecordLine(ctx, line)
		if err != nil {
			e.log.Error().Err(err).Str("input", line).Msg("record stamp")
			ok = false
			continue
		}
		fmt.Fprintf(e.out, "recorded %s\n", s.ID())
	}
	return ok
}

func cmdLookup(ctx context.Context, e *env, args []string) bool {
	if len(args) != 1 {
		e.log.Error().Msg("usage: arxiv lookup <id>")
		return false
	}
	id, err := arxiv.ParseID(args[0])
	if err != nil {
		e.log.Error().Err(err).Str("input", args[0]).Msg("invalid identifier")
		return false
	}

	ledger := e.openLedger()
	defer ledger.Close()

	s, err := ledger.Lookup(ctx, id)
	if err != nil {
		e.log.Error().Err(err).Msg("lookup")
		return false
	}
	printStamp(e.out, s)
	return true
}

func cmdList(ctx context.Context, e *env, args []string) bool {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	archive := fs.String("archive", "", "Filter by archive (e.g. cs, hep-th)")
	group := fs.String("group", "", "Filter by group (e.g. physics)")
	limit := fs.Int("limit", 20, "Max results")
	offset := fs.Int("offset", 0, "Offset for pagination")
	if err := fs.Parse(args); err != nil {
		return false
	}

	opts := arxiv.ListOptions{Limit: *limit, Offset: *offset}
	if *archive != "" {
		a, err := arxiv.ParseArchive(*archive)
		if err != nil {
			e.log.Error().Err(err).Msg("invalid archive")
			return false
		}
		opts.Archive = a
	}
	if *group != "" {
		g, err := arxiv.ParseGroup(*group)
		if err != nil {
			e.log.Error().Err(err).Msg("invalid group")
			return false
		}
		opts.Group = g
	}

	ledger := e.openLedger()
	defer ledger.Close()

	stamps, err := ledger.List(ctx, opts)
	if err != nil {
		e.log.Error().Err(err).Msg("list")
		return false
	}
	if len(stamps) == 0 {
		fmt.Fprintln(e.out, "No stamps recorded.")
		return true
	}
	for _, s := range stamps {
		fmt.Fprintln(e.out, s)
	}
	return true
}

func cmdStats(ctx context.Context, e *env, args []string) bool {
	ledger := e.openLedger()
	defer ledger.Close()

	stats, err := ledger.Stats(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("stats")
		return false
	}

	fmt.Fprintf(e.out, "Ledger: %s\n", ledger.Path())
	fmt.Fprintf(e.out, "Total stamps:  %d\n", stats.Total)
	fmt.Fprintf(e.out, "With category: %d\n", stats.WithCategory)
	for _, g := range arxiv.Groups() {
		if n := stats.ByGroup[g]; n > 0 {
			fmt.Fprintf(e.out, "  %-8s %d\n", g, n)
		}
	}
	return true
}
