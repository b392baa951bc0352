package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"jobshield/ai"
	"jobshield/company"
	"jobshield/domain"
	"jobshield/ingest"
	"jobshield/modelstore"
	"jobshield/normalize"
	"jobshield/repositories"
	"jobshield/services"
	"jobshield/trends"
)

const usage = `jobshield <command> [args]

Commands:
  analyze <text>        score raw job-posting text
  url <url>             scrape a posting page and score it
  image <path>          OCR a posting screenshot and score it
  batch <path> [out]    score a CSV of postings, optionally write results CSV
  trends [days]         mine recent fake verdicts for scam patterns
  verify <company>      check an employer name against the registry
  stats                 summarize stored verdict history
  search <query>        full-text search over stored verdicts
  recent <user>         list a user's most recent verdicts
  reload-check          reload model artifacts and report success
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and dispatches the subcommand. Errors are
// returned rather than exiting so deferred cleanup (database close) always
// executes.
func run() error {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		return nil
	}

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log := newLogger(config.LogLevel)

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Debug("Closing BadgerDB...")
		_ = db.Close()
	}()

	index, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() { _ = index.Close() }()

	service, err := buildService(config, db, index, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return dispatch(ctx, service, os.Args[1], os.Args[2:])
}

func buildService(config Config, db *badger.DB, index *bluge.Writer, log *slog.Logger) (*services.DetectionService, error) {
	store := modelstore.NewDiskStore(config.ModelDir, config.FallbackConfidence, log)
	registry := ai.NewRegistry(store, config.ShadowModel, log)

	var translator normalize.Translator
	if config.TranslatorEndpoint != "" {
		translator = normalize.NewHTTPTranslator(config.TranslatorEndpoint, config.TranslatorAPIKey, config.TranslatorTimeout)
	}
	normalizer := normalize.NewNormalizer(translator, log)

	repository := repositories.NewVerdictRepository(db, index, log)
	miner, err := trends.NewMiner(repository, log)
	if err != nil {
		return nil, fmt.Errorf("building trend miner: %w", err)
	}
	matcher, err := company.NewMatcherFromFile(config.CompanyRegistry, log)
	if err != nil {
		return nil, err
	}

	return services.NewDetectionService(
		registry,
		normalizer,
		ingest.NewURLAdapter(log),
		ingest.NewImageAdapter(ingest.NewTesseractEngine(), log),
		repository,
		miner,
		matcher,
		log,
	), nil
}

func dispatch(ctx context.Context, service *services.DetectionService, command string, args []string) error {
	switch command {
	case "analyze":
		if len(args) < 1 {
			return fmt.Errorf("usage: analyze <text>")
		}
		verdict, err := service.Analyze(ctx, strings.Join(args, " "), "")
		if err != nil {
			return err
		}
		printVerdict(verdict)
		return nil

	case "url":
		if len(args) != 1 {
			return fmt.Errorf("usage: url <url>")
		}
		verdict, err := service.AnalyzeURL(ctx, args[0], "")
		if err != nil {
			return err
		}
		printVerdict(verdict)
		return nil

	case "image":
		if len(args) != 1 {
			return fmt.Errorf("usage: image <path>")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		verdict, err := service.AnalyzeImage(ctx, data, "", "")
		if err != nil {
			return err
		}
		printVerdict(verdict)
		return nil

	case "batch":
		if len(args) < 1 {
			return fmt.Errorf("usage: batch <path> [out.csv]")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		result, err := service.AnalyzeBatch(ctx, data, "")
		if err != nil {
			return err
		}
		printBatch(result)
		if len(args) > 1 {
			out, err := service.RenderBatchCSV(result)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], out, 0o644); err != nil {
				return err
			}
			fmt.Printf("results written to %s\n", args[1])
		}
		return nil

	case "trends":
		days := 30
		if len(args) > 0 {
			d, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("usage: trends [days]")
			}
			days = d
		}
		report, err := service.MineTrends(ctx, days)
		if err != nil {
			return err
		}
		printTrends(report)
		return nil

	case "verify":
		if len(args) < 1 {
			return fmt.Errorf("usage: verify <company>")
		}
		verdict, err := service.VerifyCompany(strings.Join(args, " "))
		if err != nil {
			return err
		}
		printCompany(verdict)
		return nil

	case "stats":
		report, err := service.Stats(ctx)
		if err != nil {
			return err
		}
		printStats(report)
		return nil

	case "recent":
		if len(args) != 1 {
			return fmt.Errorf("usage: recent <user>")
		}
		records, err := service.RecentByUser(ctx, args[0], 20)
		if err != nil {
			return err
		}
		table := newTable([]string{"At", "Prediction", "Confidence", "Model", "Preview"})
		for _, r := range records {
			table.Append([]string{
				r.CreatedAt.Format(time.RFC3339),
				string(r.Label),
				fmt.Sprintf("%.4f", r.Confidence),
				r.ModelUsed,
				truncate(r.Text, 80),
			})
		}
		table.Render()
		return nil

	case "reload-check":
		if err := service.Reload(ctx); err != nil {
			return err
		}
		color.Green.Println("model artifacts reloaded")
		return nil

	case "search":
		if len(args) < 1 {
			return fmt.Errorf("usage: search <query>")
		}
		hits, err := service.SearchVerdicts(ctx, strings.Join(args, " "), 20)
		if err != nil {
			return err
		}
		printSearch(hits)
		return nil

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printVerdict(v domain.Verdict) {
	if v.Label == domain.LabelFake {
		color.Red.Printf("%s", v.Label)
	} else {
		color.Green.Printf("%s", v.Label)
	}
	fmt.Printf("  confidence %.2f%%  model %s\n", v.Confidence*100, v.ModelUsed)

	if v.DetectedLanguage != "" {
		fmt.Printf("language: %s (translated: %v)\n", v.DetectedLanguage, v.WasTranslated)
	}
	if v.ScrapedTitle != "" {
		fmt.Printf("title: %s\n", v.ScrapedTitle)
	}
	if v.ScrapedCompany != "" {
		fmt.Printf("company: %s\n", v.ScrapedCompany)
	}
	if v.Shadow != nil {
		fmt.Printf("shadow %s: %s %.2f%%\n", v.Shadow.Model, v.Shadow.Prediction, v.Shadow.Confidence*100)
	}

	if len(v.RiskFactors) > 0 {
		table := newTable([]string{"Phrase", "Category", "Weight"})
		for _, rf := range v.RiskFactors {
			table.Append([]string{rf.Phrase, string(rf.Category), fmt.Sprintf("%.4f", rf.Weight)})
		}
		table.Render()
	}
	for _, w := range v.Warnings {
		color.Yellow.Printf("warning: %s\n", w)
	}
}

func printBatch(result domain.BatchResult) {
	table := newTable([]string{"Row", "Text Preview", "Prediction", "Confidence (%)", "Reason"})
	table.AppendBulk(lo.Map(result.Rows, func(row domain.BatchRow, _ int) []string {
		return []string{
			strconv.Itoa(row.Row),
			row.Preview,
			row.Prediction,
			fmt.Sprintf("%.2f", row.Confidence),
			row.Reason,
		}
	}))
	table.Render()
	fmt.Printf("analyzed %d (fake %d, real %d), fraud rate %.1f%%\n",
		result.TotalAnalyzed, result.TotalFake, result.TotalReal, result.FraudRate)
}

func printTrends(report domain.TrendReport) {
	fmt.Printf("last %d days: %d fake verdicts\n", report.PeriodDays, report.TotalFakeDetected)
	if report.TotalFakeDetected == 0 {
		return
	}

	table := newTable([]string{"Pattern", "Count", "%", "Severity"})
	for _, p := range report.Patterns {
		table.Append([]string{p.Pattern, strconv.Itoa(p.Count), fmt.Sprintf("%.1f", p.Percentage), string(p.Severity)})
	}
	table.Render()

	table = newTable([]string{"Keyword", "Count"})
	for _, k := range report.TopKeywords {
		table.Append([]string{k.Keyword, strconv.Itoa(k.Count)})
	}
	table.Render()

	for _, d := range report.DailyTrend {
		fmt.Printf("%s  %d\n", d.Date, d.Count)
	}
}

func printCompany(v domain.CompanyVerdict) {
	if v.Verified {
		color.Green.Printf("verified (%s, %.1f%%)\n", v.MatchType, v.Confidence)
	} else {
		color.Yellow.Printf("not verified (%s, %.1f%%)\n", v.MatchType, v.Confidence)
	}
	if v.MatchedCompany != nil {
		fmt.Printf("closest: %s (%s, %s)\n", v.MatchedCompany.Name, v.MatchedCompany.Industry, v.MatchedCompany.Country)
	}
	if v.Warning != "" {
		fmt.Println(v.Warning)
	}
}

func printStats(report domain.StatsReport) {
	fmt.Printf("total %d  fake %d  real %d  fake%% %.2f\n",
		report.TotalPredictions, report.TotalFake, report.TotalReal, report.FakePercentage)
	table := newTable([]string{"Date", "Total", "Fake", "Real"})
	for _, d := range report.DailyTrend {
		table.Append([]string{d.Date, strconv.Itoa(d.Total), strconv.Itoa(d.Fake), strconv.Itoa(d.Real)})
	}
	table.Render()
}

func printSearch(hits []domain.SearchHit) {
	table := newTable([]string{"ID", "Prediction", "Confidence", "Preview"})
	for _, h := range hits {
		table.Append([]string{h.ID, string(h.Label), fmt.Sprintf("%.4f", h.Confidence), h.Preview})
	}
	table.Render()
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
