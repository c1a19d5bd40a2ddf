package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"adequa/internal/audit/report"
	auditpostgres "adequa/internal/audit/store/postgres"
	"adequa/internal/platform/config"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// reportFlags holds the parsed flags for the report command.
type reportFlags struct {
	databaseURL      string
	start            string
	end              string
	since            time.Duration
	out              string
	compact          bool
	failOnSuspicious bool
	burstThreshold   int
	deniedThreshold  int
	ipThreshold      int
	topActors        int
	failureRatio     float64
	noBotDetection   bool
}

func main() {
	defaults := config.DefaultReport()

	var flags reportFlags
	root := &cobra.Command{
		Use:           "auditreport",
		Short:         "Print the security report for an audit window as JSON",
		Long:          "auditreport reads the audit trail from Postgres and prints the suspicious activity analysis for [start, end).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	f := root.Flags()
	f.StringVar(&flags.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string (default $DATABASE_URL)")
	f.StringVar(&flags.start, "start", "", "Window start, RFC 3339 (default: end minus --since)")
	f.StringVar(&flags.end, "end", "", "Window end, RFC 3339 (default: now)")
	f.DurationVar(&flags.since, "since", 24*time.Hour, "Window length when --start is omitted")
	f.StringVar(&flags.out, "out", "", "Write the report to a file instead of stdout")
	f.BoolVar(&flags.compact, "compact", false, "Emit compact JSON")
	f.BoolVar(&flags.failOnSuspicious, "fail-on-suspicious", false, "Exit 2 when any suspicious activity is reported")
	f.IntVar(&flags.burstThreshold, "burst-threshold", defaults.BurstThreshold, "Actions per actor per hour flagged as high activity")
	f.IntVar(&flags.deniedThreshold, "denied-threshold", defaults.AccessDeniedThreshold, "Access denials per actor flagged as repeated")
	f.IntVar(&flags.ipThreshold, "ip-threshold", defaults.DistinctIPThreshold, "Distinct IPs per actor flagged as multiple IPs")
	f.IntVar(&flags.topActors, "top", defaults.TopActors, "Number of most active actors to list")
	f.Float64Var(&flags.failureRatio, "failure-ratio", defaults.FailureRatio, "Failed-action share above which a review is recommended")
	f.BoolVar(&flags.noBotDetection, "no-bot-detection", false, "Skip user-agent based automated client detection")

	if err := root.ExecuteContext(context.Background()); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// reportConfig maps the threshold flags onto the report configuration.
func (f reportFlags) reportConfig() config.ReportConfig {
	return config.ReportConfig{
		BurstThreshold:        f.burstThreshold,
		AccessDeniedThreshold: f.deniedThreshold,
		DistinctIPThreshold:   f.ipThreshold,
		TopActors:             f.topActors,
		FailureRatio:          f.failureRatio,
		DetectBots:            !f.noBotDetection,
	}
}

func run(ctx context.Context, stdout io.Writer, flags reportFlags) error {
	if flags.databaseURL == "" {
		return codeError(3, "--database-url or DATABASE_URL is required")
	}
	start, end, err := window(flags, time.Now().UTC())
	if err != nil {
		return codeError(3, "invalid window: %s", err)
	}

	db, err := sql.Open("pgx", flags.databaseURL)
	if err != nil {
		return codeError(1, "opening database: %s", err)
	}
	defer db.Close()

	thresholds := report.ThresholdsFromConfig(flags.reportConfig())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	reporter, err := report.New(auditpostgres.New(db), report.WithThresholds(thresholds), report.WithLogger(logger))
	if err != nil {
		return codeError(1, "%s", err)
	}
	rep, err := reporter.Generate(ctx, start, end)
	if err != nil {
		return codeError(1, "generating report: %s", err)
	}

	w := stdout
	if flags.out != "" {
		file, err := os.Create(flags.out)
		if err != nil {
			return codeError(1, "creating output file: %s", err)
		}
		defer file.Close()
		w = file
	}
	enc := json.NewEncoder(w)
	if !flags.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rep); err != nil {
		return codeError(1, "writing report: %s", err)
	}

	if flags.failOnSuspicious && len(rep.SuspiciousActivities) > 0 {
		return codeError(2, "%d suspicious activities reported", len(rep.SuspiciousActivities))
	}
	return nil
}

// window resolves the report bounds from the flags.
func window(flags reportFlags, now time.Time) (time.Time, time.Time, error) {
	end := now
	if flags.end != "" {
		t, err := time.Parse(time.RFC3339, flags.end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--end: %w", err)
		}
		end = t
	}
	start := end.Add(-flags.since)
	if flags.start != "" {
		t, err := time.Parse(time.RFC3339, flags.start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--start: %w", err)
		}
		start = t
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, errors.New("start must be before end")
	}
	return start, end, nil
}
