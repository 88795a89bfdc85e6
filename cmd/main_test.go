package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func writeVotes(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "votes.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write votes: %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		ctx := context.Background()
		for _, name := range []string{"ELO_CONFIG", "ELO_INPUT", "ELO_K_FACTOR", "ELO_INITIAL_RATING", "ELO_TOP", "ELO_FORMAT", "ELO_LOG_LEVEL", "ELO_METRICS_FILE"} {
			_ = os.Unsetenv(name)
		}
		var stdout, stderr bytes.Buffer

		convey.Convey("When run against a valid log", func() {
			path := writeVotes(t, "model_left,model_right,winner\nmodelA,modelB,left\nmodelA,modelC,tie\n")
			code := run(ctx, []string{"-input", path}, &stdout, &stderr)

			convey.Convey("Then it prints the report and exits 0", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
				convey.So(lines[0], convey.ShouldEqual, "--- Final Elo score (initial=1500, K=32) ---")
				convey.So(len(lines), convey.ShouldEqual, 4)
				convey.So(lines[1], convey.ShouldStartWith, "modelA | Elo: ")
			})
		})

		convey.Convey("When the K-factor comes from the environment and a flag", func() {
			path := writeVotes(t, "model_left,model_right,winner\nA,B,left\n")
			_ = os.Setenv("ELO_K_FACTOR", "16")
			defer func() { _ = os.Unsetenv("ELO_K_FACTOR") }()

			convey.Convey("Then the flag wins over the environment", func() {
				code := run(ctx, []string{"-input", path, "-k", "64"}, &stdout, &stderr)
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "K=64")
				convey.So(stdout.String(), convey.ShouldContainSubstring, "A | Elo: 1532.00")
			})

			convey.Convey("And the environment applies without the flag", func() {
				code := run(ctx, []string{"-input", path}, &stdout, &stderr)
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "A | Elo: 1508.00")
			})
		})

		convey.Convey("When the input file does not exist", func() {
			code := run(ctx, []string{"-input", filepath.Join(t.TempDir(), "votes.csv")}, &stdout, &stderr)

			convey.Convey("Then it exits non-zero with a one-line diagnostic", func() {
				convey.So(code, convey.ShouldEqual, exitError)
				convey.So(stdout.Len(), convey.ShouldEqual, 0)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "error: match log not found")
				convey.So(strings.Count(stderr.String(), "error: "), convey.ShouldEqual, 1)
				convey.So(strings.Count(stderr.String(), "\n"), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the environment holds invalid values that flags replace", func() {
			path := writeVotes(t, "model_left,model_right,winner\nA,B,left\n")
			_ = os.Setenv("ELO_K_FACTOR", "0")
			_ = os.Setenv("ELO_FORMAT", "xml")
			defer func() {
				_ = os.Unsetenv("ELO_K_FACTOR")
				_ = os.Unsetenv("ELO_FORMAT")
			}()

			code := run(ctx, []string{"-input", path, "-k", "16", "-format", "text"}, &stdout, &stderr)

			convey.Convey("Then only the final layer is validated and the run succeeds", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "A | Elo: 1508.00")
			})
		})

		convey.Convey("When the environment holds an invalid value no flag replaces", func() {
			path := writeVotes(t, "model_left,model_right,winner\nA,B,left\n")
			_ = os.Setenv("ELO_K_FACTOR", "0")
			defer func() { _ = os.Unsetenv("ELO_K_FACTOR") }()

			code := run(ctx, []string{"-input", path}, &stdout, &stderr)

			convey.Convey("Then validation fails", func() {
				convey.So(code, convey.ShouldEqual, exitError)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "k_factor")
			})
		})

		convey.Convey("When the input is missing and a metrics file is requested", func() {
			metricsPath := filepath.Join(t.TempDir(), "elorank.prom")
			code := run(ctx, []string{"-input", filepath.Join(t.TempDir(), "votes.csv"), "-metrics-file", metricsPath}, &stdout, &stderr)

			convey.Convey("Then the run fails but its error is still exported", func() {
				convey.So(code, convey.ShouldEqual, exitError)
				b, err := os.ReadFile(metricsPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldContainSubstring, `elorank_run_errors_total{kind="not_found"} 1`)
			})
		})

		convey.Convey("When a row is malformed", func() {
			path := writeVotes(t, "model_left,model_right,winner\nA,B,left\nA,B\n")
			code := run(ctx, []string{"-input", path}, &stdout, &stderr)

			convey.Convey("Then it exits non-zero naming the row", func() {
				convey.So(code, convey.ShouldEqual, exitError)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "malformed record at row 2")
			})
		})

		convey.Convey("When the K-factor flag is invalid", func() {
			code := run(ctx, []string{"-k", "-1"}, &stdout, &stderr)

			convey.Convey("Then configuration validation fails", func() {
				convey.So(code, convey.ShouldEqual, exitError)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "k_factor")
			})
		})

		convey.Convey("When an unknown flag is given", func() {
			code := run(ctx, []string{"-bogus"}, &stdout, &stderr)

			convey.Convey("Then it exits with the usage code", func() {
				convey.So(code, convey.ShouldEqual, exitUsage)
			})
		})

		convey.Convey("When help is requested", func() {
			code := run(ctx, []string{"-help"}, &stdout, &stderr)

			convey.Convey("Then usage is printed and it exits 0", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "Usage: elorank")
			})
		})

		convey.Convey("When a metrics file is requested", func() {
			path := writeVotes(t, "model_left,model_right,winner\nA,B,right\n")
			metricsPath := filepath.Join(t.TempDir(), "elorank.prom")
			code := run(ctx, []string{"-input", path, "-metrics-file", metricsPath, "-format", "json"}, &stdout, &stderr)

			convey.Convey("Then the run's metrics are written", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				b, err := os.ReadFile(metricsPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldContainSubstring, `elorank_run_outcomes_total{outcome="right"} 1`)
				convey.So(stdout.String(), convey.ShouldContainSubstring, `"standings"`)
			})
		})
	})
}
