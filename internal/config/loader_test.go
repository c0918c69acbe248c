package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/matchday/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LEAGUE_ADDR", ":9090")
			_ = os.Setenv("LEAGUE_MAX_SCORE", "9")
			_ = os.Setenv("LEAGUE_DATA_SOURCE", "https://example.test/league.json")
			_ = os.Setenv("LEAGUE_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MaxScore, convey.ShouldEqual, 9)
				convey.So(cfg.DataSource, convey.ShouldEqual, "https://example.test/league.json")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.RecentMatchesLimit, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeConfigFile(t, `
addr: ":7070"
success_notice_ms: 1500
favorites_path: ""
`)
			_ = os.Setenv("LEAGUE_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values merge with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.SuccessNoticeMS, convey.ShouldEqual, 1500)
				convey.So(cfg.FavoritesPath, convey.ShouldBeEmpty)
				convey.So(cfg.MaxScore, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := writeConfigFile(t, `
addr: ":7070"
max_score: 5
`)
			_ = os.Setenv("LEAGUE_CONFIG", path)
			_ = os.Setenv("LEAGUE_MAX_SCORE", "10")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MaxScore, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := writeConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("LEAGUE_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("LEAGUE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative max score", func() {
			_ = os.Setenv("LEAGUE_MAX_SCORE", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_score")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty addr in the file", func() {
			path := writeConfigFile(t, `addr: ""`)
			_ = os.Setenv("LEAGUE_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown log format", func() {
			_ = os.Setenv("LEAGUE_LOG_FORMAT", "xml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with metrics naming from the environment", func() {
			_ = os.Setenv("LEAGUE_METRICS_NAMESPACE", "matchday")
			_ = os.Setenv("LEAGUE_METRICS_LABELS", "league=premier, season=2024")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then namespace and labels are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "matchday")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "standings")
				convey.So(cfg.MetricsConstLabels(), convey.ShouldResemble, map[string]string{"league": "premier", "season": "2024"})
			})
		})

		convey.Convey("When loading config with an invalid metrics namespace", func() {
			_ = os.Setenv("LEAGUE_METRICS_NAMESPACE", "match-day")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with an invalid metrics label name", func() {
			_ = os.Setenv("LEAGUE_METRICS_LABELS", "2024=season")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("LEAGUE_MAX_SCORE", "seven")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"LEAGUE_CONFIG",
		"LEAGUE_ADDR",
		"LEAGUE_MAX_SCORE",
		"LEAGUE_DATA_SOURCE",
		"LEAGUE_LOG_FORMAT",
		"LEAGUE_LOG_LEVEL",
		"LEAGUE_METRICS_NAMESPACE",
		"LEAGUE_METRICS_SUBSYSTEM",
		"LEAGUE_METRICS_LABELS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "league.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
