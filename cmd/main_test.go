package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/matchday/internal/adapters/repository"
	"github.com/okian/matchday/internal/config"
	"github.com/okian/matchday/pkg/logger"
)

func TestMainConfiguration(t *testing.T) {
	convey.Convey("Given LEAGUE_ environment variables", t, func() {
		t.Setenv("LEAGUE_ADDR", ":9191")
		t.Setenv("LEAGUE_MAX_SCORE", "9")
		t.Setenv("LEAGUE_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		convey.Convey("Then configuration reflects them", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9191")
			convey.So(cfg.MaxScore, convey.ShouldEqual, 9)
			convey.So(cfg.CORSOrigins(), convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
		})
	})

	convey.Convey("Given an empty listen address", t, func() {
		t.Setenv("LEAGUE_ADDR", "")

		convey.Convey("Then loading fails", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestMainHandler(t *testing.T) {
	convey.Convey("Given the wired handler over the bundled league", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc := newService(cfg, repository.NewMemoryStore(), logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		h := newHandler(ctx, cfg, svc)

		convey.Convey("When standings are requested", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/standings", http.NoBody))

			convey.Convey("Then every team is listed in position order", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				var teams []struct {
					ID       int `json:"id"`
					Position int `json:"position"`
				}
				convey.So(json.Unmarshal(w.Body.Bytes(), &teams), convey.ShouldBeNil)
				convey.So(len(teams), convey.ShouldEqual, 8)
				for i, team := range teams {
					convey.So(team.Position, convey.ShouldEqual, i+1)
				}
			})
		})

		convey.Convey("When the dashboard and docs are requested", func() {
			for _, path := range []string{"/", "/api-docs", "/openapi.yaml", "/healthz"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("When a cross-origin preflight arrives", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/edits/match", http.NoBody)
			req.Header.Set("Origin", "https://dashboard.example")
			req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.Convey("Then it is allowed", func() {
				convey.So(w.Code, convey.ShouldBeBetweenOrEqual, 200, 204)
				convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "*")
			})
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the metrics updaters", t, func() {
		svc := newService(config.New(), repository.NewMemoryStore(), logger.Nop())

		convey.Convey("Then one-shot updates do not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then the loops return once the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				startServiceMetricsUpdater(ctx, svc)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("updaters did not stop")
			}
		})
	})
}
