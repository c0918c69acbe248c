package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the default options", t, func() {
		So(Init(), ShouldBeNil)
		defer func() { So(Sync(), ShouldBeNil) }()

		Convey("Then the global logger is available", func() {
			So(Get(), ShouldNotBeNil)
			So(Named("standings"), ShouldNotBeNil)
		})
	})

	Convey("Given an unknown format", t, func() {
		err := Init(WithFormat("xml"))

		Convey("Then Init fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat("json"), WithWriter(&buf)), ShouldBeNil)
		ctx := context.Background()

		Convey("When a named logger writes a record", func() {
			Named("loader").Info(ctx, "league loaded",
				Int("teams", 8), Bool("fromCache", false), Error(errors.New("boom")))

			var rec map[string]any
			So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)

			Convey("Then fields, component and caller are present", func() {
				So(rec["msg"], ShouldEqual, "league loaded")
				So(rec["component"], ShouldEqual, "loader")
				So(rec["teams"], ShouldEqual, float64(8))
				So(rec["fromCache"], ShouldEqual, false)
				So(rec["error"], ShouldEqual, "boom")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("WARN"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")

			Convey("Then only the warning is written", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(strings.Count(buf.String(), "\n"), ShouldEqual, 1)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then known names parse and unknown ones fail", func() {
			for _, lvl := range []string{"debug", "info", "", "warning", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		l := Nop()

		Convey("Then logging does not panic", func() {
			So(func() { l.Named("x").Error(context.Background(), "dropped") }, ShouldNotPanic)
		})
	})
}
