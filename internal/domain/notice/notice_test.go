package notice_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/okian/matchday/internal/domain/notice"
	. "github.com/smartystreets/goconvey/convey"
)

// waitFor polls cond for up to a second; timer goroutines clear asynchronously.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

func TestFlag(t *testing.T) {
	Convey("Given a flag on a fake clock", t, func() {
		clock := clockwork.NewFakeClock()
		flag := notice.New(notice.WithClock(clock), notice.WithDuration(3*time.Second))
		defer flag.Close()

		Convey("Then it starts cleared", func() {
			So(flag.IsSet(), ShouldBeFalse)
		})

		Convey("When raised", func() {
			flag.Raise()

			Convey("Then it is set with one pending clear", func() {
				So(flag.IsSet(), ShouldBeTrue)
				So(flag.Pending(), ShouldEqual, 1)
			})

			Convey("And it stays set before the delay elapses", func() {
				clock.Advance(2 * time.Second)
				time.Sleep(5 * time.Millisecond)
				So(flag.IsSet(), ShouldBeTrue)
			})

			Convey("And it clears once the delay elapses", func() {
				clock.Advance(3 * time.Second)
				So(waitFor(func() bool { return !flag.IsSet() }), ShouldBeTrue)
				So(waitFor(func() bool { return flag.Pending() == 0 }), ShouldBeTrue)
			})
		})

		Convey("When raised twice", func() {
			flag.Raise()
			clock.Advance(2 * time.Second)
			flag.Raise()

			Convey("Then the first timer clears the shared flag", func() {
				So(flag.Pending(), ShouldEqual, 2)
				clock.Advance(time.Second)
				So(waitFor(func() bool { return !flag.IsSet() }), ShouldBeTrue)
				So(waitFor(func() bool { return flag.Pending() == 1 }), ShouldBeTrue)
			})
		})
	})

	Convey("Given a raised flag that is closed", t, func() {
		clock := clockwork.NewFakeClock()
		cleared := make(chan struct{}, 1)
		flag := notice.New(
			notice.WithClock(clock),
			notice.WithOnClear(func() { cleared <- struct{}{} }),
		)
		flag.Raise()
		flag.Close()

		Convey("Then pending timers are cancelled", func() {
			So(flag.Pending(), ShouldEqual, 0)
			clock.Advance(notice.DefaultDuration)
			time.Sleep(5 * time.Millisecond)
			So(len(cleared), ShouldEqual, 0)
		})

		Convey("And further raises are ignored", func() {
			flag.Raise()
			So(flag.Pending(), ShouldEqual, 0)
		})

		Convey("And closing again is safe", func() {
			So(func() { flag.Close() }, ShouldNotPanic)
		})
	})
}
