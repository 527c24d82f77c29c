package rostergen

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fullExpertDay builds the twelve slots one expert accumulates across a
// default working day, break and lunch shifts included.
func fullExpertDay(expertID, date string) []ScheduleRow {
	slots := [][2]string{
		{"10:00", "10:30"}, {"10:30", "11:00"}, {"11:00", "11:30"},
		{"11:32", "12:02"}, {"12:02", "12:32"}, {"12:32", "13:02"},
		{"13:32", "14:02"}, {"14:02", "14:32"}, {"14:32", "15:02"},
		{"15:04", "15:34"}, {"15:34", "16:04"}, {"16:04", "16:34"},
	}
	rows := make([]ScheduleRow, len(slots))
	for i, s := range slots {
		rows[i] = ScheduleRow{
			ExpertID:    expertID,
			CandidateID: fmt.Sprintf("cand-%02d", i),
			Date:        date,
			StartTime:   s[0],
			EndTime:     s[1],
		}
	}
	return rows
}

func TestVerifySchedule(t *testing.T) {
	Convey("Given a fully booked expert day on the default calendar", t, func() {
		cal := (&Config{}).calendar()
		rows := fullExpertDay("exp-1", "2025-05-01")

		Convey("When the schedule is verified", func() {
			err := verifySchedule(cal, rows, nil, nil)

			Convey("Then the day passes, running-into-lunch slot included", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When a slot starts inside the lunch window", func() {
			rows[6].StartTime = "13:00"
			err := verifySchedule(cal, rows, nil, nil)

			Convey("Then verification fails on that start", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "inside lunch")
			})
		})

		Convey("When a slot ends past the working day", func() {
			rows[11].EndTime = "17:04"
			err := verifySchedule(cal, rows, nil, nil)

			Convey("Then verification fails on working hours", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "outside working hours")
			})
		})

		Convey("When the expert holds the same slot twice", func() {
			rows[1].StartTime = rows[0].StartTime
			rows[1].EndTime = rows[0].EndTime
			err := verifySchedule(cal, rows, nil, nil)

			Convey("Then verification reports a double booking", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "double-booked")
			})
		})

		Convey("When a candidate is booked twice", func() {
			rows[3].CandidateID = rows[2].CandidateID
			err := verifySchedule(cal, rows, nil, nil)

			Convey("Then verification reports the repeat", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "more than once")
			})
		})
	})

	Convey("Given a service running a non-default calendar", t, func() {
		cfg := &Config{
			DayStart:   "09:00",
			DayEnd:     "12:00",
			LunchStart: "10:00",
			LunchEnd:   "11:00",
		}
		rows := []ScheduleRow{
			{ExpertID: "exp-1", CandidateID: "cand-a", Date: "2025-05-01", StartTime: "09:00", EndTime: "10:00"},
			{ExpertID: "exp-1", CandidateID: "cand-b", Date: "2025-05-01", StartTime: "11:00", EndTime: "12:00"},
		}

		Convey("When the verifier uses the configured bounds", func() {
			err := verifySchedule(cfg.calendar(), rows, nil, nil)

			Convey("Then the schedule passes", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When the same schedule is checked against the defaults", func() {
			err := verifySchedule((&Config{}).calendar(), rows, nil, nil)

			Convey("Then the 09:00 slot is outside the default window", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given score entries alongside a valid schedule", t, func() {
		cal := (&Config{}).calendar()
		rows := fullExpertDay("exp-1", "2025-05-01")

		Convey("When a score falls outside [0, 1]", func() {
			bad := []ScoreEntry{{CandidateID: "cand-00", ExpertID: "exp-1", Score: 1.2}}
			err := verifySchedule(cal, rows, bad, nil)

			Convey("Then verification fails on the score", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "outside [0, 1]")
			})
		})

		Convey("When a candidate appears twice in one score map", func() {
			dup := []ScoreEntry{
				{CandidateID: "cand-00", ExpertID: "exp-1", Score: 0.9},
				{CandidateID: "cand-00", ExpertID: "exp-2", Score: 0.4},
			}
			err := verifySchedule(cal, rows, nil, dup)

			Convey("Then verification fails on the repeat", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "appears more than once")
			})
		})
	})
}
