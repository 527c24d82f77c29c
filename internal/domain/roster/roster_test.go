package roster_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/slotwise/slotwise/internal/domain/model"
	"github.com/slotwise/slotwise/internal/domain/roster"
)

func TestMergeCandidates(t *testing.T) {
	Convey("Given raw candidate rows with repeated ids", t, func() {
		rows := []model.Candidate{
			{ID: "c1", CoreField: "Aerospace", Email: "c1@test"},
			{ID: "c2", CoreField: "Robotics", Email: "c2@test"},
			{ID: "c1", CoreField: "propulsion", Email: "later@test"},
			{ID: "c1", CoreField: "avionics"},
		}

		Convey("When the rows are merged", func() {
			merged := roster.MergeCandidates(rows)

			Convey("Then ids dedupe in first-seen order", func() {
				So(merged, ShouldHaveLength, 2)
				So(merged[0].ID, ShouldEqual, "c1")
				So(merged[1].ID, ShouldEqual, "c2")
			})

			Convey("And fields join space-separated", func() {
				So(merged[0].CoreField, ShouldEqual, "Aerospace propulsion avionics")
			})

			Convey("And the first row's email wins", func() {
				So(merged[0].Email, ShouldEqual, "c1@test")
			})
		})
	})

	Convey("Given rows with duplicate or empty fields", t, func() {
		rows := []model.Candidate{
			{ID: "c1", CoreField: "Aerospace"},
			{ID: "c1", CoreField: "Aerospace"},
			{ID: "c1", CoreField: ""},
			{ID: "", CoreField: "orphan"},
		}

		Convey("When the rows are merged", func() {
			merged := roster.MergeCandidates(rows)

			Convey("Then duplicate fields are not repeated", func() {
				So(merged, ShouldHaveLength, 1)
				So(merged[0].CoreField, ShouldEqual, "Aerospace")
			})
		})
	})

	Convey("Given the same rows interleaved or grouped per candidate", t, func() {
		// Stores differ in how fan-out rows come back: the in-memory
		// store interleaves them in raw call order, the SQL store groups
		// them under the entity's first registration.
		interleaved := []model.Candidate{
			{ID: "c1", CoreField: "Aerospace", Email: "c1@test"},
			{ID: "c2", CoreField: "Robotics", Email: "c2@test"},
			{ID: "c1", CoreField: "propulsion"},
		}
		grouped := []model.Candidate{
			{ID: "c1", CoreField: "Aerospace", Email: "c1@test"},
			{ID: "c1", CoreField: "propulsion"},
			{ID: "c2", CoreField: "Robotics", Email: "c2@test"},
		}

		Convey("When both row shapes are merged", func() {
			Convey("Then the merged rosters are identical", func() {
				So(roster.MergeCandidates(interleaved), ShouldResemble, roster.MergeCandidates(grouped))
			})
		})
	})

	Convey("Given no rows", t, func() {
		So(roster.MergeCandidates(nil), ShouldBeEmpty)
	})
}

func TestMergeExperts(t *testing.T) {
	Convey("Given raw expert rows with repeated ids", t, func() {
		rows := []model.Expert{
			{ID: "e1", FieldOfExpertise: "Data Science", Email: "e1@test"},
			{ID: "e1", FieldOfExpertise: "statistics"},
			{ID: "e2", FieldOfExpertise: "Biotechnology"},
		}

		Convey("When the rows are merged", func() {
			merged := roster.MergeExperts(rows)

			Convey("Then expertise fields accumulate per expert", func() {
				So(merged, ShouldHaveLength, 2)
				So(merged[0].FieldOfExpertise, ShouldEqual, "Data Science statistics")
				So(merged[1].FieldOfExpertise, ShouldEqual, "Biotechnology")
			})
		})
	})
}

func TestBuildSkillSets(t *testing.T) {
	Convey("Given mixed skill rows", t, func() {
		rows := []model.SkillRow{
			{EntityID: "c1", Skill: "Propulsion"},
			{EntityID: "c1", Skill: "  avionics  "},
			{EntityID: "c1", Skill: "propulsion"},
			{EntityID: "e1", Skill: "Avionics"},
			{EntityID: "", Skill: "orphan"},
			{EntityID: "c2", Skill: "   "},
		}

		Convey("When the sets are built", func() {
			sets := roster.BuildSkillSets(rows)

			Convey("Then skills lower-case, trim, and dedupe per entity", func() {
				So(sets.Skills("c1"), ShouldResemble, map[string]struct{}{
					"propulsion": {},
					"avionics":   {},
				})
				So(sets.Skills("e1"), ShouldResemble, map[string]struct{}{"avionics": {}})
			})

			Convey("And empty ids or blank skills are dropped", func() {
				So(sets.Skills("c2"), ShouldBeEmpty)
				So(sets, ShouldHaveLength, 2)
			})

			Convey("And an unknown id yields an empty set", func() {
				So(sets.Skills("missing"), ShouldBeEmpty)
			})
		})
	})
}
