// Package roster normalizes raw store rows into the records the scoring
// and scheduling passes consume.
//
// Store reads may fan out: a candidate or expert appears once per declared
// interest or expertise row. The merge keeps first-seen order, dedupes on
// id, and joins multiple field values into one space-separated string.
package roster

import (
	"strings"

	"github.com/slotwise/slotwise/internal/domain/model"
)

// SkillSet maps an entity id to its set of lower-cased skill tokens.
type SkillSet map[string]map[string]struct{}

// MergeCandidates dedupes candidate rows by id, joining core fields.
// The first row's email wins; later rows only contribute extra interests.
func MergeCandidates(rows []model.Candidate) []model.Candidate {
	index := make(map[string]int, len(rows))
	merged := make([]model.Candidate, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			continue
		}
		if i, seen := index[row.ID]; seen {
			merged[i].CoreField = joinField(merged[i].CoreField, row.CoreField)
			continue
		}
		index[row.ID] = len(merged)
		merged = append(merged, row)
	}
	return merged
}

// MergeExperts dedupes expert rows by id, joining expertise fields.
func MergeExperts(rows []model.Expert) []model.Expert {
	index := make(map[string]int, len(rows))
	merged := make([]model.Expert, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			continue
		}
		if i, seen := index[row.ID]; seen {
			merged[i].FieldOfExpertise = joinField(merged[i].FieldOfExpertise, row.FieldOfExpertise)
			continue
		}
		index[row.ID] = len(merged)
		merged = append(merged, row)
	}
	return merged
}

// BuildSkillSets groups skill rows by entity id into lower-cased token sets.
func BuildSkillSets(rows []model.SkillRow) SkillSet {
	sets := make(SkillSet)
	for _, row := range rows {
		skill := strings.ToLower(strings.TrimSpace(row.Skill))
		if row.EntityID == "" || skill == "" {
			continue
		}
		set, ok := sets[row.EntityID]
		if !ok {
			set = make(map[string]struct{})
			sets[row.EntityID] = set
		}
		set[skill] = struct{}{}
	}
	return sets
}

// Skills returns the skill set for id, or an empty set when unknown.
func (s SkillSet) Skills(id string) map[string]struct{} {
	if set, ok := s[id]; ok {
		return set
	}
	return map[string]struct{}{}
}

func joinField(existing, extra string) string {
	extra = strings.TrimSpace(extra)
	switch {
	case extra == "":
		return existing
	case existing == "":
		return extra
	case strings.Contains(" "+existing+" ", " "+extra+" "):
		return existing
	default:
		return existing + " " + extra
	}
}
