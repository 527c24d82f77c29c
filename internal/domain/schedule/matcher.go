package schedule

import (
	"sort"
	"strings"

	"github.com/slotwise/slotwise/internal/domain/model"
	"github.com/slotwise/slotwise/internal/domain/scoring"
)

// rankedExpert pairs an eligible expert with its combined rank score.
type rankedExpert struct {
	expert   model.Expert
	combined float64
}

// selectExpert picks the best expert for a candidate.
//
// Eligibility requires a case-insensitive exact match between the
// candidate's core field and the expert's expertise field. This is
// deliberately stricter than the fuzzy scorers: a candidate with a nonzero
// similarity score to a differently-spelled field is never scheduled.
// Among eligible experts, pairs where either score map holds a zero are
// dropped; the rest rank by similarity+match descending, expert id
// ascending.
func selectExpert(c model.Candidate, experts []model.Expert, similarity, match scoring.ScoreMap) (model.Expert, bool) {
	field := strings.ToLower(c.CoreField)

	var eligible []rankedExpert
	for _, e := range experts {
		if strings.ToLower(e.FieldOfExpertise) != field {
			continue
		}
		sim := similarity.Get(c.ID, e.ID)
		ms := match.Get(c.ID, e.ID)
		if sim == 0 || ms == 0 {
			continue
		}
		eligible = append(eligible, rankedExpert{expert: e, combined: sim + ms})
	}
	if len(eligible) == 0 {
		return model.Expert{}, false
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].combined != eligible[j].combined {
			return eligible[i].combined > eligible[j].combined
		}
		return eligible[i].expert.ID < eligible[j].expert.ID
	})
	return eligible[0].expert, true
}
