package scoring

import (
	"context"
	"math"
	"strings"

	"github.com/slotwise/slotwise/internal/domain/model"
	"github.com/slotwise/slotwise/internal/domain/roster"
	"github.com/slotwise/slotwise/pkg/logger"
)

// MatchScorer combines exact-field equality with skill-set overlap into a
// single weighted score per candidate/expert pair.
type MatchScorer struct {
	fieldWeight float64
	skillWeight float64
	logger      logger.Logger
}

// MatchOption applies a configuration option to the MatchScorer.
type MatchOption func(*MatchScorer)

// WithWeights sets the field and skill score weights.
func WithWeights(fieldWeight, skillWeight float64) MatchOption {
	return func(m *MatchScorer) {
		if fieldWeight >= 0 && skillWeight >= 0 && fieldWeight+skillWeight > 0 {
			m.fieldWeight = fieldWeight
			m.skillWeight = skillWeight
		}
	}
}

// WithMatchLogger sets a custom logger for the scorer.
func WithMatchLogger(l logger.Logger) MatchOption {
	return func(m *MatchScorer) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMatchScorer creates a new match scorer with configuration options.
func NewMatchScorer(opts ...MatchOption) *MatchScorer {
	m := &MatchScorer{
		fieldWeight: defaultFieldWeight,
		skillWeight: defaultSkillWeight,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Best returns the highest combined-score expert per candidate.
//
// skill score is |candidate ∩ expert skills| / max(|candidate skills|, 1);
// field score is 1 on case-insensitive exact field equality. Strictly
// greater wins the fold, so a candidate whose every pair scores zero gets
// no entry. Empty input yields an empty map.
func (m *MatchScorer) Best(ctx context.Context, candidates []model.Candidate, experts []model.Expert, skills roster.SkillSet) ScoreMap {
	scores := make(ScoreMap)
	if len(candidates) == 0 || len(experts) == 0 {
		if m.logger != nil {
			m.logger.Warn(ctx, "no data for match scoring")
		}
		return scores
	}

	for _, c := range candidates {
		cSkills := skills.Skills(c.ID)
		cField := strings.ToLower(c.CoreField)

		var best float64
		bestExpert := -1
		for j, e := range experts {
			eSkills := skills.Skills(e.ID)

			var common int
			for skill := range cSkills {
				if _, ok := eSkills[skill]; ok {
					common++
				}
			}
			skillScore := float64(common) / math.Max(float64(len(cSkills)), 1)

			fieldScore := 0.0
			if cField == strings.ToLower(e.FieldOfExpertise) {
				fieldScore = 1.0
			}

			combined := m.fieldWeight*fieldScore + m.skillWeight*skillScore
			if combined > best {
				best = combined
				bestExpert = j
			}
		}
		if bestExpert >= 0 {
			scores[model.Pair{CandidateID: c.ID, ExpertID: experts[bestExpert].ID}] = clamp(best)
		}
	}
	return scores
}
