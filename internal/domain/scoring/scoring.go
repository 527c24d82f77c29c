// Package scoring computes candidate/expert pair scores.
//
// Two independent scorers exist: SimilarityScorer ranks free-text field
// similarity (TF-IDF cosine, plus Jaccard for regression use), and
// MatchScorer combines exact-field equality with skill-set overlap. Both
// retain only the best-scoring expert per candidate and degrade to empty
// maps on empty input rather than returning errors.
package scoring

import (
	"math"

	"github.com/slotwise/slotwise/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultFieldWeight = 0.6
	defaultSkillWeight = 0.4
	maxScoreValue      = 1.0
)

// ScoreMap holds one score per candidate/expert pair.
// The keep-best scorers guarantee at most one entry per candidate.
type ScoreMap map[model.Pair]float64

// Get returns the score for a pair, or 0 when absent.
func (m ScoreMap) Get(candidateID, expertID string) float64 {
	return m[model.Pair{CandidateID: candidateID, ExpertID: expertID}]
}

// clamp bounds a score to the [0, 1] range.
func clamp(score float64) float64 {
	return math.Max(0, math.Min(maxScoreValue, score))
}
