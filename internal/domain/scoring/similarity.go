package scoring

import (
	"context"
	"strings"

	"github.com/slotwise/slotwise/internal/domain/model"
	"github.com/slotwise/slotwise/pkg/logger"
)

// SimilarityScorer computes text similarity between candidate core fields
// and expert expertise fields.
type SimilarityScorer struct {
	logger logger.Logger
}

// SimilarityOption applies a configuration option to the SimilarityScorer.
type SimilarityOption func(*SimilarityScorer)

// WithSimilarityLogger sets a custom logger for the scorer.
func WithSimilarityLogger(l logger.Logger) SimilarityOption {
	return func(s *SimilarityScorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSimilarityScorer creates a new similarity scorer with configuration options.
func NewSimilarityScorer(opts ...SimilarityOption) *SimilarityScorer {
	s := &SimilarityScorer{}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// BestByCosine returns the single highest-cosine expert per candidate.
//
// A joint TF-IDF vocabulary is built over all candidate and expert field
// strings. Per candidate only the strictly-greatest score is kept; ties
// keep the first expert in input order, and an all-zero candidate gets no
// entry. Empty input yields an empty map.
func (s *SimilarityScorer) BestByCosine(ctx context.Context, candidates []model.Candidate, experts []model.Expert) ScoreMap {
	scores := make(ScoreMap)
	if len(candidates) == 0 || len(experts) == 0 {
		s.warn(ctx, "no data for similarity scoring")
		return scores
	}

	docs := make([]string, 0, len(candidates)+len(experts))
	for _, c := range candidates {
		docs = append(docs, c.CoreField)
	}
	for _, e := range experts {
		docs = append(docs, e.FieldOfExpertise)
	}
	vectors := tfidfVectors(docs)
	candVecs := vectors[:len(candidates)]
	expertVecs := vectors[len(candidates):]

	for i, c := range candidates {
		var best float64
		bestExpert := -1
		for j := range experts {
			score := cosine(candVecs[i], expertVecs[j])
			if score > best {
				best = score
				bestExpert = j
			}
		}
		if bestExpert >= 0 {
			scores[model.Pair{CandidateID: c.ID, ExpertID: experts[bestExpert].ID}] = clamp(best)
		}
	}
	return scores
}

// Jaccard computes token-set overlap for every candidate/expert pair.
//
// Unlike BestByCosine this keeps all pairs; the result feeds the optional
// regression path only and is never consumed by the scheduler.
func (s *SimilarityScorer) Jaccard(ctx context.Context, candidates []model.Candidate, experts []model.Expert) ScoreMap {
	scores := make(ScoreMap)
	if len(candidates) == 0 || len(experts) == 0 {
		s.warn(ctx, "no data for jaccard scoring")
		return scores
	}

	for _, c := range candidates {
		cSet := wordSet(c.CoreField)
		for _, e := range experts {
			eSet := wordSet(e.FieldOfExpertise)
			scores[model.Pair{CandidateID: c.ID, ExpertID: e.ID}] = clamp(jaccard(cSet, eSet))
		}
	}
	return scores
}

func (s *SimilarityScorer) warn(ctx context.Context, msg string) {
	if s.logger != nil {
		s.logger.Warn(ctx, msg)
	}
}

// wordSet lower-cases text and splits it on whitespace into a set.
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	var intersection int
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
