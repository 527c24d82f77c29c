package rostergen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/slotwise/slotwise/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	minSkillCount      = 2
	skillCountRange    = 3
	crossFieldChance   = 5 // one in N entries picks an extra out-of-field skill
)

// fieldPool lists the fields a generated candidate or expert can belong to.
var fieldPool = []string{
	"Aerospace",
	"Computer Science",
	"Mechanical Engineering",
	"Data Science",
	"Electrical Engineering",
	"Biotechnology",
}

// skillPool maps each field to its skill vocabulary.
var skillPool = map[string][]string{
	"Aerospace":              {"propulsion", "aerodynamics", "orbital mechanics", "avionics", "composite materials", "flight dynamics"},
	"Computer Science":       {"algorithms", "distributed systems", "compilers", "databases", "operating systems", "networking"},
	"Mechanical Engineering": {"thermodynamics", "fluid mechanics", "cad", "robotics", "materials science", "vibration analysis"},
	"Data Science":           {"machine learning", "statistics", "data visualization", "nlp", "deep learning", "feature engineering"},
	"Electrical Engineering": {"circuit design", "signal processing", "power systems", "embedded systems", "control theory", "fpga"},
	"Biotechnology":          {"genomics", "bioinformatics", "cell culture", "protein engineering", "crispr", "fermentation"},
}

// randomInt returns a uniform random integer in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// randomField picks a field from the pool.
func randomField() string {
	return fieldPool[randomInt(len(fieldPool))]
}

// randomSkills draws a set of skills for the given field. Occasionally one
// skill from a different field is mixed in so similarity scores spread out.
func randomSkills(field string) []string {
	pool := skillPool[field]
	count := minSkillCount + randomInt(skillCountRange)
	if count > len(pool) {
		count = len(pool)
	}

	picked := make(map[string]struct{}, count)
	skills := make([]string, 0, count+1)
	for len(skills) < count {
		s := pool[randomInt(len(pool))]
		if _, ok := picked[s]; ok {
			continue
		}
		picked[s] = struct{}{}
		skills = append(skills, s)
	}

	if randomInt(crossFieldChance) == 0 {
		other := randomField()
		if other != field {
			extra := skillPool[other][randomInt(len(skillPool[other]))]
			if _, ok := picked[extra]; !ok {
				skills = append(skills, extra)
			}
		}
	}

	return skills
}

// emailFor derives a deterministic email address from an id.
func emailFor(id, domain string) string {
	short := strings.ReplaceAll(id, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s@%s", short, domain)
}

// generateRoster creates the configured number of candidates and experts
// with unique IDs.
func generateRoster(ctx context.Context, config *Config, stats *Stats) ([]Candidate, []Expert, error) {
	logger.Get().Info(ctx, "generating roster",
		logger.Int("candidates", config.NumCandidates),
		logger.Int("experts", config.NumExperts))

	candidates := make([]Candidate, config.NumCandidates)
	experts := make([]Expert, config.NumExperts)

	type genResult struct {
		index  int
		expert bool
		err    error
	}

	total := config.NumCandidates + config.NumExperts
	resultChan := make(chan genResult, total)

	workerCount := minInt(config.Workers, total)
	if workerCount < 1 {
		workerCount = 1
	}
	perWorker := total / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = total // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- genResult{index: i, err: ctx.Err()}
					return
				default:
					if i < config.NumCandidates {
						candidates[i] = generateCandidate()
						resultChan <- genResult{index: i}
					} else {
						experts[i-config.NumCandidates] = generateExpert()
						resultChan <- genResult{index: i, expert: true}
					}
				}
			}
		}(start, end)
	}

	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			return nil, nil, fmt.Errorf("context cancelled during roster generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, nil, fmt.Errorf("failed to generate entry %d: %w", result.index, result.err)
			}
		}
	}

	stats.CandidatesGenerated = len(candidates)
	stats.ExpertsGenerated = len(experts)
	logger.Get().Info(ctx, "generated roster successfully",
		logger.Int("candidates", len(candidates)),
		logger.Int("experts", len(experts)))

	return candidates, experts, nil
}

// generateCandidate creates a single candidate with random field and skills.
func generateCandidate() Candidate {
	id := uuid.New().String()
	field := randomField()
	return Candidate{
		ID:     id,
		Field:  field,
		Email:  emailFor(id, "candidates.test"),
		Skills: randomSkills(field),
	}
}

// generateExpert creates a single expert with random field and skills.
func generateExpert() Expert {
	id := uuid.New().String()
	field := randomField()
	return Expert{
		ID:     id,
		Field:  field,
		Email:  emailFor(id, "experts.test"),
		Skills: randomSkills(field),
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
