package service

import (
	"sort"

	"go.uber.org/zap"
)

// ScoredCandidate pairs a candidate's aggregated data with its score
// breakdown.
type ScoredCandidate struct {
	CandidateData
	Breakdown ScoreBreakdown
}

// RankingService orders scored candidates and enforces brand diversity in
// the returned window.
type RankingService struct {
	logger *zap.Logger
}

func NewRankingService(logger *zap.Logger) *RankingService {
	return &RankingService{logger: logger}
}

// Rank sorts candidates by descending score (ties broken by product ID so
// output is reproducible) and returns at most topK of them. Within the
// window, at most ceil(topK/2) entries may share a brand token; if the pool
// cannot supply that much variety, remaining slots are filled by score
// rather than left empty.
func (s *RankingService) Rank(scored []ScoredCandidate, topK int) []ScoredCandidate {
	if topK <= 0 || len(scored) == 0 {
		return nil
	}

	ordered := make([]ScoredCandidate, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Breakdown.Final != ordered[j].Breakdown.Final {
			return ordered[i].Breakdown.Final > ordered[j].Breakdown.Final
		}
		return ordered[i].Product.ID < ordered[j].Product.ID
	})

	brandCap := (topK + 1) / 2
	picked := make([]ScoredCandidate, 0, topK)
	var overflow []ScoredCandidate
	brandCounts := map[string]int{}

	for _, c := range ordered {
		if len(picked) == topK {
			break
		}
		brand := c.Product.Brand()
		if brandCounts[brand] >= brandCap {
			overflow = append(overflow, c)
			continue
		}
		brandCounts[brand]++
		picked = append(picked, c)
	}

	// Not enough distinct brands: backfill by score, repetition allowed.
	for _, c := range overflow {
		if len(picked) == topK {
			break
		}
		picked = append(picked, c)
	}

	// Backfill can place a high scorer after a lower one; restore order.
	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].Breakdown.Final != picked[j].Breakdown.Final {
			return picked[i].Breakdown.Final > picked[j].Breakdown.Final
		}
		return picked[i].Product.ID < picked[j].Product.ID
	})

	return picked
}
