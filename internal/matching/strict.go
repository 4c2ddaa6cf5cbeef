package matching

import "sort"

// scoreAccumulator is the explicit per-candidate accumulator for strict
// evaluation. No shared mutable state: each candidate gets a fresh value.
type scoreAccumulator struct {
	weightedSum float64
	totalWeight float64
	breakdown   []SkillBreakdownEntry
}

func (a *scoreAccumulator) add(r SkillRequirement, score float64) {
	a.weightedSum += score * r.Weight
	a.totalWeight += r.Weight
	a.breakdown = append(a.breakdown, SkillBreakdownEntry{
		SkillID:        r.SkillID,
		SkillName:      r.SkillName,
		Required:       r.Required,
		CandidateScore: score,
		MinimumScore:   r.MinimumScore,
		Weight:         r.Weight,
		MeetsThreshold: score >= r.MinimumScore,
	})
}

// EvaluateStrict scores one candidate against a job's requirements.
//
// Required skills are walked in the order given; the first one scored below
// its minimum disqualifies the candidate immediately, and no breakdown
// entries are recorded past the failing skill. Optional skills contribute
// whenever the candidate holds them, even below their own minimum — the
// entry just carries MeetsThreshold=false for display.
//
// A candidate whose contributing requirements carry zero total weight is
// not qualified (the weighted average would be undefined).
func EvaluateStrict(reqs []SkillRequirement, skills SkillScores) (score float64, breakdown []SkillBreakdownEntry, qualified bool) {
	acc := scoreAccumulator{}

	for _, r := range reqs {
		if !r.Required {
			continue
		}
		s, ok := skills[r.SkillID]
		if !ok || s < r.MinimumScore {
			acc.add(r, s)
			return 0, acc.breakdown, false
		}
		acc.add(r, s)
	}

	for _, r := range reqs {
		if r.Required {
			continue
		}
		if s, ok := skills[r.SkillID]; ok {
			acc.add(r, s)
		}
	}

	if acc.totalWeight <= 0 {
		return 0, acc.breakdown, false
	}
	return acc.weightedSum / acc.totalWeight, acc.breakdown, true
}

// RankCandidates orders qualified candidates by overall score descending and
// assigns dense 1-based ranks. Equal scores break on user ID ascending so
// recomputation over an unchanged population is deterministic.
func RankCandidates(cands []RankedCandidate) []RankedCandidate {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].OverallScore != cands[j].OverallScore {
			return cands[i].OverallScore > cands[j].OverallScore
		}
		return cands[i].UserID < cands[j].UserID
	})
	for i := range cands {
		cands[i].Rank = i + 1
	}
	return cands
}
