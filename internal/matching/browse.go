package matching

// Relaxed browse scoring. Unlike strict matching, missing required skills
// never eliminate a job from the list — they cap the skill score instead,
// and profile-based bonus points are added on top of the capped value.

// EvaluateRelaxed computes a non-eliminating compatibility score for one
// active job. It never errors: absent skills or a nil profile contribute
// zero and degrade the score gracefully.
func EvaluateRelaxed(job ActiveJob, skills SkillScores, profile *CandidateProfile) BrowseResult {
	res := BrowseResult{
		JobID:          job.ID,
		JobTitle:       job.Title,
		Company:        job.Company,
		SkillBreakdown: make([]SkillBreakdownEntry, 0, len(job.Requirements)),
	}

	var weightedSum, totalWeight float64
	for _, r := range job.Requirements {
		score := skills[r.SkillID] // 0 if absent
		meets := score >= r.MinimumScore

		res.SkillBreakdown = append(res.SkillBreakdown, SkillBreakdownEntry{
			SkillID:        r.SkillID,
			SkillName:      r.SkillName,
			Required:       r.Required,
			CandidateScore: score,
			MinimumScore:   r.MinimumScore,
			Weight:         r.Weight,
			MeetsThreshold: meets,
		})

		if r.Required {
			res.TotalRequiredSkills++
			if score > 0 && meets {
				res.RequiredSkillsMet++
			}
		}

		// Skills the candidate lacks entirely do not pull the average down;
		// they simply are not counted.
		if score > 0 {
			weightedSum += score * r.Weight
			totalWeight += r.Weight
		}
	}

	skillScore := 0.0
	if totalWeight > 0 {
		skillScore = weightedSum / totalWeight
	}

	// Qualification penalty: missing required skills cap the base score at
	// ratio×50+25, so 0 of N met caps at 25 and all met removes the cap.
	if res.TotalRequiredSkills > 0 && res.RequiredSkillsMet < res.TotalRequiredSkills {
		ratio := float64(res.RequiredSkillsMet) / float64(res.TotalRequiredSkills)
		if ceiling := ratio*50 + 25; skillScore > ceiling {
			skillScore = ceiling
		}
	}

	bonus := 0.0
	if profile != nil {
		bonus = experienceBonus(profile.YearsExperience, job.ExperienceLevel) +
			locationBonus(job, profile) +
			educationBonus(job, profile) +
			workHistoryBonus(job, profile)
	}

	res.OverallScore = clampScore(skillScore + bonus)
	res.IsFullyQualified = res.TotalRequiredSkills > 0 &&
		res.RequiredSkillsMet == res.TotalRequiredSkills
	return res
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// ─── Bonus terms ─────────────────────────────────────────────────────────────

// experienceBands maps each job level to its [min, max) years range.
// max < 0 means unbounded.
var experienceBands = map[ExperienceLevel][2]int{
	LevelEntry:  {0, 2},
	LevelMid:    {2, 5},
	LevelSenior: {5, 10},
	LevelLead:   {10, -1},
}

// experienceBonus awards 5 when the candidate's years fall inside the job
// level's band, 2 within two years of it, 0 otherwise.
func experienceBonus(years int, level ExperienceLevel) float64 {
	band, ok := experienceBands[level]
	if !ok {
		return 0
	}
	lo, hi := band[0], band[1]
	if years >= lo && (hi < 0 || years < hi) {
		return 5
	}
	if years >= lo-2 && (hi < 0 || years < hi+2) {
		return 2
	}
	return 0
}

// locationBonus awards 0-5 for geographic alignment.
//
// Remote jobs: 5 for a remote-leaning preference, 2 for hybrid, 0 for
// on-site-only candidates. Other jobs: same city 5, same state and willing
// to relocate 3, same state only 1, different state but willing 2.
func locationBonus(job ActiveJob, p *CandidateProfile) float64 {
	if job.RemotePolicy == RemoteOnly {
		switch p.RemotePreference {
		case RemoteOnly, RemoteAny:
			return 5
		case RemoteHybrid:
			return 2
		}
		return 0
	}

	sameCity := p.City != "" && equalFold(p.City, job.City)
	sameState := p.State != "" && equalFold(p.State, job.State)
	switch {
	case sameCity:
		return 5
	case sameState && p.WillingToRelocate:
		return 3
	case sameState:
		return 1
	case p.WillingToRelocate:
		return 2
	}
	return 0
}

// educationBonus awards 3 when a degree's field of study shares a
// significant word with the posting, 1 for holding any degree otherwise.
func educationBonus(job ActiveJob, p *CandidateProfile) float64 {
	if len(p.Education) == 0 {
		return 0
	}
	jobWords := significantWords(job.Title + " " + job.Description)
	for _, edu := range p.Education {
		for w := range significantWords(edu.FieldOfStudy) {
			if jobWords[w] {
				return 3
			}
		}
	}
	return 1
}

// workHistoryBonus awards 2 when any prior job title shares a significant
// word with the posting's title.
func workHistoryBonus(job ActiveJob, p *CandidateProfile) float64 {
	titleWords := significantWords(job.Title)
	for _, we := range p.WorkExperience {
		for w := range significantWords(we.Title) {
			if titleWords[w] {
				return 2
			}
		}
	}
	return 0
}
