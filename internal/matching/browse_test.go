package matching_test

import (
	"testing"

	"jobmate/matching-service/internal/matching"
)

// ── Skill score and qualification cap ──────────────────────────────────────

// Canonical relaxed example: one required Skill X (min 70) the candidate lacks,
// one optional Skill Y (weight 100) scored 90. Base skill score 90 is capped
// at 0×50+25 = 25; no bonuses apply.
func TestEvaluateRelaxed_MissingRequiredCapsAt25(t *testing.T) {
	job := matching.ActiveJob{
		ID:    "job1",
		Title: "Data Engineer",
		Requirements: []matching.SkillRequirement{
			{SkillID: "x", SkillName: "Skill X", Weight: 60, MinimumScore: 70, Required: true},
			{SkillID: "y", SkillName: "Skill Y", Weight: 100, MinimumScore: 0, Required: false},
		},
	}

	res := matching.EvaluateRelaxed(job, matching.SkillScores{"y": 90}, nil)

	if res.OverallScore != 25 {
		t.Errorf("overall score = %v, want 25 (base 90 capped at 0×50+25)", res.OverallScore)
	}
	if res.IsFullyQualified {
		t.Error("IsFullyQualified must be false with 0 of 1 required skills met")
	}
	if res.RequiredSkillsMet != 0 || res.TotalRequiredSkills != 1 {
		t.Errorf("required met = %d/%d, want 0/1", res.RequiredSkillsMet, res.TotalRequiredSkills)
	}
}

func TestEvaluateRelaxed_HalfRequiredMetCapsAt50(t *testing.T) {
	job := matching.ActiveJob{
		ID: "job1",
		Requirements: []matching.SkillRequirement{
			{SkillID: "a", Weight: 50, MinimumScore: 50, Required: true},
			{SkillID: "b", Weight: 50, MinimumScore: 50, Required: true},
		},
	}

	// Holds only skill a, well above minimum: base = 95, cap = 0.5×50+25 = 50.
	res := matching.EvaluateRelaxed(job, matching.SkillScores{"a": 95}, nil)

	if res.OverallScore != 50 {
		t.Errorf("overall score = %v, want 50", res.OverallScore)
	}
	if res.RequiredSkillsMet != 1 || res.TotalRequiredSkills != 2 {
		t.Errorf("required met = %d/%d, want 1/2", res.RequiredSkillsMet, res.TotalRequiredSkills)
	}
}

func TestEvaluateRelaxed_AllRequiredMetRemovesCap(t *testing.T) {
	job := matching.ActiveJob{
		ID: "job1",
		Requirements: []matching.SkillRequirement{
			{SkillID: "a", Weight: 50, MinimumScore: 50, Required: true},
			{SkillID: "b", Weight: 50, MinimumScore: 50, Required: true},
		},
	}

	res := matching.EvaluateRelaxed(job, matching.SkillScores{"a": 90, "b": 80}, nil)

	if want := 85.0; res.OverallScore != want {
		t.Errorf("overall score = %v, want %v (uncapped weighted average)", res.OverallScore, want)
	}
	if !res.IsFullyQualified {
		t.Error("IsFullyQualified must be true with every required skill met")
	}
}

// Held skills below their minimum count toward the average but not toward
// requiredSkillsMet — the breakdown carries the MeetsThreshold flag.
func TestEvaluateRelaxed_HeldBelowMinimumNotMet(t *testing.T) {
	job := matching.ActiveJob{
		ID: "job1",
		Requirements: []matching.SkillRequirement{
			{SkillID: "a", Weight: 100, MinimumScore: 70, Required: true},
		},
	}

	res := matching.EvaluateRelaxed(job, matching.SkillScores{"a": 40}, nil)

	if res.RequiredSkillsMet != 0 {
		t.Errorf("requiredSkillsMet = %d, want 0 (score below minimum)", res.RequiredSkillsMet)
	}
	// Base 40 capped at 25.
	if res.OverallScore != 25 {
		t.Errorf("overall score = %v, want 25", res.OverallScore)
	}
	if len(res.SkillBreakdown) != 1 || res.SkillBreakdown[0].MeetsThreshold {
		t.Errorf("breakdown = %+v, want one entry with MeetsThreshold=false", res.SkillBreakdown)
	}
}

func TestEvaluateRelaxed_NoOverlapScoresZero(t *testing.T) {
	job := matching.ActiveJob{
		ID: "job1",
		Requirements: []matching.SkillRequirement{
			{SkillID: "a", Weight: 100, MinimumScore: 50, Required: true},
		},
	}

	res := matching.EvaluateRelaxed(job, matching.SkillScores{"unrelated": 99}, nil)

	if res.OverallScore != 0 {
		t.Errorf("overall score = %v, want 0 with no skill overlap", res.OverallScore)
	}
	if res.IsFullyQualified {
		t.Error("no overlap must not be fully qualified")
	}
}

func TestEvaluateRelaxed_NoRequirementsNotFullyQualified(t *testing.T) {
	res := matching.EvaluateRelaxed(matching.ActiveJob{ID: "job1"}, matching.SkillScores{"a": 90}, nil)
	if res.IsFullyQualified {
		t.Error("a job with zero required skills must not report fully qualified")
	}
	if res.OverallScore != 0 {
		t.Errorf("overall score = %v, want 0", res.OverallScore)
	}
}

// ── Bonus terms ────────────────────────────────────────────────────────────
//
// Jobs with no skill requirements isolate the bonus terms: the skill score
// is 0, so the overall score equals the bonus sum.

func bonusOnly(job matching.ActiveJob, p *matching.CandidateProfile) float64 {
	return matching.EvaluateRelaxed(job, matching.SkillScores{"held": 1}, p).OverallScore
}

func TestEvaluateRelaxed_ExperienceBonus(t *testing.T) {
	job := matching.ActiveJob{ID: "j", ExperienceLevel: matching.LevelSenior}

	cases := []struct {
		years int
		want  float64
	}{
		{7, 5},  // inside the 5-10 senior band
		{4, 2},  // within two years of the band
		{11, 2}, // just past the band
		{0, 0},  // nowhere near
	}
	for _, c := range cases {
		p := &matching.CandidateProfile{YearsExperience: c.years}
		if got := bonusOnly(job, p); got != c.want {
			t.Errorf("years=%d: bonus = %v, want %v", c.years, got, c.want)
		}
	}
}

func TestEvaluateRelaxed_LocationBonusOnSite(t *testing.T) {
	job := matching.ActiveJob{
		ID: "j", RemotePolicy: matching.RemoteOnSite,
		City: "Austin", State: "TX",
	}

	cases := []struct {
		name string
		p    matching.CandidateProfile
		want float64
	}{
		{"same city", matching.CandidateProfile{City: "Austin", State: "TX"}, 5},
		{"same state, willing", matching.CandidateProfile{City: "Dallas", State: "TX", WillingToRelocate: true}, 3},
		{"same state only", matching.CandidateProfile{City: "Dallas", State: "TX"}, 1},
		{"different state, willing", matching.CandidateProfile{City: "Denver", State: "CO", WillingToRelocate: true}, 2},
		{"different state", matching.CandidateProfile{City: "Denver", State: "CO"}, 0},
	}
	for _, c := range cases {
		if got := bonusOnly(job, &c.p); got != c.want {
			t.Errorf("%s: bonus = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestEvaluateRelaxed_LocationBonusRemoteJob(t *testing.T) {
	job := matching.ActiveJob{ID: "j", RemotePolicy: matching.RemoteOnly}

	cases := []struct {
		pref matching.RemotePreference
		want float64
	}{
		{matching.RemoteOnly, 5},
		{matching.RemoteAny, 5},
		{matching.RemoteHybrid, 2},
		{matching.RemoteOnSite, 0},
	}
	for _, c := range cases {
		p := &matching.CandidateProfile{RemotePreference: c.pref}
		if got := bonusOnly(job, p); got != c.want {
			t.Errorf("preference %s: bonus = %v, want %v", c.pref, got, c.want)
		}
	}
}

func TestEvaluateRelaxed_EducationBonus(t *testing.T) {
	job := matching.ActiveJob{
		ID:          "j",
		Title:       "Software Engineer",
		Description: "Design and build computer systems at scale.",
	}

	fieldMatch := &matching.CandidateProfile{
		Education: []matching.Education{{Degree: "BSc", FieldOfStudy: "Computer Science"}},
	}
	if got := bonusOnly(job, fieldMatch); got != 3 {
		t.Errorf("field-of-study match: bonus = %v, want 3", got)
	}

	anyDegree := &matching.CandidateProfile{
		Education: []matching.Education{{Degree: "BA", FieldOfStudy: "History"}},
	}
	if got := bonusOnly(job, anyDegree); got != 1 {
		t.Errorf("unrelated degree: bonus = %v, want 1", got)
	}

	noDegree := &matching.CandidateProfile{}
	if got := bonusOnly(job, noDegree); got != 0 {
		t.Errorf("no education: bonus = %v, want 0", got)
	}
}

func TestEvaluateRelaxed_WorkHistoryBonus(t *testing.T) {
	job := matching.ActiveJob{ID: "j", Title: "Senior Software Engineer"}

	overlap := &matching.CandidateProfile{
		WorkExperience: []matching.WorkExperience{{Title: "Software Developer", Company: "Acme"}},
	}
	if got := bonusOnly(job, overlap); got != 2 {
		t.Errorf("shared title word: bonus = %v, want 2", got)
	}

	// "Senior" alone is a noise word and must not trigger the bonus.
	noise := &matching.CandidateProfile{
		WorkExperience: []matching.WorkExperience{{Title: "Senior Accountant", Company: "Acme"}},
	}
	if got := bonusOnly(job, noise); got != 0 {
		t.Errorf("noise-word-only overlap: bonus = %v, want 0", got)
	}

	none := &matching.CandidateProfile{
		WorkExperience: []matching.WorkExperience{{Title: "Chef", Company: "Bistro"}},
	}
	if got := bonusOnly(job, none); got != 0 {
		t.Errorf("no overlap: bonus = %v, want 0", got)
	}
}

// ── Clamping and nil safety ────────────────────────────────────────────────

func TestEvaluateRelaxed_ClampsAt100(t *testing.T) {
	job := matching.ActiveJob{
		ID: "j", Title: "Go Engineer",
		ExperienceLevel: matching.LevelMid,
		RemotePolicy:    matching.RemoteOnly,
		Requirements: []matching.SkillRequirement{
			{SkillID: "go", Weight: 100, MinimumScore: 50, Required: true},
		},
	}
	p := &matching.CandidateProfile{
		YearsExperience:  3,
		RemotePreference: matching.RemoteOnly,
		Education:        []matching.Education{{Degree: "BSc", FieldOfStudy: "Engineering"}},
		WorkExperience:   []matching.WorkExperience{{Title: "Go Engineer"}},
	}

	res := matching.EvaluateRelaxed(job, matching.SkillScores{"go": 100}, p)

	if res.OverallScore != 100 {
		t.Errorf("overall score = %v, want clamp at 100", res.OverallScore)
	}
}

// A nil profile must degrade every bonus to zero, never panic.
func TestEvaluateRelaxed_NilProfile(t *testing.T) {
	job := matching.ActiveJob{
		ID: "j", ExperienceLevel: matching.LevelSenior, RemotePolicy: matching.RemoteOnly,
		Requirements: []matching.SkillRequirement{
			{SkillID: "a", Weight: 100, MinimumScore: 50, Required: true},
		},
	}
	res := matching.EvaluateRelaxed(job, matching.SkillScores{"a": 80}, nil)
	if res.OverallScore != 80 {
		t.Errorf("overall score = %v, want 80 (skill score only)", res.OverallScore)
	}
}
