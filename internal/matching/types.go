// Package matching contains the pure business logic for the Matching service.
// It is transport-agnostic: the HTTP handlers (handler.go) and the cron
// scheduler both delegate to Service.
package matching

import (
	"encoding/json"
	"time"
)

// ─── Reference data ──────────────────────────────────────────────────────────

// SkillRequirement is one row of a job's skill configuration.
// Weight and MinimumScore are both on the 0-100 scale.
type SkillRequirement struct {
	SkillID      string  `json:"skillId"`
	SkillName    string  `json:"skillName"`
	Weight       float64 `json:"weight"`
	MinimumScore float64 `json:"minimumScore"`
	Required     bool    `json:"required"`
}

// SkillScores maps skill ID → current valid (non-expired) score for one
// candidate. Expired scores never appear here.
type SkillScores map[string]float64

// RemotePreference mirrors the remote_preference enum in PostgreSQL.
type RemotePreference string

const (
	RemoteAny    RemotePreference = "ANY"
	RemoteOnly   RemotePreference = "REMOTE"
	RemoteHybrid RemotePreference = "HYBRID"
	RemoteOnSite RemotePreference = "ON_SITE"
)

// ExperienceLevel mirrors the experience_level enum in PostgreSQL.
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "ENTRY"
	LevelMid    ExperienceLevel = "MID"
	LevelSenior ExperienceLevel = "SENIOR"
	LevelLead   ExperienceLevel = "LEAD"
)

// Education is one degree entry from a candidate profile (stored as JSONB).
type Education struct {
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
}

// WorkExperience is one prior position from a candidate profile (stored as JSONB).
type WorkExperience struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

// CandidateProfile carries the profile attributes the browse scorer's bonus
// terms read. The engine never writes profiles.
type CandidateProfile struct {
	UserID            string           `json:"userId"`
	YearsExperience   int              `json:"yearsExperience"`
	City              string           `json:"city"`
	State             string           `json:"state"`
	RemotePreference  RemotePreference `json:"remotePreference"`
	WillingToRelocate bool             `json:"willingToRelocate"`
	Education         []Education      `json:"education"`
	WorkExperience    []WorkExperience `json:"workExperience"`
}

// ActiveJob is an open posting together with its skill configuration,
// as consumed by the browse scorer.
type ActiveJob struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Company         string             `json:"company"`
	Description     string             `json:"description"`
	ExperienceLevel ExperienceLevel    `json:"experienceLevel"`
	RemotePolicy    RemotePreference   `json:"remotePolicy"`
	City            string             `json:"city"`
	State           string             `json:"state"`
	Requirements    []SkillRequirement `json:"requirements"`
}

// ─── Scoring output ──────────────────────────────────────────────────────────

// SkillBreakdownEntry is the per-skill evidence recorded alongside an
// overall score. Serialized verbatim into job_matches.skill_breakdown.
type SkillBreakdownEntry struct {
	SkillID        string  `json:"skillId"`
	SkillName      string  `json:"skillName"`
	Required       bool    `json:"required"`
	CandidateScore float64 `json:"candidateScore"`
	MinimumScore   float64 `json:"minimumScore"`
	Weight         float64 `json:"weight"`
	MeetsThreshold bool    `json:"meetsThreshold"`
}

// RankedCandidate is one qualified candidate in a job's strict ranking.
type RankedCandidate struct {
	UserID       string                `json:"userId"`
	OverallScore float64               `json:"overallScore"`
	Rank         int                   `json:"rank"`
	Breakdown    []SkillBreakdownEntry `json:"skillBreakdown"`
}

// CalculationSummary is returned by CalculateMatches.
type CalculationSummary struct {
	JobID        string            `json:"jobId"`
	TotalMatches int               `json:"totalMatches"`
	TopMatches   []RankedCandidate `json:"topMatches"`
}

// JobMatch is the JSON shape of a persisted match row returned to the
// Gateway / mobile+web clients.
type JobMatch struct {
	ID             string          `json:"id"`
	JobID          string          `json:"jobId"`
	UserID         string          `json:"userId"`
	OverallScore   float64         `json:"overallScore"`
	Rank           int             `json:"rank"`
	SkillBreakdown json.RawMessage `json:"skillBreakdown"`
	Status         string          `json:"status"`
	ContactedAt    *time.Time      `json:"contactedAt"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// BrowseResult is one job's compatibility summary for a browsing candidate.
// Ephemeral: recomputed on every browse request, never persisted.
type BrowseResult struct {
	JobID               string                `json:"jobId"`
	JobTitle            string                `json:"jobTitle"`
	Company             string                `json:"company"`
	OverallScore        float64               `json:"overallScore"`
	IsFullyQualified    bool                  `json:"isFullyQualified"`
	RequiredSkillsMet   int                   `json:"requiredSkillsMet"`
	TotalRequiredSkills int                   `json:"totalRequiredSkills"`
	SkillBreakdown      []SkillBreakdownEntry `json:"skillBreakdown"`
}

// BrowseReport wraps the full browse response. Guidance is set (and Jobs is
// empty) when the candidate has no valid skill scores yet.
type BrowseReport struct {
	Jobs     []BrowseResult `json:"jobs"`
	Guidance string         `json:"guidance,omitempty"`
}
