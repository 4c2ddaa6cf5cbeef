package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// scoringConcurrency bounds the parallel per-candidate and per-job scoring
// fan-out inside one request.
const scoringConcurrency = 8

// topMatchesLimit caps the preview list returned by CalculateMatches.
const topMatchesLimit = 10

// Service encapsulates all matching business logic.
// It has no dependency on net/http — it can be used by any transport layer.
type Service struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client) *Service {
	return &Service{pool: pool, rdb: rdb}
}

// ─── Strict calculation ──────────────────────────────────────────────────────

// CalculateMatches runs the full strict pipeline for one job: load the skill
// configuration, index valid candidate scores, score each surviving
// candidate in parallel, rank, and atomically replace the persisted match
// set. On any failure the prior persisted matches survive untouched.
func (s *Service) CalculateMatches(ctx context.Context, jobID string) (*CalculationSummary, error) {
	reqs, err := loadJobRequirements(ctx, s.pool, jobID)
	if err != nil {
		return nil, err
	}

	byUser, err := loadQualifiedCandidateSkills(ctx, s.pool, skillIDs(reqs), requiredSkillIDs(reqs))
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}

	// Per-candidate scoring is independent; fan out with a bounded group.
	results := make([]*RankedCandidate, len(userIDs))
	var g errgroup.Group
	g.SetLimit(scoringConcurrency)
	for i, userID := range userIDs {
		i, userID := i, userID
		g.Go(func() error {
			score, breakdown, qualified := EvaluateStrict(reqs, byUser[userID])
			if qualified {
				results[i] = &RankedCandidate{
					UserID:       userID,
					OverallScore: score,
					Breakdown:    breakdown,
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	qualified := make([]RankedCandidate, 0, len(results))
	for _, r := range results {
		if r != nil {
			qualified = append(qualified, *r)
		}
	}
	ranked := RankCandidates(qualified)

	if err := replaceJobMatches(ctx, s.pool, jobID, ranked); err != nil {
		return nil, fmt.Errorf("replace matches for job %s: %w", jobID, err)
	}

	slog.Info("matches calculated", "jobId", jobID, "candidates", len(byUser), "matched", len(ranked))
	s.publish(ctx, "EVENT_MATCHES_CALCULATED", map[string]string{
		"type":         "EVENT_MATCHES_CALCULATED",
		"jobId":        jobID,
		"totalMatches": fmt.Sprintf("%d", len(ranked)),
	})

	top := ranked
	if len(top) > topMatchesLimit {
		top = top[:topMatchesLimit]
	}
	return &CalculationSummary{
		JobID:        jobID,
		TotalMatches: len(ranked),
		TopMatches:   top,
	}, nil
}

// GetRankedCandidates returns the persisted match set for a job owned by
// employerID, ordered by rank ascending. A job that is missing or belongs
// to another employer reports ErrJobNotFound either way.
func (s *Service) GetRankedCandidates(ctx context.Context, employerID, jobID string) ([]JobMatch, error) {
	var owned bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1 AND employer_id = $2)`,
		jobID, employerID,
	).Scan(&owned)
	if err != nil {
		return nil, fmt.Errorf("job ownership lookup: %w", err)
	}
	if !owned {
		return nil, ErrJobNotFound
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, job_id, user_id, overall_score, rank, skill_breakdown,
		        status, contacted_at, created_at, updated_at
		 FROM job_matches
		 WHERE job_id = $1
		 ORDER BY rank ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("getRankedCandidates query: %w", err)
	}
	defer rows.Close()

	matches := make([]JobMatch, 0)
	for rows.Next() {
		var m JobMatch
		if err := rows.Scan(
			&m.ID, &m.JobID, &m.UserID, &m.OverallScore, &m.Rank,
			&m.SkillBreakdown, &m.Status, &m.ContactedAt, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("getRankedCandidates scan: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ─── Relaxed browsing ────────────────────────────────────────────────────────

// BrowseJobsForCandidate scores every active job for one candidate with the
// relaxed, non-eliminating formula, ordered by score descending. Nothing is
// persisted. A candidate with zero valid skills gets an empty list plus a
// guidance message, never an error.
func (s *Service) BrowseJobsForCandidate(ctx context.Context, userID string) (*BrowseReport, error) {
	skills, err := loadCandidateSkills(ctx, s.pool, userID)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return &BrowseReport{
			Jobs:     []BrowseResult{},
			Guidance: "Complete skill assessments to see how you match open roles.",
		}, nil
	}

	profile, err := loadCandidateProfile(ctx, s.pool, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := loadActiveJobs(ctx, s.pool)
	if err != nil {
		return nil, err
	}

	results := make([]BrowseResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(scoringConcurrency)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = EvaluateRelaxed(job, skills, profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].OverallScore != results[j].OverallScore {
			return results[i].OverallScore > results[j].OverallScore
		}
		return results[i].JobID < results[j].JobID
	})
	return &BrowseReport{Jobs: results}, nil
}

// ─── Status transitions ──────────────────────────────────────────────────────

// UpdateMatchStatus transitions a match to a new status after validating the
// state machine. Pure state transition: scores and ranks are untouched.
// CONTACTED stamps contacted_at. Returns ErrMatchNotFound when the match is
// missing or its job does not belong to employerID.
func (s *Service) UpdateMatchStatus(ctx context.Context, employerID, matchID, newStatusStr string) (*JobMatch, error) {
	newStatus, err := ParseMatchStatus(newStatusStr)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	// Fetch current state (also validates ownership through the job)
	var currentStr string
	err = s.pool.QueryRow(ctx,
		`SELECT jm.status
		 FROM job_matches jm
		 JOIN jobs j ON j.id = jm.job_id
		 WHERE jm.id = $1 AND j.employer_id = $2`,
		matchID, employerID,
	).Scan(&currentStr)
	if err != nil {
		return nil, ErrMatchNotFound
	}

	current, _ := ParseMatchStatus(currentStr)
	if !IsTransitionAllowed(current, newStatus) {
		return nil, &ValidationError{
			Msg: fmt.Sprintf("transition %s → %s is not allowed", current, newStatus),
		}
	}

	var m JobMatch
	err = s.pool.QueryRow(ctx,
		`UPDATE job_matches
		 SET status       = $1::match_status,
		     contacted_at = CASE WHEN $2 THEN NOW() ELSE contacted_at END,
		     updated_at   = NOW()
		 WHERE id = $3
		 RETURNING id, job_id, user_id, overall_score, rank, skill_breakdown,
		           status, contacted_at, created_at, updated_at`,
		string(newStatus), IsContacted(newStatus), matchID,
	).Scan(
		&m.ID, &m.JobID, &m.UserID, &m.OverallScore, &m.Rank,
		&m.SkillBreakdown, &m.Status, &m.ContactedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("updateMatchStatus update: %w", err)
	}

	s.publish(ctx, "EVENT_MATCH_STATUS_CHANGED", map[string]string{
		"type":    "EVENT_MATCH_STATUS_CHANGED",
		"matchId": matchID,
		"jobId":   m.JobID,
		"userId":  m.UserID,
		"from":    string(current),
		"to":      string(newStatus),
	})
	return &m, nil
}

// ─── Scheduler support ───────────────────────────────────────────────────────

// ActiveJobIDsWithRequiredSkills lists jobs eligible for the periodic
// recalculation sweep: ACTIVE and carrying at least one required skill.
func (s *Service) ActiveJobIDsWithRequiredSkills(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT j.id
		 FROM jobs j
		 JOIN job_skill_requirements jsr ON jsr.job_id = j.id
		 WHERE j.status = 'ACTIVE' AND jsr.required = true
		 ORDER BY j.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("activeJobIDs query: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("activeJobIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// publish sends an event to Redis for Gateway SSE forward (non-fatal).
func (s *Service) publish(ctx context.Context, channel string, payload map[string]string) {
	event, _ := json.Marshal(payload)
	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.rdb.Publish(pubCtx, channel, event).Err(); err != nil {
		slog.Warn("publish failed", "channel", channel, "err", err)
	}
}
