package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// loadQualifiedCandidateSkills returns, for every candidate holding a valid
// (non-expired) score for each skill in requiredIDs, that candidate's scores
// across all of skillIDs. Set-intersection semantics via exact count match:
// a candidate with 2 of 3 required skills is excluded entirely.
func loadQualifiedCandidateSkills(
	ctx context.Context,
	pool *pgxpool.Pool,
	skillIDs, requiredIDs []string,
) (map[string]SkillScores, error) {
	rows, err := pool.Query(ctx,
		`WITH eligible AS (
		   SELECT user_id
		   FROM candidate_skills
		   WHERE skill_id = ANY($2) AND expires_at > NOW()
		   GROUP BY user_id
		   HAVING COUNT(DISTINCT skill_id) = $3
		 )
		 SELECT cs.user_id, cs.skill_id, cs.score
		 FROM candidate_skills cs
		 JOIN eligible e ON e.user_id = cs.user_id
		 WHERE cs.skill_id = ANY($1) AND cs.expires_at > NOW()
		 ORDER BY cs.user_id`,
		skillIDs, requiredIDs, len(requiredIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("loadQualifiedCandidateSkills query: %w", err)
	}
	defer rows.Close()

	byUser := make(map[string]SkillScores)
	for rows.Next() {
		var userID, skillID string
		var score float64
		if err := rows.Scan(&userID, &skillID, &score); err != nil {
			return nil, fmt.Errorf("loadQualifiedCandidateSkills scan: %w", err)
		}
		if byUser[userID] == nil {
			byUser[userID] = make(SkillScores)
		}
		byUser[userID][skillID] = score
	}
	return byUser, rows.Err()
}

// loadCandidateSkills returns one candidate's full valid skill map,
// memoized by the caller for the duration of a browse request.
func loadCandidateSkills(ctx context.Context, pool *pgxpool.Pool, userID string) (SkillScores, error) {
	rows, err := pool.Query(ctx,
		`SELECT skill_id, score
		 FROM candidate_skills
		 WHERE user_id = $1 AND expires_at > NOW()`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("loadCandidateSkills query: %w", err)
	}
	defer rows.Close()

	skills := make(SkillScores)
	for rows.Next() {
		var skillID string
		var score float64
		if err := rows.Scan(&skillID, &score); err != nil {
			return nil, fmt.Errorf("loadCandidateSkills scan: %w", err)
		}
		skills[skillID] = score
	}
	return skills, rows.Err()
}

// loadCandidateProfile fetches the profile attributes the browse scorer's
// bonus terms read. A missing profile is not an error: bonuses simply
// contribute zero, so (nil, nil) is a valid return.
func loadCandidateProfile(ctx context.Context, pool *pgxpool.Pool, userID string) (*CandidateProfile, error) {
	var (
		p        CandidateProfile
		eduRaw   []byte
		workRaw  []byte
		remote   string
		relocate bool
	)
	err := pool.QueryRow(ctx,
		`SELECT user_id, COALESCE(years_experience, 0),
		        COALESCE(city, ''), COALESCE(state, ''),
		        COALESCE(remote_preference::text, 'ANY'),
		        COALESCE(willing_to_relocate, false),
		        COALESCE(education, '[]'::jsonb),
		        COALESCE(work_experience, '[]'::jsonb)
		 FROM candidate_profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.YearsExperience, &p.City, &p.State, &remote, &relocate, &eduRaw, &workRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // no profile row: bonuses degrade to zero
	}
	if err != nil {
		return nil, fmt.Errorf("loadCandidateProfile: %w", err)
	}

	p.RemotePreference = RemotePreference(remote)
	p.WillingToRelocate = relocate
	if err := json.Unmarshal(eduRaw, &p.Education); err != nil {
		p.Education = nil
	}
	if err := json.Unmarshal(workRaw, &p.WorkExperience); err != nil {
		p.WorkExperience = nil
	}
	return &p, nil
}
