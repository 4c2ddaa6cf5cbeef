package matching

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// loadJobRequirements fetches a job's skill configuration, verifying the job
// exists first. The fixed ordering (required first, then skill ID) is what
// strict evaluation walks, so breakdowns are deterministic.
//
// Preconditions surfaced to the caller: ErrJobNotFound, ErrNoSkillsConfigured,
// ErrNoRequiredSkills.
func loadJobRequirements(ctx context.Context, pool *pgxpool.Pool, jobID string) ([]SkillRequirement, error) {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, jobID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("job lookup: %w", err)
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	rows, err := pool.Query(ctx,
		`SELECT jsr.skill_id, s.name, jsr.weight, jsr.minimum_score, jsr.required
		 FROM job_skill_requirements jsr
		 JOIN skills s ON s.id = jsr.skill_id
		 WHERE jsr.job_id = $1
		 ORDER BY jsr.required DESC, jsr.skill_id`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("loadJobRequirements query: %w", err)
	}
	defer rows.Close()

	reqs := make([]SkillRequirement, 0)
	for rows.Next() {
		var r SkillRequirement
		if err := rows.Scan(&r.SkillID, &r.SkillName, &r.Weight, &r.MinimumScore, &r.Required); err != nil {
			return nil, fmt.Errorf("loadJobRequirements scan: %w", err)
		}
		reqs = append(reqs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(reqs) == 0 {
		return nil, ErrNoSkillsConfigured
	}
	if len(requiredSkillIDs(reqs)) == 0 {
		return nil, ErrNoRequiredSkills
	}

	return reqs, nil
}

// requiredSkillIDs extracts the IDs of the required-flagged requirements.
func requiredSkillIDs(reqs []SkillRequirement) []string {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r.Required {
			ids = append(ids, r.SkillID)
		}
	}
	return ids
}

// skillIDs extracts every requirement's skill ID, required or not.
func skillIDs(reqs []SkillRequirement) []string {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.SkillID)
	}
	return ids
}

// loadActiveJobs fetches every ACTIVE job together with its skill
// configuration. Jobs without any requirements are still returned: the
// browse scorer treats them as zero-overlap rather than erroring.
func loadActiveJobs(ctx context.Context, pool *pgxpool.Pool) ([]ActiveJob, error) {
	rows, err := pool.Query(ctx,
		`SELECT id, title, company, COALESCE(description, ''),
		        experience_level, remote_policy,
		        COALESCE(city, ''), COALESCE(state, '')
		 FROM jobs
		 WHERE status = 'ACTIVE'
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("loadActiveJobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]ActiveJob, 0)
	index := make(map[string]int)
	for rows.Next() {
		var j ActiveJob
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Description,
			&j.ExperienceLevel, &j.RemotePolicy, &j.City, &j.State,
		); err != nil {
			return nil, fmt.Errorf("loadActiveJobs scan: %w", err)
		}
		index[j.ID] = len(jobs)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return jobs, nil
	}

	reqRows, err := pool.Query(ctx,
		`SELECT jsr.job_id, jsr.skill_id, s.name, jsr.weight, jsr.minimum_score, jsr.required
		 FROM job_skill_requirements jsr
		 JOIN skills s ON s.id = jsr.skill_id
		 JOIN jobs j ON j.id = jsr.job_id
		 WHERE j.status = 'ACTIVE'
		 ORDER BY jsr.job_id, jsr.required DESC, jsr.skill_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("loadActiveJobs requirements query: %w", err)
	}
	defer reqRows.Close()

	for reqRows.Next() {
		var jobID string
		var r SkillRequirement
		if err := reqRows.Scan(&jobID, &r.SkillID, &r.SkillName, &r.Weight, &r.MinimumScore, &r.Required); err != nil {
			return nil, fmt.Errorf("loadActiveJobs requirements scan: %w", err)
		}
		if i, ok := index[jobID]; ok {
			jobs[i].Requirements = append(jobs[i].Requirements, r)
		}
	}
	return jobs, reqRows.Err()
}
