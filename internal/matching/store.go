package matching

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// replaceJobMatches atomically replaces the persisted match set for a job
// with the newly ranked set: one transaction holding a per-job advisory
// lock, a wholesale DELETE, then a single bulk COPY of the new rows.
//
// Concurrent recalculations of the same job serialize on the advisory lock
// (released automatically at commit/rollback); concurrent readers see
// either the old set or the new set, never a partial replace.
func replaceJobMatches(ctx context.Context, pool *pgxpool.Pool, jobID string, ranked []RankedCandidate) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`, jobID,
	); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM job_matches WHERE job_id = $1`, jobID,
	); err != nil {
		return fmt.Errorf("delete prior matches: %w", err)
	}

	if len(ranked) > 0 {
		rows := make([][]any, 0, len(ranked))
		for _, c := range ranked {
			breakdown, err := json.Marshal(c.Breakdown)
			if err != nil {
				return fmt.Errorf("marshal breakdown for user %s: %w", c.UserID, err)
			}
			rows = append(rows, []any{
				uuid.NewString(), jobID, c.UserID,
				c.OverallScore, c.Rank, breakdown, string(StatusMatched),
			})
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"job_matches"},
			[]string{"id", "job_id", "user_id", "overall_score", "rank", "skill_breakdown", "status"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("bulk insert matches: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
