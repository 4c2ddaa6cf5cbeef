// Match status state machine.
//
// Valid status graph:
//
//	MATCHED ──► VIEWED ──► CONTACTED ──► SHORTLISTED ──► HIRED
//	    │          │            │              │
//	    └──────────┴────────────┴──────────────┴──► REJECTED
//
// MATCHED may also jump straight to CONTACTED (an employer can reach out
// without opening the detail view). HIRED and REJECTED are terminal states.
// Status is mutated by employer triage only — recalculation replaces the
// whole match set and never replays statuses.
package matching

import "fmt"

// MatchStatus values mirror the match_status enum in PostgreSQL.
type MatchStatus string

const (
	StatusMatched     MatchStatus = "MATCHED"
	StatusViewed      MatchStatus = "VIEWED"
	StatusContacted   MatchStatus = "CONTACTED"
	StatusShortlisted MatchStatus = "SHORTLISTED"
	StatusHired       MatchStatus = "HIRED"
	StatusRejected    MatchStatus = "REJECTED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[MatchStatus][]MatchStatus{
	StatusMatched:     {StatusViewed, StatusContacted, StatusRejected},
	StatusViewed:      {StatusContacted, StatusRejected},
	StatusContacted:   {StatusShortlisted, StatusRejected},
	StatusShortlisted: {StatusHired, StatusRejected},
	// HIRED and REJECTED are terminal — no outgoing transitions
}

// ParseMatchStatus converts a raw string to a MatchStatus, returning an
// error for unknown values.
func ParseMatchStatus(s string) (MatchStatus, error) {
	st := MatchStatus(s)
	switch st {
	case StatusMatched, StatusViewed, StatusContacted, StatusShortlisted, StatusHired, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown match status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by
// the state machine.
func IsTransitionAllowed(from, to MatchStatus) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsContacted returns true when status is CONTACTED (stamps contacted_at).
func IsContacted(s MatchStatus) bool { return s == StatusContacted }
