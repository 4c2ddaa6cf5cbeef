package matching

import "fmt"

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrJobNotFound is returned when a job is missing or does not belong to
// the caller. Ownership failures are reported identically so existence
// is not leaked.
var ErrJobNotFound = fmt.Errorf("job not found")

// ErrMatchNotFound is returned when a match is missing or its job does not
// belong to the caller.
var ErrMatchNotFound = fmt.Errorf("match not found")

// ErrNoSkillsConfigured is returned when strict matching is requested for a
// job with zero skill requirements.
var ErrNoSkillsConfigured = fmt.Errorf("job has no skill requirements configured")

// ErrNoRequiredSkills is returned when none of a job's requirements is
// marked required. Strict matching needs at least one required skill.
var ErrNoRequiredSkills = fmt.Errorf("job has no required skills")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
