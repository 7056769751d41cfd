package workflow

import (
	"strconv"
	"strings"
)

// ParsePhases parses a comma-separated list of name:minutes pairs such as
// "Work:25,Break:5". Empty segments are rejected.
func ParsePhases(s string) ([]Phase, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrNoPhases
	}

	var phases []Phase

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, ErrInvalidPhaseFormat.Fmt(s)
		}

		fields := strings.Split(part, ":")
		if len(fields) != 2 {
			return nil, ErrInvalidPhaseFormat.Fmt(part)
		}

		name := strings.TrimSpace(fields[0])
		if name == "" {
			return nil, ErrInvalidPhaseFormat.Fmt(part)
		}

		raw := strings.TrimSpace(fields[1])

		minutes, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || minutes == 0 {
			return nil, ErrInvalidDuration.Fmt(raw)
		}

		phases = append(phases, NewPhase(name, uint32(minutes), PhaseOptions{}))
	}

	return phases, nil
}
