package port

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOutOfRange is returned for port numbers outside 1..65535.
var ErrOutOfRange = errors.New("port numbers must be in 1..65535")

// ParsePort parses a single decimal port number.
func ParsePort(s string) (uint16, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	if v < 1 || v > 65535 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
	}
	return uint16(v), nil
}

// ParseRange parses "N" or "A-B" into a Range.
//   - "22"      -> 22-22
//   - "20-25"   -> 20-25
//
// Reversed bounds are rejected rather than swapped.
func ParseRange(spec string) (Range, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Range{}, errors.New("empty port range")
	}
	if !strings.Contains(spec, "-") {
		p, err := ParsePort(spec)
		if err != nil {
			return Range{}, err
		}
		return Range{Start: p, End: p}, nil
	}
	bounds := strings.SplitN(spec, "-", 2)
	start, err := ParsePort(bounds[0])
	if err != nil {
		return Range{}, err
	}
	end, err := ParsePort(bounds[1])
	if err != nil {
		return Range{}, err
	}
	r := Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}
