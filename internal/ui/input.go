package ui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidMinutes = errors.New("enter a positive whole number of minutes")

// maxMinutes keeps minutes*60 inside the range every platform's shutdown
// command accepts (Windows caps /t at ten years).
const maxMinutes = 10 * 365 * 24 * 60

// ParseMinutes validates the custom-minutes field.
func ParseMinutes(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 || n > maxMinutes || n > math.MaxInt/60 {
		return 0, ErrInvalidMinutes
	}
	return n, nil
}

// ParsePresets reads a comma separated list of minutes, e.g. "5, 15, 45".
func ParsePresets(text string) ([]int, error) {
	var presets []int
	for _, field := range strings.Split(text, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		m, err := ParseMinutes(field)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", strings.TrimSpace(field), err)
		}
		presets = append(presets, m)
	}
	if len(presets) == 0 {
		return nil, ErrInvalidMinutes
	}
	return presets, nil
}

func formatPresets(presets []int) string {
	parts := make([]string, len(presets))
	for i, m := range presets {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ", ")
}

var errInvalidWarning = errors.New("warning must be a whole number of seconds, 0 to disable")
