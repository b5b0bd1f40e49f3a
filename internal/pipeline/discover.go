package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoFiles = errors.New("no subtitle files found")

// Discover expands a file pattern into subtitle paths. The pattern gets an
// .srt extension when it does not already end in one.
func Discover(pattern string) ([]string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrNoFiles)
	}
	if !strings.HasSuffix(strings.ToLower(pattern), ".srt") {
		pattern += ".srt"
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
	}

	sort.Strings(matches)
	return matches, nil
}

// DiscoverAll expands every pattern, dropping duplicates. Patterns that
// match nothing are returned separately.
func DiscoverAll(patterns []string) ([]string, []string, error) {
	var paths, unmatched []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := Discover(pattern)
		if errors.Is(err, ErrNoFiles) {
			unmatched = append(unmatched, pattern)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}
	return paths, unmatched, nil
}
