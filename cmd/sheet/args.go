package main

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/probsheet/internal/validation"
	"github.com/arthur-debert/probsheet/types"
)

// parsePositions turns two 1-based position arguments into 0-based indices
// checked against a collection of size n
func parsePositions(from, to string, n int) (int, int, error) {
	i, err := parsePosition(from, n)
	if err != nil {
		return 0, 0, err
	}
	j, err := parsePosition(to, n)
	if err != nil {
		return 0, 0, err
	}
	return i, j, nil
}

func parsePosition(arg string, n int) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("position %q is not a number", arg)
	}
	if err := validation.Index(pos-1, n); err != nil {
		if n == 0 {
			return 0, fmt.Errorf("nothing to move: %w", err)
		}
		return 0, fmt.Errorf("position %d out of range (1-%d)", pos, n)
	}
	return pos - 1, nil
}

// sectionCount returns the number of sections in a topic, or -1 when the
// topic does not exist
func sectionCount(s types.Sheet, topicID string) int {
	ti := s.FindTopic(topicID)
	if ti < 0 {
		return -1
	}
	return len(s.Topics[ti].Sections)
}

// problemCount returns the number of problems in a section, or -1 when the
// path does not resolve
func problemCount(s types.Sheet, topicID, sectionID string) int {
	ti := s.FindTopic(topicID)
	if ti < 0 {
		return -1
	}
	si := s.Topics[ti].FindSection(sectionID)
	if si < 0 {
		return -1
	}
	return len(s.Topics[ti].Sections[si].Problems)
}
