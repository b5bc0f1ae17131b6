package sheet

import (
	"math"
	"strings"

	"github.com/arthur-debert/probsheet/types"
)

// ComputeStats counts problems across the whole sheet
func ComputeStats(s types.Sheet) types.Stats {
	var total, completed int
	for _, t := range s.Topics {
		st := TopicStats(t)
		total += st.Total
		completed += st.Completed
	}
	return newStats(total, completed)
}

// TopicStats counts problems under one topic
func TopicStats(t types.Topic) types.Stats {
	var total, completed int
	for _, sec := range t.Sections {
		st := SectionStats(sec)
		total += st.Total
		completed += st.Completed
	}
	return newStats(total, completed)
}

// SectionStats counts problems in one section
func SectionStats(sec types.Section) types.Stats {
	completed := 0
	for _, p := range sec.Problems {
		if p.Completed {
			completed++
		}
	}
	return newStats(len(sec.Problems), completed)
}

// newStats derives the percentage; an empty set is 0%
func newStats(total, completed int) types.Stats {
	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(completed) / float64(total)))
	}
	return types.Stats{Total: total, Completed: completed, Percentage: pct}
}

// Filter returns the part of the sheet matching a search query. Matching is a
// case-insensitive substring test. A problem survives when its title matches;
// a section survives when it keeps a problem or its own title matches; a topic
// survives when it keeps a section or its own title matches. Sections kept by
// their own title still only list the matching problems.
func Filter(s types.Sheet, query string) types.Sheet {
	if query == "" {
		return s
	}
	q := strings.ToLower(query)
	matches := func(title string) bool {
		return strings.Contains(strings.ToLower(title), q)
	}

	out := s
	out.Topics = []types.Topic{}
	for _, t := range s.Topics {
		sections := []types.Section{}
		for _, sec := range t.Sections {
			problems := []types.Problem{}
			for _, p := range sec.Problems {
				if matches(p.Title) {
					problems = append(problems, p)
				}
			}
			if len(problems) > 0 || matches(sec.Title) {
				sec.Problems = problems
				sections = append(sections, sec)
			}
		}
		if len(sections) > 0 || matches(t.Title) {
			t.Sections = sections
			out.Topics = append(out.Topics, t)
		}
	}
	return out
}
