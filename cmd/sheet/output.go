package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/probsheet/sheet"
	"github.com/arthur-debert/probsheet/types"
)

// Output formats accepted by --format on show and stats
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// OutputFormatter renders command results in the requested format
type OutputFormatter struct {
	format string
	w      io.Writer
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(format string, w io.Writer) (*OutputFormatter, error) {
	switch format {
	case formatText, formatJSON, formatYAML:
		return &OutputFormatter{format: format, w: w}, nil
	default:
		return nil, fmt.Errorf("invalid output format %q (use text, json or yaml)", format)
	}
}

// Structured writes data as JSON or YAML. It reports false for text output
// so the caller can render its own view.
func (of *OutputFormatter) Structured(data any) (bool, error) {
	switch of.format {
	case formatJSON:
		encoder := json.NewEncoder(of.w)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(data)
	case formatYAML:
		encoder := yaml.NewEncoder(of.w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return true, err
		}
		return true, encoder.Close()
	default:
		return false, nil
	}
}

// statsLine formats "3/5 (60%)"
func statsLine(st types.Stats) string {
	return fmt.Sprintf("%d/%d (%d%%)", st.Completed, st.Total, st.Percentage)
}

// writeSheet prints the sheet as an indented checklist. With details set,
// links and notes are printed under each problem.
func writeSheet(w io.Writer, s types.Sheet, details bool) {
	fmt.Fprintf(w, "%s  %s\n", s.Title, statsLine(sheet.ComputeStats(s)))
	if !s.LastUpdated.IsZero() {
		fmt.Fprintf(w, "Last updated %s\n", s.LastUpdated.Local().Format("2006-01-02 15:04"))
	}

	if len(s.Topics) == 0 {
		fmt.Fprintln(w, "\nNo topics.")
		return
	}

	for ti, t := range s.Topics {
		fmt.Fprintf(w, "\n%d. %s [%s]  %s\n", ti+1, t.Title, t.ID, statsLine(sheet.TopicStats(t)))
		for si, sec := range t.Sections {
			fmt.Fprintf(w, "   %d.%d %s [%s]  %s\n", ti+1, si+1, sec.Title, sec.ID, statsLine(sheet.SectionStats(sec)))
			for _, p := range sec.Problems {
				mark := " "
				if p.Completed {
					mark = "x"
				}
				fmt.Fprintf(w, "       [%s] %s (%s) [%s]\n", mark, p.Title, p.Difficulty, p.ID)
				if details {
					if p.URL != "" {
						fmt.Fprintf(w, "           %s\n", p.URL)
					}
					for _, line := range strings.Split(strings.TrimSpace(p.Notes), "\n") {
						if line != "" {
							fmt.Fprintf(w, "           > %s\n", line)
						}
					}
				}
			}
		}
	}
}

// topicStats is the structured form of the stats command
type topicStats struct {
	ID    string      `json:"id" yaml:"id"`
	Title string      `json:"title" yaml:"title"`
	Stats types.Stats `json:"stats" yaml:"stats"`
}

type sheetStats struct {
	Overall types.Stats  `json:"overall" yaml:"overall"`
	Topics  []topicStats `json:"topics" yaml:"topics"`
}

func collectStats(s types.Sheet) sheetStats {
	out := sheetStats{Overall: sheet.ComputeStats(s), Topics: make([]topicStats, 0, len(s.Topics))}
	for _, t := range s.Topics {
		out.Topics = append(out.Topics, topicStats{ID: t.ID, Title: t.Title, Stats: sheet.TopicStats(t)})
	}
	return out
}

func writeStats(w io.Writer, st sheetStats) {
	fmt.Fprintf(w, "Total problems: %d\n", st.Overall.Total)
	fmt.Fprintf(w, "Completed:      %d\n", st.Overall.Completed)
	fmt.Fprintf(w, "Progress:       %d%%\n", st.Overall.Percentage)

	if len(st.Topics) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, t := range st.Topics {
		fmt.Fprintf(w, "  %-30s %s\n", t.Title, statsLine(t.Stats))
	}
}
