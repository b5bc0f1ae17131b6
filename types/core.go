package types

import "time"

// Difficulty is the label attached to a problem
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the valid difficulty labels in display order
var Difficulties = []Difficulty{Easy, Medium, Hard}

// Valid reports whether d is one of the known labels
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Problem is a single practice item inside a section
type Problem struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	URL        string     `json:"url" yaml:"url"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Completed  bool       `json:"completed" yaml:"completed"`
	Notes      string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Section groups problems inside a topic
type Section struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Problems []Problem `json:"problems" yaml:"problems"`
}

// Topic is the outermost level of the hierarchy
type Topic struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Sheet is the root of the hierarchy
type Sheet struct {
	Title       string    `json:"title" yaml:"title"`
	LastUpdated time.Time `json:"lastUpdated" yaml:"lastUpdated"`
	Topics      []Topic   `json:"topics" yaml:"topics"`
}

// ProblemFields carries the user supplied fields of a new problem.
// ID and Completed are assigned by the store.
type ProblemFields struct {
	Title      string
	URL        string
	Difficulty Difficulty
	Notes      string
}

// ProblemPatch specifies fields to update on a problem.
// Nil fields are left untouched.
type ProblemPatch struct {
	Title      *string
	URL        *string
	Difficulty *Difficulty
	Completed  *bool
	Notes      *string
}

// IsEmpty reports whether the patch changes nothing
func (p ProblemPatch) IsEmpty() bool {
	return p.Title == nil && p.URL == nil && p.Difficulty == nil && p.Completed == nil && p.Notes == nil
}

// Apply returns a copy of problem with the patch merged in
func (p ProblemPatch) Apply(problem Problem) Problem {
	if p.Title != nil {
		problem.Title = *p.Title
	}
	if p.URL != nil {
		problem.URL = *p.URL
	}
	if p.Difficulty != nil {
		problem.Difficulty = *p.Difficulty
	}
	if p.Completed != nil {
		problem.Completed = *p.Completed
	}
	if p.Notes != nil {
		problem.Notes = *p.Notes
	}
	return problem
}

// Stats summarizes completion over a set of problems
type Stats struct {
	Total      int `json:"total" yaml:"total"`
	Completed  int `json:"completed" yaml:"completed"`
	Percentage int `json:"percentage" yaml:"percentage"`
}

// Clone returns a deep copy of the sheet. Snapshots handed out by the store
// are clones so callers can never write through to the stored value.
func (s Sheet) Clone() Sheet {
	out := s
	if s.Topics == nil {
		return out
	}
	out.Topics = make([]Topic, len(s.Topics))
	for i, t := range s.Topics {
		out.Topics[i] = t.Clone()
	}
	return out
}

// Clone returns a deep copy of the topic
func (t Topic) Clone() Topic {
	out := t
	if t.Sections == nil {
		return out
	}
	out.Sections = make([]Section, len(t.Sections))
	for i, sec := range t.Sections {
		out.Sections[i] = sec.Clone()
	}
	return out
}

// Clone returns a deep copy of the section
func (s Section) Clone() Section {
	out := s
	if s.Problems != nil {
		out.Problems = make([]Problem, len(s.Problems))
		copy(out.Problems, s.Problems)
	}
	return out
}

// FindTopic returns the index of the topic with the given id, or -1
func (s Sheet) FindTopic(id string) int {
	for i, t := range s.Topics {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// FindSection returns the index of the section with the given id, or -1
func (t Topic) FindSection(id string) int {
	for i, sec := range t.Sections {
		if sec.ID == id {
			return i
		}
	}
	return -1
}

// FindProblem returns the index of the problem with the given id, or -1
func (s Section) FindProblem(id string) int {
	for i, p := range s.Problems {
		if p.ID == id {
			return i
		}
	}
	return -1
}
