package sheet

import (
	"time"

	"github.com/arthur-debert/probsheet/types"
)

// DefaultTitle is the display name of a freshly seeded sheet
const DefaultTitle = "SDE Preparation Sheet"

// DefaultSheet returns the built-in hierarchy used when nothing has been
// persisted yet. Every call returns an independent value.
func DefaultSheet(now time.Time) types.Sheet {
	return types.Sheet{
		Title:       DefaultTitle,
		LastUpdated: now,
		Topics: []types.Topic{
			{
				ID:    "t1",
				Title: "Arrays & Hashing",
				Sections: []types.Section{
					{
						ID:    "st1",
						Title: "Easy Basics",
						Problems: []types.Problem{
							{ID: "q1", Title: "Two Sum", URL: "https://leetcode.com/problems/two-sum/", Difficulty: types.Easy, Completed: true},
							{ID: "q2", Title: "Contains Duplicate", URL: "https://leetcode.com/problems/contains-duplicate/", Difficulty: types.Easy},
						},
					},
				},
			},
			{
				ID:    "t2",
				Title: "Two Pointers",
				Sections: []types.Section{
					{
						ID:    "st2",
						Title: "Middle Level",
						Problems: []types.Problem{
							{ID: "q3", Title: "3Sum", URL: "https://leetcode.com/problems/3sum/", Difficulty: types.Medium},
						},
					},
				},
			},
		},
	}
}
