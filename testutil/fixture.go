package testutil

import (
	"time"

	"github.com/arthur-debert/probsheet/types"
)

// Epoch is the timestamp fixtures are stamped with
var Epoch = time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)

// Universe returns a sheet with three topics and five problems, two of them
// completed:
//
//	graphs (Graphs)
//	  bfs (Breadth First)
//	    g1 Number of Islands      Medium  done
//	    g2 Rotting Oranges        Medium
//	  dfs (Depth First)
//	    g3 Clone Graph            Medium
//	dp (Dynamic Programming)
//	  dp1d (1-D)
//	    d1 Climbing Stairs        Easy    done
//	    d2 House Robber           Medium  notes
//	empty (Empty Topic)
func Universe() types.Sheet {
	return types.Sheet{
		Title:       "Fixture Sheet",
		LastUpdated: Epoch,
		Topics: []types.Topic{
			{
				ID:    "graphs",
				Title: "Graphs",
				Sections: []types.Section{
					{
						ID:    "bfs",
						Title: "Breadth First",
						Problems: []types.Problem{
							{ID: "g1", Title: "Number of Islands", URL: "https://leetcode.com/problems/number-of-islands/", Difficulty: types.Medium, Completed: true},
							{ID: "g2", Title: "Rotting Oranges", URL: "https://leetcode.com/problems/rotting-oranges/", Difficulty: types.Medium},
						},
					},
					{
						ID:    "dfs",
						Title: "Depth First",
						Problems: []types.Problem{
							{ID: "g3", Title: "Clone Graph", URL: "https://leetcode.com/problems/clone-graph/", Difficulty: types.Medium},
						},
					},
				},
			},
			{
				ID:    "dp",
				Title: "Dynamic Programming",
				Sections: []types.Section{
					{
						ID:    "dp1d",
						Title: "1-D",
						Problems: []types.Problem{
							{ID: "d1", Title: "Climbing Stairs", URL: "https://leetcode.com/problems/climbing-stairs/", Difficulty: types.Easy, Completed: true},
							{ID: "d2", Title: "House Robber", URL: "https://leetcode.com/problems/house-robber/", Difficulty: types.Medium, Notes: "dp[i] = max(dp[i-1], dp[i-2]+nums[i])"},
						},
					},
				},
			},
			{
				ID:       "empty",
				Title:    "Empty Topic",
				Sections: []types.Section{},
			},
		},
	}
}

// TopicIDs returns the topic ids of a sheet in order
func TopicIDs(s types.Sheet) []string {
	ids := make([]string, len(s.Topics))
	for i, t := range s.Topics {
		ids[i] = t.ID
	}
	return ids
}

// ProblemTitles returns the problem titles of one section in order
func ProblemTitles(sec types.Section) []string {
	titles := make([]string, len(sec.Problems))
	for i, p := range sec.Problems {
		titles[i] = p.Title
	}
	return titles
}

// AllIDs collects every topic, section and problem id in the sheet
func AllIDs(s types.Sheet) []string {
	var ids []string
	for _, t := range s.Topics {
		ids = append(ids, t.ID)
		for _, sec := range t.Sections {
			ids = append(ids, sec.ID)
			for _, p := range sec.Problems {
				ids = append(ids, p.ID)
			}
		}
	}
	return ids
}
