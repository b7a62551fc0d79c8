package services

import (
	"sort"
	"strings"

	"github.com/devmatch/devmatch-backend/internal/models"
)

type SortOrder string

const (
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortBudgetHigh SortOrder = "budget_high"
	SortBudgetLow  SortOrder = "budget_low"
)

// JobQuery is what the listing surface sends when the user types a search
// term, picks a skill or changes the sort order.
type JobQuery struct {
	SearchTerm  string
	SkillFilter string
	SortOrder   SortOrder
}

// FilterAndSortJobs is a pure function of (jobs, query). It never mutates the
// input slice and the sort is stable, so jobs with equal keys keep their
// relative order and re-applying the same query is a no-op.
func FilterAndSortJobs(jobs []models.Job, q JobQuery) []models.Job {
	result := make([]models.Job, 0, len(jobs))

	term := strings.ToLower(strings.TrimSpace(q.SearchTerm))
	for _, job := range jobs {
		if term != "" &&
			!strings.Contains(strings.ToLower(job.Title), term) &&
			!strings.Contains(strings.ToLower(job.Description), term) {
			continue
		}
		if q.SkillFilter != "" && !hasSkill(job.RequiredSkills, q.SkillFilter) {
			continue
		}
		result = append(result, job)
	}

	sort.SliceStable(result, func(i, k int) bool {
		a, b := result[i], result[k]
		switch q.SortOrder {
		case SortNewest, "":
			return a.CreatedAt.After(b.CreatedAt)
		case SortOldest:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortBudgetHigh:
			return a.Budget > b.Budget
		default: // budget_low
			return a.Budget < b.Budget
		}
	})
	return result
}

func hasSkill(skills []string, want string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

// UniqueSortedSkills returns the union of required skills across the given
// jobs, deduplicated and sorted. It feeds the skill-filter dropdown.
func UniqueSortedSkills(jobs []models.Job) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, job := range jobs {
		for _, skill := range job.RequiredSkills {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
		}
	}
	sort.Strings(out)
	return out
}
