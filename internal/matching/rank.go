package matching

import (
	"sort"

	"careernest/internal/models"
)

// Relevance weights for the second-stage rerank of an over-fetched window.
const (
	scoreShare       = 0.7
	applicationShare = 0.3
)

// RelevanceKey is the secondary sort key combining computed match score
// with posting popularity.
func RelevanceKey(score, applicationCount int) float64 {
	return float64(score)*scoreShare + float64(applicationCount)*applicationShare
}

// RankForSeeker scores every job in the window against the seeker and
// re-sorts the whole window by non-increasing relevance key. Ties keep the
// incoming (recency) order so ranking stays deterministic.
func RankForSeeker(seeker *models.Seeker, window []*models.JobWithCompany) {
	for _, job := range window {
		job.MatchScore = Score(seeker, job)
	}
	sort.SliceStable(window, func(i, j int) bool {
		ki := RelevanceKey(window[i].MatchScore, window[i].ApplicationCount)
		kj := RelevanceKey(window[j].MatchScore, window[j].ApplicationCount)
		return ki > kj
	})
}
