package matching

import (
	"math"
	"strconv"
	"strings"

	"careernest/internal/models"
)

// Component weights. Location splits its share evenly across the three
// normalized fields.
const (
	skillWeight      = 0.60
	experienceWeight = 0.31
	locationWeight   = 0.03
)

// Score computes the 0..100 compatibility between a seeker and a posting.
// It is deterministic and side-effect free: one seeker against one job,
// independent of any result set.
//
// A job with zero required skills contributes a zero skill component; it is
// not excluded from the weighted sum.
func Score(seeker *models.Seeker, job *models.JobWithCompany) int {
	skillPct := skillComponent(seeker.Skills, job.Skills)
	expPct := experienceComponent(seeker.ExperienceBucket, job.RequiredExperience)

	total := float64(skillPct)*skillWeight + float64(expPct)*experienceWeight
	total += binary(seeker.Location.District, job.CompanyLocation.District) * locationWeight
	total += binary(seeker.Location.City, job.CompanyLocation.City) * locationWeight
	total += binary(seeker.Location.Area, job.CompanyLocation.Area) * locationWeight

	return int(math.Floor(total))
}

// binary treats an unset field as never matching: a company that has not
// completed verification carries an empty location, and blank-against-blank
// equality would hand its jobs unearned location points.
func binary(a, b string) float64 {
	if a != "" && a == b {
		return 100
	}
	return 0
}

func skillComponent(seekerSkills, required []string) int {
	if len(required) == 0 {
		return 0
	}
	have := make(map[string]bool, len(seekerSkills))
	for _, s := range seekerSkills {
		have[s] = true
	}
	matched := 0
	for _, want := range required {
		if have[want] {
			matched++
		}
	}
	return matched * 100 / len(required)
}

func experienceComponent(seekerBucket, requiredText string) int {
	seekerYears := leadingInt(seekerBucket)
	requiredYears := leadingInt(requiredText)

	// A pair of zero parses would otherwise divide by zero; treating both
	// as one year keeps the ratio well defined.
	if seekerYears == 0 && requiredYears == 0 {
		seekerYears, requiredYears = 1, 1
	}
	if requiredYears == 0 || seekerYears > requiredYears {
		return 100
	}
	return seekerYears * 100 / requiredYears
}

// leadingInt parses the integer prefix of a label like "2 years" or
// "3+ years of backend work". Non-numeric or missing prefixes parse as 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
