package matching

import (
	"testing"

	"careernest/internal/models"
)

func seekerWith(skills []string, experience string, loc models.Location) *models.Seeker {
	return &models.Seeker{
		Skills:           skills,
		ExperienceBucket: experience,
		Location:         loc,
	}
}

func jobWith(skills []string, required string, loc models.Location) *models.JobWithCompany {
	return &models.JobWithCompany{
		Job: models.Job{
			Skills:             skills,
			RequiredExperience: required,
		},
		CompanyLocation: loc,
	}
}

func TestScoreReferenceExample(t *testing.T) {
	loc := models.Location{Area: "Baneshwor", City: "Kathmandu", District: "Kathmandu"}
	seeker := seekerWith([]string{"python", "sql"}, "2 years", loc)
	job := jobWith([]string{"python", "sql", "react"}, "2 years", loc)

	// skill 2/3 -> 66, weighted 39.6; experience equal -> 31; location 9.
	got := Score(seeker, job)
	if got != 79 {
		t.Errorf("expected score 79, got %d", got)
	}
}

func TestScoreComponents(t *testing.T) {
	sameLoc := models.Location{Area: "a", City: "c", District: "d"}
	otherLoc := models.Location{Area: "x", City: "y", District: "z"}

	testCases := []struct {
		name     string
		seeker   *models.Seeker
		job      *models.JobWithCompany
		expected int
	}{
		{
			"full match",
			seekerWith([]string{"go", "sql"}, "3 years", sameLoc),
			jobWith([]string{"go", "sql"}, "3 years", sameLoc),
			100,
		},
		{
			"zero required skills scores zero skill component",
			seekerWith([]string{"go", "sql", "react"}, "2 years", sameLoc),
			jobWith(nil, "2 years", sameLoc),
			40, // 0*0.6 + 100*0.31 + 9
		},
		{
			"no experience both sides treated as equal",
			seekerWith([]string{"go"}, "No Experience", sameLoc),
			jobWith([]string{"go"}, "No experience required", sameLoc),
			100,
		},
		{
			"seeker exceeds required experience",
			seekerWith([]string{"go"}, "10 or more", sameLoc),
			jobWith([]string{"go"}, "2 years", sameLoc),
			100,
		},
		{
			"seeker below required experience",
			seekerWith([]string{"go"}, "1 year", otherLoc),
			jobWith([]string{"go"}, "4 years", sameLoc),
			67, // 60 + 25*0.31=7.75 -> floor(67.75)
		},
		{
			"no overlap at all",
			seekerWith([]string{"php"}, "No Experience", otherLoc),
			jobWith([]string{"go", "rust"}, "5 years", sameLoc),
			0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.seeker, tc.job)
			if got != tc.expected {
				t.Errorf("expected score %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	locs := []models.Location{
		{},
		{Area: "a", City: "c", District: "d"},
	}
	skills := [][]string{nil, {"go"}, {"go", "sql", "react", "python"}}
	experiences := []string{"", "No Experience", "2 years", "10 or more", "garbage"}

	for _, sl := range locs {
		for _, jl := range locs {
			for _, ss := range skills {
				for _, js := range skills {
					for _, se := range experiences {
						for _, je := range experiences {
							got := Score(seekerWith(ss, se, sl), jobWith(js, je, jl))
							if got < 0 || got > 100 {
								t.Fatalf("score %d out of bounds for seeker(%v,%q) job(%v,%q)", got, ss, se, js, je)
							}
						}
					}
				}
			}
		}
	}
}

func TestScoreEmptyLocationsNeverMatch(t *testing.T) {
	located := models.Location{Area: "Baneshwor", City: "Kathmandu", District: "Kathmandu"}

	full := Score(seekerWith([]string{"go"}, "2 years", located), jobWith([]string{"go"}, "2 years", located))
	if full != 100 {
		t.Fatalf("expected 100 for a full match, got %d", full)
	}

	// two unset locations carry no signal and must not count as equal
	blank := Score(seekerWith([]string{"go"}, "2 years", models.Location{}), jobWith([]string{"go"}, "2 years", models.Location{}))
	if blank != 91 {
		t.Errorf("expected 91 without location credit, got %d", blank)
	}
}

func TestSkillComponentMonotonicity(t *testing.T) {
	job := jobWith([]string{"go", "sql", "react"}, "2 years", models.Location{})
	base := seekerWith([]string{"go"}, "2 years", models.Location{})
	before := Score(base, job)

	grown := seekerWith([]string{"go", "sql"}, "2 years", models.Location{})
	after := Score(grown, job)

	if after < before {
		t.Errorf("adding a matched required skill decreased score: %d -> %d", before, after)
	}
}

func TestLeadingInt(t *testing.T) {
	testCases := []struct {
		in       string
		expected int
	}{
		{"2 years", 2},
		{"10 or more", 10},
		{"No Experience", 0},
		{"", 0},
		{"  3 years of backend", 3},
		{"around five years", 0},
	}
	for _, tc := range testCases {
		if got := leadingInt(tc.in); got != tc.expected {
			t.Errorf("leadingInt(%q) = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}
