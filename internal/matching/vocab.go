package matching

import (
	"strings"

	"careernest/internal/models"
)

// skillDictionary maps raw lowercase tokens to canonical skill tags. Both
// profile saves and search queries go through this table; tokens with no
// entry are dropped, never stored or matched as empty tags.
var skillDictionary = map[string]string{
	"go":         "go",
	"golang":     "go",
	"python":     "python",
	"py":         "python",
	"java":       "java",
	"javascript": "javascript",
	"js":         "javascript",
	"typescript": "typescript",
	"ts":         "typescript",
	"react":      "react",
	"reactjs":    "react",
	"angular":    "angular",
	"vue":        "vue",
	"vuejs":      "vue",
	"node":       "nodejs",
	"nodejs":     "nodejs",
	"express":    "express",
	"django":     "django",
	"flask":      "flask",
	"spring":     "spring",
	"laravel":    "laravel",
	"php":        "php",
	"ruby":       "ruby",
	"rails":      "rails",
	"c":          "c",
	"c++":        "c++",
	"cpp":        "c++",
	"c#":         "c#",
	"csharp":     "c#",
	"dotnet":     ".net",
	".net":       ".net",
	"sql":        "sql",
	"mysql":      "mysql",
	"postgres":   "postgresql",
	"postgresql": "postgresql",
	"mongodb":    "mongodb",
	"mongo":      "mongodb",
	"redis":      "redis",
	"docker":     "docker",
	"kubernetes": "kubernetes",
	"k8s":        "kubernetes",
	"aws":        "aws",
	"gcp":        "gcp",
	"azure":      "azure",
	"linux":      "linux",
	"git":        "git",
	"html":       "html",
	"css":        "css",
	"sass":       "css",
	"figma":      "figma",
	"photoshop":  "photoshop",
	"flutter":    "flutter",
	"dart":       "dart",
	"kotlin":     "kotlin",
	"swift":      "swift",
	"android":    "android",
	"ios":        "ios",
	"rust":       "rust",
	"graphql":    "graphql",
	"rest":       "rest",
	"grpc":       "grpc",
	"terraform":  "terraform",
	"ansible":    "ansible",
	"jenkins":    "jenkins",
	"excel":      "excel",
	"wordpress":  "wordpress",
	"seo":        "seo",
	"marketing":  "marketing",
	"accounting": "accounting",
}

// NormalizeSkill resolves a raw token to its canonical tag.
func NormalizeSkill(raw string) (string, bool) {
	tag, ok := skillDictionary[strings.ToLower(strings.TrimSpace(raw))]
	return tag, ok
}

// NormalizeSkills maps raw tokens through the dictionary, dropping unmapped
// tokens and duplicates while keeping first-seen order.
func NormalizeSkills(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var tags []string
	for _, token := range raw {
		tag, ok := NormalizeSkill(token)
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// QueryFilter is the vocabulary terms a free-text search resolved to.
// Empty on every field means the query matched nothing anywhere.
type QueryFilter struct {
	Skills           []string
	JobTypes         []models.JobType
	ExperienceLevels []models.ExperienceLevel
}

func (f QueryFilter) Empty() bool {
	return len(f.Skills) == 0 && len(f.JobTypes) == 0 && len(f.ExperienceLevels) == 0
}

var jobTypeVocab = []models.JobType{
	models.JobTypeFullTime,
	models.JobTypePartTime,
	models.JobTypeInternship,
	models.JobTypeContract,
	models.JobTypeRemote,
}

var experienceLevelVocab = []models.ExperienceLevel{
	models.LevelEntry,
	models.LevelMid,
	models.LevelSenior,
}

// ParseQuery tokenizes a free-text query (whitespace split, lowercased) and
// matches each token as a prefix against the three controlled vocabularies,
// building an OR-filter of everything that matched.
func ParseQuery(query string) QueryFilter {
	var filter QueryFilter
	skillSeen := make(map[string]bool)
	typeSeen := make(map[models.JobType]bool)
	levelSeen := make(map[models.ExperienceLevel]bool)

	for _, token := range strings.Fields(strings.ToLower(query)) {
		for raw, tag := range skillDictionary {
			if strings.HasPrefix(raw, token) && !skillSeen[tag] {
				skillSeen[tag] = true
				filter.Skills = append(filter.Skills, tag)
			}
		}
		for _, jt := range jobTypeVocab {
			if strings.HasPrefix(strings.ToLower(string(jt)), token) && !typeSeen[jt] {
				typeSeen[jt] = true
				filter.JobTypes = append(filter.JobTypes, jt)
			}
		}
		for _, lvl := range experienceLevelVocab {
			if strings.HasPrefix(strings.ToLower(string(lvl)), token) && !levelSeen[lvl] {
				levelSeen[lvl] = true
				filter.ExperienceLevels = append(filter.ExperienceLevels, lvl)
			}
		}
	}
	return filter
}
