package models

// ListMode selects the listing pipeline behavior.
type ListMode string

const (
	ModeRecommended ListMode = "recommended"
	ModeLatest      ListMode = "latest"
	ModeTop         ListMode = "top"
	ModeSearch      ListMode = "search"
)

func (m ListMode) Valid() bool {
	switch m {
	case ModeRecommended, ModeLatest, ModeTop, ModeSearch:
		return true
	}
	return false
}

// JobPage is one page of listing results. TotalCount is the true matching
// count before truncation, carried separately so clients can paginate.
// Notice is set when the page is legitimately empty for a reason the client
// should surface (e.g. recommended mode without any profile skills).
type JobPage struct {
	Jobs        []*JobWithCompany `json:"jobs"`
	TotalCount  int64             `json:"totalCount"`
	CurrentPage int               `json:"currentPage"`
	PageCount   int               `json:"pageCount"`
	Notice      string            `json:"notice,omitempty"`
}

type ListQuery struct {
	Mode   ListMode
	Search string
	Page   int
	Limit  int
}

type CreateJobRequest struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Skills             []string        `json:"skills"`
	JobType            JobType         `json:"jobType"`
	RequiredExperience string          `json:"requiredExperience"`
	ExperienceLevel    ExperienceLevel `json:"experienceLevel"`
	Salary             string          `json:"salary"`
	Vacancies          int             `json:"vacancies"`
	Deadline           int             `json:"deadline"`
}

// ApplicationWithJob is the seeker-facing applied-jobs view: the ledger
// record joined with its posting, scored against the seeker's current
// profile. The resume snapshot on the embedded record stays the apply-time
// one.
type ApplicationWithJob struct {
	Application `bson:",inline"`
	Job         *JobWithCompany `json:"job"`
}

// BookmarkWithJob is the seeker-facing bookmarks view, joined and scored
// the same way.
type BookmarkWithJob struct {
	Bookmark `bson:",inline"`
	Job      *JobWithCompany `json:"job"`
}

type PlatformStats struct {
	Seekers          int64 `json:"seekers"`
	Companies        int64 `json:"companies"`
	PendingCompanies int64 `json:"pendingCompanies"`
	Jobs             int64 `json:"jobs"`
	Applications     int64 `json:"applications"`
}
