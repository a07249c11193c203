package models

// VerificationStatus is the company account lifecycle.
type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusPending    VerificationStatus = "pending"
	StatusVerified   VerificationStatus = "verified"
	StatusRejected   VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusUnverified, StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// CanSubmitVerification reports whether a company may (re)enter pending.
// Re-submission is allowed only from unverified or rejected.
func (s VerificationStatus) CanSubmitVerification() bool {
	return s == StatusUnverified || s == StatusRejected
}

// CanDecide reports whether an admin may move the company to the target
// status. A decision always requires a document on file, which only exists
// once the company has been through pending at least once.
func (s VerificationStatus) CanDecide(target VerificationStatus) bool {
	switch target {
	case StatusVerified:
		return s == StatusPending || s == StatusRejected
	case StatusRejected:
		return s == StatusPending || s == StatusVerified
	}
	return false
}

// ApplicationStatus: Pending is the only non-terminal state.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

type JobType string

const (
	JobTypeFullTime   JobType = "Full Time"
	JobTypePartTime   JobType = "Part Time"
	JobTypeInternship JobType = "Internship"
	JobTypeContract   JobType = "Contract"
	JobTypeRemote     JobType = "Remote"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract, JobTypeRemote:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "Entry Level"
	LevelMid    ExperienceLevel = "Mid Level"
	LevelSenior ExperienceLevel = "Senior Level"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior:
		return true
	}
	return false
}

// ExperienceBuckets is the ordered seeker experience enum, lowest first.
var ExperienceBuckets = []string{
	"No Experience",
	"1 year",
	"2 years",
	"3 years",
	"4 years",
	"5 years",
	"6 years",
	"7 years",
	"8 years",
	"9 years",
	"10 or more",
}

func ValidExperienceBucket(bucket string) bool {
	for _, b := range ExperienceBuckets {
		if b == bucket {
			return true
		}
	}
	return false
}
