package model

import "time"

// ApplicationStatus is where an application currently stands.
type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "applied"
	StatusReviewing    ApplicationStatus = "reviewing"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffered      ApplicationStatus = "offered"
	StatusRejected     ApplicationStatus = "rejected"
)

// ApplicationData is what an applicant submits for a job. The job fields are
// copied into the resulting Application so it survives the listing going
// away.
type ApplicationData struct {
	JobID       string `json:"jobId"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CoverLetter string `json:"coverLetter"`
	Resume      string `json:"resume"`
}

// Application is a submitted application. Only Status changes after
// creation.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	JobTitle    string            `json:"jobTitle"`
	Company     string            `json:"company"`
	FullName    string            `json:"fullName"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	CoverLetter string            `json:"coverLetter"`
	Resume      string            `json:"resume"`
	AppliedDate time.Time         `json:"appliedDate"`
	Status      ApplicationStatus `json:"status"`
}

// ApplicationStats counts applications per status.
type ApplicationStats struct {
	Total        int `json:"total"`
	Applied      int `json:"applied"`
	Reviewing    int `json:"reviewing"`
	Interviewing int `json:"interviewing"`
	Offered      int `json:"offered"`
	Rejected     int `json:"rejected"`
}
