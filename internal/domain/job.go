package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Status is the pipeline stage of an application.
type Status string

const (
	StatusWishlist  Status = "Wishlist"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{StatusWishlist, StatusApplied, StatusInterview, StatusOffer, StatusRejected}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Portal is the job board an application was made through.
type Portal string

const (
	PortalInternshala Portal = "Internshala"
	PortalNaukri      Portal = "Naukri"
	PortalLinkedIn    Portal = "LinkedIn"
	PortalGlassdoor   Portal = "Glassdoor"
	PortalInstahyre   Portal = "Instahyre"
	PortalIndeed      Portal = "Indeed"
)

var Portals = []Portal{PortalInternshala, PortalNaukri, PortalLinkedIn, PortalGlassdoor, PortalInstahyre, PortalIndeed}

func (p Portal) Valid() bool {
	for _, v := range Portals {
		if p == v {
			return true
		}
	}
	return false
}

// JobSchemaVersion is bumped whenever a field is added to Job.
// v1: id, title, company, status, deadline. v2: applied_on, portal, status_link.
const JobSchemaVersion = 2

// Job is one tracked application. Optional fields are nil when absent.
// Owner is the account id; guest records leave it empty.
type Job struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Company    string     `json:"company"`
	Status     Status     `json:"status"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	AppliedOn  *time.Time `json:"applied_on,omitempty"`
	Portal     *Portal    `json:"portal,omitempty"`
	StatusLink *string    `json:"status_link,omitempty"`
	Owner      string     `json:"owner,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// JobRepository is the relational table backing signed-in accounts. Every
// method is scoped by owner.
type JobRepository interface {
	ListByOwner(ctx context.Context, owner string) ([]Job, error)
	ListByIDsAndOwner(ctx context.Context, owner string, ids []string) ([]Job, error)
	GetByIDAndOwner(ctx context.Context, id, owner string) (*Job, error)
	Create(ctx context.Context, job *Job) error
	UpdateByIDAndOwner(ctx context.Context, job *Job) error
	DeleteByIDAndOwner(ctx context.Context, id, owner string) error
}

// GuestJobRepository keeps a guest's whole record set as one ephemeral blob.
type GuestJobRepository interface {
	List(ctx context.Context, guestID string) ([]Job, error)
	Get(ctx context.Context, guestID, id string) (*Job, error)
	Create(ctx context.Context, guestID string, job *Job) error
	Update(ctx context.Context, guestID string, job *Job) error
	Delete(ctx context.Context, guestID, id string) error
	Clear(ctx context.Context, guestID string) error
}

// JobStore is the single record-store contract used by the usecases; the
// implementation picks the backend from the identity.
type JobStore interface {
	List(ctx context.Context, id Identity) ([]Job, error)
	ListByIDs(ctx context.Context, id Identity, ids []string) ([]Job, error)
	Get(ctx context.Context, id Identity, jobID string) (*Job, error)
	Create(ctx context.Context, id Identity, job *Job) error
	Update(ctx context.Context, id Identity, job *Job) error
	Delete(ctx context.Context, id Identity, jobID string) error
}

// JobListing is what the list view shows.
type JobListing struct {
	Jobs     []Job     `json:"jobs"`
	Total    int       `json:"total"`
	Filtered int       `json:"filtered"`
	Filter   JobFilter `json:"filter"`
}

type JobUsecase interface {
	ListJobs(ctx context.Context, id Identity, filter JobFilter) (*JobListing, error)
	GetJob(ctx context.Context, id Identity, jobID string) (*Job, error)
	CreateJob(ctx context.Context, id Identity, job *Job) error
	UpdateJob(ctx context.Context, id Identity, job *Job) error
	// DeleteJob asks for confirmation first; once confirmed it removes the
	// record and returns the refreshed listing for filter.
	DeleteJob(ctx context.Context, id Identity, jobID string, confirmed bool, filter JobFilter) (*JobListing, error)
	GetStats(ctx context.Context, id Identity) (*JobStats, error)
}

type ExportUsecase interface {
	// Export renders the identity's records (or only ids when non-empty).
	Export(ctx context.Context, id Identity, format string, ids []string) (data []byte, filename, contentType string, err error)
	// Archive uploads an xlsx export to object storage and returns its location.
	Archive(ctx context.Context, id Identity) (string, error)
}
