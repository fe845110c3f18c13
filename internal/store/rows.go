package store

// Row types, one per durable entity. Non-key columns are pointers so a
// NULL column and a merge that must not touch a column stay distinguishable
// from a real value.

// UserRow is a row in the users table.
type UserRow struct {
	ID        int64
	Username  *string
	Name      *string
	State     *string
	AvatarURL *string
	WebURL    *string
	Email     *string
	CreatedAt *string
}

// NamespaceRow is a row in the namespaces table.
type NamespaceRow struct {
	ID       int64
	Name     *string
	Path     *string
	Kind     *string
	FullPath *string
	ParentID *int64
	WebURL   *string
}

// ProjectRow is a row in the projects table. NamespaceID and OwnerID are
// shared references resolved before the project is written.
type ProjectRow struct {
	ID                int64
	Name              *string
	Path              *string
	PathWithNamespace *string
	Description       *string
	DefaultBranch     *string
	Visibility        *string
	WebURL            *string
	SSHURLToRepo      *string
	HTTPURLToRepo     *string
	CreatedAt         *string
	LastActivityAt    *string
	ForksCount        *int64
	StarCount         *int64
	Archived          *bool
	NamespaceID       *int64
	OwnerID           *int64
}

// LabelRow is a row in the labels table, owned by a project.
type LabelRow struct {
	ID             int64
	ProjectID      *int64
	Name           *string
	Color          *string
	TextColor      *string
	Description    *string
	Priority       *int64
	IsProjectLabel *bool
}

// PipelineRow is a row in the pipelines table.
type PipelineRow struct {
	ID        int64
	IID       *int64
	ProjectID *int64
	SHA       *string
	Ref       *string
	Status    *string
	Source    *string
	CreatedAt *string
	UpdatedAt *string
	WebURL    *string
}

// CommitRow is a row in the commits table. Parent ids live in
// commit_parents; stats are flattened onto the row.
type CommitRow struct {
	ID             string
	ShortID        *string
	Title          *string
	Message        *string
	AuthorName     *string
	AuthorEmail    *string
	AuthoredDate   *string
	CommitterName  *string
	CommitterEmail *string
	CommittedDate  *string
	CreatedAt      *string
	WebURL         *string
	Status         *string
	ProjectID      *int64
	Additions      *int64
	Deletions      *int64
	Total          *int64
	Trailers       *string
	LastPipelineID *int64
}

// BranchRow is a row in the branches table.
type BranchRow struct {
	Name      string
	Merged    *bool
	Protected *bool
	IsDefault *bool
	CanPush   *bool
	WebURL    *string
	CommitID  *string
}

// ReleaseRow is a row in the releases table, keyed by tag name.
type ReleaseRow struct {
	TagName         string
	Name            *string
	Description     *string
	CreatedAt       *string
	ReleasedAt      *string
	UpcomingRelease *bool
	AuthorID        *int64
	CommitID        *string
}

// TagRow is a row in the tags table.
type TagRow struct {
	Name       string
	Message    *string
	Target     *string
	Protected  *bool
	CommitID   *string
	ReleaseTag *string
}

// JobRow is a row in the jobs table.
type JobRow struct {
	ID           int64
	Name         *string
	Stage        *string
	Status       *string
	Ref          *string
	CreatedAt    *string
	StartedAt    *string
	FinishedAt   *string
	Duration     *float64
	WebURL       *string
	AllowFailure *bool
	CommitID     *string
	PipelineID   *int64
	UserID       *int64
}

// ArtifactRow is a row in the artifacts table, owned by a job.
type ArtifactRow struct {
	JobID      int64
	Filename   string
	FileType   *string
	FileFormat *string
	Size       *int64
}

// MergeRequestRow is a row in the merge_requests table.
type MergeRequestRow struct {
	ID             int64
	IID            *int64
	ProjectID      *int64
	Title          *string
	Description    *string
	State          *string
	MergeStatus    *string
	SourceBranch   *string
	TargetBranch   *string
	SHA            *string
	MergeCommitSHA *string
	Draft          *bool
	WebURL         *string
	CreatedAt      *string
	UpdatedAt      *string
	AuthorID       *int64
	AssigneeID     *int64
}

// DeployTokenRow is a row in the deploy_tokens table. The secret token
// value is never persisted.
type DeployTokenRow struct {
	ID        int64
	Name      *string
	Username  *string
	ExpiresAt *string
	Revoked   *bool
	Expired   *bool
	Scopes    *string
}

// RunRow is a row in the sync_runs table.
type RunRow struct {
	ID          string
	StartedAt   string
	FinishedAt  *string
	Status      string
	Endpoints   int64
	RowsWritten int64
	Error       *string
}
