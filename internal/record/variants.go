package record

// The variant family. One struct per payload shape the classifier can
// produce. Scalar fields are three-state; nested records are pointers
// (nil when absent or null) and nested collections are slices.

// User is a GitLab user as embedded in most payloads.
type User struct {
	ID        Field[int64]
	Username  Field[string]
	Name      Field[string]
	State     Field[string]
	AvatarURL Field[string]
	WebURL    Field[string]
	Email     Field[string]
	CreatedAt Field[string]
}

func (*User) BaseType() string { return "User" }

// Member is a user plus group/project membership attributes.
type Member struct {
	ID          Field[int64]
	Username    Field[string]
	Name        Field[string]
	State       Field[string]
	AvatarURL   Field[string]
	WebURL      Field[string]
	AccessLevel Field[int64]
	ExpiresAt   Field[string]
}

func (*Member) BaseType() string { return "Member" }

// Contributor is a repository contributor summary.
type Contributor struct {
	Name      Field[string]
	Email     Field[string]
	Commits   Field[int64]
	Additions Field[int64]
	Deletions Field[int64]
}

func (*Contributor) BaseType() string { return "Contributor" }

// Namespace is the namespace sub-object embedded in projects.
type Namespace struct {
	ID        Field[int64]
	Name      Field[string]
	Path      Field[string]
	Kind      Field[string]
	FullPath  Field[string]
	ParentID  Field[int64]
	WebURL    Field[string]
	AvatarURL Field[string]
}

func (*Namespace) BaseType() string { return "Namespace" }

// Group is a top-level or nested group.
type Group struct {
	ID          Field[int64]
	Name        Field[string]
	Path        Field[string]
	FullName    Field[string]
	FullPath    Field[string]
	Description Field[string]
	Visibility  Field[string]
	WebURL      Field[string]
	ParentID    Field[int64]
}

func (*Group) BaseType() string { return "Group" }

// Project is a project payload with its embedded namespace and owner.
type Project struct {
	ID                Field[int64]
	Name              Field[string]
	Path              Field[string]
	PathWithNamespace Field[string]
	Description       Field[string]
	DefaultBranch     Field[string]
	Visibility        Field[string]
	WebURL            Field[string]
	SSHURLToRepo      Field[string]
	HTTPURLToRepo     Field[string]
	CreatedAt         Field[string]
	LastActivityAt    Field[string]
	ForksCount        Field[int64]
	StarCount         Field[int64]
	Archived          Field[bool]
	TagList           Field[[]string]
	Topics            Field[[]string]
	Namespace         *Namespace
	Owner             *User
}

func (*Project) BaseType() string { return "Project" }

// Branch is a repository branch with its head commit.
type Branch struct {
	Name               Field[string]
	Merged             Field[bool]
	Protected          Field[bool]
	Default            Field[bool]
	DevelopersCanPush  Field[bool]
	DevelopersCanMerge Field[bool]
	CanPush            Field[bool]
	WebURL             Field[string]
	Commit             *Commit
}

func (*Branch) BaseType() string { return "Branch" }

// ProtectedBranch describes branch protection with access level rules.
type ProtectedBranch struct {
	ID                Field[int64]
	Name              Field[string]
	AllowForcePush    Field[bool]
	PushAccessLevels  []AccessLevel
	MergeAccessLevels []AccessLevel
}

func (*ProtectedBranch) BaseType() string { return "ProtectedBranch" }

// AccessLevel is one access rule inside a protected branch.
type AccessLevel struct {
	AccessLevel            Field[int64]
	AccessLevelDescription Field[string]
	UserID                 Field[int64]
	GroupID                Field[int64]
}

func (*AccessLevel) BaseType() string { return "AccessLevel" }

// Commit is a repository commit with parents, trailers, and an optional
// last pipeline.
type Commit struct {
	ID             Field[string]
	ShortID        Field[string]
	Title          Field[string]
	Message        Field[string]
	AuthorName     Field[string]
	AuthorEmail    Field[string]
	AuthoredDate   Field[string]
	CommitterName  Field[string]
	CommitterEmail Field[string]
	CommittedDate  Field[string]
	CreatedAt      Field[string]
	WebURL         Field[string]
	Status         Field[string]
	ProjectID      Field[int64]
	ParentIDs      Field[[]string]
	Trailers       Field[map[string]string]
	Stats          *CommitStats
	LastPipeline   *Pipeline
}

func (*Commit) BaseType() string { return "Commit" }

// CommitStats is the additions/deletions summary on a commit.
type CommitStats struct {
	Additions Field[int64]
	Deletions Field[int64]
	Total     Field[int64]
}

func (*CommitStats) BaseType() string { return "CommitStats" }

// CommitSignature covers both GPG and X509 signature payloads; the
// SignatureType field discriminates within the variant.
type CommitSignature struct {
	SignatureType      Field[string]
	VerificationStatus Field[string]
	CommitSource       Field[string]
	GPGKeyID           Field[int64]
	GPGKeyPrimaryKeyID Field[string]
	GPGKeyUserName     Field[string]
	GPGKeyUserEmail    Field[string]
	X509Certificate    *X509Certificate
}

func (*CommitSignature) BaseType() string { return "CommitSignature" }

// X509Certificate is the certificate nested in an X509 commit signature.
type X509Certificate struct {
	ID                   Field[int64]
	Subject              Field[string]
	SubjectKeyIdentifier Field[string]
	Email                Field[string]
	SerialNumber         Field[string]
	CertificateStatus    Field[string]
	X509Issuer           *X509Issuer
}

func (*X509Certificate) BaseType() string { return "X509Certificate" }

// X509Issuer is the issuer nested in an X509 certificate.
type X509Issuer struct {
	ID                   Field[int64]
	Subject              Field[string]
	SubjectKeyIdentifier Field[string]
	CrlURL               Field[string]
}

func (*X509Issuer) BaseType() string { return "X509Issuer" }

// Diff is one file diff in a commit or merge request.
type Diff struct {
	OldPath     Field[string]
	NewPath     Field[string]
	AMode       Field[string]
	BMode       Field[string]
	Diff        Field[string]
	NewFile     Field[bool]
	RenamedFile Field[bool]
	DeletedFile Field[bool]
}

func (*Diff) BaseType() string { return "Diff" }

// MergeRequest is a merge request with author, assignee and labels.
type MergeRequest struct {
	ID             Field[int64]
	IID            Field[int64]
	ProjectID      Field[int64]
	Title          Field[string]
	Description    Field[string]
	State          Field[string]
	MergeStatus    Field[string]
	SourceBranch   Field[string]
	TargetBranch   Field[string]
	SHA            Field[string]
	MergeCommitSHA Field[string]
	Draft          Field[bool]
	WebURL         Field[string]
	CreatedAt      Field[string]
	UpdatedAt      Field[string]
	Labels         Field[[]string]
	Author         *User
	Assignee       *User
}

func (*MergeRequest) BaseType() string { return "MergeRequest" }

// Issue is an issue with author and milestone.
type Issue struct {
	ID          Field[int64]
	IID         Field[int64]
	ProjectID   Field[int64]
	Title       Field[string]
	Description Field[string]
	State       Field[string]
	DueDate     Field[string]
	WebURL      Field[string]
	CreatedAt   Field[string]
	UpdatedAt   Field[string]
	Labels      Field[[]string]
	Author      *User
	Milestone   *Milestone
}

func (*Issue) BaseType() string { return "Issue" }

// Milestone is a project or group milestone.
type Milestone struct {
	ID        Field[int64]
	IID       Field[int64]
	ProjectID Field[int64]
	GroupID   Field[int64]
	Title     Field[string]
	State     Field[string]
	DueDate   Field[string]
	StartDate Field[string]
	WebURL    Field[string]
}

func (*Milestone) BaseType() string { return "Milestone" }

// Label is a project label.
type Label struct {
	ID                     Field[int64]
	Name                   Field[string]
	Color                  Field[string]
	TextColor              Field[string]
	Description            Field[string]
	OpenIssuesCount        Field[int64]
	ClosedIssuesCount      Field[int64]
	OpenMergeRequestsCount Field[int64]
	Subscribed             Field[bool]
	Priority               Field[int64]
	IsProjectLabel         Field[bool]
}

func (*Label) BaseType() string { return "Label" }

// Tag is a repository tag with its target commit and optional release.
type Tag struct {
	Name      Field[string]
	Message   Field[string]
	Target    Field[string]
	Protected Field[bool]
	Commit    *Commit
	Release   *Release
}

func (*Tag) BaseType() string { return "Tag" }

// Release is a release keyed by tag name.
type Release struct {
	TagName         Field[string]
	Name            Field[string]
	Description     Field[string]
	CreatedAt       Field[string]
	ReleasedAt      Field[string]
	UpcomingRelease Field[bool]
	Author          *User
	Commit          *Commit
}

func (*Release) BaseType() string { return "Release" }

// Pipeline is a CI pipeline.
type Pipeline struct {
	ID        Field[int64]
	IID       Field[int64]
	ProjectID Field[int64]
	SHA       Field[string]
	Ref       Field[string]
	Status    Field[string]
	Source    Field[string]
	CreatedAt Field[string]
	UpdatedAt Field[string]
	WebURL    Field[string]
}

func (*Pipeline) BaseType() string { return "Pipeline" }

// PipelineVariable is one variable attached to a pipeline run.
type PipelineVariable struct {
	Key          Field[string]
	VariableType Field[string]
	Value        Field[string]
}

func (*PipelineVariable) BaseType() string { return "PipelineVariable" }

// Job is a CI job with its commit, pipeline, runner and artifacts.
type Job struct {
	ID           Field[int64]
	Name         Field[string]
	Stage        Field[string]
	Status       Field[string]
	Ref          Field[string]
	CreatedAt    Field[string]
	StartedAt    Field[string]
	FinishedAt   Field[string]
	Duration     Field[float64]
	WebURL       Field[string]
	AllowFailure Field[bool]
	Commit       *Commit
	Pipeline     *Pipeline
	User         *User
	Runner       *Runner
	Artifacts    []Artifact
}

func (*Job) BaseType() string { return "Job" }

// Artifact is one artifact file attached to a job.
type Artifact struct {
	FileType   Field[string]
	Filename   Field[string]
	FileFormat Field[string]
	Size       Field[int64]
}

func (*Artifact) BaseType() string { return "Artifact" }

// Runner is a CI runner.
type Runner struct {
	ID          Field[int64]
	Description Field[string]
	IPAddress   Field[string]
	Name        Field[string]
	RunnerType  Field[string]
	Active      Field[bool]
	Paused      Field[bool]
	IsShared    Field[bool]
	Online      Field[bool]
	Status      Field[string]
}

func (*Runner) BaseType() string { return "Runner" }

// DeployToken is a project or group deploy token. Token is only present on
// the creating response.
type DeployToken struct {
	ID        Field[int64]
	Name      Field[string]
	Username  Field[string]
	ExpiresAt Field[string]
	Token     Field[string]
	Revoked   Field[bool]
	Expired   Field[bool]
	Scopes    Field[[]string]
}

func (*DeployToken) BaseType() string { return "DeployToken" }

// Package is a package registry entry.
type Package struct {
	ID          Field[int64]
	Name        Field[string]
	Version     Field[string]
	PackageType Field[string]
	Status      Field[string]
	CreatedAt   Field[string]
}

func (*Package) BaseType() string { return "Package" }

// Environment is a deployment environment.
type Environment struct {
	ID          Field[int64]
	Name        Field[string]
	Slug        Field[string]
	ExternalURL Field[string]
	State       Field[string]
	Tier        Field[string]
}

func (*Environment) BaseType() string { return "Environment" }

// Wiki is a wiki page.
type Wiki struct {
	Content  Field[string]
	Format   Field[string]
	Slug     Field[string]
	Title    Field[string]
	Encoding Field[string]
}

func (*Wiki) BaseType() string { return "Wiki" }

// TestReport is a pipeline test report summary.
type TestReport struct {
	TotalTime    Field[float64]
	TotalCount   Field[int64]
	SuccessCount Field[int64]
	FailedCount  Field[int64]
	SkippedCount Field[int64]
	ErrorCount   Field[int64]
}

func (*TestReport) BaseType() string { return "TestReport" }

// ToDo is a todo entry with its author and project.
type ToDo struct {
	ID         Field[int64]
	ActionName Field[string]
	TargetType Field[string]
	State      Field[string]
	Body       Field[string]
	CreatedAt  Field[string]
	Author     *User
	Project    *Project
}

func (*ToDo) BaseType() string { return "ToDo" }
