package mirror

import "fmt"

// Endpoint identifies one GitLab collection the engine can mirror.
type Endpoint string

const (
	EndpointProject       Endpoint = "project"
	EndpointMembers       Endpoint = "members"
	EndpointBranches      Endpoint = "branches"
	EndpointCommits       Endpoint = "commits"
	EndpointPipelines     Endpoint = "pipelines"
	EndpointJobs          Endpoint = "jobs"
	EndpointMergeRequests Endpoint = "merge_requests"
	EndpointLabels        Endpoint = "labels"
	EndpointTags          Endpoint = "tags"
	EndpointReleases      Endpoint = "releases"
	EndpointDeployTokens  Endpoint = "deploy_tokens"
)

func (e Endpoint) String() string { return string(e) }

// Paginated reports whether the endpoint returns a collection. The project
// endpoint is a singleton document.
func (e Endpoint) Paginated() bool { return e != EndpointProject }

// Path returns the API path under /api/v4 for the given project.
func (e Endpoint) Path(projectID int64) string {
	base := fmt.Sprintf("projects/%d", projectID)
	if e == EndpointProject {
		return base
	}
	if e == EndpointCommits {
		// with_stats folds the additions/deletions summary into each commit.
		return base + "/repository/commits?with_stats=true"
	}
	if e == EndpointBranches {
		return base + "/repository/branches"
	}
	if e == EndpointTags {
		return base + "/repository/tags"
	}
	return base + "/" + string(e)
}

// AllEndpoints is the default sync set, ordered so referenced entities
// tend to land before the rows that point at them.
var AllEndpoints = []Endpoint{
	EndpointProject,
	EndpointMembers,
	EndpointLabels,
	EndpointPipelines,
	EndpointCommits,
	EndpointBranches,
	EndpointTags,
	EndpointReleases,
	EndpointJobs,
	EndpointMergeRequests,
	EndpointDeployTokens,
}

// ParseEndpoint validates an endpoint name from config or flags.
func ParseEndpoint(s string) (Endpoint, error) {
	for _, e := range AllEndpoints {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown endpoint %q", s)
}

// RunStatus is the outcome of a sync run.
type RunStatus string

const (
	StatusCompleted RunStatus = "completed"
	StatusPartial   RunStatus = "partial"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
)

// EndpointResult captures one endpoint's share of a run.
type EndpointResult struct {
	Endpoint Endpoint `json:"endpoint"`
	Pages    int      `json:"pages"`
	Rows     int      `json:"rows"`
	Skipped  int      `json:"skipped"`
	Err      string   `json:"error,omitempty"`
}

// Report is the full outcome of a sync run.
type Report struct {
	RunID      string           `json:"run_id"`
	Status     RunStatus        `json:"status"`
	StartedAt  string           `json:"started_at"`
	FinishedAt string           `json:"finished_at"`
	Rows       int              `json:"rows"`
	Endpoints  []EndpointResult `json:"endpoints"`
}
