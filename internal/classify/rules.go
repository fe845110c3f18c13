// Package classify resolves untagged JSON payloads to the single best
// matching record variant using an ordered priority table of required
// key sets.
package classify

import "glmirror/internal/record"

// Rule binds a variant to its required key subset and decoder. The first
// rule whose required keys are all present in the payload wins, so the
// table is ordered most-constrained first. The ordering is part of the
// classification contract and is covered by tests.
type Rule struct {
	Base     string
	Plural   string
	Required []string
	Decode   func(record.Object) (record.Record, error)
}

// Rules is the priority table. Variants with larger required key sets and
// more distinguishing keys come first; generic shapes like User come last.
var Rules = []Rule{
	{"CommitSignature", "CommitSignatures", []string{"signature_type", "verification_status"}, record.DecodeCommitSignature},
	{"TestReport", "TestReports", []string{"total_time", "total_count", "success_count"}, record.DecodeTestReport},
	{"ProtectedBranch", "ProtectedBranches", []string{"id", "name", "push_access_levels"}, record.DecodeProtectedBranch},
	{"AccessLevel", "AccessLevels", []string{"access_level", "access_level_description"}, record.DecodeAccessLevel},
	{"MergeRequest", "MergeRequests", []string{"id", "iid", "source_branch", "target_branch"}, record.DecodeMergeRequest},
	{"ToDo", "ToDos", []string{"id", "action_name", "target_type"}, record.DecodeToDo},
	{"Issue", "Issues", []string{"id", "iid", "title", "author"}, record.DecodeIssue},
	{"Milestone", "Milestones", []string{"id", "iid", "title", "due_date"}, record.DecodeMilestone},
	{"Commit", "Commits", []string{"id", "message", "parent_ids"}, record.DecodeCommit},
	{"CommitStats", "CommitStatsList", []string{"additions", "deletions", "total"}, record.DecodeCommitStats},
	{"Diff", "Diffs", []string{"diff", "new_path", "old_path"}, record.DecodeDiff},
	{"Pipeline", "Pipelines", []string{"id", "sha", "ref", "status"}, record.DecodePipeline},
	{"PipelineVariable", "PipelineVariables", []string{"key", "variable_type"}, record.DecodePipelineVariable},
	{"Job", "Jobs", []string{"id", "name", "stage"}, record.DecodeJob},
	{"Artifact", "Artifacts", []string{"filename", "file_type"}, record.DecodeArtifact},
	{"Runner", "Runners", []string{"id", "runner_type"}, record.DecodeRunner},
	{"DeployToken", "DeployTokens", []string{"id", "username", "scopes"}, record.DecodeDeployToken},
	{"Package", "Packages", []string{"id", "version", "package_type"}, record.DecodePackage},
	{"Environment", "Environments", []string{"id", "name", "slug"}, record.DecodeEnvironment},
	{"Label", "Labels", []string{"id", "name", "color"}, record.DecodeLabel},
	{"Tag", "Tags", []string{"name", "target"}, record.DecodeTag},
	{"Release", "Releases", []string{"tag_name", "description"}, record.DecodeRelease},
	{"Branch", "Branches", []string{"name", "commit"}, record.DecodeBranch},
	{"Wiki", "Wikis", []string{"slug", "format"}, record.DecodeWiki},
	{"Project", "Projects", []string{"id", "path_with_namespace"}, record.DecodeProject},
	{"Namespace", "Namespaces", []string{"id", "path", "kind"}, record.DecodeNamespace},
	{"Group", "Groups", []string{"id", "path", "full_path"}, record.DecodeGroup},
	{"Contributor", "Contributors", []string{"name", "email", "commits"}, record.DecodeContributor},
	{"Member", "Members", []string{"id", "username", "access_level"}, record.DecodeMember},
	{"User", "Users", []string{"id", "username"}, record.DecodeUser},
}

// match returns the first rule whose required key subset is contained in
// the object's key set, or nil.
func match(o record.Object) *Rule {
	for i := range Rules {
		if o.Has(Rules[i].Required...) {
			return &Rules[i]
		}
	}
	return nil
}
