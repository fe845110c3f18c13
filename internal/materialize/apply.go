package materialize

import (
	"encoding/json"

	"glmirror/internal/record"
	"glmirror/internal/store"
)

// Column merge helpers. A present field overwrites the column, an explicit
// null clears it, and an absent field leaves whatever the row already holds.

func setStr(dst **string, f record.Field[string]) {
	switch f.State() {
	case record.StatePresent:
		v, _ := f.Get()
		*dst = &v
	case record.StateNull:
		*dst = nil
	}
}

func setInt(dst **int64, f record.Field[int64]) {
	switch f.State() {
	case record.StatePresent:
		v, _ := f.Get()
		*dst = &v
	case record.StateNull:
		*dst = nil
	}
}

func setFloat(dst **float64, f record.Field[float64]) {
	switch f.State() {
	case record.StatePresent:
		v, _ := f.Get()
		*dst = &v
	case record.StateNull:
		*dst = nil
	}
}

func setBool(dst **bool, f record.Field[bool]) {
	switch f.State() {
	case record.StatePresent:
		v, _ := f.Get()
		*dst = &v
	case record.StateNull:
		*dst = nil
	}
}

// setStrMap stores a string map column as canonical JSON text. Marshal sorts
// map keys, so equal maps always produce equal column values.
func setStrMap(dst **string, f record.Field[map[string]string]) error {
	switch f.State() {
	case record.StatePresent:
		v, _ := f.Get()
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		s := string(raw)
		*dst = &s
	case record.StateNull:
		*dst = nil
	}
	return nil
}

// setStrList stores a string list column as JSON text, same convention as
// setStrMap.
func setStrList(dst **string, f record.Field[[]string]) error {
	switch f.State() {
	case record.StatePresent:
		v, _ := f.Get()
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		s := string(raw)
		*dst = &s
	case record.StateNull:
		*dst = nil
	}
	return nil
}

func applyUser(row *store.UserRow, u *record.User) {
	setStr(&row.Username, u.Username)
	setStr(&row.Name, u.Name)
	setStr(&row.State, u.State)
	setStr(&row.AvatarURL, u.AvatarURL)
	setStr(&row.WebURL, u.WebURL)
	setStr(&row.Email, u.Email)
	setStr(&row.CreatedAt, u.CreatedAt)
}

func applyMember(row *store.UserRow, m *record.Member) {
	setStr(&row.Username, m.Username)
	setStr(&row.Name, m.Name)
	setStr(&row.State, m.State)
	setStr(&row.AvatarURL, m.AvatarURL)
	setStr(&row.WebURL, m.WebURL)
}

func applyNamespace(row *store.NamespaceRow, n *record.Namespace) {
	setStr(&row.Name, n.Name)
	setStr(&row.Path, n.Path)
	setStr(&row.Kind, n.Kind)
	setStr(&row.FullPath, n.FullPath)
	setInt(&row.ParentID, n.ParentID)
	setStr(&row.WebURL, n.WebURL)
}

func applyProject(row *store.ProjectRow, p *record.Project) {
	setStr(&row.Name, p.Name)
	setStr(&row.Path, p.Path)
	setStr(&row.PathWithNamespace, p.PathWithNamespace)
	setStr(&row.Description, p.Description)
	setStr(&row.DefaultBranch, p.DefaultBranch)
	setStr(&row.Visibility, p.Visibility)
	setStr(&row.WebURL, p.WebURL)
	setStr(&row.SSHURLToRepo, p.SSHURLToRepo)
	setStr(&row.HTTPURLToRepo, p.HTTPURLToRepo)
	setStr(&row.CreatedAt, p.CreatedAt)
	setStr(&row.LastActivityAt, p.LastActivityAt)
	setInt(&row.ForksCount, p.ForksCount)
	setInt(&row.StarCount, p.StarCount)
	setBool(&row.Archived, p.Archived)
}

func applyLabel(row *store.LabelRow, l *record.Label) {
	setStr(&row.Name, l.Name)
	setStr(&row.Color, l.Color)
	setStr(&row.TextColor, l.TextColor)
	setStr(&row.Description, l.Description)
	setInt(&row.Priority, l.Priority)
	setBool(&row.IsProjectLabel, l.IsProjectLabel)
}

func applyPipeline(row *store.PipelineRow, p *record.Pipeline) {
	setInt(&row.IID, p.IID)
	setInt(&row.ProjectID, p.ProjectID)
	setStr(&row.SHA, p.SHA)
	setStr(&row.Ref, p.Ref)
	setStr(&row.Status, p.Status)
	setStr(&row.Source, p.Source)
	setStr(&row.CreatedAt, p.CreatedAt)
	setStr(&row.UpdatedAt, p.UpdatedAt)
	setStr(&row.WebURL, p.WebURL)
}

func applyCommit(row *store.CommitRow, c *record.Commit) error {
	setStr(&row.ShortID, c.ShortID)
	setStr(&row.Title, c.Title)
	setStr(&row.Message, c.Message)
	setStr(&row.AuthorName, c.AuthorName)
	setStr(&row.AuthorEmail, c.AuthorEmail)
	setStr(&row.AuthoredDate, c.AuthoredDate)
	setStr(&row.CommitterName, c.CommitterName)
	setStr(&row.CommitterEmail, c.CommitterEmail)
	setStr(&row.CommittedDate, c.CommittedDate)
	setStr(&row.CreatedAt, c.CreatedAt)
	setStr(&row.WebURL, c.WebURL)
	setStr(&row.Status, c.Status)
	setInt(&row.ProjectID, c.ProjectID)
	if c.Stats != nil {
		setInt(&row.Additions, c.Stats.Additions)
		setInt(&row.Deletions, c.Stats.Deletions)
		setInt(&row.Total, c.Stats.Total)
	}
	return setStrMap(&row.Trailers, c.Trailers)
}

func applyBranch(row *store.BranchRow, b *record.Branch) {
	setBool(&row.Merged, b.Merged)
	setBool(&row.Protected, b.Protected)
	setBool(&row.IsDefault, b.Default)
	setBool(&row.CanPush, b.CanPush)
	setStr(&row.WebURL, b.WebURL)
}

func applyRelease(row *store.ReleaseRow, r *record.Release) {
	setStr(&row.Name, r.Name)
	setStr(&row.Description, r.Description)
	setStr(&row.CreatedAt, r.CreatedAt)
	setStr(&row.ReleasedAt, r.ReleasedAt)
	setBool(&row.UpcomingRelease, r.UpcomingRelease)
}

func applyTag(row *store.TagRow, t *record.Tag) {
	setStr(&row.Message, t.Message)
	setStr(&row.Target, t.Target)
	setBool(&row.Protected, t.Protected)
}

func applyJob(row *store.JobRow, j *record.Job) {
	setStr(&row.Name, j.Name)
	setStr(&row.Stage, j.Stage)
	setStr(&row.Status, j.Status)
	setStr(&row.Ref, j.Ref)
	setStr(&row.CreatedAt, j.CreatedAt)
	setStr(&row.StartedAt, j.StartedAt)
	setStr(&row.FinishedAt, j.FinishedAt)
	setFloat(&row.Duration, j.Duration)
	setStr(&row.WebURL, j.WebURL)
	setBool(&row.AllowFailure, j.AllowFailure)
}

func applyArtifact(row *store.ArtifactRow, a *record.Artifact) {
	setStr(&row.FileType, a.FileType)
	setStr(&row.FileFormat, a.FileFormat)
	setInt(&row.Size, a.Size)
}

func applyMergeRequest(row *store.MergeRequestRow, m *record.MergeRequest) {
	setInt(&row.IID, m.IID)
	setInt(&row.ProjectID, m.ProjectID)
	setStr(&row.Title, m.Title)
	setStr(&row.Description, m.Description)
	setStr(&row.State, m.State)
	setStr(&row.MergeStatus, m.MergeStatus)
	setStr(&row.SourceBranch, m.SourceBranch)
	setStr(&row.TargetBranch, m.TargetBranch)
	setStr(&row.SHA, m.SHA)
	setStr(&row.MergeCommitSHA, m.MergeCommitSHA)
	setBool(&row.Draft, m.Draft)
	setStr(&row.WebURL, m.WebURL)
	setStr(&row.CreatedAt, m.CreatedAt)
	setStr(&row.UpdatedAt, m.UpdatedAt)
}

func applyDeployToken(row *store.DeployTokenRow, d *record.DeployToken) error {
	setStr(&row.Name, d.Name)
	setStr(&row.Username, d.Username)
	setStr(&row.ExpiresAt, d.ExpiresAt)
	setBool(&row.Revoked, d.Revoked)
	setBool(&row.Expired, d.Expired)
	// The secret token value is deliberately not a column.
	return setStrList(&row.Scopes, d.Scopes)
}
