package materialize

import (
	"context"
	"strconv"

	"glmirror/internal/record"
	"glmirror/internal/store"
)

// Per-entity upserts. Each one walks its referenced children first, depth
// first, so that by the time the parent row is written every foreign key it
// carries resolves. Owned position collections are written after the parent
// and trimmed to the incoming length.

func (t *txn) upsertUser(ctx context.Context, u *record.User) (store.Handle, error) {
	id, ok := u.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "users", Err: ErrMissingKey}
	}
	row, err := t.sess.GetUser(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.UserRow{ID: id}
	}
	applyUser(row, u)
	if err := t.sess.SaveUser(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("users", strconv.FormatInt(id, 10), err)
	}
	t.rows++
	return store.Handle{Table: "users", Key: strconv.FormatInt(id, 10)}, nil
}

func (t *txn) upsertMember(ctx context.Context, m *record.Member) (store.Handle, error) {
	id, ok := m.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "users", Err: ErrMissingKey}
	}
	row, err := t.sess.GetUser(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.UserRow{ID: id}
	}
	applyMember(row, m)
	if err := t.sess.SaveUser(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("users", strconv.FormatInt(id, 10), err)
	}
	t.rows++
	return store.Handle{Table: "users", Key: strconv.FormatInt(id, 10)}, nil
}

func (t *txn) upsertNamespace(ctx context.Context, n *record.Namespace) (store.Handle, error) {
	id, ok := n.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "namespaces", Err: ErrMissingKey}
	}
	row, err := t.sess.GetNamespace(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.NamespaceRow{ID: id}
	}
	applyNamespace(row, n)
	if err := t.sess.SaveNamespace(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("namespaces", strconv.FormatInt(id, 10), err)
	}
	t.rows++
	return store.Handle{Table: "namespaces", Key: strconv.FormatInt(id, 10)}, nil
}

// upsertGroup lands in the namespaces table; a group payload is the
// namespace seen from the groups API.
func (t *txn) upsertGroup(ctx context.Context, g *record.Group) (store.Handle, error) {
	id, ok := g.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "namespaces", Err: ErrMissingKey}
	}
	row, err := t.sess.GetNamespace(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.NamespaceRow{ID: id}
	}
	setStr(&row.Name, g.Name)
	setStr(&row.Path, g.Path)
	setStr(&row.FullPath, g.FullPath)
	setInt(&row.ParentID, g.ParentID)
	setStr(&row.WebURL, g.WebURL)
	if row.Kind == nil {
		kind := "group"
		row.Kind = &kind
	}
	if err := t.sess.SaveNamespace(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("namespaces", strconv.FormatInt(id, 10), err)
	}
	t.rows++
	return store.Handle{Table: "namespaces", Key: strconv.FormatInt(id, 10)}, nil
}

func (t *txn) upsertProject(ctx context.Context, p *record.Project) (store.Handle, error) {
	id, ok := p.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "projects", Err: ErrMissingKey}
	}
	row, err := t.sess.GetProject(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.ProjectRow{ID: id}
	}
	applyProject(row, p)

	if p.Namespace != nil {
		h, err := t.upsertNamespace(ctx, p.Namespace)
		if err != nil {
			return store.Handle{}, err
		}
		nsID, _ := strconv.ParseInt(h.Key, 10, 64)
		row.NamespaceID = &nsID
	}
	if p.Owner != nil {
		h, err := t.upsertUser(ctx, p.Owner)
		if err != nil {
			return store.Handle{}, err
		}
		ownerID, _ := strconv.ParseInt(h.Key, 10, 64)
		row.OwnerID = &ownerID
	}

	if err := t.sess.SaveProject(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("projects", strconv.FormatInt(id, 10), err)
	}
	t.rows++

	// Topics supersede tag_list upstream; take whichever is present.
	tags := p.Topics
	if tags.IsAbsent() {
		tags = p.TagList
	}
	if err := t.writeStringCollection(ctx, tags,
		func(pos int, name string) error { return t.sess.SaveProjectTag(ctx, id, pos, name) },
		func(n int) error { return t.sess.TrimProjectTags(ctx, id, n) },
	); err != nil {
		return store.Handle{}, t.rowErr("project_tags", strconv.FormatInt(id, 10), err)
	}
	return store.Handle{Table: "projects", Key: strconv.FormatInt(id, 10)}, nil
}

func (t *txn) upsertLabel(ctx context.Context, l *record.Label) (store.Handle, error) {
	id, ok := l.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "labels", Err: ErrMissingKey}
	}
	row, err := t.sess.GetLabel(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.LabelRow{ID: id}
	}
	applyLabel(row, l)
	if err := t.sess.SaveLabel(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("labels", strconv.FormatInt(id, 10), err)
	}
	t.rows++
	return store.Handle{Table: "labels", Key: strconv.FormatInt(id, 10)}, nil
}

func (t *txn) upsertPipeline(ctx context.Context, p *record.Pipeline) (store.Handle, error) {
	id, ok := p.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "pipelines", Err: ErrMissingKey}
	}
	row, err := t.sess.GetPipeline(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.PipelineRow{ID: id}
	}
	applyPipeline(row, p)
	if err := t.sess.SavePipeline(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("pipelines", strconv.FormatInt(id, 10), err)
	}
	t.rows++
	return store.Handle{Table: "pipelines", Key: strconv.FormatInt(id, 10)}, nil
}

func (t *txn) upsertCommit(ctx context.Context, c *record.Commit) (store.Handle, error) {
	id, ok := c.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "commits", Err: ErrMissingKey}
	}
	row, err := t.sess.GetCommit(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.CommitRow{ID: id}
	}
	if err := applyCommit(row, c); err != nil {
		return store.Handle{}, t.rowErr("commits", id, err)
	}

	if c.LastPipeline != nil {
		h, err := t.upsertPipeline(ctx, c.LastPipeline)
		if err != nil {
			return store.Handle{}, err
		}
		pid, _ := strconv.ParseInt(h.Key, 10, 64)
		row.LastPipelineID = &pid
	}

	if err := t.sess.SaveCommit(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("commits", id, err)
	}
	t.rows++

	if err := t.writeStringCollection(ctx, c.ParentIDs,
		func(pos int, parent string) error { return t.sess.SaveCommitParent(ctx, id, pos, parent) },
		func(n int) error { return t.sess.TrimCommitParents(ctx, id, n) },
	); err != nil {
		return store.Handle{}, t.rowErr("commit_parents", id, err)
	}
	return store.Handle{Table: "commits", Key: id}, nil
}

func (t *txn) upsertBranch(ctx context.Context, b *record.Branch) (store.Handle, error) {
	name, ok := b.Name.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "branches", Err: ErrMissingKey}
	}
	row, err := t.sess.GetBranch(ctx, name)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.BranchRow{Name: name}
	}
	applyBranch(row, b)

	if b.Commit != nil {
		h, err := t.upsertCommit(ctx, b.Commit)
		if err != nil {
			return store.Handle{}, err
		}
		row.CommitID = &h.Key
	}

	if err := t.sess.SaveBranch(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("branches", name, err)
	}
	t.rows++
	return store.Handle{Table: "branches", Key: name}, nil
}

func (t *txn) upsertRelease(ctx context.Context, r *record.Release) (store.Handle, error) {
	tagName, ok := r.TagName.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "releases", Err: ErrMissingKey}
	}
	row, err := t.sess.GetRelease(ctx, tagName)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.ReleaseRow{TagName: tagName}
	}
	applyRelease(row, r)

	if r.Author != nil {
		h, err := t.upsertUser(ctx, r.Author)
		if err != nil {
			return store.Handle{}, err
		}
		authorID, _ := strconv.ParseInt(h.Key, 10, 64)
		row.AuthorID = &authorID
	}
	if r.Commit != nil {
		h, err := t.upsertCommit(ctx, r.Commit)
		if err != nil {
			return store.Handle{}, err
		}
		row.CommitID = &h.Key
	}

	if err := t.sess.SaveRelease(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("releases", tagName, err)
	}
	t.rows++
	return store.Handle{Table: "releases", Key: tagName}, nil
}

func (t *txn) upsertTag(ctx context.Context, tag *record.Tag) (store.Handle, error) {
	name, ok := tag.Name.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "tags", Err: ErrMissingKey}
	}
	row, err := t.sess.GetTag(ctx, name)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.TagRow{Name: name}
	}
	applyTag(row, tag)

	if tag.Commit != nil {
		h, err := t.upsertCommit(ctx, tag.Commit)
		if err != nil {
			return store.Handle{}, err
		}
		row.CommitID = &h.Key
	}
	if tag.Release != nil {
		h, err := t.upsertRelease(ctx, tag.Release)
		if err != nil {
			return store.Handle{}, err
		}
		row.ReleaseTag = &h.Key
	}

	if err := t.sess.SaveTag(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("tags", name, err)
	}
	t.rows++
	return store.Handle{Table: "tags", Key: name}, nil
}

func (t *txn) upsertJob(ctx context.Context, j *record.Job) (store.Handle, error) {
	id, ok := j.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "jobs", Err: ErrMissingKey}
	}
	row, err := t.sess.GetJob(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.JobRow{ID: id}
	}
	applyJob(row, j)

	if j.Commit != nil {
		h, err := t.upsertCommit(ctx, j.Commit)
		if err != nil {
			return store.Handle{}, err
		}
		row.CommitID = &h.Key
	}
	if j.Pipeline != nil {
		h, err := t.upsertPipeline(ctx, j.Pipeline)
		if err != nil {
			return store.Handle{}, err
		}
		pid, _ := strconv.ParseInt(h.Key, 10, 64)
		row.PipelineID = &pid
	}
	if j.User != nil {
		h, err := t.upsertUser(ctx, j.User)
		if err != nil {
			return store.Handle{}, err
		}
		uid, _ := strconv.ParseInt(h.Key, 10, 64)
		row.UserID = &uid
	}

	if err := t.sess.SaveJob(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("jobs", strconv.FormatInt(id, 10), err)
	}
	t.rows++

	for _, a := range j.Artifacts {
		filename, ok := a.Filename.Get()
		if !ok {
			continue
		}
		arow, err := t.sess.GetArtifact(ctx, id, filename)
		if err != nil {
			return store.Handle{}, err
		}
		if arow == nil {
			arow = &store.ArtifactRow{JobID: id, Filename: filename}
		}
		applyArtifact(arow, &a)
		if err := t.sess.SaveArtifact(ctx, arow); err != nil {
			return store.Handle{}, t.rowErr("artifacts", filename, err)
		}
		t.rows++
	}
	return store.Handle{Table: "jobs", Key: strconv.FormatInt(id, 10)}, nil
}

func (t *txn) upsertMergeRequest(ctx context.Context, m *record.MergeRequest) (store.Handle, error) {
	id, ok := m.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "merge_requests", Err: ErrMissingKey}
	}
	row, err := t.sess.GetMergeRequest(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.MergeRequestRow{ID: id}
	}
	applyMergeRequest(row, m)

	if m.Author != nil {
		h, err := t.upsertUser(ctx, m.Author)
		if err != nil {
			return store.Handle{}, err
		}
		authorID, _ := strconv.ParseInt(h.Key, 10, 64)
		row.AuthorID = &authorID
	}
	if m.Assignee != nil {
		h, err := t.upsertUser(ctx, m.Assignee)
		if err != nil {
			return store.Handle{}, err
		}
		assigneeID, _ := strconv.ParseInt(h.Key, 10, 64)
		row.AssigneeID = &assigneeID
	}

	if err := t.sess.SaveMergeRequest(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("merge_requests", strconv.FormatInt(id, 10), err)
	}
	t.rows++

	if err := t.writeStringCollection(ctx, m.Labels,
		func(pos int, name string) error { return t.sess.SaveMRLabel(ctx, id, pos, name) },
		func(n int) error { return t.sess.TrimMRLabels(ctx, id, n) },
	); err != nil {
		return store.Handle{}, t.rowErr("mr_labels", strconv.FormatInt(id, 10), err)
	}
	return store.Handle{Table: "merge_requests", Key: strconv.FormatInt(id, 10)}, nil
}

func (t *txn) upsertDeployToken(ctx context.Context, d *record.DeployToken) (store.Handle, error) {
	id, ok := d.ID.Get()
	if !ok {
		return store.Handle{}, &RowError{Table: "deploy_tokens", Err: ErrMissingKey}
	}
	row, err := t.sess.GetDeployToken(ctx, id)
	if err != nil {
		return store.Handle{}, err
	}
	if row == nil {
		row = &store.DeployTokenRow{ID: id}
	}
	if err := applyDeployToken(row, d); err != nil {
		return store.Handle{}, t.rowErr("deploy_tokens", strconv.FormatInt(id, 10), err)
	}
	if err := t.sess.SaveDeployToken(ctx, row); err != nil {
		return store.Handle{}, t.rowErr("deploy_tokens", strconv.FormatInt(id, 10), err)
	}
	t.rows++
	return store.Handle{Table: "deploy_tokens", Key: strconv.FormatInt(id, 10)}, nil
}

// writeStringCollection applies the three-state collection policy: present
// replaces the rows and trims the tail, null trims everything, absent leaves
// the stored rows alone.
func (t *txn) writeStringCollection(ctx context.Context, f record.Field[[]string],
	save func(pos int, v string) error, trim func(n int) error) error {
	switch f.State() {
	case record.StatePresent:
		items, _ := f.Get()
		for i, v := range items {
			if err := save(i, v); err != nil {
				return err
			}
			t.rows++
		}
		return trim(len(items))
	case record.StateNull:
		return trim(0)
	default:
		return nil
	}
}
