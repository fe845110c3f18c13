package record

// Decoders instantiate a variant from an Object. Keys the variant does not
// declare are ignored; declared keys missing from the payload stay absent.
// Nested declared fields recurse through the sub-schema decoder for that
// field and surface a FieldError on a containing-kind mismatch.

// DecodeUser builds a User record.
func DecodeUser(o Object) (Record, error) {
	u, err := decodeUser(o)
	return u, err
}

func decodeUser(o Object) (*User, error) {
	return &User{
		ID:        intField(o, "id"),
		Username:  strField(o, "username"),
		Name:      strField(o, "name"),
		State:     strField(o, "state"),
		AvatarURL: strField(o, "avatar_url"),
		WebURL:    strField(o, "web_url"),
		Email:     strField(o, "email"),
		CreatedAt: strField(o, "created_at"),
	}, nil
}

// DecodeMember builds a Member record.
func DecodeMember(o Object) (Record, error) {
	return &Member{
		ID:          intField(o, "id"),
		Username:    strField(o, "username"),
		Name:        strField(o, "name"),
		State:       strField(o, "state"),
		AvatarURL:   strField(o, "avatar_url"),
		WebURL:      strField(o, "web_url"),
		AccessLevel: intField(o, "access_level"),
		ExpiresAt:   strField(o, "expires_at"),
	}, nil
}

// DecodeContributor builds a Contributor record.
func DecodeContributor(o Object) (Record, error) {
	return &Contributor{
		Name:      strField(o, "name"),
		Email:     strField(o, "email"),
		Commits:   intField(o, "commits"),
		Additions: intField(o, "additions"),
		Deletions: intField(o, "deletions"),
	}, nil
}

// DecodeNamespace builds a Namespace record.
func DecodeNamespace(o Object) (Record, error) {
	n, err := decodeNamespace(o)
	return n, err
}

func decodeNamespace(o Object) (*Namespace, error) {
	return &Namespace{
		ID:        intField(o, "id"),
		Name:      strField(o, "name"),
		Path:      strField(o, "path"),
		Kind:      strField(o, "kind"),
		FullPath:  strField(o, "full_path"),
		ParentID:  intField(o, "parent_id"),
		WebURL:    strField(o, "web_url"),
		AvatarURL: strField(o, "avatar_url"),
	}, nil
}

// DecodeGroup builds a Group record.
func DecodeGroup(o Object) (Record, error) {
	return &Group{
		ID:          intField(o, "id"),
		Name:        strField(o, "name"),
		Path:        strField(o, "path"),
		FullName:    strField(o, "full_name"),
		FullPath:    strField(o, "full_path"),
		Description: strField(o, "description"),
		Visibility:  strField(o, "visibility"),
		WebURL:      strField(o, "web_url"),
		ParentID:    intField(o, "parent_id"),
	}, nil
}

// DecodeProject builds a Project record, recursing into namespace and owner.
func DecodeProject(o Object) (Record, error) {
	p := &Project{
		ID:                intField(o, "id"),
		Name:              strField(o, "name"),
		Path:              strField(o, "path"),
		PathWithNamespace: strField(o, "path_with_namespace"),
		Description:       strField(o, "description"),
		DefaultBranch:     strField(o, "default_branch"),
		Visibility:        strField(o, "visibility"),
		WebURL:            strField(o, "web_url"),
		SSHURLToRepo:      strField(o, "ssh_url_to_repo"),
		HTTPURLToRepo:     strField(o, "http_url_to_repo"),
		CreatedAt:         strField(o, "created_at"),
		LastActivityAt:    strField(o, "last_activity_at"),
		ForksCount:        intField(o, "forks_count"),
		StarCount:         intField(o, "star_count"),
		Archived:          boolField(o, "archived"),
		TagList:           strListField(o, "tag_list"),
		Topics:            strListField(o, "topics"),
	}
	ns, err := nestedObject(o, "Project", "namespace")
	if err != nil {
		return nil, err
	}
	if ns != nil {
		if p.Namespace, err = decodeNamespace(ns); err != nil {
			return nil, err
		}
	}
	owner, err := nestedObject(o, "Project", "owner")
	if err != nil {
		return nil, err
	}
	if owner != nil {
		if p.Owner, err = decodeUser(owner); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// DecodeBranch builds a Branch record with its head commit.
func DecodeBranch(o Object) (Record, error) {
	b := &Branch{
		Name:               strField(o, "name"),
		Merged:             boolField(o, "merged"),
		Protected:          boolField(o, "protected"),
		Default:            boolField(o, "default"),
		DevelopersCanPush:  boolField(o, "developers_can_push"),
		DevelopersCanMerge: boolField(o, "developers_can_merge"),
		CanPush:            boolField(o, "can_push"),
		WebURL:             strField(o, "web_url"),
	}
	c, err := nestedObject(o, "Branch", "commit")
	if err != nil {
		return nil, err
	}
	if c != nil {
		if b.Commit, err = decodeCommit(c); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// DecodeProtectedBranch builds a ProtectedBranch with its access rules.
func DecodeProtectedBranch(o Object) (Record, error) {
	pb := &ProtectedBranch{
		ID:             intField(o, "id"),
		Name:           strField(o, "name"),
		AllowForcePush: boolField(o, "allow_force_push"),
	}
	for _, key := range []string{"push_access_levels", "merge_access_levels"} {
		arr, err := nestedArray(o, "ProtectedBranch", key)
		if err != nil {
			return nil, err
		}
		for _, e := range arr {
			obj, ok := e.(Object)
			if !ok {
				return nil, &FieldError{Base: "ProtectedBranch", Field: key, Err: ErrWrongKind}
			}
			al := decodeAccessLevel(obj)
			if key == "push_access_levels" {
				pb.PushAccessLevels = append(pb.PushAccessLevels, *al)
			} else {
				pb.MergeAccessLevels = append(pb.MergeAccessLevels, *al)
			}
		}
	}
	return pb, nil
}

// DecodeAccessLevel builds an AccessLevel record.
func DecodeAccessLevel(o Object) (Record, error) {
	return decodeAccessLevel(o), nil
}

func decodeAccessLevel(o Object) *AccessLevel {
	return &AccessLevel{
		AccessLevel:            intField(o, "access_level"),
		AccessLevelDescription: strField(o, "access_level_description"),
		UserID:                 intField(o, "user_id"),
		GroupID:                intField(o, "group_id"),
	}
}

// DecodeCommit builds a Commit record with stats and last pipeline.
func DecodeCommit(o Object) (Record, error) {
	c, err := decodeCommit(o)
	return c, err
}

func decodeCommit(o Object) (*Commit, error) {
	c := &Commit{
		ID:             strField(o, "id"),
		ShortID:        strField(o, "short_id"),
		Title:          strField(o, "title"),
		Message:        strField(o, "message"),
		AuthorName:     strField(o, "author_name"),
		AuthorEmail:    strField(o, "author_email"),
		AuthoredDate:   strField(o, "authored_date"),
		CommitterName:  strField(o, "committer_name"),
		CommitterEmail: strField(o, "committer_email"),
		CommittedDate:  strField(o, "committed_date"),
		CreatedAt:      strField(o, "created_at"),
		WebURL:         strField(o, "web_url"),
		Status:         strField(o, "status"),
		ProjectID:      intField(o, "project_id"),
		ParentIDs:      strListField(o, "parent_ids"),
		Trailers:       strMapField(o, "trailers"),
	}
	stats, err := nestedObject(o, "Commit", "stats")
	if err != nil {
		return nil, err
	}
	if stats != nil {
		c.Stats = &CommitStats{
			Additions: intField(stats, "additions"),
			Deletions: intField(stats, "deletions"),
			Total:     intField(stats, "total"),
		}
	}
	lp, err := nestedObject(o, "Commit", "last_pipeline")
	if err != nil {
		return nil, err
	}
	if lp != nil {
		c.LastPipeline = decodePipeline(lp)
	}
	return c, nil
}

// DecodeCommitStats builds a CommitStats record.
func DecodeCommitStats(o Object) (Record, error) {
	return &CommitStats{
		Additions: intField(o, "additions"),
		Deletions: intField(o, "deletions"),
		Total:     intField(o, "total"),
	}, nil
}

// DecodeCommitSignature builds a CommitSignature, recursing into the X509
// certificate and its issuer when present.
func DecodeCommitSignature(o Object) (Record, error) {
	s := &CommitSignature{
		SignatureType:      strField(o, "signature_type"),
		VerificationStatus: strField(o, "verification_status"),
		CommitSource:       strField(o, "commit_source"),
		GPGKeyID:           intField(o, "gpg_key_id"),
		GPGKeyPrimaryKeyID: strField(o, "gpg_key_primary_keyid"),
		GPGKeyUserName:     strField(o, "gpg_key_user_name"),
		GPGKeyUserEmail:    strField(o, "gpg_key_user_email"),
	}
	cert, err := nestedObject(o, "CommitSignature", "x509_certificate")
	if err != nil {
		return nil, err
	}
	if cert != nil {
		if s.X509Certificate, err = decodeX509Certificate(cert); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeX509Certificate(o Object) (*X509Certificate, error) {
	c := &X509Certificate{
		ID:                   intField(o, "id"),
		Subject:              strField(o, "subject"),
		SubjectKeyIdentifier: strField(o, "subject_key_identifier"),
		Email:                strField(o, "email"),
		SerialNumber:         strField(o, "serial_number"),
		CertificateStatus:    strField(o, "certificate_status"),
	}
	issuer, err := nestedObject(o, "X509Certificate", "x509_issuer")
	if err != nil {
		return nil, err
	}
	if issuer != nil {
		c.X509Issuer = &X509Issuer{
			ID:                   intField(issuer, "id"),
			Subject:              strField(issuer, "subject"),
			SubjectKeyIdentifier: strField(issuer, "subject_key_identifier"),
			CrlURL:               strField(issuer, "crl_url"),
		}
	}
	return c, nil
}

// DecodeDiff builds a Diff record.
func DecodeDiff(o Object) (Record, error) {
	return &Diff{
		OldPath:     strField(o, "old_path"),
		NewPath:     strField(o, "new_path"),
		AMode:       strField(o, "a_mode"),
		BMode:       strField(o, "b_mode"),
		Diff:        strField(o, "diff"),
		NewFile:     boolField(o, "new_file"),
		RenamedFile: boolField(o, "renamed_file"),
		DeletedFile: boolField(o, "deleted_file"),
	}, nil
}

// DecodeMergeRequest builds a MergeRequest with author and assignee.
func DecodeMergeRequest(o Object) (Record, error) {
	mr := &MergeRequest{
		ID:             intField(o, "id"),
		IID:            intField(o, "iid"),
		ProjectID:      intField(o, "project_id"),
		Title:          strField(o, "title"),
		Description:    strField(o, "description"),
		State:          strField(o, "state"),
		MergeStatus:    strField(o, "merge_status"),
		SourceBranch:   strField(o, "source_branch"),
		TargetBranch:   strField(o, "target_branch"),
		SHA:            strField(o, "sha"),
		MergeCommitSHA: strField(o, "merge_commit_sha"),
		Draft:          boolField(o, "draft"),
		WebURL:         strField(o, "web_url"),
		CreatedAt:      strField(o, "created_at"),
		UpdatedAt:      strField(o, "updated_at"),
		Labels:         strListField(o, "labels"),
	}
	author, err := nestedObject(o, "MergeRequest", "author")
	if err != nil {
		return nil, err
	}
	if author != nil {
		if mr.Author, err = decodeUser(author); err != nil {
			return nil, err
		}
	}
	assignee, err := nestedObject(o, "MergeRequest", "assignee")
	if err != nil {
		return nil, err
	}
	if assignee != nil {
		if mr.Assignee, err = decodeUser(assignee); err != nil {
			return nil, err
		}
	}
	return mr, nil
}

// DecodeIssue builds an Issue with author and milestone.
func DecodeIssue(o Object) (Record, error) {
	is := &Issue{
		ID:          intField(o, "id"),
		IID:         intField(o, "iid"),
		ProjectID:   intField(o, "project_id"),
		Title:       strField(o, "title"),
		Description: strField(o, "description"),
		State:       strField(o, "state"),
		DueDate:     strField(o, "due_date"),
		WebURL:      strField(o, "web_url"),
		CreatedAt:   strField(o, "created_at"),
		UpdatedAt:   strField(o, "updated_at"),
		Labels:      strListField(o, "labels"),
	}
	author, err := nestedObject(o, "Issue", "author")
	if err != nil {
		return nil, err
	}
	if author != nil {
		if is.Author, err = decodeUser(author); err != nil {
			return nil, err
		}
	}
	ms, err := nestedObject(o, "Issue", "milestone")
	if err != nil {
		return nil, err
	}
	if ms != nil {
		is.Milestone = decodeMilestone(ms)
	}
	return is, nil
}

// DecodeMilestone builds a Milestone record.
func DecodeMilestone(o Object) (Record, error) {
	return decodeMilestone(o), nil
}

func decodeMilestone(o Object) *Milestone {
	return &Milestone{
		ID:        intField(o, "id"),
		IID:       intField(o, "iid"),
		ProjectID: intField(o, "project_id"),
		GroupID:   intField(o, "group_id"),
		Title:     strField(o, "title"),
		State:     strField(o, "state"),
		DueDate:   strField(o, "due_date"),
		StartDate: strField(o, "start_date"),
		WebURL:    strField(o, "web_url"),
	}
}

// DecodeLabel builds a Label record.
func DecodeLabel(o Object) (Record, error) {
	return &Label{
		ID:                     intField(o, "id"),
		Name:                   strField(o, "name"),
		Color:                  strField(o, "color"),
		TextColor:              strField(o, "text_color"),
		Description:            strField(o, "description"),
		OpenIssuesCount:        intField(o, "open_issues_count"),
		ClosedIssuesCount:      intField(o, "closed_issues_count"),
		OpenMergeRequestsCount: intField(o, "open_merge_requests_count"),
		Subscribed:             boolField(o, "subscribed"),
		Priority:               intField(o, "priority"),
		IsProjectLabel:         boolField(o, "is_project_label"),
	}, nil
}

// DecodeTag builds a Tag with its commit and release.
func DecodeTag(o Object) (Record, error) {
	t := &Tag{
		Name:      strField(o, "name"),
		Message:   strField(o, "message"),
		Target:    strField(o, "target"),
		Protected: boolField(o, "protected"),
	}
	c, err := nestedObject(o, "Tag", "commit")
	if err != nil {
		return nil, err
	}
	if c != nil {
		if t.Commit, err = decodeCommit(c); err != nil {
			return nil, err
		}
	}
	rel, err := nestedObject(o, "Tag", "release")
	if err != nil {
		return nil, err
	}
	if rel != nil {
		if t.Release, err = decodeRelease(rel); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// DecodeRelease builds a Release with author and commit.
func DecodeRelease(o Object) (Record, error) {
	r, err := decodeRelease(o)
	return r, err
}

func decodeRelease(o Object) (*Release, error) {
	r := &Release{
		TagName:         strField(o, "tag_name"),
		Name:            strField(o, "name"),
		Description:     strField(o, "description"),
		CreatedAt:       strField(o, "created_at"),
		ReleasedAt:      strField(o, "released_at"),
		UpcomingRelease: boolField(o, "upcoming_release"),
	}
	author, err := nestedObject(o, "Release", "author")
	if err != nil {
		return nil, err
	}
	if author != nil {
		if r.Author, err = decodeUser(author); err != nil {
			return nil, err
		}
	}
	c, err := nestedObject(o, "Release", "commit")
	if err != nil {
		return nil, err
	}
	if c != nil {
		if r.Commit, err = decodeCommit(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DecodePipeline builds a Pipeline record.
func DecodePipeline(o Object) (Record, error) {
	return decodePipeline(o), nil
}

func decodePipeline(o Object) *Pipeline {
	return &Pipeline{
		ID:        intField(o, "id"),
		IID:       intField(o, "iid"),
		ProjectID: intField(o, "project_id"),
		SHA:       strField(o, "sha"),
		Ref:       strField(o, "ref"),
		Status:    strField(o, "status"),
		Source:    strField(o, "source"),
		CreatedAt: strField(o, "created_at"),
		UpdatedAt: strField(o, "updated_at"),
		WebURL:    strField(o, "web_url"),
	}
}

// DecodePipelineVariable builds a PipelineVariable record.
func DecodePipelineVariable(o Object) (Record, error) {
	return &PipelineVariable{
		Key:          strField(o, "key"),
		VariableType: strField(o, "variable_type"),
		Value:        strField(o, "value"),
	}, nil
}

// DecodeJob builds a Job with commit, pipeline, user, runner and artifacts.
func DecodeJob(o Object) (Record, error) {
	j := &Job{
		ID:           intField(o, "id"),
		Name:         strField(o, "name"),
		Stage:        strField(o, "stage"),
		Status:       strField(o, "status"),
		Ref:          strField(o, "ref"),
		CreatedAt:    strField(o, "created_at"),
		StartedAt:    strField(o, "started_at"),
		FinishedAt:   strField(o, "finished_at"),
		Duration:     floatField(o, "duration"),
		WebURL:       strField(o, "web_url"),
		AllowFailure: boolField(o, "allow_failure"),
	}
	c, err := nestedObject(o, "Job", "commit")
	if err != nil {
		return nil, err
	}
	if c != nil {
		if j.Commit, err = decodeCommit(c); err != nil {
			return nil, err
		}
	}
	p, err := nestedObject(o, "Job", "pipeline")
	if err != nil {
		return nil, err
	}
	if p != nil {
		j.Pipeline = decodePipeline(p)
	}
	u, err := nestedObject(o, "Job", "user")
	if err != nil {
		return nil, err
	}
	if u != nil {
		if j.User, err = decodeUser(u); err != nil {
			return nil, err
		}
	}
	r, err := nestedObject(o, "Job", "runner")
	if err != nil {
		return nil, err
	}
	if r != nil {
		j.Runner = decodeRunner(r)
	}
	arts, err := nestedArray(o, "Job", "artifacts")
	if err != nil {
		return nil, err
	}
	for _, e := range arts {
		obj, ok := e.(Object)
		if !ok {
			return nil, &FieldError{Base: "Job", Field: "artifacts", Err: ErrWrongKind}
		}
		j.Artifacts = append(j.Artifacts, Artifact{
			FileType:   strField(obj, "file_type"),
			Filename:   strField(obj, "filename"),
			FileFormat: strField(obj, "file_format"),
			Size:       intField(obj, "size"),
		})
	}
	return j, nil
}

// DecodeArtifact builds an Artifact record.
func DecodeArtifact(o Object) (Record, error) {
	return &Artifact{
		FileType:   strField(o, "file_type"),
		Filename:   strField(o, "filename"),
		FileFormat: strField(o, "file_format"),
		Size:       intField(o, "size"),
	}, nil
}

// DecodeRunner builds a Runner record.
func DecodeRunner(o Object) (Record, error) {
	return decodeRunner(o), nil
}

func decodeRunner(o Object) *Runner {
	return &Runner{
		ID:          intField(o, "id"),
		Description: strField(o, "description"),
		IPAddress:   strField(o, "ip_address"),
		Name:        strField(o, "name"),
		RunnerType:  strField(o, "runner_type"),
		Active:      boolField(o, "active"),
		Paused:      boolField(o, "paused"),
		IsShared:    boolField(o, "is_shared"),
		Online:      boolField(o, "online"),
		Status:      strField(o, "status"),
	}
}

// DecodeDeployToken builds a DeployToken record.
func DecodeDeployToken(o Object) (Record, error) {
	return &DeployToken{
		ID:        intField(o, "id"),
		Name:      strField(o, "name"),
		Username:  strField(o, "username"),
		ExpiresAt: strField(o, "expires_at"),
		Token:     strField(o, "token"),
		Revoked:   boolField(o, "revoked"),
		Expired:   boolField(o, "expired"),
		Scopes:    strListField(o, "scopes"),
	}, nil
}

// DecodePackage builds a Package record.
func DecodePackage(o Object) (Record, error) {
	return &Package{
		ID:          intField(o, "id"),
		Name:        strField(o, "name"),
		Version:     strField(o, "version"),
		PackageType: strField(o, "package_type"),
		Status:      strField(o, "status"),
		CreatedAt:   strField(o, "created_at"),
	}, nil
}

// DecodeEnvironment builds an Environment record.
func DecodeEnvironment(o Object) (Record, error) {
	return &Environment{
		ID:          intField(o, "id"),
		Name:        strField(o, "name"),
		Slug:        strField(o, "slug"),
		ExternalURL: strField(o, "external_url"),
		State:       strField(o, "state"),
		Tier:        strField(o, "tier"),
	}, nil
}

// DecodeWiki builds a Wiki record.
func DecodeWiki(o Object) (Record, error) {
	return &Wiki{
		Content:  strField(o, "content"),
		Format:   strField(o, "format"),
		Slug:     strField(o, "slug"),
		Title:    strField(o, "title"),
		Encoding: strField(o, "encoding"),
	}, nil
}

// DecodeTestReport builds a TestReport record.
func DecodeTestReport(o Object) (Record, error) {
	return &TestReport{
		TotalTime:    floatField(o, "total_time"),
		TotalCount:   intField(o, "total_count"),
		SuccessCount: intField(o, "success_count"),
		FailedCount:  intField(o, "failed_count"),
		SkippedCount: intField(o, "skipped_count"),
		ErrorCount:   intField(o, "error_count"),
	}, nil
}

// DecodeToDo builds a ToDo with author and project.
func DecodeToDo(o Object) (Record, error) {
	td := &ToDo{
		ID:         intField(o, "id"),
		ActionName: strField(o, "action_name"),
		TargetType: strField(o, "target_type"),
		State:      strField(o, "state"),
		Body:       strField(o, "body"),
		CreatedAt:  strField(o, "created_at"),
	}
	author, err := nestedObject(o, "ToDo", "author")
	if err != nil {
		return nil, err
	}
	if author != nil {
		if td.Author, err = decodeUser(author); err != nil {
			return nil, err
		}
	}
	proj, err := nestedObject(o, "ToDo", "project")
	if err != nil {
		return nil, err
	}
	if proj != nil {
		p, err := DecodeProject(proj)
		if err != nil {
			return nil, err
		}
		td.Project = p.(*Project)
	}
	return td, nil
}
