package store

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	username TEXT,
	name TEXT,
	state TEXT,
	avatar_url TEXT,
	web_url TEXT,
	email TEXT,
	created_at TEXT
);

CREATE TABLE IF NOT EXISTS namespaces (
	id INTEGER PRIMARY KEY,
	name TEXT,
	path TEXT,
	kind TEXT,
	full_path TEXT,
	parent_id INTEGER,
	web_url TEXT
);

CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY,
	name TEXT,
	path TEXT,
	path_with_namespace TEXT,
	description TEXT,
	default_branch TEXT,
	visibility TEXT,
	web_url TEXT,
	ssh_url_to_repo TEXT,
	http_url_to_repo TEXT,
	created_at TEXT,
	last_activity_at TEXT,
	forks_count INTEGER,
	star_count INTEGER,
	archived BOOLEAN,
	namespace_id INTEGER REFERENCES namespaces(id),
	owner_id INTEGER REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS project_tags (
	project_id INTEGER NOT NULL REFERENCES projects(id),
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (project_id, position)
);

CREATE TABLE IF NOT EXISTS labels (
	id INTEGER PRIMARY KEY,
	project_id INTEGER REFERENCES projects(id),
	name TEXT,
	color TEXT,
	text_color TEXT,
	description TEXT,
	priority INTEGER,
	is_project_label BOOLEAN
);

CREATE TABLE IF NOT EXISTS pipelines (
	id INTEGER PRIMARY KEY,
	iid INTEGER,
	project_id INTEGER,
	sha TEXT,
	ref TEXT,
	status TEXT,
	source TEXT,
	created_at TEXT,
	updated_at TEXT,
	web_url TEXT
);

CREATE TABLE IF NOT EXISTS commits (
	id TEXT PRIMARY KEY,
	short_id TEXT,
	title TEXT,
	message TEXT,
	author_name TEXT,
	author_email TEXT,
	authored_date TEXT,
	committer_name TEXT,
	committer_email TEXT,
	committed_date TEXT,
	created_at TEXT,
	web_url TEXT,
	status TEXT,
	project_id INTEGER,
	additions INTEGER,
	deletions INTEGER,
	total INTEGER,
	trailers TEXT,
	last_pipeline_id INTEGER REFERENCES pipelines(id)
);

CREATE TABLE IF NOT EXISTS commit_parents (
	commit_id TEXT NOT NULL REFERENCES commits(id),
	position INTEGER NOT NULL,
	parent_id TEXT NOT NULL,
	PRIMARY KEY (commit_id, position)
);

CREATE TABLE IF NOT EXISTS branches (
	name TEXT PRIMARY KEY,
	merged BOOLEAN,
	protected BOOLEAN,
	is_default BOOLEAN,
	can_push BOOLEAN,
	web_url TEXT,
	commit_id TEXT REFERENCES commits(id)
);

CREATE TABLE IF NOT EXISTS releases (
	tag_name TEXT PRIMARY KEY,
	name TEXT,
	description TEXT,
	created_at TEXT,
	released_at TEXT,
	upcoming_release BOOLEAN,
	author_id INTEGER REFERENCES users(id),
	commit_id TEXT REFERENCES commits(id)
);

CREATE TABLE IF NOT EXISTS tags (
	name TEXT PRIMARY KEY,
	message TEXT,
	target TEXT,
	protected BOOLEAN,
	commit_id TEXT REFERENCES commits(id),
	release_tag TEXT REFERENCES releases(tag_name)
);

CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY,
	name TEXT,
	stage TEXT,
	status TEXT,
	ref TEXT,
	created_at TEXT,
	started_at TEXT,
	finished_at TEXT,
	duration REAL,
	web_url TEXT,
	allow_failure BOOLEAN,
	commit_id TEXT REFERENCES commits(id),
	pipeline_id INTEGER REFERENCES pipelines(id),
	user_id INTEGER REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS artifacts (
	job_id INTEGER NOT NULL REFERENCES jobs(id),
	filename TEXT NOT NULL,
	file_type TEXT,
	file_format TEXT,
	size INTEGER,
	PRIMARY KEY (job_id, filename)
);

CREATE TABLE IF NOT EXISTS merge_requests (
	id INTEGER PRIMARY KEY,
	iid INTEGER,
	project_id INTEGER,
	title TEXT,
	description TEXT,
	state TEXT,
	merge_status TEXT,
	source_branch TEXT,
	target_branch TEXT,
	sha TEXT,
	merge_commit_sha TEXT,
	draft BOOLEAN,
	web_url TEXT,
	created_at TEXT,
	updated_at TEXT,
	author_id INTEGER REFERENCES users(id),
	assignee_id INTEGER REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS mr_labels (
	merge_request_id INTEGER NOT NULL REFERENCES merge_requests(id),
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (merge_request_id, position)
);

CREATE TABLE IF NOT EXISTS deploy_tokens (
	id INTEGER PRIMARY KEY,
	name TEXT,
	username TEXT,
	expires_at TEXT,
	revoked BOOLEAN,
	expired BOOLEAN,
	scopes TEXT
);

CREATE TABLE IF NOT EXISTS sync_runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	finished_at TEXT,
	status TEXT NOT NULL,
	endpoints INTEGER NOT NULL DEFAULT 0,
	rows_written INTEGER NOT NULL DEFAULT 0,
	error TEXT
);

CREATE INDEX IF NOT EXISTS idx_commits_project ON commits(project_id);
CREATE INDEX IF NOT EXISTS idx_pipelines_project ON pipelines(project_id);
CREATE INDEX IF NOT EXISTS idx_mrs_project ON merge_requests(project_id);
CREATE INDEX IF NOT EXISTS idx_labels_project ON labels(project_id);
`
