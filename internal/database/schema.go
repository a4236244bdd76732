package database

// Schema DDL, applied by migration 1.
const (
	tagTableDDL = `
CREATE TABLE IF NOT EXISTS tag (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
)`

	valueTableDDL = `
CREATE TABLE IF NOT EXISTS value (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    CONSTRAINT con_value_name UNIQUE (name)
)`

	fileTableDDL = `
CREATE TABLE IF NOT EXISTS file (
    id INTEGER PRIMARY KEY,
    directory TEXT NOT NULL,
    name TEXT NOT NULL,
    fingerprint TEXT NOT NULL,
    mod_time DATETIME NOT NULL,
    size INTEGER NOT NULL,
    is_dir BOOLEAN NOT NULL,
    CONSTRAINT con_file_path UNIQUE (directory, name)
)`

	// value_id 0 means the tag was applied without a value, so it carries
	// no foreign key.
	fileTagTableDDL = `
CREATE TABLE IF NOT EXISTS file_tag (
    file_id INTEGER NOT NULL,
    tag_id INTEGER NOT NULL,
    value_id INTEGER NOT NULL,
    PRIMARY KEY (file_id, tag_id, value_id),
    FOREIGN KEY (file_id) REFERENCES file(id),
    FOREIGN KEY (tag_id) REFERENCES tag(id)
)`

	implicationTableDDL = `
CREATE TABLE IF NOT EXISTS implication (
    tag_id INTEGER NOT NULL,
    value_id INTEGER NOT NULL,
    implied_tag_id INTEGER NOT NULL,
    implied_value_id INTEGER NOT NULL,
    PRIMARY KEY (tag_id, value_id, implied_tag_id, implied_value_id)
)`

	queryTableDDL = `
CREATE TABLE IF NOT EXISTS query (
    text TEXT PRIMARY KEY
)`

	settingTableDDL = `
CREATE TABLE IF NOT EXISTS setting (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

	schemaVersionTableDDL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL
)`
)

var schemaDDL = []string{
	tagTableDDL,
	valueTableDDL,
	fileTableDDL,
	fileTagTableDDL,
	implicationTableDDL,
	queryTableDDL,
	settingTableDDL,
}

// Index DDL, applied by migration 2.
var indexDDL = []string{
	`CREATE INDEX IF NOT EXISTS idx_tag_name ON tag(name)`,
	`CREATE INDEX IF NOT EXISTS idx_file_fingerprint ON file(fingerprint)`,
	`CREATE INDEX IF NOT EXISTS idx_file_tag_file_id ON file_tag(file_id)`,
	`CREATE INDEX IF NOT EXISTS idx_file_tag_tag_id ON file_tag(tag_id)`,
	`CREATE INDEX IF NOT EXISTS idx_file_tag_value_id ON file_tag(value_id)`,
}
