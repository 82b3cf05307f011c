package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldPaths = "paths"
	FieldFiles = "files"

	// Document fields.
	FieldTokens     = "tokens"
	FieldStatements = "statements"
	FieldBytes      = "bytes"
	FieldKey        = "key"
	FieldValue      = "value"
	FieldRemoved    = "removed"
	FieldLanguage   = "language"
	FieldTables     = "tables"
	FieldSections   = "sections"
	FieldLinks      = "links"
	FieldCodeBlocks = "code_blocks"

	// Output fields.
	FieldWrite   = "write"
	FieldBackup  = "backup"
	FieldChanged = "changed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
