// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes from the database driver and converts them into
// client-facing HTTP errors (e.g. a foreign key violation on notes.folderid
// becomes "The referenced Folder does not exist" with status 400).
package sqlerr
