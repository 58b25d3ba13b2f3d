// Package store implements the directory-backed entry table. Each registered
// entry is exactly one filesystem object inside the registry directory: a
// hard link to the dropped file, a byte copy (web shortcuts, or when linking
// is impossible), or a symlink created by an older install. The directory
// listing is the index; nothing else is persisted.
package store
