// Package platform provides the cross-platform filesystem primitives the
// registry store is built on: hard links, exclusive byte copies, one-level
// symlink resolution and permission handling. On Windows, where Unix
// permission bits do not exist, executability is decided by extension.
package platform
