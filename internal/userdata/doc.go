// Package userdata resolves the per-user locations gameshelf works with:
// the registry directory under the platform's user config root, and the
// ~/.gameshelf home used for configuration and logs. It also implements the
// doctor checks for the registry directory.
package userdata
