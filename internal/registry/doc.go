// Package registry owns the ordered list of registered entries and their
// icons. It rebuilds the list from the store at startup, appends entries as
// files are registered, and launches entries by display index. Renderers
// subscribe to notifications rather than holding their own copy of the list.
package registry
