//go:build !windows

package release

// EnforcesMappingLocks reports whether the platform refuses to delete a file
// while a view of it is mapped. Unix unlinks the name and keeps the inode
// alive until the last mapping goes away.
const EnforcesMappingLocks = false
