//go:build windows

package release

// EnforcesMappingLocks reports whether the platform refuses to delete a file
// while a view of it is mapped.
const EnforcesMappingLocks = true
