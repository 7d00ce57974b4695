// Package release decides how the OS resources behind a mapped view are given
// back before the mapped file is deleted.
package release

import (
	"runtime"
	"strconv"

	"github.com/efficientgo/core/errors"
	"k8s.io/klog/v2"

	merrs "github.com/yuanqijing/maptrap/pkg/errors"
	"github.com/yuanqijing/maptrap/pkg/mmap"
)

// Strategy selects how a view's mapping is released.
type Strategy int

const (
	// NoCleanup leaves the mapping alone. Closing the file handle is all that
	// happened, so the mapping is held until the process exits or the runtime
	// happens to collect the view.
	NoCleanup Strategy = iota
	// ForcedUnsafeRelease unmaps immediately through the raw platform call.
	ForcedUnsafeRelease
	// DeferredGcRelease drops the view's mapping and asks the runtime for a
	// collection. The mapping is unmapped by a finalizer with no deadline.
	DeferredGcRelease
)

var tokens = map[string]Strategy{
	"NO_CLEANUP": NoCleanup,
	"UNSAFE":     ForcedUnsafeRelease,
	"GC":         DeferredGcRelease,
}

// ParseStrategy maps a command line token to a Strategy. Matching is case
// sensitive.
func ParseStrategy(token string) (Strategy, error) {
	s, ok := tokens[token]
	if !ok {
		return 0, errors.Wrapf(merrs.ErrInvalidStrategyName, "%q, want one of NO_CLEANUP, UNSAFE, GC", token)
	}
	return s, nil
}

func (s Strategy) String() string {
	switch s {
	case NoCleanup:
		return "NO_CLEANUP"
	case ForcedUnsafeRelease:
		return "UNSAFE"
	case DeferredGcRelease:
		return "GC"
	}
	return "Strategy(" + strconv.Itoa(int(s)) + ")"
}

// Release gives up view according to s. view must not be used afterwards.
func Release(view *mmap.View, s Strategy) error {
	if view == nil {
		return errors.Wrap(merrs.ErrCleanupUnavailable, "no view to release")
	}
	switch s {
	case NoCleanup:
		klog.V(2).InfoS("Leaving mapping in place", "path", view.Path(), "enforcesMappingLocks", EnforcesMappingLocks)
		return nil
	case ForcedUnsafeRelease:
		return ForceUnmap(view)
	case DeferredGcRelease:
		requestCollection(view)
		return nil
	}
	return errors.Wrapf(merrs.ErrInvalidStrategyName, "%v", s)
}

// requestCollection makes the mapping unreachable and triggers a collection.
// The finalizer that unmaps runs later on the runtime's finalizer goroutine;
// there is no way to wait for it from here, so a following delete may still
// find the file mapped.
func requestCollection(view *mmap.View) {
	path := view.Path()
	view.Abandon()
	runtime.GC()
	klog.V(2).InfoS("Requested collection of abandoned mapping", "path", path, "liveMappings", mmap.Live())
}
