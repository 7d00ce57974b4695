package release

import (
	"github.com/efficientgo/core/errors"
	"k8s.io/klog/v2"

	"github.com/yuanqijing/maptrap/pkg/mmap"
)

// ForceUnmap is the unsafe release path. It unmaps view through the raw
// platform primitive right away. Any slice still pointing into the mapping
// dangles after this returns.
//
// This is for tests and demonstrations only: correct code releases a mapping
// by closing its owner, not by reaching for the primitive. A platform without
// the primitive yields ErrCleanupUnavailable.
func ForceUnmap(view *mmap.View) error {
	var path string
	if view != nil {
		path = view.Path()
	}
	if err := view.UnsafeUnmap(); err != nil {
		return errors.Wrap(err, "forced release")
	}
	klog.V(2).InfoS("Force unmapped view", "path", path)
	return nil
}
