package mmap

import (
	"runtime"

	"github.com/efficientgo/core/errors"

	merrs "github.com/yuanqijing/maptrap/pkg/errors"
)

// UnsafeUnmap invalidates the mapping immediately through the raw platform
// primitive (munmap, UnmapViewOfFile), bypassing finalization. Every slice
// previously obtained from Bytes dangles afterwards and touching it faults.
//
// It fails with ErrCleanupUnavailable when the View holds no mapping or the
// platform has no unmap primitive.
func (v *View) UnsafeUnmap() error {
	if v == nil || v.h == nil {
		return errors.Wrap(merrs.ErrCleanupUnavailable, "view holds no mapping")
	}
	if v.h.unmap == nil {
		return errors.Wrapf(merrs.ErrCleanupUnavailable, "no unmap primitive on %s", runtime.GOOS)
	}
	h := v.h
	v.h = nil
	runtime.SetFinalizer(h, nil)
	if err := h.release(); err != nil {
		return errors.Wrapf(err, "unmap %s", h.path)
	}
	return nil
}
