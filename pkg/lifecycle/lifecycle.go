// Package lifecycle runs one open, map, read, release, delete cycle over a
// file and reports what happened.
package lifecycle

import (
	"runtime"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/efficientgo/core/errors"
	"k8s.io/klog/v2"

	merrs "github.com/yuanqijing/maptrap/pkg/errors"
	"github.com/yuanqijing/maptrap/pkg/mmap"
	"github.com/yuanqijing/maptrap/pkg/release"
)

// Result is the outcome of a successful Run.
type Result struct {
	Value    int32
	Strategy release.Strategy
}

// Text returns the decoded value in decimal.
func (r *Result) Text() string {
	return strconv.FormatInt(int64(r.Value), 10)
}

// Run reads the int32 at the start of path through a memory mapping, releases
// the mapping with strategy s and then deletes path.
//
// Nothing is deleted when reading fails. A delete that fails because the
// mapping is still held is reported as ErrFileInUse; with NoCleanup that is
// the expected outcome on platforms where release.EnforcesMappingLocks is
// true. No step is retried.
func Run(s release.Strategy, path string, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	value, view, err := mmap.OpenAndRead(path, o.order)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	klog.V(2).InfoS("Read mapped value", "path", path, "value", value, "mappedBytes", view.Len())

	if err := release.Release(view, s); err != nil {
		return nil, errors.Wrapf(err, "release with %v", s)
	}

	if err := o.remove(path); err != nil {
		err = merrs.Remove(path, err, mmap.Live() > 0)
		klog.ErrorS(err, "Delete failed", "path", path, "strategy", s, "liveMappings", mmap.Live())
		return nil, err
	}
	if !view.Released() {
		klog.InfoS("Deleted file while its mapping is still held; this platform does not enforce mapping locks",
			"path", path, "strategy", s)
	}
	// Under NoCleanup the mapping stays held across the delete attempt.
	runtime.KeepAlive(view)

	res := &Result{Value: value, Strategy: s}
	if v := klog.V(4); v.Enabled() {
		v.InfoS("Run finished", "result", spew.Sdump(res))
	}
	return res, nil
}
