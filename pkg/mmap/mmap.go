// Package mmap maps a whole file read-only and decodes a 32-bit integer from
// the start of the mapping.
//
// Closing the file a mapping was created from does not release the mapping.
// The mapping keeps its own reference to the file until it is unmapped, either
// explicitly (Close, UnsafeUnmap) or by a finalizer after the View has been
// abandoned and collected. On Windows the file cannot be deleted while that
// reference exists.
package mmap

import (
	"encoding/binary"
	"math"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/efficientgo/core/errors"
	"github.com/efficientgo/core/merrors"
	"k8s.io/klog/v2"

	merrs "github.com/yuanqijing/maptrap/pkg/errors"
)

// live counts mappings that were created and not yet unmapped.
var live atomic.Int64

// Live returns the number of mappings of this process that are still mapped.
func Live() int64 { return live.Load() }

type handle struct {
	path   string
	data   []byte
	unmap  func([]byte) error
	closed atomic.Bool
}

func newHandle(path string, data []byte, unmap func([]byte) error) *handle {
	h := &handle{path: path, data: data, unmap: unmap}
	live.Add(1)
	runtime.SetFinalizer(h, (*handle).finalize)
	return h
}

func (h *handle) release() error {
	if h.closed.Swap(true) {
		return nil
	}
	defer live.Add(-1)
	data := h.data
	h.data = nil
	if h.unmap == nil {
		return nil
	}
	return h.unmap(data)
}

func (h *handle) finalize() {
	if err := h.release(); err != nil {
		klog.ErrorS(err, "Unmapping collected mapping failed", "path", h.path)
		return
	}
	klog.V(4).InfoS("Collected mapping unmapped", "path", h.path)
}

// View is a read-only mapping of a whole file starting at offset 0.
// A View is not safe for concurrent use.
type View struct {
	path string
	size int
	h    *handle
}

// Open maps the file at path. The file handle is closed before Open returns;
// the mapping stays valid until the View is released.
func Open(path string) (v *View, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, merrs.Open(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			cerr = errors.Wrapf(cerr, "close %s", path)
			if err != nil {
				err = merrs.Mark(merrs.ErrMapFailed, merrors.New(err, cerr).Err())
				return
			}
			_ = v.Close()
			v, err = nil, cerr
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	size := fi.Size()
	if size == 0 {
		return nil, errors.Wrapf(merrs.ErrMapFailed, "%s: cannot map an empty file", path)
	}
	if size < 0 || size > math.MaxInt {
		return nil, errors.Wrapf(merrs.ErrMapFailed, "%s: invalid file size %d", path, size)
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, errors.Wrapf(merrs.Mark(merrs.ErrMapFailed, err), "map %s", path)
	}
	klog.V(2).InfoS("Mapped file", "path", path, "size", size)
	return &View{path: path, size: int(size), h: newHandle(path, data, unmap)}, nil
}

// OpenAndRead maps path and decodes the int32 at offset 0 using order. The
// returned View still holds the mapping. If decoding fails the mapping is
// unmapped before returning.
func OpenAndRead(path string, order binary.ByteOrder) (int32, *View, error) {
	v, err := Open(path)
	if err != nil {
		return 0, nil, err
	}
	n, err := v.Int32(order)
	if err != nil {
		if cerr := v.Close(); cerr != nil {
			err = merrs.Mark(merrs.ErrTruncatedRead, merrors.New(err, cerr).Err())
		}
		return 0, nil, err
	}
	return n, v, nil
}

// Path returns the path of the mapped file.
func (v *View) Path() string { return v.path }

// Offset returns the file offset of the mapping, which is always 0.
func (v *View) Offset() int64 { return 0 }

// Len returns the length of the mapping in bytes.
func (v *View) Len() int { return v.size }

// Bytes returns the mapped memory, or nil once the View has been released.
// The slice must not be used after the View is released.
func (v *View) Bytes() []byte {
	if v.Released() {
		return nil
	}
	return v.h.data
}

// Released reports whether the View no longer owns its mapping.
func (v *View) Released() bool {
	return v == nil || v.h == nil || v.h.closed.Load()
}

// Int32 decodes the first four mapped bytes.
func (v *View) Int32(order binary.ByteOrder) (int32, error) {
	b := v.Bytes()
	if len(b) < 4 {
		return 0, errors.Wrapf(merrs.ErrTruncatedRead, "%s: %d bytes mapped, need 4", v.path, len(b))
	}
	return int32(order.Uint32(b)), nil
}

// Close unmaps the View. It is idempotent.
func (v *View) Close() error {
	if v.h == nil {
		return nil
	}
	h := v.h
	v.h = nil
	runtime.SetFinalizer(h, nil)
	return h.release()
}

// Abandon drops the View's reference to its mapping without unmapping it.
// The mapping is unmapped by a finalizer at some point after the runtime
// notices it is unreachable; nothing here waits for that to happen.
func (v *View) Abandon() {
	v.h = nil
}
