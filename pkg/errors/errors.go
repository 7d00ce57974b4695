// Package errors defines the failure taxonomy of a map/read/release/delete run
// and classifies raw OS errors into it.
package errors

import (
	stderrors "errors"
	"io/fs"

	"github.com/efficientgo/core/errors"
)

var (
	ErrNotFound            = stderrors.New("not found")
	ErrPermissionDenied    = stderrors.New("permission denied")
	ErrMapFailed           = stderrors.New("map failed")
	ErrTruncatedRead       = stderrors.New("truncated read")
	ErrCleanupUnavailable  = stderrors.New("cleanup unavailable")
	ErrFileInUse           = stderrors.New("file in use")
	ErrInvalidStrategyName = stderrors.New("invalid strategy name")
	ErrUsage               = stderrors.New("usage error")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrNotFound, "NotFound"},
	{ErrPermissionDenied, "PermissionDenied"},
	{ErrMapFailed, "MapFailed"},
	{ErrTruncatedRead, "TruncatedRead"},
	{ErrCleanupUnavailable, "CleanupUnavailable"},
	{ErrFileInUse, "FileInUse"},
	{ErrInvalidStrategyName, "InvalidStrategyName"},
	{ErrUsage, "UsageError"},
}

// Kind returns the taxonomy name of err, or "Unknown".
func Kind(err error) string {
	for _, k := range kinds {
		if stderrors.Is(err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}

// Mark attaches sentinel to cause so that both errors.Is(err, sentinel) and
// errors.Is(err, cause) hold.
func Mark(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &marked{sentinel: sentinel, cause: cause}
}

type marked struct {
	sentinel error
	cause    error
}

func (m *marked) Error() string { return m.sentinel.Error() + ": " + m.cause.Error() }

func (m *marked) Unwrap() error { return m.cause }

func (m *marked) Is(target error) bool { return target == m.sentinel }

// Open classifies an error returned while opening path.
func Open(path string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(classify(err), "open %s", path)
}

// Remove classifies an error returned while deleting path. mappingsLive reports
// whether any mapping is still held by this process; Windows reports a delete
// blocked by a live view as access denied on some versions.
func Remove(path string, err error, mappingsLive bool) error {
	if err == nil {
		return nil
	}
	if inUse(err) || (mappingsLive && accessDenied(err)) {
		return errors.Wrapf(Mark(ErrFileInUse, err), "delete %s", path)
	}
	return errors.Wrapf(classify(err), "delete %s", path)
}

func classify(err error) error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return Mark(ErrNotFound, err)
	case stderrors.Is(err, fs.ErrPermission):
		return Mark(ErrPermissionDenied, err)
	}
	return err
}
