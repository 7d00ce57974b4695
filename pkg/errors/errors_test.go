package errors

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNotFound, "NotFound"},
		{ErrPermissionDenied, "PermissionDenied"},
		{ErrMapFailed, "MapFailed"},
		{ErrTruncatedRead, "TruncatedRead"},
		{ErrCleanupUnavailable, "CleanupUnavailable"},
		{ErrFileInUse, "FileInUse"},
		{ErrInvalidStrategyName, "InvalidStrategyName"},
		{ErrUsage, "UsageError"},
		{stderrors.New("boom"), "Unknown"},
		{nil, "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.err))
	}
}

func TestMark(t *testing.T) {
	cause := stderrors.New("cause")
	err := Mark(ErrMapFailed, cause)

	assert.ErrorIs(t, err, ErrMapFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "map failed: cause", err.Error())

	assert.Equal(t, ErrMapFailed, Mark(ErrMapFailed, nil))
}

func TestOpen(t *testing.T) {
	assert.NoError(t, Open("x", nil))

	missing := filepath.Join(t.TempDir(), "missing")
	_, oerr := os.Open(missing)
	require.Error(t, oerr)

	err := Open(missing, oerr)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), missing)

	err = Open("p", &fs.PathError{Op: "open", Path: "p", Err: fs.ErrPermission})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	other := stderrors.New("other")
	err = Open("p", other)
	assert.ErrorIs(t, err, other)
	assert.Equal(t, "Unknown", Kind(err))
}

func TestRemove(t *testing.T) {
	assert.NoError(t, Remove("p", nil, true))

	err := Remove("p", &fs.PathError{Op: "remove", Path: "p", Err: fs.ErrNotExist}, false)
	assert.Equal(t, "NotFound", Kind(err))

	err = Remove("p", &fs.PathError{Op: "remove", Path: "p", Err: fs.ErrPermission}, true)
	assert.Equal(t, "PermissionDenied", Kind(err))
}
