//go:build windows

package errors

import (
	stderrors "errors"

	"golang.org/x/sys/windows"
)

func inUse(err error) bool {
	return stderrors.Is(err, windows.ERROR_SHARING_VIOLATION) ||
		stderrors.Is(err, windows.ERROR_LOCK_VIOLATION) ||
		stderrors.Is(err, windows.ERROR_USER_MAPPED_FILE)
}

func accessDenied(err error) bool {
	return stderrors.Is(err, windows.ERROR_ACCESS_DENIED)
}
