//go:build !unix && !windows

package mmap

import (
	"os"
	"runtime"

	"github.com/efficientgo/core/errors"
)

func osMap(*os.File, int) ([]byte, func([]byte) error, error) {
	return nil, nil, errors.Newf("memory mapping is not supported on %s", runtime.GOOS)
}
