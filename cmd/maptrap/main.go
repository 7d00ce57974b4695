// Command maptrap reads the leading int32 of a file through a memory mapping,
// releases the mapping with the selected strategy and deletes the file.
//
//	maptrap [flags] <NO_CLEANUP|UNSAFE|GC> <file_path>
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/efficientgo/core/errors"
	"k8s.io/klog/v2"

	merrs "github.com/yuanqijing/maptrap/pkg/errors"
	"github.com/yuanqijing/maptrap/pkg/lifecycle"
	"github.com/yuanqijing/maptrap/pkg/release"
)

const usage = "need: [flags] <NO_CLEANUP|UNSAFE|GC> <file_path>"

func main() {
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	klog.Flush()
	os.Exit(code)
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("maptrap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	klog.InitFlags(fs)
	byteOrder := fs.String("byte-order", "big", "byte order of the leading int32: big or little")
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	strategy, path, order, err := parseArgs(fs.Args(), *byteOrder)
	if err != nil {
		report(stderr, err)
		fmt.Fprintln(stderr, usage)
		return 1
	}

	res, err := lifecycle.Run(strategy, path, lifecycle.WithByteOrder(order))
	if err != nil {
		report(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "strategy: %v\n", res.Strategy)
	fmt.Fprintln(stdout, res.Text())
	return 0
}

func parseArgs(args []string, byteOrder string) (release.Strategy, string, binary.ByteOrder, error) {
	if len(args) != 2 {
		return 0, "", nil, errors.Wrapf(merrs.ErrUsage, "got %d arguments, want 2", len(args))
	}
	strategy, err := release.ParseStrategy(args[0])
	if err != nil {
		return 0, "", nil, err
	}
	var order binary.ByteOrder
	switch byteOrder {
	case "big":
		order = binary.BigEndian
	case "little":
		order = binary.LittleEndian
	default:
		return 0, "", nil, errors.Wrapf(merrs.ErrUsage, "unknown byte order %q", byteOrder)
	}
	return strategy, args[1], order, nil
}

func report(w io.Writer, err error) {
	fmt.Fprintf(w, "got error (%s): %v\n", merrs.Kind(err), err)
}
