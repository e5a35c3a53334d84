// build.go -- "xorfilterdb build" sub-command
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package main

import (
	"fmt"

	"github.com/opencoff/go-xorfilter/xfdb"
	flag "github.com/opencoff/pflag"
)

func cmdBuild() {
	var width, retryBudget int

	usg := "build [options] OUTPUT INPUT [INPUT ...]"
	flag.IntVarP(&width, "width", "w", 8, "Use `W`-bit fingerprints (8 or 16)")
	flag.IntVarP(&retryBudget, "retry-budget", "r", 100, "Give up peeling after `N` reseed attempts")
	flag.Usage = func() {
		fmt.Printf("xorfilterdb build - create an xor filter DB from text key files\nUsage: %s\n", usg)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		die("need an output file and at least one input file\nUsage: %s", usg)
	}

	out := args[0]
	w, err := xfdb.NewWriter(out, width)
	if err != nil {
		die("%s: %s", out, err)
	}
	w.SetRetryBudget(retryBudget)

	var added, skipped int
	for _, fn := range args[1:] {
		keys, err := readKeysFile(fn)
		if err != nil {
			w.Abort()
			die("%s: %s", fn, err)
		}
		for _, k := range keys {
			if err := w.Add(k); err != nil {
				if err == xfdb.ErrDuplicateKey {
					skipped++
					continue
				}
				w.Abort()
				die("%s: %s", fn, err)
			}
			added++
		}
	}

	if err := w.Freeze(); err != nil {
		die("freeze failed: %s", err)
	}

	fmt.Printf("%s: %d keys written (%d duplicates skipped), width=%d\n", out, added, skipped, width)
}
