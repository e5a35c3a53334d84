// rebuild.go -- "xorfilterdb rebuild" sub-command: atomically refresh
// an existing DB file in place from updated key files.
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

func cmdRebuild() {
	var width, retryBudget int

	usg := "rebuild [options] DB INPUT [INPUT ...]"
	flag.IntVarP(&width, "width", "w", 8, "Use `W`-bit fingerprints (8 or 16)")
	flag.IntVarP(&retryBudget, "retry-budget", "r", 100, "Give up peeling after `N` reseed attempts")
	flag.Usage = func() {
		fmt.Printf("xorfilterdb rebuild - atomically replace an existing DB from refreshed key files\nUsage: %s\n", usg)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		die("need a DB file and at least one input file\nUsage: %s", usg)
	}

	seen := make(map[uint64]bool)
	var keys []uint64
	for _, fn := range args[1:] {
		ks, err := readKeysFile(fn)
		if err != nil {
			die("%s: %s", fn, err)
		}
		for _, k := range ks {
			if seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
	}

	if err := xfdb.Rebuild(args[0], keys, width, retryBudget); err != nil {
		die("rebuild failed: %s", err)
	}

	fmt.Printf("%s: rebuilt with %d keys, width=%d\n", args[0], len(keys), width)
}
