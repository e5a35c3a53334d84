// verify.go -- "xorfilterdb verify" sub-command
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

func cmdVerify() {
	var cache int

	usg := "verify [options] DB INPUT [INPUT ...]"
	flag.IntVarP(&cache, "cache", "c", 0, "Use an ARC cache of size `N` for repeated lookups (0 disables)")
	flag.Usage = func() {
		fmt.Printf("xorfilterdb verify - check that all keys in INPUT are members of DB\nUsage: %s\n", usg)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		die("need a DB file and at least one input file\nUsage: %s", usg)
	}

	rd, err := xfdb.Open(args[0])
	if err != nil {
		die("%s: %s", args[0], err)
	}
	defer rd.Close()

	contains := rd.Contains
	if cache > 0 {
		cr, err := xfdb.NewCachedReader(rd, cache)
		if err != nil {
			die("%s: %s", args[0], err)
		}
		defer cr.Close()
		contains = cr.Contains
	}

	var checked, missing int
	for _, fn := range args[1:] {
		keys, err := readKeysFile(fn)
		if err != nil {
			die("%s: %s", fn, err)
		}
		for _, k := range keys {
			checked++
			if !contains(k) {
				missing++
				fmt.Printf("MISSING %#x\n", k)
			}
		}
	}

	fmt.Printf("%s: checked %d keys, %d missing\n", args[0], checked, missing)
	if missing > 0 {
		die("%d of %d keys not found in %s (no false negatives are expected for members)", missing, checked, args[0])
	}
}
