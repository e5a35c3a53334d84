// stat.go -- "xorfilterdb stat" sub-command
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

func cmdStat() {
	usg := "stat DB"
	flag.Usage = func() {
		fmt.Printf("xorfilterdb stat - print metadata about an xor filter DB\nUsage: %s\n", usg)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		die("need a DB file\nUsage: %s", usg)
	}

	rd, err := xfdb.Open(args[0])
	if err != nil {
		die("%s: %s", args[0], err)
	}
	defer rd.Close()

	fmt.Printf("%s:\n", args[0])
	fmt.Printf("  keys:       %d\n", rd.Len())
	fmt.Printf("  width:      %d bits\n", rd.Width())
	fmt.Printf("  size:       %d bytes\n", rd.SizeInBytes())
	if rd.Len() > 0 {
		fmt.Printf("  bits/key:   %.3f\n", float64(rd.SizeInBytes()*8)/float64(rd.Len()))
	}
}
