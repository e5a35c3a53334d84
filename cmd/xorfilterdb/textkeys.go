// textkeys.go -- read uint64 keys from text files, one per line.
//
// Lines that strconv.ParseUint accepts as a uint64 with base prefixes
// (decimal, 0x hex, 0o or leading-0 octal, 0b binary, underscores
// allowed) are used directly; any other non-empty, non-comment line is
// folded into the uint64 domain with fasthash.Hash64.
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/opencoff/go-fasthash"
)

// hashSeed is fixed so that the same text file always maps to the same
// uint64 keys across runs (needed for the "rebuild" sub-command to
// reproduce the same key set from the same input).
const hashSeed uint64 = 0x7061727469636c65

func readKeysFile(fn string) ([]uint64, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return readKeysStream(fd)
}

func readKeysStream(r io.Reader) ([]uint64, error) {
	var keys []uint64

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		keys = append(keys, lineToKey(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func lineToKey(line string) uint64 {
	if v, err := strconv.ParseUint(line, 0, 64); err == nil {
		return v
	}
	return fasthash.Hash64(hashSeed, []byte(line))
}
