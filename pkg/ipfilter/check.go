package ipfilter

import (
	"fmt"
	"io"
	"regexp"

	"github.com/sirupsen/logrus"
)

var matchIP = regexp.MustCompile(`(^|[^\d\.])(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})([^\d\.]|$)`)

// ScanInput reads lines from a local file or an HTTP(S) URL, finds every
// IPv4 address on each line and tests it against the filter. Matching lines
// are written to out together with the address that matched. Returns the
// number of matches.
//
// An address-shaped token that fails to parse (e.g. an octet above 255) is
// logged and skipped; it never counts as a match or a miss.
func ScanInput(f *Filter, fileOrURL string, out io.Writer) (numMatchesFound int, err error) {
	var numIPsFound int

	err = readFileOrURL(fileOrURL, func(lineNumber int, line string) error {
		matches := matchIP.FindAllStringSubmatch(line, -1)

		for _, match := range matches {
			if len(match) < 3 {
				continue
			}

			ip := match[2]
			numIPsFound++

			found, err := f.InFilter(ip)
			if err != nil {
				logrus.Warnf("line %d: %s", lineNumber, err)
				continue
			}

			if found {
				fmt.Fprintf(out, "%s  <==  %s\n", line, ip)
				numMatchesFound++
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.Debugf("found %d matches | checked %d IPs against %d ranges", numMatchesFound, numIPsFound, f.Len())

	return numMatchesFound, nil
}
