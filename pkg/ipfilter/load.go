package ipfilter

import (
	"bufio"
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LoadRanges populates f from a plain-text range feed, read from a local
// file or an HTTP(S) URL. Each line holds one of:
//
//	a.b.c.d/nn        CIDR block
//	a.b.c.d-e.f.g.h   inclusive address range
//	a.b.c.d           single address
//
// Lines starting with '#' are comments; the firehol ipset format uses them
// to name the source blocklist, so they are logged at debug level. Returns
// the number of ranges loaded.
func LoadRanges(f *Filter, fileOrURL string) (numRanges int, err error) {
	logrus.Debugf("reading IP ranges from %s", fileOrURL)

	if strings.HasSuffix(fileOrURL, ".csv") {
		return loadRangesCSV(f, fileOrURL)
	}

	err = readFileOrURL(fileOrURL, func(lineNumber int, line string) error {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}

		if line[0] == '#' {
			logrus.Debugf("range source: %s", strings.TrimSpace(line[1:]))
			return nil
		}

		switch {
		case strings.ContainsRune(line, '/'):
			err := f.AddCIDR(line)
			if err != nil {
				return errors.Wrapf(err, "line %d", lineNumber)
			}
		case strings.ContainsRune(line, '-'):
			start, end, ok := strings.Cut(line, "-")
			if !ok {
				return errors.Errorf("line %d: bad range: %s", lineNumber, line)
			}
			err := f.AddRange(strings.TrimSpace(start), strings.TrimSpace(end))
			if err != nil {
				return errors.Wrapf(err, "line %d", lineNumber)
			}
		default:
			err := f.AddRange(line, "")
			if err != nil {
				return errors.Wrapf(err, "line %d", lineNumber)
			}
		}

		numRanges++
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.Debugf("loaded %d IP ranges", numRanges)
	return numRanges, nil
}

// loadRangesCSV populates f from a CSV feed whose first column is a CIDR
// block. The first record is assumed to be a header and skipped.
func loadRangesCSV(f *Filter, fileOrURL string) (numRanges int, err error) {
	err = readCSVFileOrURL(fileOrURL, func(recordNumber int, record []string) error {
		if recordNumber == 1 {
			// Skip headers.
			return nil
		}
		if len(record) == 0 {
			return nil
		}

		err := f.AddCIDR(record[0])
		if err != nil {
			return errors.Wrapf(err, "record %d", recordNumber)
		}

		numRanges++
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.Debugf("loaded %d IP ranges", numRanges)
	return numRanges, nil
}

func readCSVFileOrURL(fileOrURL string, forEachRecord func(recordNumber int, record []string) error) error {
	file, err := localFile(fileOrURL)
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return errors.Wrapf(err, "failed to open CSV file: %s", file)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	var recordNumber int

	for {
		rec, err := cr.Read()
		if err != nil {
			if err != io.EOF {
				return errors.Wrapf(err, "failed to read CSV record from file: %s", file)
			}
			// We're done.
			break
		}

		recordNumber++
		err = forEachRecord(recordNumber, rec)
		if err != nil {
			return errors.Wrapf(err, "failed to process CSV record")
		}
	}

	return nil
}

func readFileOrURL(fileOrURL string, forEachLine func(lineNumber int, line string) error) error {
	file, err := localFile(fileOrURL)
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return errors.Wrapf(err, "failed to open file: %s", file)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lineNumber int

	for scanner.Scan() {
		lineNumber++

		err := forEachLine(lineNumber, scanner.Text())
		if err != nil {
			return errors.Wrapf(err, "failed to process line")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "failed to read line from file: %s", file)
	}

	return nil
}

// localFile returns a local path for fileOrURL, downloading to a temp file
// when the argument is not an existing file.
func localFile(fileOrURL string) (string, error) {
	_, err := os.Stat(fileOrURL)
	if err == nil {
		return fileOrURL, nil
	}
	if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, "got unexpected error when trying to stat file (or URL): %s", fileOrURL)
	}

	// Treat this as a URL. Download its contents to a local temp location.
	return downloadURLToTempFile(fileOrURL)
}

func downloadURLToTempFile(url string) (filename string, err error) {
	res, err := http.Get(url)
	if err != nil {
		return "", errors.Wrapf(err, "failed to download data from URL: %s", url)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return "", errors.Errorf("failed to download data from URL: %s - got status code: %d", url, res.StatusCode)
	}

	f, err := os.CreateTemp(os.TempDir(), "ipfilter-ranges")
	if err != nil {
		return "", errors.Wrapf(err, "failed to create a temp file to store data in")
	}
	defer f.Close()

	_, err = io.Copy(f, res.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read data from HTTP response from URL: %s", url)
	}

	return f.Name(), nil
}
