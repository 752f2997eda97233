package main

import (
	"fmt"
	"os"

	"github.com/anrid/ipfilter/pkg/ipfilter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	ipRangesFileOrURL := pflag.String("ip-ranges", "", "Path or URL to a file with IP ranges to filter against. Accepts CIDR blocks, 'start-end' ranges and single addresses, one per line, or a CSV file with CIDRs in the first column.")
	inputFileOrURL := pflag.StringP("input-file", "i", "", "Path or URL to an input file to scan. The program finds all IP addresses on each line and tests them against the loaded ranges. Omit it to check addresses given as arguments instead.")
	verbose := pflag.Bool("verbose", false, "Verbose output, helps when troubleshooting.")

	pflag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *ipRangesFileOrURL == "" || (*inputFileOrURL == "" && pflag.NArg() == 0) {
		pflag.Usage()
		os.Exit(-1)
	}

	f := ipfilter.New()

	_, err := ipfilter.LoadRanges(f, *ipRangesFileOrURL)
	if err != nil {
		logrus.Fatalf("could not load IP ranges: %s", err)
	}

	if *inputFileOrURL != "" {
		matches, err := ipfilter.ScanInput(f, *inputFileOrURL, os.Stdout)
		if err != nil {
			logrus.Fatalf("could not scan input: %s", err)
		}

		fmt.Printf("\nFound %d matches | Checked against %d ranges\n", matches, f.Len())
		return
	}

	// One-shot checks of addresses given on the command line.
	exitCode := 0

	for _, addr := range pflag.Args() {
		found, err := f.InFilter(addr)
		if err != nil {
			logrus.Fatalf("could not check address: %s", err)
		}

		fmt.Printf("%-16s %t\n", addr, found)

		if !found {
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}
