package ipfilter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/anrid/ipfilter/pkg/iputil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestBasicRange(t *testing.T) {
	r := require.New(t)

	f := New()
	r.NoError(f.AddRange("10.0.0.10", "10.0.0.50"))

	tests := []struct {
		IP            string
		ShouldBeFound bool
	}{
		{"10.0.0.10", true},
		{"10.0.0.25", true},
		{"10.0.0.50", true},
		{"10.0.0.9", false},
		{"10.0.0.51", false},
	}

	for _, tc := range tests {
		found, err := f.InFilter(tc.IP)
		r.NoError(err)
		r.Equal(tc.ShouldBeFound, found, "ip %s", tc.IP)
	}
}

func TestSingleAddressRange(t *testing.T) {
	r := require.New(t)

	f := New()
	r.NoError(f.AddRange("10.0.0.5", ""))

	found, err := f.InFilter("10.0.0.5")
	r.NoError(err)
	r.True(found)

	found, err = f.InFilter("10.0.0.6")
	r.NoError(err)
	r.False(found)
}

func TestReversedRangeArguments(t *testing.T) {
	r := require.New(t)

	f := New()
	r.NoError(f.AddRange("10.0.0.50", "10.0.0.10"))

	found, err := f.InFilter("10.0.0.25")
	r.NoError(err)
	r.True(found)

	found, err = f.InFilter("10.0.0.51")
	r.NoError(err)
	r.False(found)
}

func TestMalformedAddresses(t *testing.T) {
	r := require.New(t)

	f := New()

	err := f.AddRange("10.0.0.999", "")
	r.True(errors.Is(err, iputil.ErrMalformedAddress))

	err = f.AddRange("10.0.0", "")
	r.True(errors.Is(err, iputil.ErrMalformedAddress))

	err = f.AddRange("10.0.0.1", "10.0.0.banana")
	r.True(errors.Is(err, iputil.ErrMalformedAddress))

	// A failed AddRange must not register anything.
	r.Equal(0, f.Len())

	r.NoError(f.AddRange("10.0.0.1", "10.0.0.10"))

	// Unparseable queries surface the error instead of a silent miss.
	_, err = f.InFilter("10.0.0")
	r.True(errors.Is(err, iputil.ErrMalformedAddress))
}

func TestAddCIDR(t *testing.T) {
	r := require.New(t)

	f := New()
	r.NoError(f.AddCIDR("192.168.1.0/24"))

	tests := []struct {
		IP            string
		ShouldBeFound bool
	}{
		{"192.168.1.0", true},
		{"192.168.1.128", true},
		{"192.168.1.255", true},
		{"192.168.0.255", false},
		{"192.168.2.0", false},
	}

	for _, tc := range tests {
		found, err := f.InFilter(tc.IP)
		r.NoError(err)
		r.Equal(tc.ShouldBeFound, found, "ip %s", tc.IP)
	}

	r.Error(f.AddCIDR("not-a-cidr"))
}

func TestLoadRanges(t *testing.T) {
	r := require.New(t)

	feed := filepath.Join(t.TempDir(), "ranges.txt")
	err := os.WriteFile(feed, []byte(`# test blocklist | someone | https://example.com (2 CIDRs, 1 IPs)
10.10.10.0/24

172.16.0.1 - 172.16.0.100
203.0.113.7
`), 0644)
	r.NoError(err)

	f := New()
	n, err := LoadRanges(f, feed)
	r.NoError(err)
	r.Equal(3, n)
	r.Equal(3, f.Len())

	tests := []struct {
		IP            string
		ShouldBeFound bool
	}{
		{"10.10.10.99", true},
		{"10.10.11.0", false},
		{"172.16.0.50", true},
		{"172.16.0.101", false},
		{"203.0.113.7", true},
		{"203.0.113.8", false},
	}

	for _, tc := range tests {
		found, err := f.InFilter(tc.IP)
		r.NoError(err)
		r.Equal(tc.ShouldBeFound, found, "ip %s", tc.IP)
	}
}

func TestLoadRangesCSV(t *testing.T) {
	r := require.New(t)

	feed := filepath.Join(t.TempDir(), "ranges.csv")
	err := os.WriteFile(feed, []byte(`cidr,first,last,vendor
10.20.0.0/16,10.20.0.0,10.20.255.255,AWS
198.51.100.0/24,198.51.100.0,198.51.100.255,GCP
`), 0644)
	r.NoError(err)

	f := New()
	n, err := LoadRanges(f, feed)
	r.NoError(err)
	r.Equal(2, n)

	found, err := f.InFilter("10.20.30.40")
	r.NoError(err)
	r.True(found)

	found, err = f.InFilter("198.51.101.1")
	r.NoError(err)
	r.False(found)
}

func TestLoadRangesBadFeed(t *testing.T) {
	r := require.New(t)

	feed := filepath.Join(t.TempDir(), "ranges.txt")
	err := os.WriteFile(feed, []byte("10.0.0.1\n10.0.0.999\n"), 0644)
	r.NoError(err)

	f := New()
	_, err = LoadRanges(f, feed)
	r.Error(err)
	r.True(errors.Is(err, iputil.ErrMalformedAddress))
}

func TestScanInput(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()

	feed := filepath.Join(dir, "ranges.txt")
	err := os.WriteFile(feed, []byte("10.0.0.0/8\n"), 0644)
	r.NoError(err)

	input := filepath.Join(dir, "input.txt")
	err = os.WriteFile(input, []byte(`connection from 10.1.2.3 port 22
connection from 11.1.2.3 port 80
bogus address 10.1.2.999 ignored
two hits 10.0.0.1 and 10.255.255.255 here
`), 0644)
	r.NoError(err)

	f := New()
	_, err = LoadRanges(f, feed)
	r.NoError(err)

	var out bytes.Buffer
	matches, err := ScanInput(f, input, &out)
	r.NoError(err)
	r.Equal(3, matches)
	r.Contains(out.String(), "10.1.2.3")
	r.NotContains(out.String(), "11.1.2.3")
}
