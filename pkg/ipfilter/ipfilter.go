// Package ipfilter provides a membership filter for IPv4 addresses: load a
// set of address ranges once, then ask whether individual addresses fall
// inside any of them.
package ipfilter

import (
	"github.com/anrid/ipfilter/pkg/interval"
	"github.com/anrid/ipfilter/pkg/iputil"
)

// Filter holds a set of registered address ranges. Build it up with
// AddRange/AddCIDR, then query it with InFilter. Not safe for concurrent
// mutation.
type Filter struct {
	ranges *interval.Tree
}

// New returns an empty filter.
func New() *Filter {
	return &Filter{ranges: interval.NewIntervalTree()}
}

// AddRange registers the inclusive address range [start, end]. An empty end
// defaults to start, registering a single address. The bounds may be given
// in either order. Returns iputil.ErrMalformedAddress if either bound does
// not parse.
func (f *Filter) AddRange(start, end string) error {
	if end == "" {
		end = start
	}

	lo, err := iputil.IP2Long(start)
	if err != nil {
		return err
	}
	hi, err := iputil.IP2Long(end)
	if err != nil {
		return err
	}

	f.ranges.Insert(lo, hi)
	return nil
}

// AddCIDR registers every address covered by an IPv4 CIDR block.
func (f *Filter) AddCIDR(cidr string) error {
	start, end, err := iputil.CIDRToIPRange(cidr)
	if err != nil {
		return err
	}

	f.ranges.Insert(start, end)
	return nil
}

// InFilter reports whether addr falls inside any registered range. A
// malformed address is an error, never a silent "not found".
func (f *Filter) InFilter(addr string) (bool, error) {
	n, err := iputil.IP2Long(addr)
	if err != nil {
		return false, err
	}
	return f.ranges.ContainsPoint(n), nil
}

// Len returns the number of registered ranges.
func (f *Filter) Len() int {
	return f.ranges.Len()
}
