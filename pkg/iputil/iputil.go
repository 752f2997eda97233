// Package iputil converts between dotted-quad IPv4 addresses and their
// unsigned 32-bit ordinal form. The ordinal is the key space the interval
// tree operates over. IPv6 is not supported.
package iputil

import (
	"encoding/binary"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedAddress is returned when an address is not exactly four
// period-separated decimal integers, each in 0..255.
var ErrMalformedAddress = errors.New("malformed IP address")

// IP2Long converts a dotted-quad address to its uint32 ordinal, packing the
// four octets big-endian. A malformed address never yields a value; it
// always surfaces as ErrMalformedAddress.
func IP2Long(ip string) (uint32, error) {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return 0, errors.Wrapf(ErrMalformedAddress, "'%s'", ip)
	}

	var long uint32
	for _, p := range parts {
		octet, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedAddress, "'%s'", ip)
		}
		long = long<<8 | uint32(octet)
	}

	return long, nil
}

// Long2IP is the inverse of IP2Long: it unpacks the four bytes big-endian
// and renders them as a dotted quad.
func Long2IP(n uint32) string {
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, n)
	return ip.String()
}

// CIDRToIPRange expands an IPv4 CIDR block into its first and last address
// ordinals.
func CIDRToIPRange(cidr string) (start, end uint32, err error) {
	_, ipv4Net, err := net.ParseCIDR(cidr)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "could not convert CIDR '%s' to IP range", cidr)
	}

	ip4 := ipv4Net.IP.To4()
	if ip4 == nil {
		return 0, 0, errors.Errorf("CIDR '%s' is not IPv4", cidr)
	}

	mask := binary.BigEndian.Uint32(ipv4Net.Mask)
	start = binary.BigEndian.Uint32(ip4)
	end = (start & mask) | (mask ^ 0xffffffff)

	return start, end, nil
}
