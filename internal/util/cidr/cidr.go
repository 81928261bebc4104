package cidr

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Subnet calculates a child subnet of a network prefix.
//
// Parameters:
//   - prefix: the parent prefix (e.g. "10.0.0.0/8")
//   - newbits: additional mask bits for the child (e.g. 8 for /16 inside /8)
//   - netnum: zero-based index of the child subnet
func Subnet(prefix string, newbits int, netnum int) (string, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}
	if network.IP.To4() == nil {
		return "", fmt.Errorf("only IPv4 prefixes are supported, got %s", prefix)
	}

	maskSize, totalBits := network.Mask.Size()
	newMaskSize := maskSize + newbits
	if newMaskSize > totalBits {
		return "", fmt.Errorf("prefix extension of %d bits is too large for %s", newbits, prefix)
	}

	maxSubnets := 1 << newbits
	if netnum < 0 || netnum >= maxSubnets {
		return "", fmt.Errorf("subnet number %d out of range for %d subnets", netnum, maxSubnets)
	}

	base := ipToUint(network.IP)
	subnetSize := uint64(1) << (totalBits - newMaskSize)
	child := uintToIP(base + uint64(netnum)*subnetSize)

	return fmt.Sprintf("%s/%d", child.String(), newMaskSize), nil
}

// Host calculates the address of a single host inside a network prefix.
// A negative hostnum counts backwards from the end of the range.
func Host(prefix string, hostnum int) (string, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}
	if network.IP.To4() == nil {
		return "", fmt.Errorf("only IPv4 prefixes are supported, got %s", prefix)
	}

	maskSize, totalBits := network.Mask.Size()
	maxHosts := uint64(1) << (totalBits - maskSize)

	var offset uint64
	if hostnum < 0 {
		abs := uint64(-hostnum)
		if abs > maxHosts {
			return "", fmt.Errorf("host number %d exceeds range of %s", hostnum, prefix)
		}
		offset = maxHosts - abs
	} else {
		offset = uint64(hostnum)
		if offset >= maxHosts {
			return "", fmt.Errorf("host number %d exceeds range of %s", hostnum, prefix)
		}
	}

	host := uintToIP(ipToUint(network.IP) + offset)
	return host.String(), nil
}

// Overlap reports whether two prefixes share any addresses. Two prefixes
// overlap iff either network's base address is contained in the other.
func Overlap(a, b string) (bool, error) {
	_, netA, err := net.ParseCIDR(a)
	if err != nil {
		return false, fmt.Errorf("invalid CIDR %q: %w", a, err)
	}
	_, netB, err := net.ParseCIDR(b)
	if err != nil {
		return false, fmt.Errorf("invalid CIDR %q: %w", b, err)
	}
	return netA.Contains(netB.IP) || netB.Contains(netA.IP), nil
}

// Contains reports whether a prefix contains the given address.
func Contains(prefix, addr string) (bool, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return false, fmt.Errorf("invalid CIDR %q: %w", prefix, err)
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return false, fmt.Errorf("invalid IP address %q", addr)
	}
	return network.Contains(ip), nil
}

func ipToUint(ip net.IP) uint64 {
	if ip4 := ip.To4(); ip4 != nil {
		return uint64(binary.BigEndian.Uint32(ip4))
	}
	return 0
}

func uintToIP(val uint64) net.IP {
	ip := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(ip, uint32(val))
	return ip
}
