// Package cidr provides IPv4 CIDR arithmetic for subnet planning.
//
// The helpers mirror the usual infrastructure-tooling semantics: carving
// child subnets out of a parent prefix, addressing individual hosts inside
// a prefix, and testing two prefixes for overlap. Only IPv4 is supported;
// project networks are always IPv4.
package cidr
