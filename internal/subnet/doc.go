// Package subnet assigns non-overlapping network ranges to projects.
//
// Two independent pools are managed: VPC-level /16 blocks carved out of
// 10.0.0.0/8 and container-network /24 blocks inside the Docker private
// range starting at 172.20.0.0/24. Index 0 of each pool is statically
// reserved for the orchestrator itself and is never reassigned. The
// allocation table is a flat YAML file, loaded whole on construction and
// rewritten atomically on every mutation; it is the sole source of truth
// for which ranges are taken.
package subnet
