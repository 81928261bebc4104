// Package state persists per-project deployment snapshots and computes the
// change-set between desired configuration and the last applied state.
//
// A snapshot records the entity lists (VMs, addon instances, apps) that were
// last applied, together with a timestamp and a content hash of the
// configuration source. The plan engine never fails: an absent or corrupt
// snapshot is treated as a first run, and deleting the snapshot file is the
// defined way to reset a project's planning history.
package state
