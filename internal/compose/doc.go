// Package compose assembles per-addon deployment fragments into a single
// deployment descriptor.
//
// Each resolved addon contributes a compose fragment template, an
// environment variable schema, and provisioning task fragments. The merger
// renders and combines them into the three artifacts handed to the external
// provisioning tools: a unified services/volumes/networks document, a flat
// environment listing, and a concatenated task list. Merging is fully
// deterministic: the same inputs always produce byte-identical output.
package compose
