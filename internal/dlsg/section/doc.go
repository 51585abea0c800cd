// Package section owns the typed declaration tree.
//
// Ownership boundary:
// - section catalog and per-section field layouts
// - tree build from a record cursor
// - tree write back to records
// - indexed child append
//
// Layout invariants:
// - a section starts with a marker record, "@" followed by its tag
// - fixed fields follow the marker in declared order
// - indexed children carry the child tag plus 3-digit ids (parent id first)
//   and are regenerated from position on write
package section
