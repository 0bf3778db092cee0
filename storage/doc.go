// Package storage implements leafbase's on-disk format: a page-based file
// holding a single B-tree-shaped leaf root page of fixed-schema rows.
//
// The layering is Pager (page cache over a file descriptor) -> Table (binds
// a Pager to a root page) -> Cursor (positional iterator over leaf cells).
// Row and the node-layout helpers in node.go are pure byte-offset
// arithmetic with no knowledge of either.
package storage
