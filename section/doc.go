// Package section defines the low-level binary structures and constants
// for the .ibt file layout: the fixed FileHeader, the DiskSubHeader that
// follows it contiguously, and the N-entry VarHeader array located at a
// separate absolute offset.
//
// # File Layout
//
//	┌─────────────────────────────────────────────────────────┐
//	│ FileHeader (112 bytes, 28 little-endian int32 fields)    │
//	├─────────────────────────────────────────────────────────┤
//	│ DiskSubHeader (32 bytes, follows contiguously)           │
//	├─────────────────────────────────────────────────────────┤
//	│ ... (session info, var headers, and samples are located  │
//	│      by absolute offsets declared in FileHeader, not by  │
//	│      adjacency to the regions above)                     │
//	└─────────────────────────────────────────────────────────┘
//
// Every type in this package decodes from a byte slice and never writes
// one back out: producing .ibt files is outside this module's scope.
package section
