package section

const (
	// FileHeaderSize is the fixed byte size of the FileHeader: 28
	// little-endian int32 fields.
	FileHeaderSize = 28 * 4

	// DiskSubHeaderSize is the fixed byte size of the DiskSubHeader
	// that follows the FileHeader contiguously.
	DiskSubHeaderSize = 32

	// VarHeaderSize is the fixed byte size of one VarHeader entry in
	// the variable-header array.
	VarHeaderSize = 144

	// VarNameLen, VarDescLen, and VarUnitLen are the fixed widths of
	// the three null-terminated ASCII string fields within a VarHeader.
	VarNameLen = 32
	VarDescLen = 64
	VarUnitLen = 32

	// MinAbsoluteOffset is the smallest valid absolute byte offset for
	// any of the three file regions located outside the fixed header:
	// they may not overlap the FileHeader or the DiskSubHeader that
	// follows it contiguously (112 + 32 = 144 bytes).
	MinAbsoluteOffset = FileHeaderSize + DiskSubHeaderSize
)
