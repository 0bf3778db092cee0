package storage

import "encoding/binary"

// NodeType is the tag stored in the first byte of every page.
type NodeType uint8

const (
	// NodeInternal marks a page as an internal B-tree node. Nothing
	// constructs one today; kept as a named value so a future split has
	// somewhere to point a type tag.
	NodeInternal NodeType = 0
	// NodeLeaf marks a page as a leaf node: a dense array of (key, row) cells.
	NodeLeaf NodeType = 1
)

// Common node header layout, present at the start of every page regardless
// of node type.
const (
	nodeTypeOffset   = 0
	nodeTypeSize     = 1
	isRootOffset     = nodeTypeOffset + nodeTypeSize
	isRootSize       = 1
	parentPtrOffset  = isRootOffset + isRootSize
	parentPtrSize    = 8
	commonHeaderSize = nodeTypeSize + isRootSize + parentPtrSize // 10

	// CommonNodeHeaderSize is exported for the `.constants` command.
	CommonNodeHeaderSize = commonHeaderSize
)

// Leaf node header layout, immediately following the common header.
const (
	leafNumCellsOffset = commonHeaderSize
	leafNumCellsSize   = 4
	// LeafNodeHeaderSize is the byte offset at which the first cell begins.
	LeafNodeHeaderSize = commonHeaderSize + leafNumCellsSize // 14
)

// Leaf node cell layout: a (4-byte key, RowSize-byte value) pair.
const (
	leafKeyOffset = 0
	leafKeySize   = 4
	// LeafNodeValueSize is the size in bytes of a cell's value region.
	LeafNodeValueSize = RowSize
	leafValueOffset   = leafKeyOffset + leafKeySize
	// LeafNodeCellSize is the size in bytes of one (key, value) cell.
	LeafNodeCellSize = leafKeySize + LeafNodeValueSize
	// LeafNodeSpaceForCells is the number of bytes in a page available to cells.
	LeafNodeSpaceForCells = PageSize - LeafNodeHeaderSize
	// LeafNodeMaxCells is the largest number of cells a single leaf page can hold.
	LeafNodeMaxCells = LeafNodeSpaceForCells / LeafNodeCellSize
)

// nodeKind reads the type tag from byte 0 of the page.
func nodeKind(page []byte) NodeType {
	return NodeType(page[nodeTypeOffset])
}

func setNodeKind(page []byte, kind NodeType) {
	page[nodeTypeOffset] = byte(kind)
}

func isRootPage(page []byte) bool {
	return page[isRootOffset] != 0
}

func setIsRootPage(page []byte, isRoot bool) {
	if isRoot {
		page[isRootOffset] = 1
	} else {
		page[isRootOffset] = 0
	}
}

// parentPointer returns the parent page pointer. Written on leaf
// initialization but never consulted by this single-leaf core.
func parentPointer(page []byte) uint64 {
	return binary.LittleEndian.Uint64(page[parentPtrOffset : parentPtrOffset+parentPtrSize])
}

func setParentPointer(page []byte, parent uint64) {
	binary.LittleEndian.PutUint64(page[parentPtrOffset:parentPtrOffset+parentPtrSize], parent)
}

// leafNumCells reads the cell count from a leaf node's header.
func leafNumCells(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[leafNumCellsOffset : leafNumCellsOffset+leafNumCellsSize])
}

func setLeafNumCells(page []byte, n uint32) {
	binary.LittleEndian.PutUint32(page[leafNumCellsOffset:leafNumCellsOffset+leafNumCellsSize], n)
}

// leafCellOffset returns the byte offset of the cellNum-th cell within page.
func leafCellOffset(cellNum uint32) uint32 {
	return LeafNodeHeaderSize + cellNum*LeafNodeCellSize
}

// leafCell returns the raw bytes of the cellNum-th cell (key and value).
func leafCell(page []byte, cellNum uint32) []byte {
	off := leafCellOffset(cellNum)
	return page[off : off+LeafNodeCellSize]
}

// leafKey reads the key of the cellNum-th cell.
func leafKey(page []byte, cellNum uint32) uint32 {
	cell := leafCell(page, cellNum)
	return binary.LittleEndian.Uint32(cell[leafKeyOffset : leafKeyOffset+leafKeySize])
}

func setLeafKey(page []byte, cellNum uint32, key uint32) {
	cell := leafCell(page, cellNum)
	binary.LittleEndian.PutUint32(cell[leafKeyOffset:leafKeyOffset+leafKeySize], key)
}

// leafValue returns the value region of the cellNum-th cell: RowSize bytes
// the row codec serializes into and deserializes from.
func leafValue(page []byte, cellNum uint32) []byte {
	cell := leafCell(page, cellNum)
	return cell[leafValueOffset : leafValueOffset+LeafNodeValueSize]
}

// initializeLeafNode resets page to an empty leaf node. It does not zero
// the remainder of the page: a freshly allocated page buffer is already
// zero-filled by the pager, and cells written later overwrite only the
// bytes they occupy.
func initializeLeafNode(page []byte) {
	setNodeKind(page, NodeLeaf)
	setIsRootPage(page, true)
	setParentPointer(page, 0)
	setLeafNumCells(page, 0)
}
