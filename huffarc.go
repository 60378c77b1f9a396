// Package huffarc provides a lossless multi-file archiver based on canonical Huffman coding.
//
// Each file is coded with its own Huffman code, built from the byte statistics of the file
// content and its name. An archive is one continuous bit stream of per-file blocks:
//
//	header   9 bit symbol count K, K 9 bit symbols in canonical order,
//	         9 bit count of codes of each length from 1 to the longest
//	name     the coded bytes of the file name, then the FilenameEnd code
//	payload  the coded bytes of the file, then the OneMoreFile or ArchiveEnd code
//
// Blocks are not byte aligned; only the end of the archive is padded with zero bits.
// There is no magic number nor any global header.
//
// Below is an example of archiving two files and extracting them into another directory:
//
//	go run compress/main.go out.huf a.txt b.bin
//	go run decompress/main.go -C extracted out.huf
package huffarc

import (
	"fmt"
)

// Symbols of the archive alphabet. Values below 256 are literal bytes.
const (
	FilenameEnd = 256
	OneMoreFile = 257
	ArchiveEnd  = 258

	// AlphabetSize is the number of symbols.
	AlphabetSize = 259

	// ArchivedByte is the width in bits of any header field holding a symbol or a count.
	ArchivedByte = 9
)

var (
	// ErrCorrupt is returned when an archive is malformed, including when it ends before
	// its ArchiveEnd symbol.
	ErrCorrupt = fmt.Errorf("corrupt archive")

	// ErrClosed is returned when coding continues past the last file of an archive.
	ErrClosed = fmt.Errorf("archive already ended")

	// ErrNoFiles is returned when asked to create an archive of no files.
	ErrNoFiles = fmt.Errorf("no files to archive")

	// ErrUnsafeName is returned for file names that are empty or point outside the target directory.
	ErrUnsafeName = fmt.Errorf("unsafe file name")
)

// A FileStat describes one file coded into an archive.
type FileStat struct {
	Name       string
	Size       int64  // bytes of content
	Symbols    int    // distinct symbols in the file's code, sentinels included
	MaxCodeLen int    // longest code in bits
	Bits       uint64 // bits of the file's block, header included
}
