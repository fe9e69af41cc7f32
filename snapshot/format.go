package snapshot

import "errors"

const (
	// MagicNumber identifies gradir snapshot files (ASCII: "GRD1").
	MagicNumber = 0x47524431
	// Version is the current file format version (v1.0.0).
	Version = 0x00010000
)

// Compression selects the payload compression scheme.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionZstd compresses the payload with zstd. Default.
	CompressionZstd Compression = 1
	// CompressionLZ4 compresses the payload with lz4 block compression.
	CompressionLZ4 Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported snapshot version")
	ErrChecksumMismatch   = errors.New("snapshot checksum mismatch")
	ErrUnknownCodec       = errors.New("unknown snapshot codec")
	ErrUnknownCompression = errors.New("unknown snapshot compression")
	ErrTruncated          = errors.New("truncated snapshot")
)

// witnessRecord is the persisted form of one witness. Index sets are
// stored as capacity plus member positions; constraints as text.
type witnessRecord struct {
	Function          string `json:"function"`
	ParameterCapacity int    `json:"parameter_capacity"`
	ParameterIndices  []int  `json:"parameter_indices,omitempty"`
	ResultCapacity    int    `json:"result_capacity"`
	ResultIndices     []int  `json:"result_indices,omitempty"`
	Constraint        string `json:"constraint,omitempty"`
	Linkage           uint8  `json:"linkage"`
	BodyKind          uint8  `json:"body_kind"`
	JVP               string `json:"jvp,omitempty"`
	VJP               string `json:"vjp,omitempty"`
}
