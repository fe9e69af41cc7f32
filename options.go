package gradir

import (
	"github.com/hupe1980/gradir/autodiff"
	"github.com/hupe1980/gradir/codec"
	"github.com/hupe1980/gradir/snapshot"
)

type moduleOptions struct {
	logger      *Logger
	lowerer     autodiff.Lowerer
	codec       codec.Codec
	compression snapshot.Compression
}

// Option configures Module constructor behavior.
//
// Options primarily exist to avoid exploding the API surface
// (e.g. codec-specific constructor variants).
type Option func(*moduleOptions)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *Logger) Option {
	return func(o *moduleOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLowerer sets the service that lowers declaration-relative parameter
// indices to the flattened function numbering. Defaults to
// ir.SignatureLowerer.
func WithLowerer(l autodiff.Lowerer) Option {
	return func(o *moduleOptions) {
		if l != nil {
			o.lowerer = l
		}
	}
}

// WithCodec configures the codec used for snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *moduleOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures snapshot payload compression.
// Defaults to zstd.
func WithCompression(c snapshot.Compression) Option {
	return func(o *moduleOptions) {
		o.compression = c
	}
}
