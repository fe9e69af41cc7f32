package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/gradir/autodiff"
	"github.com/hupe1980/gradir/blobstore"
	"github.com/hupe1980/gradir/codec"
	"github.com/hupe1980/gradir/indexset"
	"github.com/hupe1980/gradir/ir"
)

type options struct {
	codec       codec.Codec
	compression Compression
}

// Option configures snapshot encoding.
type Option func(*options)

// WithCodec selects the payload codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression selects the payload compression. Defaults to zstd.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// Encode writes the witnesses as a snapshot to w.
func Encode(w io.Writer, witnesses []*autodiff.Witness, optFns ...Option) error {
	opts := options{
		codec:       codec.Default,
		compression: CompressionZstd,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	records := make([]witnessRecord, len(witnesses))
	for i, wit := range witnesses {
		records[i] = toRecord(wit)
	}

	encoded, err := opts.codec.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode witness records: %w", err)
	}

	compression := opts.compression
	payload, err := compress(compression, encoded)
	if err != nil {
		return err
	}
	if len(payload) >= len(encoded) {
		// Incompressible payloads are stored raw.
		compression = CompressionNone
		payload = encoded
	}

	var buf bytes.Buffer
	codecName := opts.codec.Name()
	binary.Write(&buf, binary.LittleEndian, uint32(MagicNumber))
	binary.Write(&buf, binary.LittleEndian, uint32(Version))
	binary.Write(&buf, binary.LittleEndian, uint16(len(codecName)))
	buf.WriteString(codecName)
	buf.WriteByte(byte(compression))
	binary.Write(&buf, binary.LittleEndian, uint64(len(encoded)))
	binary.Write(&buf, binary.LittleEndian, uint64(len(payload)))
	buf.Write(payload)
	binary.Write(&buf, binary.LittleEndian, checksum(buf.Bytes()))

	_, err = w.Write(buf.Bytes())
	return err
}

// Decode reads a snapshot and reconstructs its witnesses.
func Decode(r io.Reader) ([]*autodiff.Witness, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 4+4+2+1+8+8+4 {
		return nil, ErrTruncated
	}

	body, footer := data[:len(data)-4], data[len(data)-4:]
	if binary.LittleEndian.Uint32(footer) != checksum(body) {
		return nil, ErrChecksumMismatch
	}

	buf := bytes.NewReader(body)
	var magic, version uint32
	if err := binary.Read(buf, binary.LittleEndian, &magic); err != nil {
		return nil, ErrTruncated
	}
	if err := binary.Read(buf, binary.LittleEndian, &version); err != nil {
		return nil, ErrTruncated
	}
	if magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if version != Version {
		return nil, ErrInvalidVersion
	}

	var nameLen uint16
	if err := binary.Read(buf, binary.LittleEndian, &nameLen); err != nil {
		return nil, ErrTruncated
	}
	codecName := make([]byte, nameLen)
	if _, err := io.ReadFull(buf, codecName); err != nil {
		return nil, ErrTruncated
	}
	c, ok := codec.ByName(string(codecName))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	compByte, err := buf.ReadByte()
	if err != nil {
		return nil, ErrTruncated
	}
	compression := Compression(compByte)

	var uncompressedLen, payloadLen uint64
	if err := binary.Read(buf, binary.LittleEndian, &uncompressedLen); err != nil {
		return nil, ErrTruncated
	}
	if err := binary.Read(buf, binary.LittleEndian, &payloadLen); err != nil {
		return nil, ErrTruncated
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(buf, payload); err != nil {
		return nil, ErrTruncated
	}

	encoded, err := decompress(compression, payload, int(uncompressedLen))
	if err != nil {
		return nil, err
	}

	var records []witnessRecord
	if err := c.Unmarshal(encoded, &records); err != nil {
		return nil, fmt.Errorf("decode witness records: %w", err)
	}

	witnesses := make([]*autodiff.Witness, 0, len(records))
	for _, rec := range records {
		w, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		witnesses = append(witnesses, w)
	}
	return witnesses, nil
}

// Publish encodes the registry's witnesses and writes them to the store.
func Publish(ctx context.Context, store blobstore.Store, name string, reg *autodiff.Registry, optFns ...Option) error {
	var buf bytes.Buffer
	if err := Encode(&buf, reg.All(), optFns...); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// Fetch reads a snapshot from the store and restores its witnesses into
// the registry. Existing registry entries win; the number of newly
// inserted witnesses is returned.
func Fetch(ctx context.Context, store blobstore.Store, name string, reg *autodiff.Registry) (int, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return 0, err
	}
	witnesses, err := Decode(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, w := range witnesses {
		if _, created := reg.InsertIfAbsent(w); created {
			inserted++
		}
	}
	return inserted, nil
}

func toRecord(w *autodiff.Witness) witnessRecord {
	rec := witnessRecord{
		Function:          w.FunctionName,
		ParameterCapacity: w.Config.Parameters.Capacity(),
		ParameterIndices:  w.Config.Parameters.Indices(),
		ResultCapacity:    w.Config.Results.Capacity(),
		ResultIndices:     w.Config.Results.Indices(),
		Linkage:           uint8(w.Linkage),
		BodyKind:          uint8(w.Body.Kind),
		JVP:               w.Body.JVP,
		VJP:               w.Body.VJP,
	}
	if w.Config.Constraint != nil {
		rec.Constraint = w.Config.Constraint.String()
	}
	return rec
}

func fromRecord(rec witnessRecord) (*autodiff.Witness, error) {
	params, err := indexset.New(rec.ParameterCapacity, rec.ParameterIndices...)
	if err != nil {
		return nil, fmt.Errorf("witness %q parameter indices: %w", rec.Function, err)
	}
	results, err := indexset.New(rec.ResultCapacity, rec.ResultIndices...)
	if err != nil {
		return nil, fmt.Errorf("witness %q result indices: %w", rec.Function, err)
	}

	var constraint autodiff.Constraint
	if rec.Constraint != "" {
		constraint = ir.TextConstraint(rec.Constraint)
	}

	return &autodiff.Witness{
		FunctionName: rec.Function,
		Config: autodiff.Config{
			Parameters: params,
			Results:    results,
			Constraint: constraint,
		},
		Linkage: autodiff.Linkage(rec.Linkage),
		Body: autodiff.Body{
			Kind: autodiff.BodyKind(rec.BodyKind),
			JVP:  rec.JVP,
			VJP:  rec.VJP,
		},
	}, nil
}

func compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer func() { _ = enc.Close() }()
		return enc.EncodeAll(data, nil), nil
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// Incompressible; caller falls back to raw storage.
			return data, nil
		}
		return buf[:n], nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

func decompress(c Compression, payload []byte, uncompressedLen int) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(payload, nil)
	case CompressionLZ4:
		out := make([]byte, uncompressedLen)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		return out[:n], nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
