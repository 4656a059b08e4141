// Package persistence reads and writes starmap dataset bundles.
//
// A bundle is a small header (magic + format version) followed by a
// zstd-compressed msgpack encoding of the dataset. Bundles are produced by
// the dataset builder and consumed once at load time; nothing in the query
// path touches this package.
package persistence

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/frontiermaps/starmap/pkg/core/starmap"
)

// bundleMagic identifies a starmap bundle; bundleVersion is bumped on any
// incompatible layout change.
var bundleMagic = []byte("SMAP")

const bundleVersion = byte(1)

// EncodeDataset serializes ds into the bundle format. Compression runs at
// the encoder's strongest level: bundles are written once by the build
// pipeline and shipped with deployments, so encode time is irrelevant next
// to transfer size.
func EncodeDataset(ds starmap.Dataset) ([]byte, error) {
	payload, err := msgpack.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(bundleMagic)
	buf.WriteByte(bundleVersion)

	zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, fmt.Errorf("compress dataset: %w", err)
	}
	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		return nil, fmt.Errorf("compress dataset: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDataset parses a bundle produced by EncodeDataset. It validates the
// header before touching the payload and rejects anything it does not
// recognise; structural validation of the dataset itself (ids, gates)
// happens when an engine is opened over it.
func DecodeDataset(raw []byte) (starmap.Dataset, error) {
	if len(raw) < len(bundleMagic)+1 || !bytes.Equal(raw[:len(bundleMagic)], bundleMagic) {
		return starmap.Dataset{}, fmt.Errorf("not a starmap bundle")
	}
	if v := raw[len(bundleMagic)]; v != bundleVersion {
		return starmap.Dataset{}, fmt.Errorf("unsupported bundle version %d", v)
	}

	zr, err := zstd.NewReader(bytes.NewReader(raw[len(bundleMagic)+1:]))
	if err != nil {
		return starmap.Dataset{}, fmt.Errorf("decompress dataset: %w", err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return starmap.Dataset{}, fmt.Errorf("decompress dataset: %w", err)
	}

	var ds starmap.Dataset
	if err := msgpack.Unmarshal(payload, &ds); err != nil {
		return starmap.Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// WriteFile encodes ds and writes it to path atomically (write to a temp
// file in the same directory, then rename).
func WriteFile(ds starmap.Dataset, path string) error {
	raw, err := EncodeDataset(ds)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".starmap-*")
	if err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write bundle: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}

// ReadFile loads and decodes the bundle at path.
func ReadFile(path string) (starmap.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return starmap.Dataset{}, fmt.Errorf("read bundle: %w", err)
	}
	return DecodeDataset(raw)
}
