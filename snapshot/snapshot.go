package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Write writes a snapshot envelope to w: header, codec name, then the body
// compressed according to comp. The checksum covers the stored bytes, so
// corruption is detected before any decompression or decoding runs.
func Write(w io.Writer, codecName string, comp Compression, body []byte) error {
	if len(codecName) > maxCodecNameLen {
		return ErrCodecNameTooLong
	}

	stored, err := compress(comp, body)
	if err != nil {
		return fmt.Errorf("compress body: %w", err)
	}

	h := header{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(comp),
		Checksum:    Checksum(stored),
		BodyLen:     uint64(len(stored)),
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(len(codecName))); err != nil {
		return fmt.Errorf("write codec name length: %w", err)
	}
	if _, err := io.WriteString(w, codecName); err != nil {
		return fmt.Errorf("write codec name: %w", err)
	}
	if _, err := w.Write(stored); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// Read reads a snapshot envelope from r, validates magic, version and
// checksum, and returns the codec name and the decompressed body.
func Read(r io.Reader) (codecName string, body []byte, err error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return "", nil, fmt.Errorf("read header: %w", err)
	}
	if h.Magic != MagicNumber {
		return "", nil, ErrInvalidMagic
	}
	if h.Version != Version {
		return "", nil, ErrInvalidVersion
	}

	var nameLen uint8
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return "", nil, fmt.Errorf("read codec name length: %w", err)
	}
	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return "", nil, fmt.Errorf("read codec name: %w", err)
	}

	stored := make([]byte, h.BodyLen)
	if _, err := io.ReadFull(r, stored); err != nil {
		return "", nil, fmt.Errorf("read body: %w", err)
	}
	if Checksum(stored) != h.Checksum {
		return "", nil, ErrChecksumMismatch
	}

	body, err = decompress(Compression(h.Compression), stored)
	if err != nil {
		return "", nil, err
	}
	return string(nameBuf), body, nil
}

func compress(comp Compression, body []byte) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return body, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(body, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(body); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, ErrUnknownCompression
	}
}

func decompress(comp Compression, stored []byte) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return stored, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		body, err := dec.DecodeAll(stored, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return body, nil
	case CompressionLZ4:
		zr := lz4.NewReader(bytes.NewReader(stored))
		body, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return body, nil
	default:
		return nil, ErrUnknownCompression
	}
}
