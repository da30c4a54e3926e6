package serialization

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/born-ml/scatter/internal/tensor"
)

const (
	metadataKey = "__metadata__"
	// complexKey lists, comma separated, the tensors stored as (re, im) pairs.
	complexKey = "complex"
)

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// SafeTensorsWriter writes tensors in SafeTensors format.
type SafeTensorsWriter struct {
	file   *os.File
	closed bool
}

// NewSafeTensorsWriter creates a new SafeTensors file writer.
func NewSafeTensorsWriter(path string) (*SafeTensorsWriter, error) {
	//nolint:gosec // G304: output path is chosen by the caller
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &SafeTensorsWriter{file: file}, nil
}

// WriteSafeTensors writes tensors to a SafeTensors file.
// Tensors are written in alphabetical order by name.
func WriteSafeTensors(path string, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	writer, err := NewSafeTensorsWriter(path)
	if err != nil {
		return err
	}
	if err := writer.WriteTensors(tensors, metadata); err != nil {
		_ = writer.Close() // Best effort close
		return err
	}
	return writer.Close()
}

// WriteTensors writes a named tensor set to the file. A SHA-256 of the data
// section is added to the metadata.
func (w *SafeTensorsWriter) WriteTensors(tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	meta := make(map[string]string, len(metadata)+2)
	for k, v := range metadata {
		meta[k] = v
	}

	var complexNames []string
	entries := make(map[string]SafeTensorHeader, len(names))
	hash := sha256.New()
	var offset int64
	for _, name := range names {
		raw := tensors[name]
		dtype, shape, err := storedLayout(raw)
		if err != nil {
			return fmt.Errorf("tensor %s: %w", name, err)
		}
		if raw.DType().IsComplex() {
			complexNames = append(complexNames, name)
		}
		size := int64(raw.ByteSize())
		entries[name] = SafeTensorHeader{
			DType:       dtype,
			Shape:       shape,
			DataOffsets: [2]int64{offset, offset + size},
		}
		hash.Write(raw.Data())
		offset += size
	}
	if len(complexNames) > 0 {
		meta[complexKey] = strings.Join(complexNames, ",")
	}
	meta[checksumKey] = hex.EncodeToString(hash.Sum(nil))

	header := make(map[string]any, len(entries)+1)
	header[metadataKey] = meta
	for name, e := range entries {
		header[name] = e
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	buf := bufio.NewWriter(w.file)
	if err := binary.Write(buf, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := buf.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, name := range names {
		if _, err := buf.Write(tensors[name].Data()); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}
	return buf.Flush()
}

// Close closes the writer and the underlying file.
func (w *SafeTensorsWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// storedLayout returns the SafeTensors dtype and shape a tensor is written with.
func storedLayout(raw *tensor.RawTensor) (string, []int64, error) {
	shape := make([]int64, 0, len(raw.Shape())+1)
	for _, d := range raw.Shape() {
		shape = append(shape, int64(d))
	}
	switch raw.DType() {
	case tensor.Float32:
		return "F32", shape, nil
	case tensor.Float64:
		return "F64", shape, nil
	case tensor.Complex64:
		return "F32", append(shape, 2), nil
	case tensor.Complex128:
		return "F64", append(shape, 2), nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, raw.DType())
	}
}
