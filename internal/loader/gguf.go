package loader

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"textgend/internal/backend"
)

// GGUF metadata value types.
const (
	ggufTypeUint8   = 0
	ggufTypeInt8    = 1
	ggufTypeUint16  = 2
	ggufTypeInt16   = 3
	ggufTypeUint32  = 4
	ggufTypeInt32   = 5
	ggufTypeFloat32 = 6
	ggufTypeBool    = 7
	ggufTypeString  = 8
	ggufTypeArray   = 9
	ggufTypeUint64  = 10
	ggufTypeInt64   = 11
	ggufTypeFloat64 = 12
)

// readGGUFInfo validates the GGUF magic and walks the metadata key/value
// section to read back vocabulary size, embedding width and layer count.
// Tensor data is never touched.
func readGGUFInfo(path string) (backend.Info, error) {
	var info backend.Info

	f, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return info, fmt.Errorf("read magic: %w", err)
	}
	if string(magic[:]) != "GGUF" {
		return info, fmt.Errorf("not a GGUF file")
	}
	var version uint32
	if err := binary.Read(f, binary.LittleEndian, &version); err != nil {
		return info, err
	}
	if version < 2 {
		return info, fmt.Errorf("unsupported GGUF version %d", version)
	}
	var tensorCount, kvCount uint64
	if err := binary.Read(f, binary.LittleEndian, &tensorCount); err != nil {
		return info, err
	}
	if err := binary.Read(f, binary.LittleEndian, &kvCount); err != nil {
		return info, err
	}

	for i := uint64(0); i < kvCount; i++ {
		key, err := readGGUFString(f)
		if err != nil {
			return info, fmt.Errorf("kv %d key: %w", i, err)
		}
		var typ uint32
		if err := binary.Read(f, binary.LittleEndian, &typ); err != nil {
			return info, err
		}
		val, n, err := readGGUFValue(f, typ)
		if err != nil {
			return info, fmt.Errorf("kv %q: %w", key, err)
		}
		switch {
		case strings.HasSuffix(key, ".embedding_length"):
			info.HiddenSize = int(val)
		case strings.HasSuffix(key, ".block_count"):
			info.NumLayers = int(val)
		case strings.HasSuffix(key, ".vocab_size"):
			info.VocabSize = int(val)
		case key == "tokenizer.ggml.tokens" && info.VocabSize == 0:
			info.VocabSize = int(n)
		}
	}
	return info, nil
}

// readGGUFValue consumes one metadata value of the given type. It returns the
// value for integer types (0 otherwise) and the element count for arrays.
func readGGUFValue(r io.Reader, typ uint32) (int64, uint64, error) {
	switch typ {
	case ggufTypeUint8, ggufTypeInt8, ggufTypeBool:
		var v uint8
		err := binary.Read(r, binary.LittleEndian, &v)
		return int64(v), 0, err
	case ggufTypeUint16, ggufTypeInt16:
		var v uint16
		err := binary.Read(r, binary.LittleEndian, &v)
		return int64(v), 0, err
	case ggufTypeUint32, ggufTypeInt32, ggufTypeFloat32:
		var v uint32
		err := binary.Read(r, binary.LittleEndian, &v)
		if typ == ggufTypeFloat32 {
			return 0, 0, err
		}
		return int64(v), 0, err
	case ggufTypeUint64, ggufTypeInt64, ggufTypeFloat64:
		var v uint64
		err := binary.Read(r, binary.LittleEndian, &v)
		if typ == ggufTypeFloat64 {
			return 0, 0, err
		}
		return int64(v), 0, err
	case ggufTypeString:
		_, err := readGGUFString(r)
		return 0, 0, err
	case ggufTypeArray:
		var elemType uint32
		if err := binary.Read(r, binary.LittleEndian, &elemType); err != nil {
			return 0, 0, err
		}
		var count uint64
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return 0, 0, err
		}
		for i := uint64(0); i < count; i++ {
			if _, _, err := readGGUFValue(r, elemType); err != nil {
				return 0, 0, err
			}
		}
		return 0, count, nil
	default:
		return 0, 0, fmt.Errorf("unknown value type %d", typ)
	}
}

func readGGUFString(r io.Reader) (string, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > 1<<20 {
		return "", fmt.Errorf("string length %d exceeds limit", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
