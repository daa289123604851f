package protocol

import (
	"encoding/base64"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// GridEncoding is the only cell-payload encoding this version speaks.
const GridEncoding = "zstd+base64"

// EncodeGridPayload compresses a raw cell byte stream (2 bytes per cell:
// material kind, active flag) for the WORLD message.
func EncodeGridPayload(raw []byte) (string, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return "", err
	}
	defer enc.Close()
	return base64.StdEncoding.EncodeToString(enc.EncodeAll(raw, nil)), nil
}

// DecodeGridPayload reverses EncodeGridPayload. wantLen guards against
// truncated or padded payloads.
func DecodeGridPayload(data string, wantLen int) ([]byte, error) {
	comp, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("grid payload: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(comp, nil)
	if err != nil {
		return nil, fmt.Errorf("grid payload: %w", err)
	}
	if len(raw) != wantLen {
		return nil, fmt.Errorf("grid payload: got %d bytes, want %d", len(raw), wantLen)
	}
	return raw, nil
}
