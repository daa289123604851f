package protocol

import "testing"

func TestGridPayload_RoundTrip(t *testing.T) {
	raw := make([]byte, 2*100*40)
	for i := range raw {
		raw[i] = byte(i * 7)
	}

	data, err := EncodeGridPayload(raw)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeGridPayload(data, len(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range raw {
		if got[i] != raw[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], raw[i])
		}
	}
}

func TestGridPayload_LengthGuard(t *testing.T) {
	data, err := EncodeGridPayload([]byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeGridPayload(data, 8); err == nil {
		t.Fatalf("wrong expected length accepted")
	}
}

func TestGridPayload_BadBase64(t *testing.T) {
	if _, err := DecodeGridPayload("!!!not-base64!!!", 4); err == nil {
		t.Fatalf("garbage input accepted")
	}
}

func TestDecodeBase(t *testing.T) {
	m, err := DecodeBase([]byte(`{"type":"ACT","protocol_version":"1.0","tick":3}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Type != TypeAct || m.ProtocolVersion != Version {
		t.Fatalf("base = %+v", m)
	}
	if _, err := DecodeBase([]byte(`{`)); err == nil {
		t.Fatalf("truncated JSON accepted")
	}
}

func TestIsKnownCode(t *testing.T) {
	for _, c := range []string{"", ErrProtoBadRequest, ErrBadRequest, ErrOutOfBounds, ErrInvalidTarget, ErrInternal} {
		if !IsKnownCode(c) {
			t.Fatalf("%q should be known", c)
		}
	}
	if IsKnownCode("E_NOPE") {
		t.Fatalf("unknown code accepted")
	}
}
