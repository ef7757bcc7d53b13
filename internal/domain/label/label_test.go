package label

import (
	"errors"
	"testing"

	"github.com/warewise/slotkeeper/internal/domain/models"
)

func TestEncodeDecode_Location(t *testing.T) {
	coord := models.Coordinate{Rack: "A", Level: 3, Position: 12}

	token := Encode(coord)
	if token != "LOC-A-12-3" {
		t.Fatalf("expected LOC-A-12-3, got %s", token)
	}

	decoded, err := Decode(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Floor {
		t.Error("location token decoded as floor")
	}
	if decoded.Coordinate != coord {
		t.Errorf("round trip mismatch: %+v != %+v", decoded.Coordinate, coord)
	}
}

func TestEncodeDecode_Floor(t *testing.T) {
	token := EncodeFloor("FLOOR-0-0-1756380000000-ab12cd34")
	decoded, err := Decode(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !decoded.Floor {
		t.Fatal("expected floor token")
	}
	if decoded.LotID != "FLOOR-0-0-1756380000000-ab12cd34" {
		t.Errorf("unexpected lot id %s", decoded.LotID)
	}
}

func TestDecode_TrimsWhitespace(t *testing.T) {
	decoded, err := Decode("  LOC-B-1-1\n")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Coordinate.Rack != "B" {
		t.Errorf("expected rack B, got %s", decoded.Coordinate.Rack)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		"",
		"QR-A-1-1",
		"LOC-A-1",
		"LOC-A-1-1-9",
		"LOC--1-1",
		"LOC-A-x-1",
		"LOC-A-1-x",
		"LOC-A-0-1",
		"LOC-A-1-0",
		"FLR-",
	}

	for _, token := range cases {
		if _, err := Decode(token); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("Decode(%q): expected ErrMalformedToken, got %v", token, err)
		}
	}
}
