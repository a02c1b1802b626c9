package game

import (
	"context"
	"strings"
	"testing"

	"stars-server/internal/planet"
)

func TestSummaryCodec(t *testing.T) {
	summaries := make([]planet.Summary, 200)
	for i := range summaries {
		summaries[i] = planet.Summary{ID: i + 1, Name: "Proxima", X: i * 13, Y: 400 - i}
	}

	data, err := encodeSummaries(summaries)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected compressed output")
	}

	decoded, err := decodeSummaries(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != len(summaries) || decoded[199] != summaries[199] {
		t.Errorf("Decoded summaries differ from the originals")
	}

	if _, err := decodeSummaries([]byte("not lz4")); err == nil {
		t.Error("Expected error decoding garbage")
	}
}

func TestSummaryKey(t *testing.T) {
	key := summaryKey("abc", 2400)
	if key != "game:abc:planets:2400" {
		t.Errorf("Unexpected key %q", key)
	}
}

func TestNoopSummaryCache(t *testing.T) {
	var c SummaryCache = NoopSummaryCache{}
	if err := c.Set(context.Background(), "k", []planet.Summary{{ID: 1}}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok, err := c.Get(context.Background(), "k"); ok || err != nil {
		t.Errorf("Expected a miss, got ok=%v err=%v", ok, err)
	}
}

func TestStateChecksum(t *testing.T) {
	u := testUniverse(t)

	data, checksum, err := encodeState(u)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(checksum) != 64 {
		t.Errorf("Expected 256-bit hex checksum, got %q", checksum)
	}

	// Key order and whitespace change the bytes but not the universe.
	spaced := strings.ReplaceAll(string(data), ",", ", ")
	decoded, err := decodeState([]byte(spaced), checksum)
	if err != nil {
		t.Fatalf("Expected reformatted state to verify, got %v", err)
	}
	if len(decoded.Planets) != len(u.Planets) {
		t.Errorf("Expected %d planets, got %d", len(u.Planets), len(decoded.Planets))
	}

	tampered := strings.Replace(string(data), `"population":0`, `"population":1`, 1)
	if _, err := decodeState([]byte(tampered), checksum); err == nil {
		t.Error("Expected tampered state to fail verification")
	}
}
