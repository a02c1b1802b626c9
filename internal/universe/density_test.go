package universe

import (
	"encoding/json"
	"testing"
)

func TestDefaultDensitiesAreComplete(t *testing.T) {
	if err := DefaultDensities.Validate(); err != nil {
		t.Fatalf("Expected default density table to be complete, got %v", err)
	}
}

func TestDensityTableValidateMissingCell(t *testing.T) {
	table := DensityTable{}
	for k, v := range DefaultDensities {
		table[k] = v
	}
	delete(table, DensityKey{SizeLarge, DensityDense})

	if err := table.Validate(); err == nil {
		t.Error("Expected error for missing large/dense cell")
	}

	table[DensityKey{SizeLarge, DensityDense}] = 0
	if err := table.Validate(); err == nil {
		t.Error("Expected error for zero density")
	}
}

func TestTargetPlanetCount(t *testing.T) {
	tests := []struct {
		size    SizeClass
		density DensityClass
		want    int
	}{
		{SizeTiny, DensitySparse, 24},
		{SizeTiny, DensityPacked, 48},
		{SizeSmall, DensityNormal, 128},
		{SizeMedium, DensityDense, 360},
		{SizeLarge, DensityPacked, 768},
		{SizeHuge, DensityNormal, 800},
		{SizeHuge, DensityDense, 980},
		{SizeHuge, DensityPacked, 998},
	}

	for _, tt := range tests {
		got, ok := DefaultDensities.TargetPlanetCount(tt.size, tt.density)
		if !ok {
			t.Fatalf("%s/%s: missing density", tt.size, tt.density)
		}
		if got != tt.want {
			t.Errorf("%s/%s: expected %d planets, got %d", tt.size, tt.density, tt.want, got)
		}
	}
}

func TestTargetPlanetCountRoundsHalfUp(t *testing.T) {
	// 0.03125 * 400² / 10000 = 0.5 exactly.
	table := DensityTable{{SizeTiny, DensitySparse}: 0.03125}
	got, _ := table.TargetPlanetCount(SizeTiny, DensitySparse)
	if got != 1 {
		t.Errorf("Expected 0.5 to round up to 1, got %d", got)
	}

	if roundHalfUp(2.49) != 2 || roundHalfUp(2.5) != 3 || roundHalfUp(0) != 0 {
		t.Error("Unexpected roundHalfUp results")
	}
}

func TestSizeClassSides(t *testing.T) {
	want := map[SizeClass]int{
		SizeTiny:   400,
		SizeSmall:  800,
		SizeMedium: 1200,
		SizeLarge:  1600,
		SizeHuge:   2000,
	}
	for s, side := range want {
		if s.Side() != side {
			t.Errorf("%s: expected side %d, got %d", s, side, s.Side())
		}
	}
}

func TestEnumTextEncoding(t *testing.T) {
	type setup struct {
		Size     SizeClass        `json:"size"`
		Density  DensityClass     `json:"density"`
		Distance StartingDistance `json:"distance"`
	}

	var s setup
	if err := json.Unmarshal([]byte(`{"size":"Medium","density":"packed","distance":"distant"}`), &s); err != nil {
		t.Fatalf("Failed to decode setup: %v", err)
	}
	if s.Size != SizeMedium || s.Density != DensityPacked || s.Distance != DistanceDistant {
		t.Errorf("Unexpected decoded setup: %+v", s)
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Failed to encode setup: %v", err)
	}
	if string(out) != `{"size":"medium","density":"packed","distance":"distant"}` {
		t.Errorf("Unexpected encoding: %s", out)
	}

	if err := json.Unmarshal([]byte(`{"size":"gigantic"}`), &s); err == nil {
		t.Error("Expected error for unknown size")
	}
	if _, err := json.Marshal(setup{Size: SizeClass(42)}); err == nil {
		t.Error("Expected error encoding an invalid size")
	}
}
