package models

import "testing"

func TestApplyAggregates(t *testing.T) {
	c := &Container{ID: 1, FixedWeight: 100}
	pieces := []*Piece{
		{ID: 1, BoxID: 1, Weight: 10, VWeight: 2, Status: PieceStatusAvailable},
		{ID: 2, BoxID: 1, Weight: 5, VWeight: 1, Status: PieceStatusSold},
		{ID: 3, BoxID: 2, Weight: 99, VWeight: 99, Status: PieceStatusAvailable}, // other container
	}

	c.ApplyAggregates(pieces)

	if c.NetWeight != 10 {
		t.Errorf("NetWeight = %v, want 10", c.NetWeight)
	}
	if c.VariableWeight != 2 {
		t.Errorf("VariableWeight = %v, want 2", c.VariableWeight)
	}
	if c.GrossWeight != 110 {
		t.Errorf("GrossWeight = %v, want 110", c.GrossWeight)
	}
	if c.TotalAll != 112 {
		t.Errorf("TotalAll = %v, want 112", c.TotalAll)
	}
	if c.TotalPieces != 2 {
		t.Errorf("TotalPieces = %v, want 2 (sold pieces stay attached)", c.TotalPieces)
	}
}

func TestApplyAggregatesEmpty(t *testing.T) {
	c := &Container{ID: 7, FixedWeight: 50, NetWeight: 123, TotalPieces: 9}

	c.ApplyAggregates(nil)

	if c.NetWeight != 0 || c.VariableWeight != 0 {
		t.Errorf("empty container should have zero weight sums, got net=%v variable=%v", c.NetWeight, c.VariableWeight)
	}
	if c.GrossWeight != 50 || c.TotalAll != 50 {
		t.Errorf("empty container gross/total should equal tare, got gross=%v total=%v", c.GrossWeight, c.TotalAll)
	}
	if c.TotalPieces != 0 {
		t.Errorf("TotalPieces = %v, want 0", c.TotalPieces)
	}
}

func TestApplyAggregatesAllSold(t *testing.T) {
	c := &Container{ID: 1, FixedWeight: 50}
	pieces := []*Piece{
		{ID: 1, BoxID: 1, Weight: 10, VWeight: 2, Status: PieceStatusSold},
		{ID: 2, BoxID: 1, Weight: 4, VWeight: 1, Status: PieceStatusSold},
	}

	c.ApplyAggregates(pieces)

	if c.NetWeight != 0 || c.VariableWeight != 0 {
		t.Errorf("sold pieces must not contribute weight, got net=%v variable=%v", c.NetWeight, c.VariableWeight)
	}
	if c.TotalPieces != 2 {
		t.Errorf("TotalPieces = %v, want 2", c.TotalPieces)
	}
	if c.TotalAll != 50 {
		t.Errorf("TotalAll = %v, want 50", c.TotalAll)
	}
}

func TestValidContainerType(t *testing.T) {
	for _, valid := range []string{ContainerTypeBox, ContainerTypeTray} {
		if !ValidContainerType(valid) {
			t.Errorf("ValidContainerType(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "box", "BAG", "tray"} {
		if ValidContainerType(invalid) {
			t.Errorf("ValidContainerType(%q) = true, want false", invalid)
		}
	}
}
