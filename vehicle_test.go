package ascent

import (
	"errors"
	"testing"

	"github.com/gonum/floats"
)

func testVehicle(t *testing.T) *Vehicle {
	v, err := NewVehicle("test", 50, []Stage{{Dry: 100, Fuel: 0.025}, {Dry: 200, Fuel: 0.015}}, NewGenericEngine(3000, 0.01))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestVehicleErrors(t *testing.T) {
	engine := NewGenericEngine(3000, 0.01)
	if _, err := NewVehicle("neg", -1, []Stage{{Dry: 1}}, engine); err == nil {
		t.Fatal("negative payload accepted")
	}
	if _, err := NewVehicle("noengine", 1, []Stage{{Dry: 1}}, nil); err == nil {
		t.Fatal("vehicle without an engine accepted")
	}
	if _, err := NewVehicle("negstage", 1, []Stage{{Dry: 1, Fuel: -1}}, engine); err == nil {
		t.Fatal("negative fuel accepted")
	}
	if _, err := NewVehicle("empty", 0, nil, engine); !errors.Is(err, ErrNonPositiveMass) {
		t.Fatalf("expected ErrNonPositiveMass, got %v", err)
	}
}

func TestVehicleMass(t *testing.T) {
	stages := []Stage{{Dry: 100, Fuel: 0.025}, {Dry: 200, Fuel: 0.015}}
	v, err := NewVehicle("test", 50, stages, NewGenericEngine(3000, 0.01))
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(v.Mass(), 350.04, 1e-9) {
		t.Fatalf("invalid mass %f", v.Mass())
	}
	if !floats.EqualWithinAbs(v.FuelMass(), 0.04, 1e-12) {
		t.Fatalf("invalid fuel %f", v.FuelMass())
	}
	// The stages are copied.
	v.Burn(0.1)
	if stages[1].Fuel != 0.015 {
		t.Fatal("burning modified the provided stages")
	}
}

func TestVehicleBurn(t *testing.T) {
	dt := 0.1
	v := testVehicle(t)
	thrust, separated := v.Burn(dt)
	if separated {
		t.Fatal("separated too early")
	}
	if !floats.EqualWithinRel(thrust, 300, 1e-9) {
		t.Fatalf("invalid thrust %f", thrust)
	}
	if !floats.EqualWithinAbs(v.Stages[1].Fuel, 0.005, 1e-12) || v.Stages[0].Fuel != 0.025 {
		t.Fatalf("fuel not drawn from the last stage: %+v", v.Stages)
	}
	// Last draw of the upper stage is partial.
	thrust, separated = v.Burn(dt)
	if !separated {
		t.Fatal("empty stage not separated")
	}
	if !floats.EqualWithinRel(thrust, 150, 1e-9) {
		t.Fatalf("invalid partial thrust %f", thrust)
	}
	if v.RemainingStages != 1 || v.Stages[1].Fuel != 0 {
		t.Fatalf("invalid staging: %d stages, %+v", v.RemainingStages, v.Stages)
	}
	if !floats.EqualWithinAbs(v.Mass(), 150.025, 1e-9) {
		t.Fatalf("invalid mass after separation %f", v.Mass())
	}
	// Burn the first stage dry.
	ticks := 0
	for v.RemainingStages > 0 {
		ticks++
		if ticks > 10 {
			t.Fatal("first stage never separated")
		}
		v.Burn(dt)
	}
	if ticks != 3 {
		t.Fatalf("expected 3 ticks to empty the first stage, got %d", ticks)
	}
	if v.Mass() != 50 || v.FuelMass() != 0 {
		t.Fatalf("only the payload should be left: %s", v)
	}
	if thrust, separated = v.Burn(dt); thrust != 0 || separated {
		t.Fatalf("burn without stages: %f %v", thrust, separated)
	}
	v.Reset()
	if v.RemainingStages != 2 || v.Stages[0].Fuel != 0.025 || v.Stages[1].Fuel != 0.015 {
		t.Fatalf("reset failed: %s", v)
	}
}
