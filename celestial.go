package ascent

import (
	"fmt"
	"strings"
)

const (
	// GravitationalConstant is G in m^3 kg^-1 s^-2.
	GravitationalConstant = 6.67430e-11
	// EarthMass is the mass of the Earth in kilograms.
	EarthMass = 5.972e24
	// EarthRadius is the mean radius of the Earth in meters.
	EarthRadius = 6.371e6
)

// PlanetModel defines the point mass the rocket ascends from.
// All units are SI: the kernel works in meters, kilograms and seconds.
type PlanetModel struct {
	Name   string
	Mass   float64 // kg
	Radius float64 // m
	G      float64 // gravitational constant, m^3 kg^-1 s^-2
}

// GM returns the gravitational parameter μ of this planet.
func (p PlanetModel) GM() float64 {
	return p.G * p.Mass
}

// SurfaceGravity returns the gravitational acceleration at the planet radius.
func (p PlanetModel) SurfaceGravity() float64 {
	return p.G * p.Mass / (p.Radius * p.Radius)
}

// String implements the Stringer interface.
func (p PlanetModel) String() string {
	return p.Name + " body"
}

// Equals returns whether the provided planet is the same.
func (p PlanetModel) Equals(b PlanetModel) bool {
	return p.Name == b.Name && p.Mass == b.Mass && p.Radius == b.Radius && p.G == b.G
}

// PlanetFromString returns the planet from its name.
func PlanetFromString(name string) (PlanetModel, error) {
	switch strings.ToLower(name) {
	case "earth", "":
		return Earth, nil
	case "moon":
		return Moon, nil
	case "mars":
		return Mars, nil
	default:
		return PlanetModel{}, fmt.Errorf("undefined planet '%s'", name)
	}
}

/* Definitions */

// Earth is home, and the body the guidance constants were tuned for.
var Earth = PlanetModel{"Earth", EarthMass, EarthRadius, GravitationalConstant}

// Moon has no atmosphere either, which is convenient here.
var Moon = PlanetModel{"Moon", 7.342e22, 1.7374e6, GravitationalConstant}

// Mars is the vacation place.
var Mars = PlanetModel{"Mars", 6.4171e23, 3.3895e6, GravitationalConstant}
