package gcode

import "fmt"

// UnknownCodeError is returned when a family, species or genetic code
// id is not in the catalogue.
type UnknownCodeError struct {
	Family  Family
	Species string
	ID      int
}

func (e *UnknownCodeError) Error() string {
	switch {
	case !e.Family.Valid():
		return fmt.Sprintf("unknown codon table family %q", e.Family)
	case e.Species != "":
		return fmt.Sprintf("unknown genetic code %q for %s", e.Species, e.Family)
	}
	return fmt.Sprintf("unknown genetic code id %d", e.ID)
}

// MissingSpeciesError is returned when a family requires a species
// or organelle name and none was given.
type MissingSpeciesError struct {
	Family Family
}

func (e *MissingSpeciesError) Error() string {
	return fmt.Sprintf("codon table family %s requires a species", e.Family)
}
