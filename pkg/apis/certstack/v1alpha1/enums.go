package v1alpha1

import (
	"fmt"
	"slices"
	"strings"
)

// --- Enum Interface ---

// EnumValuer is implemented by string-based enum types to provide their valid values.
type EnumValuer interface {
	// ValidValues returns all valid string values for this enum type.
	ValidValues() []string
}

// --- DNS Solver Types ---

// DNSSolver selects the DNS-01 solver provider added to the cluster issuers.
type DNSSolver string

const (
	// DNSSolverNone disables DNS-01; issuers rely on HTTP-01 only.
	DNSSolverNone DNSSolver = "None"
	// DNSSolverCloudFlare enables the CloudFlare DNS-01 solver.
	DNSSolverCloudFlare DNSSolver = "CloudFlare"
)

// Set for DNSSolver (pflag.Value interface).
func (d *DNSSolver) Set(value string) error {
	for _, solver := range ValidDNSSolvers() {
		if strings.EqualFold(value, string(solver)) {
			*d = solver

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s)",
		ErrInvalidDNSSolver,
		value,
		DNSSolverNone,
		DNSSolverCloudFlare,
	)
}

// IsValid checks if the DNS solver value is supported.
func (d *DNSSolver) IsValid() bool {
	return slices.Contains(ValidDNSSolvers(), *d)
}

// String returns the string representation of the DNSSolver.
func (d *DNSSolver) String() string {
	return string(*d)
}

// Type returns the type of the DNSSolver.
func (d *DNSSolver) Type() string {
	return "DNSSolver"
}

// Default returns the default value for DNSSolver (None).
func (d *DNSSolver) Default() any {
	return DNSSolverNone
}

// ValidValues returns all valid DNSSolver values as strings.
func (d *DNSSolver) ValidValues() []string {
	return []string{string(DNSSolverNone), string(DNSSolverCloudFlare)}
}

// CloudFlareEnabled reports whether the CloudFlare DNS-01 solver is selected.
func (d DNSSolver) CloudFlareEnabled() bool {
	return d == DNSSolverCloudFlare
}
