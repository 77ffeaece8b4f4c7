package v1alpha1

import (
	"errors"
	"fmt"
)

// ValidDNSSolvers returns supported DNS solver values.
func ValidDNSSolvers() []DNSSolver {
	return []DNSSolver{DNSSolverNone, DNSSolverCloudFlare}
}

// Validate checks the stack configuration and joins every problem found.
func (s *Stack) Validate() error {
	var errs []error

	if s.APIVersion != "" && s.APIVersion != APIVersion {
		errs = append(errs, fmt.Errorf("%w: %q (expected %q)", ErrInvalidAPIVersion, s.APIVersion, APIVersion))
	}

	if s.Kind != "" && s.Kind != Kind {
		errs = append(errs, fmt.Errorf("%w: %q (expected %q)", ErrInvalidKind, s.Kind, Kind))
	}

	if !s.Spec.DNSSolver.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDNSSolver, s.Spec.DNSSolver))
	}

	if s.Spec.Connection.Timeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrNegativeTimeout, s.Spec.Connection.Timeout.Duration))
	}

	return errors.Join(errs...)
}

// RequiredSecrets lists the secret names the selected features need.
// The Let's Encrypt contact email is always required.
func (s *Stack) RequiredSecrets() []string {
	names := []string{SecretLetsEncryptEmail}

	if s.Spec.DNSSolver.CloudFlareEnabled() {
		names = append(names, SecretCloudFlareEmail, SecretCloudFlareKey)
	}

	return names
}

// ValidateCredentials checks that every credential the stack needs is set.
func (s *Stack) ValidateCredentials(creds Credentials) error {
	var errs []error

	if creds.LetsEncryptEmail == "" {
		errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCredential, SecretLetsEncryptEmail))
	}

	if s.Spec.DNSSolver.CloudFlareEnabled() {
		if creds.CloudFlareEmail == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCredential, SecretCloudFlareEmail))
		}

		if creds.CloudFlareAPIKey == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCredential, SecretCloudFlareKey))
		}
	}

	return errors.Join(errs...)
}
