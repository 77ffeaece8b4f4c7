package v1alpha1

import (
	"encoding/json"
	"errors"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ErrUnknownSolverKind is returned when a solver carries no recognised variant.
var ErrUnknownSolverKind = errors.New("unknown solver kind")

// ErrSolverVariantMismatch is returned when a solver's Kind does not match the
// variant fields it carries.
var ErrSolverVariantMismatch = errors.New("solver kind does not match its variant")

// SolverKind tags the variant held by a Solver.
type SolverKind string

const (
	// SolverKindHTTP01 answers challenges through an ingress.
	SolverKindHTTP01 SolverKind = "HTTP01"
	// SolverKindDNS01CloudFlare answers challenges with CloudFlare TXT records.
	SolverKindDNS01CloudFlare SolverKind = "DNS01CloudFlare"
)

// Solver is one entry of an ACME issuer's solver list. Exactly one variant
// field is set and it matches Kind.
type Solver struct {
	Kind SolverKind

	HTTP01          *HTTP01Solver
	DNS01CloudFlare *DNS01CloudFlareSolver
}

// HTTP01Solver serves challenge responses through an ingress of Class.
type HTTP01Solver struct {
	IngressClass string
}

// DNS01CloudFlareSolver publishes challenge records through the CloudFlare
// API using the legacy global API key. IngressClass is carried on the dns01
// block for cert-manager v0.10 installs that read it there.
type DNS01CloudFlareSolver struct {
	Email        string
	APIKeyRef    SecretKeySelector
	IngressClass string

	// Selector restricts the solver to objects carrying these labels. Empty
	// means the solver applies to every certificate.
	Selector map[string]string
}

// NewHTTP01Solver returns an HTTP-01 solver for the given ingress class.
func NewHTTP01Solver(ingressClass string) Solver {
	return Solver{
		Kind:   SolverKindHTTP01,
		HTTP01: &HTTP01Solver{IngressClass: ingressClass},
	}
}

// NewDNS01CloudFlareSolver returns a CloudFlare DNS-01 solver.
func NewDNS01CloudFlareSolver(
	email string,
	apiKeyRef SecretKeySelector,
	ingressClass string,
	selector map[string]string,
) Solver {
	return Solver{
		Kind: SolverKindDNS01CloudFlare,
		DNS01CloudFlare: &DNS01CloudFlareSolver{
			Email:        email,
			APIKeyRef:    apiKeyRef,
			IngressClass: ingressClass,
			Selector:     selector,
		},
	}
}

// Validate checks that exactly the variant named by Kind is set.
func (s Solver) Validate() error {
	switch s.Kind {
	case SolverKindHTTP01:
		if s.HTTP01 == nil || s.DNS01CloudFlare != nil {
			return fmt.Errorf("%w: %s", ErrSolverVariantMismatch, s.Kind)
		}
	case SolverKindDNS01CloudFlare:
		if s.DNS01CloudFlare == nil || s.HTTP01 != nil {
			return fmt.Errorf("%w: %s", ErrSolverVariantMismatch, s.Kind)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSolverKind, s.Kind)
	}

	return nil
}

// wire types for the cert-manager ACMEChallengeSolver schema.
type (
	challengeSolver struct {
		Selector *metav1.LabelSelector `json:"selector,omitempty"`
		HTTP01   *http01Wire           `json:"http01,omitempty"`
		DNS01    *dns01Wire            `json:"dns01,omitempty"`
	}

	http01Wire struct {
		Ingress *http01IngressWire `json:"ingress"`
	}

	http01IngressWire struct {
		Class *string `json:"class,omitempty"`
	}

	dns01Wire struct {
		Ingress    *http01IngressWire `json:"ingress,omitempty"`
		CloudFlare *cloudFlareWire    `json:"cloudflare,omitempty"`
	}

	cloudFlareWire struct {
		Email  string            `json:"email"`
		APIKey SecretKeySelector `json:"apiKeySecretRef"`
	}
)

func ingressWire(class string) *http01IngressWire {
	ingress := &http01IngressWire{}
	if class != "" {
		ingress.Class = &class
	}

	return ingress
}

func (w *http01IngressWire) class() string {
	if w == nil || w.Class == nil {
		return ""
	}

	return *w.Class
}

// MarshalJSON writes the solver in cert-manager's ACMEChallengeSolver shape.
func (s Solver) MarshalJSON() ([]byte, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	var wire challengeSolver

	switch s.Kind {
	case SolverKindHTTP01:
		wire.HTTP01 = &http01Wire{Ingress: ingressWire(s.HTTP01.IngressClass)}
	case SolverKindDNS01CloudFlare:
		solver := s.DNS01CloudFlare
		if len(solver.Selector) > 0 {
			wire.Selector = &metav1.LabelSelector{MatchLabels: solver.Selector}
		}

		wire.DNS01 = &dns01Wire{CloudFlare: &cloudFlareWire{
			Email:  solver.Email,
			APIKey: solver.APIKeyRef,
		}}

		if solver.IngressClass != "" {
			wire.DNS01.Ingress = ingressWire(solver.IngressClass)
		}
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal %s solver: %w", s.Kind, err)
	}

	return data, nil
}

// UnmarshalJSON reads a cert-manager ACMEChallengeSolver. Providers other
// than HTTP-01 ingress and CloudFlare DNS-01 are rejected.
func (s *Solver) UnmarshalJSON(data []byte) error {
	var wire challengeSolver

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return fmt.Errorf("unmarshal solver: %w", err)
	}

	switch {
	case wire.HTTP01 != nil && wire.DNS01 == nil:
		*s = NewHTTP01Solver(wire.HTTP01.Ingress.class())
	case wire.DNS01 != nil && wire.HTTP01 == nil && wire.DNS01.CloudFlare != nil:
		var selector map[string]string
		if wire.Selector != nil {
			selector = wire.Selector.MatchLabels
		}

		*s = NewDNS01CloudFlareSolver(
			wire.DNS01.CloudFlare.Email,
			wire.DNS01.CloudFlare.APIKey,
			wire.DNS01.Ingress.class(),
			selector,
		)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSolverKind, string(data))
	}

	return nil
}
