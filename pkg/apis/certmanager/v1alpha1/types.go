package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// Group is the legacy cert-manager API group.
	Group = "certmanager.k8s.io"
	// Version is the legacy cert-manager API version.
	Version = "v1alpha1"
	// APIVersion is the apiVersion written on every object of this package.
	APIVersion = Group + "/" + Version

	// ClusterIssuerKind is the kind of a cluster-scoped issuer.
	ClusterIssuerKind = "ClusterIssuer"
	// ClusterIssuerCRDName is the name of the CRD backing ClusterIssuer.
	ClusterIssuerCRDName = "clusterissuers." + Group
)

// ClusterIssuer is a cluster-scoped certificate issuer.
type ClusterIssuer struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec IssuerSpec `json:"spec"`
}

// IssuerSpec configures exactly one issuer backend. Only ACME is supported.
type IssuerSpec struct {
	ACME *ACMEIssuer `json:"acme,omitempty"`
}

// ACMEIssuer registers an ACME account and solves challenges with Solvers.
type ACMEIssuer struct {
	Email      string            `json:"email"`
	Server     string            `json:"server"`
	PrivateKey SecretKeySelector `json:"privateKeySecretRef"`
	Solvers    []Solver          `json:"solvers,omitempty"`
}

// SecretKeySelector references a key of a Secret. Key may be empty when the
// consumer picks a default key.
type SecretKeySelector struct {
	Name string `json:"name"`
	Key  string `json:"key,omitempty"`
}

// NewClusterIssuer returns an ACME ClusterIssuer with its type metadata set.
func NewClusterIssuer(name string, acme *ACMEIssuer) *ClusterIssuer {
	return &ClusterIssuer{
		TypeMeta: metav1.TypeMeta{
			APIVersion: APIVersion,
			Kind:       ClusterIssuerKind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec:       IssuerSpec{ACME: acme},
	}
}
