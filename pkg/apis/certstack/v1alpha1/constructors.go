package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// NewStack creates a new Stack with its type metadata and default spec.
func NewStack() *Stack {
	return &Stack{
		TypeMeta: metav1.TypeMeta{
			Kind:       Kind,
			APIVersion: APIVersion,
		},
		Spec: NewStackSpec(),
	}
}

// NewStackSpec creates a new StackSpec with default values.
func NewStackSpec() StackSpec {
	return StackSpec{
		DNSSolver:  DNSSolverNone,
		Connection: NewConnection(),
		Secrets:    SecretsSpec{},
	}
}

// NewConnection creates a new Connection with default values.
func NewConnection() Connection {
	return Connection{
		Kubeconfig: "",
		Context:    "",
		Timeout:    metav1.Duration{Duration: DefaultTimeout},
	}
}

// ApplyDefaults fills zero values left by decoding.
func (s *Stack) ApplyDefaults() {
	if s.Spec.DNSSolver == "" {
		s.Spec.DNSSolver = DNSSolverNone
	}

	if s.Spec.Connection.Timeout.Duration == 0 {
		s.Spec.Connection.Timeout.Duration = DefaultTimeout
	}
}
