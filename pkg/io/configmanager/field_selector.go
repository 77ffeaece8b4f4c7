package configmanager

import (
	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
)

// FieldSelector binds a configuration field to a command-line flag.
type FieldSelector struct {
	// Flag is the flag name, e.g. "dns-solver".
	Flag string
	// Selector returns a pointer to the field.
	Selector     func(*v1alpha1.Stack) any
	Description  string
	DefaultValue any
}

// DNSSolverFieldSelector selects the DNS-01 solver.
func DNSSolverFieldSelector() FieldSelector {
	return FieldSelector{
		Flag:         "dns-solver",
		Selector:     func(s *v1alpha1.Stack) any { return &s.Spec.DNSSolver },
		Description:  "DNS-01 solver added to the cluster issuers",
		DefaultValue: v1alpha1.DNSSolverNone,
	}
}

// KubeconfigFieldSelector selects the kubeconfig path.
func KubeconfigFieldSelector() FieldSelector {
	return FieldSelector{
		Flag:         "kubeconfig",
		Selector:     func(s *v1alpha1.Stack) any { return &s.Spec.Connection.Kubeconfig },
		Description:  "Path to kubeconfig file",
		DefaultValue: "~/.kube/config",
	}
}

// ContextFieldSelector selects the kubeconfig context. Empty uses the current context.
func ContextFieldSelector() FieldSelector {
	return FieldSelector{
		Flag:        "context",
		Selector:    func(s *v1alpha1.Stack) any { return &s.Spec.Connection.Context },
		Description: "Kubernetes context of cluster",
	}
}

// TimeoutFieldSelector selects the install timeout.
func TimeoutFieldSelector() FieldSelector {
	return FieldSelector{
		Flag:         "timeout",
		Selector:     func(s *v1alpha1.Stack) any { return &s.Spec.Connection.Timeout },
		Description:  "Timeout for the Helm release and readiness waits",
		DefaultValue: v1alpha1.DefaultTimeout,
	}
}

// SecretsFileFieldSelector selects the SOPS-encrypted secrets file.
func SecretsFileFieldSelector() FieldSelector {
	return FieldSelector{
		Flag:        "secrets-file",
		Selector:    func(s *v1alpha1.Stack) any { return &s.Spec.Secrets.File },
		Description: "SOPS-encrypted YAML file with cloudflareEmail, cloudflareKey and letsencryptEmail",
	}
}

// DefaultFieldSelectors returns every selector exposed as a flag.
func DefaultFieldSelectors() []FieldSelector {
	return []FieldSelector{
		DNSSolverFieldSelector(),
		KubeconfigFieldSelector(),
		ContextFieldSelector(),
		TimeoutFieldSelector(),
		SecretsFileFieldSelector(),
	}
}

// RenderFieldSelectors are the selectors that matter without cluster access.
func RenderFieldSelectors() []FieldSelector {
	return []FieldSelector{
		DNSSolverFieldSelector(),
		TimeoutFieldSelector(),
		SecretsFileFieldSelector(),
	}
}
