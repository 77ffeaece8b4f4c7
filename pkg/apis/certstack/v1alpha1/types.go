package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const (
	// Group is the API group for certstack.
	Group = "certstack.chuistack.io"
	// Version is the API version for certstack.
	Version = "v1alpha1"
	// Kind is the kind for certstack configurations.
	Kind = "Stack"
	// APIVersion is the full API version for certstack.
	APIVersion = Group + "/" + Version
)

// --- Core Types ---

// Stack is the certstack configuration: which cluster to target and which
// optional cert-manager features to enable.
type Stack struct {
	metav1.TypeMeta `json:",inline" mapstructure:",squash"`

	Spec StackSpec `json:"spec,omitzero" mapstructure:"spec,omitempty"`
}

// StackSpec defines the desired state of the cert-manager stack.
type StackSpec struct {
	DNSSolver  DNSSolver   `json:"dnsSolver,omitzero"`
	Connection Connection  `json:"connection,omitzero"`
	Secrets    SecretsSpec `json:"secrets,omitzero"`
}

// Connection defines how to reach the target cluster.
type Connection struct {
	Kubeconfig string          `default:"~/.kube/config" json:"kubeconfig,omitzero"`
	Context    string          `                         json:"context,omitzero"`
	Timeout    metav1.Duration `                         json:"timeout,omitzero"`
}

// SecretsSpec points at the store holding the required secrets.
type SecretsSpec struct {
	// File is an optional SOPS-encrypted YAML file. Environment variables are
	// consulted first either way.
	File string `json:"file,omitzero"`
}

// Credentials are the secret values resolved from the secret store. They are
// never written to the configuration file.
type Credentials struct {
	CloudFlareEmail  string `json:"-"`
	CloudFlareAPIKey string `json:"-"`
	LetsEncryptEmail string `json:"-"`
}
