package v1alpha1

import "time"

// cert-manager installation.
const (
	CertManagerNamespace    = "cert-manager"
	CertManagerReleaseName  = "cert-manager"
	CertManagerRepoName     = "jetstack"
	CertManagerRepoURL      = "https://charts.jetstack.io"
	CertManagerChartName    = "jetstack/cert-manager"
	CertManagerChartVersion = "v0.10.0"

	// CertManagerCRDsURL is the CRD manifest matching CertManagerChartVersion.
	// The 0.10 chart does not install CRDs itself.
	CertManagerCRDsURL = "https://raw.githubusercontent.com/jetstack/cert-manager/" +
		"release-0.10/deploy/manifests/00-crds.yaml"

	// DisableValidationLabel keeps the cert-manager webhook from validating
	// resources in its own namespace.
	DisableValidationLabel = "certmanager.k8s.io/disable-validation"
)

// Cluster issuers.
const (
	ProductionClusterIssuerName = "letsencrypt-prod"
	StagingClusterIssuerName    = "letsencrypt-staging"

	ProductionACMEServer = "https://acme-v02.api.letsencrypt.org/directory"
	StagingACMEServer    = "https://acme-staging-v02.api.letsencrypt.org/directory"

	ProductionAccountKeySecretName = "production-issuer-account-key"
	StagingAccountKeySecretName    = "staging-issuer-account-key"

	// ClusterIssuerAnnotationKey is read by cert-manager's ingress-shim.
	ClusterIssuerAnnotationKey = "certmanager.k8s.io/cluster-issuer"

	// SolverIngressClass is the ingress class used by the solvers.
	SolverIngressClass = "nginx"
)

// DNS solvers.
const (
	CloudFlareSecretName    = "cloudflare-key"
	CloudFlareSecretDataKey = "api-key.txt"

	// CloudFlareSolverLabel opts an ingress into the DNS-01 solver.
	CloudFlareSolverLabel = "use-cloudflare-solver"
)

// Secret names looked up in the secret store.
const (
	SecretCloudFlareEmail  = "cloudflareEmail"
	SecretCloudFlareKey    = "cloudflareKey"
	SecretLetsEncryptEmail = "letsencryptEmail"
)

// DefaultTimeout bounds the whole install when the configuration does not set one.
const DefaultTimeout = 10 * time.Minute

// ProductionClusterIssuerAnnotation returns the annotation an ingress uses to
// request certificates from the production issuer.
func ProductionClusterIssuerAnnotation() map[string]string {
	return map[string]string{ClusterIssuerAnnotationKey: ProductionClusterIssuerName}
}

// StagingClusterIssuerAnnotation returns the annotation an ingress uses to
// request certificates from the staging issuer.
func StagingClusterIssuerAnnotation() map[string]string {
	return map[string]string{ClusterIssuerAnnotationKey: StagingClusterIssuerName}
}
