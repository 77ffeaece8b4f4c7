package issuer

import (
	certmanagerv1alpha1 "github.com/chuistack/certstack/pkg/apis/certmanager/v1alpha1"
	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
)

// BuildSolvers returns the solver list shared by both issuers: HTTP-01 through
// the nginx ingress class, followed by CloudFlare DNS-01 when enabled. The
// DNS-01 entry repeats the ingress class.
func BuildSolvers(stack *v1alpha1.Stack, creds v1alpha1.Credentials) []certmanagerv1alpha1.Solver {
	solvers := []certmanagerv1alpha1.Solver{
		certmanagerv1alpha1.NewHTTP01Solver(v1alpha1.SolverIngressClass),
	}

	if stack.Spec.DNSSolver.CloudFlareEnabled() {
		solvers = append(solvers, certmanagerv1alpha1.NewDNS01CloudFlareSolver(
			creds.CloudFlareEmail,
			certmanagerv1alpha1.SecretKeySelector{
				Name: v1alpha1.CloudFlareSecretName,
				Key:  v1alpha1.CloudFlareSecretDataKey,
			},
			v1alpha1.SolverIngressClass,
			map[string]string{v1alpha1.CloudFlareSolverLabel: "true"},
		))
	}

	return solvers
}
