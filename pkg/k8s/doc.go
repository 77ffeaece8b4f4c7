// Package k8s provides Kubernetes client construction and the apply helpers
// used to put certstack resources on a cluster.
//
// Key features:
//   - REST config building from kubeconfig files (BuildRESTConfig)
//   - Client bundles for typed, dynamic and apiextensions access (NewClients)
//   - Namespace creation with label reconciliation (EnsureNamespace)
//   - Server-side apply of arbitrary objects (ServerSideApply, ToUnstructured)
//
// For CRD readiness polling, see the [readiness] sub-package.
package k8s
