// Package v1alpha1 holds the subset of the legacy cert-manager
// certmanager.k8s.io/v1alpha1 API that certstack emits.
//
// The types mirror the shape cert-manager 0.10 accepts for ClusterIssuer
// objects. They are plain descriptors: certstack never reads them back from a
// cluster, so no clientset or deep-copy code is generated.
package v1alpha1
