// Package v1alpha1 defines the certstack configuration API.
//
// A Stack selects the target cluster and the optional features of the
// cert-manager installation. The constants in this package pin every name,
// URL and version the installer emits.
package v1alpha1
