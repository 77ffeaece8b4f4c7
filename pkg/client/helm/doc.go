// Package helm wraps the Helm v4 SDK with the small surface certstack needs:
// registering a chart repository and installing or upgrading a release.
package helm
