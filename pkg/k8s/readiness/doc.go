// Package readiness polls cluster resources until they are usable.
package readiness
