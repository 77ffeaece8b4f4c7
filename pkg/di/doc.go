// Package di wires certstack's runtime dependencies with samber/do.
//
// Commands receive a *Runtime and resolve what they need inside Invoke. Tests
// replace dependencies by passing extra modules that call do.Override.
package di
