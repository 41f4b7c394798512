// Package types defines the core types and interfaces shared by the
// installer packages: the filesystem interface, the install plan and the
// variable sets read from the build descriptors.
package types
