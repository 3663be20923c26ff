// Package shared holds code used across packages that belongs to no single
// layer. Its testutil subpackage provides the export and roster fixtures and
// the buffered slog handler used by tests throughout the module.
package shared
