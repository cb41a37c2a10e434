// Package filesystem provides types.FS implementations: the real OS
// filesystem for production use and an afero-backed one so tests can run
// the whole pipeline in memory.
package filesystem
