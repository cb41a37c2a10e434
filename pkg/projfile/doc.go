// Package projfile provides concrete project-document adapters behind the
// engine's AssetSource and DocumentMutator contracts. Two formats are
// supported: YAML manifests (.yaml/.yml) and XML project files
// (.xml/.xproj).
//
// Mutation follows clone-mutate-save semantics: a Mutator works on a copy
// of the loaded document, so the working in-memory document is never
// touched, even when saving the copy fails partway.
package projfile
