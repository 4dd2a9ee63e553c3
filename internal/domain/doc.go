// Package domain contains the core model of mkr1: the derangement calculator,
// the run record and the error classification shared by every layer.
//
// The domain does not touch the filesystem, YAML or the console. Infra
// adapters map into/from these types.
package domain
