// Package filesystem provides the afero filesystems ideaprov works against
// and the ownership-aware helpers every operation shares: creating a
// directory chain, touching skeleton files, copying and renaming into place.
//
// Production code uses NewOS; unit tests use NewMemory.
package filesystem
