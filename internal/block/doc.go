// Package block decodes the structured sections of an ASD spectral file.
//
// An ASD file is a flat sequence of blocks: a fixed 484-byte spectrum header,
// the per-channel digital-number samples, and a series of version-gated
// trailing blocks (white reference, classifier metadata, dependent variables,
// calibration buffers, audit log, digital signature). Each reader consumes
// its block from a binary.Reader positioned at the block start and leaves the
// cursor at the next block.
//
// Per-field version differences are driven by declarative decode plans (see
// Plan) rather than per-version code paths, so supporting a new file revision
// means adding table rows, not a new reader.
package block
