// Package pipeline runs a chain of stages inside one process, the way a
// shell pipe would, but strictly one stage after another.
//
// Each stage reads the complete output of the previous stage from an
// in-memory buffer. The first stage reads the caller's input and the last
// writes the caller's output. There is no streaming and no backpressure: a
// stage that never finishes, or a stage fed an endless input, blocks the
// whole run.
package pipeline
