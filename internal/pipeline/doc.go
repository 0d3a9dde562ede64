// Package pipeline runs the mend steps over one document in sequence.
//
// A mend run strips the obsolete block and then diagnoses what is left:
// the pair report, the sequence search and optionally a history entry.
// Each step reads and updates a shared Job. Steps run strictly one after
// another, and the text produced by the strip step is what later steps see.
package pipeline
