// Package main provides the entry point for the htmlmend CLI.
//
// htmlmend repairs and diagnoses a single static HTML document. It removes
// a marker-bounded block of script text and reports traces of encoding
// corruption.
//
// Usage:
//
//	htmlmend strip [file]
//	htmlmend pairs [file]
//	htmlmend seq [file]
//	htmlmend mend [file]
//	htmlmend compare [file]
//
// See --help for all available options.
package main

// main is the entry point for htmlmend.
func main() {
	Execute()
}
