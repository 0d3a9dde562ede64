// Package document loads and saves the HTML document that htmlmend works on.
//
// The document is always read and written as a whole. Saving goes through a
// temporary file in the same directory followed by a rename, so a failed
// write never leaves a half-written document behind.
package document
