// Package strip removes a block of text bounded by two literal markers.
//
// The region starts at the first occurrence of the start marker and ends
// right before the first occurrence of the end marker. The end marker is
// never removed. The start marker is removed too unless Markers.KeepStart
// is set, in which case only the text between the two markers goes away.
//
// Any missing or misordered marker is an error and the document is left
// untouched. Stripping the same document twice therefore always fails on
// the second attempt.
package strip
