// Package inspect looks for traces of encoding corruption in a document.
//
// Two diagnostics are provided:
//
//   - CountPairs tallies every two-character window whose first character
//     is outside ASCII. Mis-decoded UTF-8 shows up as a small set of very
//     frequent pairs such as "Ã©" or "â€".
//   - FindContexts prints the text around the first occurrence of known
//     probe sequences so they can be inspected by hand.
//
// Both work on code points, never on raw bytes, and neither modifies the
// document.
package inspect
