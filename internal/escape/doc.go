// Package escape converts text to and from a unicode-escape notation.
//
// The notation renders printable ASCII verbatim and every other code point
// as a backslash escape (\xhh, \uhhhh or \Uhhhhhhhh). It is used to show
// suspicious characters in reports and logs, and to let users type probe
// sequences such as `\xd4\xf6` on the command line.
//
// Note that \xhh denotes the code point U+00hh, not a raw byte. This is what
// makes a probe like `\xd4\xf6` match the text "Ôö" produced by a
// mis-decoded UTF-8 sequence.
package escape
