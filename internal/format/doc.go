// Package format renders numbers and arithmetic expressions for display.
//
// A Formatter groups the integer digits of every numeric run in a string
// into clusters of three, using the grouping and fractional characters of
// its current Separator setting. Operators, parentheses, partial input such
// as a trailing fractional point, and exponent runs ("123E+21") pass through
// without grouping.
//
// Strings in canonical form use '.' as the fractional point and carry no
// grouping characters; this is the form the evaluator consumes. Format
// accepts either canonical or already formatted input and is idempotent for
// a fixed setting. FormatCanonical skips the normalization step and is the
// right call for input that is known to be canonical, such as a live input
// buffer.
package format
