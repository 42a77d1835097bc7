// Package sanitizer normalizes user-supplied input before validation and
// storage: email canonicalization and display-name whitespace cleanup.
package sanitizer
