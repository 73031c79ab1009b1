// Package sanitizer normalizes raw user input before it reaches a form.
//
// Transforms are plain string functions that chain with Apply or Compose:
//
//	username := sanitizer.Compose(sanitizer.NormalizeWhitespace, sanitizer.TrimToLower)
//	clean := username("  Jane ") // "jane"
//
// Sanitizing changes what is stored, so it is meant for fields where the
// normalized form is the canonical one (emails, handles). Secrets such as
// passwords must be left untouched.
package sanitizer
