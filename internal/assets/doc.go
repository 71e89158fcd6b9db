// Package assets provides the CSS styles injected into note pages.
// Styles can be loaded from embedded files or from a custom directory that
// overrides embedded styles of the same name.
package assets
