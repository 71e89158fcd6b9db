// Package pipeline implements the Markdown-to-HTML stages of note rendering.
//
// This package handles the document-independent stages:
//   - Markdown preprocessing (line normalization, math delimiter protection)
//   - Markdown to HTML conversion via Goldmark
//   - Math placeholder expansion into elements carrying the math class
//   - Relative path rewriting on the parsed tree
//   - Stylesheet injection into the page head
//
// Page enhancement (title, favicon, code blocks, math typesetting, anchors)
// is handled by the root notepage package on the parsed document. Keeping
// highlighting out of the Markdown stage lets code blocks be wrapped before
// they are highlighted.
package pipeline
