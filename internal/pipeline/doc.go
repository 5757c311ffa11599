// Package pipeline turns a post's text and entity records into markup.
//
// The stages run in this order:
//   - Classify promotes links to known media hosts into media entities
//   - Extractor converts entities into text adjustments and one media item
//   - Splice applies the adjustments to the text, right to left
//   - Render wraps the result and appends embed frames
//
// Page wraps rendered output in a standalone document. PDF generation is
// handled by the root tweet2html package using headless Chrome (go-rod).
package pipeline
