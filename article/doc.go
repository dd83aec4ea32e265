// Package article parses marker-delimited generated text into a structured
// document and renders it as a styled HTML page.
//
// Core types:
//   - Document: Title, ordered body sections, and an optional conclusion
//   - Section: A heading with its joined paragraph text
//
// Example usage:
//
//	doc := article.Parse(rawModelOutput)
//	fmt.Println(doc.Title)
//	for _, s := range doc.Sections {
//	    fmt.Printf("%s: %s\n", s.Heading, s.Body)
//	}
//
//	err := article.RenderFile(doc, "article.html")
//
// The input format is loose by design: models structure their output with
// lines starting with '#', but capitalization, punctuation, and leading
// chatter are not guaranteed. Parse never fails; input without any marker
// yields an empty Document.
package article
