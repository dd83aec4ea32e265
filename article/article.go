package article

import "strings"

// Marker prefixes title and heading lines in generated text.
const Marker = "#"

// conclusionKeyword detects the closing section by case-insensitive
// prefix match on heading text ("Вывод", "ВЫВОД:", "вывод по теме", ...).
const conclusionKeyword = "вывод"

// ConclusionLabel is the canonical heading used for the closing section,
// regardless of how the model spelled it.
const ConclusionLabel = "Вывод"

// Document is the structured form of one generated article.
type Document struct {
	// Title is the text of the first marker line, marker stripped.
	// Empty if the input contains no marker line.
	Title string

	// Sections are the body sections in order of appearance.
	Sections []Section

	// Conclusion is the joined text of the closing section.
	// Empty if the input has no conclusion heading, or the heading
	// had no body. If the model emits several conclusion headings,
	// the last one wins.
	Conclusion string
}

// Section is a heading with its paragraph text.
type Section struct {
	Heading string

	// Body is the section's source lines joined with single spaces.
	Body string
}

// accumulator tracks the block in progress during the line walk.
// heading == "" means no section is open; body lines seen in that
// state are dropped.
type accumulator struct {
	heading      string
	bodyLines    []string
	inConclusion bool
}

// Parse converts raw generated text into a Document. It never fails:
// input without structure yields an empty Document.
//
// Everything before the first marker line is discarded (models often
// echo the prompt or chat before the article). Blank lines are ignored
// entirely. The first marker line is unconditionally the title; later
// marker lines open sections, and headings starting with the conclusion
// keyword route their body into Conclusion. A heading followed by no
// body text produces nothing.
func Parse(raw string) *Document {
	doc := &Document{}
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	// Cut leading noise: everything before the first marker line.
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), Marker) {
			start = i
			break
		}
	}
	if start < 0 {
		return doc
	}

	var acc accumulator
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, Marker) {
			if acc.heading != "" {
				acc.bodyLines = append(acc.bodyLines, line)
			}
			continue
		}

		// New heading: capture the accumulated block first, so the
		// current heading's body is not attributed to the next one.
		doc.flush(&acc)

		heading := strings.TrimSpace(strings.TrimPrefix(line, Marker))
		switch {
		case doc.Title == "":
			// The first heading is the title; it opens no section.
			doc.Title = heading
		case strings.HasPrefix(strings.ToLower(heading), conclusionKeyword):
			acc.heading = ConclusionLabel
			acc.inConclusion = true
		default:
			acc.heading = heading
			acc.inConclusion = false
		}
	}

	// The final block has no following marker to trigger a flush.
	// Typically this is the conclusion.
	doc.flush(&acc)

	return doc
}

// flush finalizes the in-progress block into the document and clears
// the body accumulator. Blocks without a heading or without body text
// are dropped.
func (d *Document) flush(acc *accumulator) {
	if acc.heading == "" || len(acc.bodyLines) == 0 {
		return
	}

	body := strings.TrimSpace(strings.Join(acc.bodyLines, " "))
	if acc.inConclusion {
		d.Conclusion = body
	} else {
		d.Sections = append(d.Sections, Section{Heading: acc.heading, Body: body})
	}
	acc.bodyLines = nil
}
