package article

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

// conclusionLabelPrefix is the redundant self-referential label models
// sometimes repeat at the start of the conclusion body ("Вывод: ...").
const conclusionLabelPrefix = "вывод:"

// documentTemplate is the fixed HTML5 shell. Body content is emitted
// verbatim: the generator is trusted by the surrounding pipeline, so no
// escaping is applied (text/template, not html/template).
const documentTemplate = `<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { font-family: 'Segoe UI', sans-serif; line-height: 1.7; max-width: 800px; margin: 40px auto; padding: 20px; background: #f9f9fb; color: #333; }
        h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
        h2 { color: #2980b9; margin-top: 30px; }
        p { margin: 15px 0; text-align: justify; }
        .conclusion { background: #ecf0f1; padding: 20px; border-left: 5px solid #3498db; border-radius: 5px; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
{{- range .Sections}}
    <h2>{{.Heading}}</h2>
    <p>{{.Body}}</p>
{{- end}}
{{- if .Conclusion}}
    <div class='conclusion'>
        <h2>` + ConclusionLabel + `</h2>
        <p>{{stripConclusionLabel .Conclusion}}</p>
    </div>
{{- end}}
</body>
</html>
`

var documentTmpl = template.Must(template.New("document").
	Funcs(template.FuncMap{"stripConclusionLabel": stripConclusionLabel}).
	Parse(documentTemplate))

// Render writes the document as a complete styled HTML page. Output is
// deterministic: rendering the same Document twice yields identical bytes.
// The assembled page is written in a single Write call.
func Render(doc *Document, w io.Writer) error {
	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, doc); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// RenderFile renders the document into the file at path, creating or
// truncating it. Write errors propagate to the caller untouched by any
// retry or fallback.
func RenderFile(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Render(doc, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// stripConclusionLabel removes one leading "вывод:" label, in any
// capitalization, then trims surrounding whitespace. Cyrillic upper and
// lower case letters have equal UTF-8 width, so slicing by the length of
// the lowercase label is safe.
func stripConclusionLabel(s string) string {
	if strings.HasPrefix(strings.ToLower(s), conclusionLabelPrefix) {
		s = s[len(conclusionLabelPrefix):]
	}
	return strings.TrimSpace(s)
}
