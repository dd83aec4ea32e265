// Package articlegen generates small styled HTML articles from five topic
// keywords using a generative language model.
//
// The pipeline is strictly sequential: a fixed Russian instruction prompt is
// built from the keywords, sent to a text-generation backend, and the returned
// marker-delimited prose is parsed into a structured document and rendered as
// a self-contained HTML page.
//
// Each subpackage can be used independently:
//
//   - article: Parse '#'-marker structured text and render styled HTML
//   - prompt: Build the generation instruction from keyword lists
//   - provider: Unified text-generation client interface and registry
//   - transformers: HuggingFace transformers backend via a Python sidecar
//   - ollama: Ollama HTTP backend
//   - tokens: Character-ratio token estimation for usage reporting
//   - pipeline: Generate -> parse -> render orchestration, plus watch mode
//
// # Quick Start
//
//	import (
//	    "github.com/MishaKoshkin/articlegen/pipeline"
//	    "github.com/MishaKoshkin/articlegen/provider"
//	    _ "github.com/MishaKoshkin/articlegen/providers"
//	)
//
//	client, _ := provider.New("ollama", provider.FromEnv())
//	defer client.Close()
//
//	runner := pipeline.NewRunner(client)
//	doc, err := runner.Run(ctx, []string{"волна", "корабль", "плыть", "приключение", "сокровища"}, "article.html")
//
// Parsing alone needs no backend:
//
//	doc := article.Parse(rawModelOutput)
//	err := article.RenderFile(doc, "article.html")
package articlegen
