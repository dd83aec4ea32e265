// Package providers registers all known generation backends.
// Import this package to make all backends available via provider.New():
//
//	import _ "github.com/MishaKoshkin/articlegen/providers"
package providers

import (
	_ "github.com/MishaKoshkin/articlegen/ollama"
	_ "github.com/MishaKoshkin/articlegen/transformers"
)
