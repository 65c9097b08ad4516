// Package static встраивает стартовую страницу в бинарник.
package static

import _ "embed"

//go:embed index.html
var IndexHTML []byte
