// Package docs bundles the long-form Markdown reference shipped with tagr.
package docs

import "embed"

// QueryReference is the path of the query-language reference within FS.
const QueryReference = "query.md"

// FS contains the Markdown docs bundled with the tagr binary.
//
//go:embed query.md
var FS embed.FS
