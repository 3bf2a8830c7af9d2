// Package annotate reads the structured key/value annotations that users embed in
// free text.
//
// Two syntaxes exist:
//
//   - Inline annotations, "[key:: value]", may appear anywhere in prose. They carry
//     per-entry metadata such as author, icon, status and title.
//   - Directives configure a single timeline build from a control block. Each line
//     may hold inline annotations and/or one bare "key: value" pair.
//
// All keys go through Normalize before they are stored.
package annotate
