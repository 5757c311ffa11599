// Package assets provides the CSS styles and the page template used for
// standalone post pages.
//
// Assets live in two trees with the same layout:
//
//	styles/{name}.css
//	templates/page.html
//
// EmbeddedLoader serves the tree compiled into the binary (styles default
// and dark). FilesystemLoader serves a directory given by the user, reading
// through os.Root so lookups stay inside it. AssetResolver chains the two,
// custom first.
//
// Names are validated before any lookup: no separators, dots or NUL bytes.
package assets
