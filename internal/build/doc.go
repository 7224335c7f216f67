// Package build runs a redirect generation pass over a site.
//
// All execution paths (the generate command, watch mode, tests) go through
// Service.Run: discover documents, build one redirect record per declared
// redirect, drop duplicate permalinks, render and write each page, and
// finally write the redirects.json manifest.
//
// A bad redirect definition only fails its own page. Run returns an error
// only when the whole pass cannot proceed (missing source directory,
// cancellation, manifest write failure).
package build
