// Package cli translates command-line arguments into an app.Config. It owns
// usage text and argument validation, nothing else; all real work happens in
// the app package.
package cli
