// Package connectors holds adapters that reach local document sources.
// The filesystem connector finds files by name and watches the document
// directory for changes.
package connectors
