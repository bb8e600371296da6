// Package normalisers holds page extractors that turn document files into
// per-page text for ingestion.
package normalisers
