// Package nodeparser turns documents into relationship-linked nodes.
//
// Parser wraps a splitter and emits one node per chunk, linking
// adjacent nodes from the same document through prev/next identifiers.
// WindowParser is the sentence-window variant: one node per sentence,
// with the surrounding context recorded as metadata.
//
// Node identifiers are UUIDv5 values derived from the document ID and
// chunk position, so re-parsing unchanged input yields identical IDs.
package nodeparser
