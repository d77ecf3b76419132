// Package splitter provides deterministic text segmentation.
//
// SentenceSplitter cuts prose into bounded, overlapping chunks with a
// preference for keeping paragraphs and sentences intact. CodeSplitter
// is the structured-text variant budgeted in lines instead of runes.
//
// Both splitters are pure: identical input and configuration always
// produce an identical chunk sequence.
package splitter
