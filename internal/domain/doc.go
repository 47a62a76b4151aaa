// Package domain defines the core business entities and errors:
// decks, flashcards, and the transient generation request/result types
// that flow between the extractor, the model provider, and the stores.
package domain
