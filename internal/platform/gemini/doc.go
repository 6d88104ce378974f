// Package gemini implements a retriever backed by Google's Gemini API.
// Instead of scraping dictionary pages it asks the model for structured
// JSON translation data and parses that into the domain model.
package gemini
