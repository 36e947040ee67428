package rag

// AskRequest represents a building code question.
type AskRequest struct {
	// Query is the user's question, 1 to 500 characters.
	Query string `json:"query"`
}

// Citation is a reconciled reference to source material, derived from the
// retrieved chunks rather than from the generator's own citations.
type Citation struct {
	// Source is the document name (e.g. "National-Building-Code").
	Source string `json:"source"`
	// Page is the displayed page with its type label,
	// e.g. "20 (document page)" or "125 (PDF page)".
	Page string `json:"page"`
	// Section is the section number (e.g. "5.2.3"), if recovered.
	Section string `json:"section,omitempty"`
	// Excerpt is a bounded excerpt of the cited chunk.
	Excerpt string `json:"excerpt,omitempty"`
}

// AskResponse represents the answer to a building code question.
type AskResponse struct {
	// Answer is the generated answer, with citations repaired in place.
	Answer string `json:"answer"`
	// Citations are the references backing the answer.
	Citations []Citation `json:"citations"`
}
