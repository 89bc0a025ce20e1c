package meili

import (
	"github.com/little-fluffy/notesearch/document"
)

// DefaultLimit is deliberately large: the tool is built for personal note
// collections, and the dump command wants everything in one response.
const DefaultLimit = 10000

// Query is the search request body. Field names follow the backend's search
// API; empty optional fields are omitted from the payload entirely so the
// backend applies its own defaults.
type Query struct {
	Query              string   `json:"q,omitempty"`
	Filter             string   `json:"filter,omitempty"`
	Sort               []string `json:"sort,omitempty"`
	FacetsDistribution []string `json:"facetsDistribution,omitempty"`
	Limit              int      `json:"limit"`
}

// NewQuery returns a query with the defaults every caller wants: newest
// notes first, effectively no result cap.
func NewQuery() Query {
	return Query{
		Sort:  []string{"date:desc"},
		Limit: DefaultLimit,
	}
}

// Response is the search response body.
type Response struct {
	Hits             []document.Document `json:"hits"`
	NumHits          int                 `json:"nbHits"`
	ExhaustiveHits   bool                `json:"exhaustiveNbHits"`
	Query            string              `json:"query"`
	Limit            int                 `json:"limit"`
	Offset           int                 `json:"offset"`
	ProcessingTimeMs int                 `json:"processingTimeMs"`
}
