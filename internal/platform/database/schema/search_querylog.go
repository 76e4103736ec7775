package schema

// SearchQueryLogTable represents the 'search.querylog' table
type SearchQueryLogTable struct {
	Table       string
	ID          string
	Query       string
	Scope       string
	UserID      string
	ResultCount string
	CreatedAt   string
}

// SearchQueryLog is the schema definition for search.querylog
var SearchQueryLog = SearchQueryLogTable{
	Table:       "search.querylog",
	ID:          "id",
	Query:       "query",
	Scope:       "scope",
	UserID:      "userid",
	ResultCount: "resultcount",
	CreatedAt:   "createdat",
}
