package schema

// Visibility value of lists exposed to global search.
const ListVisibilityPublic = "public"

// LibraryCustomListTable holds the 'library.customlist' columns read by global search
type LibraryCustomListTable struct {
	Table      string
	ID         string
	UserID     string
	Name       string
	Visibility string
	DeletedAt  string
}

// LibraryCustomList is the schema definition for library.customlist
var LibraryCustomList = LibraryCustomListTable{
	Table:      "library.customlist",
	ID:         "id",
	UserID:     "userid",
	Name:       "name",
	Visibility: "visibility",
	DeletedAt:  "deletedat",
}
