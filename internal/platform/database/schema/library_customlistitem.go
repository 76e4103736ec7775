package schema

// LibraryCustomListItemTable holds the 'library.customlistitem' columns needed to count list entries
type LibraryCustomListItemTable struct {
	Table  string
	ListID string
}

// LibraryCustomListItem is the schema definition for library.customlistitem
var LibraryCustomListItem = LibraryCustomListItemTable{
	Table:  "library.customlistitem",
	ListID: "listid",
}
