package schema

// CoreContentTable represents the 'core.content' table
type CoreContentTable struct {
	Table         string
	ID            string
	Title         string
	AltTitle      string
	Author        string
	Artist        string
	Synopsis      string
	Genres        string
	Year          string
	Rating        string
	Status        string
	Type          string
	FavoriteCount string
	ViewCount     string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// CoreContent is the schema definition for core.content
var CoreContent = CoreContentTable{
	Table:         "core.content",
	ID:            "id",
	Title:         "title",
	AltTitle:      "alttitle",
	Author:        "author",
	Artist:        "artist",
	Synopsis:      "synopsis",
	Genres:        "genres",
	Year:          "year",
	Rating:        "rating",
	Status:        "status",
	Type:          "type",
	FavoriteCount: "favoritecount",
	ViewCount:     "viewcount",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

// SelectColumns returns the columns scanned into a search record, in scan order
func (t CoreContentTable) SelectColumns() []string {
	return []string{
		t.ID, t.Title, t.AltTitle, t.Author, t.Artist, t.Synopsis, t.Genres,
		t.Year, t.Rating, t.Status, t.Type, t.FavoriteCount, t.ViewCount, t.UpdatedAt,
	}
}
