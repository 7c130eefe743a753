package entity

// Category is a reference entity a title belongs to (film, book, music, ...).
type Category struct {
	ID   int64
	Name string
	Slug string
}

// Genre is a reference entity; titles carry any number of genres.
type Genre struct {
	ID   int64
	Name string
	Slug string
}

// Title is a creative work in the catalog. Rating is derived at read time as
// the mean of review scores and is nil when the title has no reviews; it is
// never stored.
type Title struct {
	ID          int64
	Name        string
	Year        int
	Description string
	Category    *Category
	Genres      []Genre
	Rating      *float64
}
