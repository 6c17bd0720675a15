package domain

// Book represents a catalog entry created by a user.
type Book struct {
	Record
	Title       string `json:"title"`
	Author      string `json:"author"`
	Year        int    `json:"year"`
	Description string `json:"description,omitempty"`
	Genre       string `json:"genre,omitempty"`
	AddedBy     string `json:"added_by"` // User ID of the creator
}
