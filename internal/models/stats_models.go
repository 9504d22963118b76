package models

// StatsSummary holds the admin dashboard counters.
type StatsSummary struct {
	Categories      int `json:"categories"`
	MenuItems       int `json:"menu_items"`
	GalleryImages   int `json:"gallery_images"`
	Users           int `json:"users"`
	Bookings        int `json:"bookings"`
	PendingBookings int `json:"pending_bookings"`
	PublishedPosts  int `json:"published_posts"`
}
