package models

// Event is an upcoming scheduled item, read-only display data.
type Event struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	ClubName string `json:"clubName"`
	Image    string `json:"image"`
}
