package models

// Plate is a vehicle plate derived by the backend from confirmed reports
type Plate struct {
	ID      string `json:"id"`
	Country string `json:"country"`
	Number  string `json:"number"`
}

// PaginatedPlatesList is one page of the confirmed plates leaderboard
type PaginatedPlatesList struct {
	Plates []Plate `json:"plates"`
	Page   int     `json:"page"`
	Total  int     `json:"total"`
}

// EmptyPlatesList is the leaderboard returned when the backend cannot answer.
// Page is always 1, whatever page was requested.
func EmptyPlatesList() PaginatedPlatesList {
	return PaginatedPlatesList{Plates: []Plate{}, Page: 1, Total: 0}
}
