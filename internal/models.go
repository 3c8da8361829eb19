package internal

type User struct {
	ID       int    `json:"user_id"`
	Username string `json:"username"`
}

// Player is a catalog row. Every attribute besides the id is an opaque
// display string.
type Player struct {
	ID          int     `json:"player_id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Team        string  `json:"team"`
	MarketValue string  `json:"market_value"`
	Nationality string  `json:"nationality"`
	Height      string  `json:"height"`
	Img         *string `json:"img"`
	BirthDate   string  `json:"birthDate"`
	Wage        string  `json:"wage"`
	Potential   string  `json:"potential"`
	Rating      string  `json:"rating"`
	Description string  `json:"description"`
	Foot        string  `json:"foot"`
}

// PlayerInput is the add-favorite request body. PlayerID links an existing
// player instead of creating a new row.
type PlayerInput struct {
	PlayerID    *int    `json:"player_id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Team        string  `json:"team"`
	MarketValue string  `json:"market_value"`
	Nationality string  `json:"nationality"`
	Height      string  `json:"height"`
	Img         *string `json:"img"`
	BirthDate   string  `json:"birthDate"`
	Wage        string  `json:"wage"`
	Potential   string  `json:"potential"`
	Rating      string  `json:"rating"`
	Description string  `json:"description"`
	Foot        string  `json:"foot"`
}

type LineupSlot struct {
	Position string  `json:"position"`
	PlayerID int     `json:"player_id"`
	Name     string  `json:"name"`
	Picture  *string `json:"picture"`
}

// SearchResult is one binding returned by the catalog search endpoint.
type SearchResult struct {
	Player      string `json:"player"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	Height      string `json:"height"`
	MarketValue string `json:"marketValue"`
	Img         string `json:"img"`
	BirthDate   string `json:"birth_date"`
	Wage        string `json:"wage"`
	Potential   string `json:"potential"`
	Rating      string `json:"rating"`
	Description string `json:"description"`
	Foot        string `json:"foot"`
	Nationality string `json:"nationality"`
}
