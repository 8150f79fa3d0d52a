package balldontlie

type gamesResponse struct {
	Data []gameResponse `json:"data"`
	Meta metaResponse   `json:"meta"`
}

type gameResponse struct {
	ID          int          `json:"id"`
	Date        string       `json:"date"`
	Datetime    string       `json:"datetime"`
	Status      string       `json:"status"`
	Time        string       `json:"time"`
	Postseason  bool         `json:"postseason"`
	HomeTeam    teamResponse `json:"home_team"`
	VisitorTeam teamResponse `json:"visitor_team"`
	Season      int          `json:"season"`
}

type teamsResponse struct {
	Data []teamResponse `json:"data"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
}

type playersResponse struct {
	Data []playerResponse `json:"data"`
	Meta metaResponse     `json:"meta"`
}

type playerResponse struct {
	ID           int          `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Position     string       `json:"position"`
	Height       string       `json:"height"`
	Weight       string       `json:"weight"`
	JerseyNumber string       `json:"jersey_number"`
	Team         teamResponse `json:"team"`
}

type metaResponse struct {
	TotalPages int `json:"total_pages"`
	NextCursor int `json:"next_cursor"`
	PerPage    int `json:"per_page"`
}
