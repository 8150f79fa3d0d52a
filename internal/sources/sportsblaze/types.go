package sportsblaze

type dailyResponse struct {
	Games []gameJSON `json:"games"`
}

type gameJSON struct {
	ID     string   `json:"id"`
	Date   dateJSON `json:"date"`
	Status string   `json:"status"`
	Teams  struct {
		Home teamJSON `json:"home"`
		Away teamJSON `json:"away"`
	} `json:"teams"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
}

type dateJSON struct {
	StartTime string `json:"start_time"`
	Time      string `json:"time"`
}

type teamJSON struct {
	Alias        string `json:"alias"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
}
