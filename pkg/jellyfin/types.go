package jellyfin

// Item is the subset of Jellyfin item metadata the triage path needs
type Item struct {
	ID           string `json:"Id"`
	Name         string `json:"Name,omitempty"`
	SeriesID     string `json:"SeriesId,omitempty"`
	SeasonID     string `json:"SeasonId,omitempty"`
	DateCreated  string `json:"DateCreated,omitempty"`
	PremiereDate string `json:"PremiereDate,omitempty"`
	Overview     string `json:"Overview,omitempty"`
}

// ItemsResponse is the envelope returned by the /Items endpoint
type ItemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}
