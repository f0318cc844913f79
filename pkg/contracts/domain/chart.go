package domain

// ChartPayload is everything the browser needs to draw the comparison chart
type ChartPayload struct {
	Title      string             `json:"title"`
	Categories NeighborhoodDomain `json:"categories"`
	Series     []ChartSeries      `json:"series"`
	RowCount   int                `json:"row_count"`
}

// ChartSeries is one candidate's line. X, Y, Votes and MarkerSize are
// index-aligned; nil entries are rendered as gaps.
type ChartSeries struct {
	Candidate  string     `json:"candidate"`
	Color      string     `json:"color"`
	X          []string   `json:"x"`
	Y          []*float64 `json:"y"`
	Votes      []*int64   `json:"votes"`
	MarkerSize []*float64 `json:"marker_size"`
}
