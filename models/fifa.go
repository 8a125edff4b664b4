package models

// Raw FIFA calendar API payload. Only the fields the scoreboard reads are
// declared; pointers mark fields the feed may send as null.

type FifaLocalized struct {
	Locale      string `json:"Locale"`
	Description string `json:"Description"`
}

type FifaTeam struct {
	IdTeam     string          `json:"IdTeam"`
	IdCountry  string          `json:"IdCountry"`
	PictureUrl string          `json:"PictureUrl"`
	Score      *int            `json:"Score"`
	TeamName   []FifaLocalized `json:"TeamName"`
}

type FifaStadium struct {
	IdStadium string          `json:"IdStadium"`
	Name      []FifaLocalized `json:"Name"`
	CityName  []FifaLocalized `json:"CityName"`
}

type FifaMatchResult struct {
	IdCompetition   string          `json:"IdCompetition"`
	IdSeason        string          `json:"IdSeason"`
	IdStage         string          `json:"IdStage"`
	IdGroup         *string         `json:"IdGroup"`
	IdMatch         string          `json:"IdMatch"`
	StageName       []FifaLocalized `json:"StageName"`
	GroupName       []FifaLocalized `json:"GroupName"`
	CompetitionName []FifaLocalized `json:"CompetitionName"`
	Date            string          `json:"Date"`
	LocalDate       string          `json:"LocalDate"`
	Home            *FifaTeam       `json:"Home"`
	Away            *FifaTeam       `json:"Away"`
	Stadium         *FifaStadium    `json:"Stadium"`
	MatchStatus     *int            `json:"MatchStatus"`
	MatchNumber     *int            `json:"MatchNumber"`
}

type FifaCalendarResponse struct {
	ContinuationToken *string           `json:"ContinuationToken"`
	Results           []FifaMatchResult `json:"Results"`
}

// FirstDescription returns the description of the first localized entry.
func FirstDescription(values []FifaLocalized) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	return values[0].Description, true
}
