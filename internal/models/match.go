package models

// Match references are resolved once when the catalog is built. Home, Away
// and Stadium stay nil when the source ids point nowhere.
type Match struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	HomeID    string `json:"home_id"`
	AwayID    string `json:"away_id"`
	Date      string `json:"date"`
	Group     string `json:"group"`
	StadiumID string `json:"stadium_id"`

	Home    *Team    `json:"-"`
	Away    *Team    `json:"-"`
	Stadium *Stadium `json:"-"`
}

func (m *Match) HomeName() string {
	if m.Home == nil {
		return ""
	}
	return m.Home.Name
}

func (m *Match) AwayName() string {
	if m.Away == nil {
		return ""
	}
	return m.Away.Name
}

func (m *Match) StadiumName() string {
	if m.Stadium == nil {
		return ""
	}
	return m.Stadium.Name
}

// Title renders "home vs away".
func (m *Match) Title() string {
	return m.HomeName() + " vs " + m.AwayName()
}
