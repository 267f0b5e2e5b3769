package season

// Colours is a franchise's primary and secondary hex colour.
type Colours struct {
	Primary   string `json:"primary_colour"`
	Secondary string `json:"secondary_colour"`
}

// DefaultColours is used for franchises missing from the table.
var DefaultColours = Colours{Primary: "#c705f7", Secondary: "#ffffff"}

var coloursByTeam = map[string]Colours{
	"Atlanta Hawks":          {"#e03a3e", "#c1d32f"},
	"Boston Celtics":         {"#008348", "#000000"},
	"Brooklyn Nets":          {"#666666", "#000000"},
	"Charlotte Hornets":      {"#00788c", "#1d1160"},
	"Chicago Bulls":          {"#ce1141", "#000000"},
	"Cleveland Cavaliers":    {"#6f263d", "#ffb81c"},
	"Dallas Mavericks":       {"#0053bc", "#00285e"},
	"Denver Nuggets":         {"#0e2240", "#fec524"},
	"Detroit Pistons":        {"#1d428a", "#c8102e"},
	"Golden State Warriors":  {"#006bb6", "#fdb927"},
	"Houston Rockets":        {"#ce1141", "#c4ced4"},
	"Indiana Pacers":         {"#002d62", "#fdbb30"},
	"LA Clippers":            {"#c8102e", "#1d428a"},
	"Los Angeles Clippers":   {"#c8102e", "#1d428a"},
	"Los Angeles Lakers":     {"#fdb927", "#552583"},
	"Memphis Grizzlies":      {"#5d76a9", "#12173f"},
	"Miami Heat":             {"#98002e", "#f9a01b"},
	"Milwaukee Bucks":        {"#00471b", "#eee1c6"},
	"Minnesota Timberwolves": {"#236192", "#78be20"},
	"New Orleans Pelicans":   {"#b4975a", "#002b5c"},
	"New York Knicks":        {"#006bb6", "#f58426"},
	"Oklahoma City Thunder":  {"#007ac1", "#ef3b24"},
	"Orlando Magic":          {"#0077c0", "#000000"},
	"Philadelphia 76ers":     {"#006bb6", "#ed174c"},
	"Phoenix Suns":           {"#e56020", "#1d1160"},
	"Portland Trail Blazers": {"#e03a3e", "#000000"},
	"Sacramento Kings":       {"#5a2b81", "#63727a"},
	"San Antonio Spurs":      {"#000000", "#c4ced4"},
	"Toronto Raptors":        {"#000000", "#ce1141"},
	"Utah Jazz":              {"#00471b", "#002b5c"},
	"Washington Wizards":     {"#002b5c", "#e31837"},
}

// ColoursFor looks a franchise up by its full name.
func ColoursFor(fullName string) Colours {
	if c, ok := coloursByTeam[fullName]; ok {
		return c
	}
	return DefaultColours
}
