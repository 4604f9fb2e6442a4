package event

// Event is one listing on the home screen. Dates come from the admin panel
// as "dd/mm/yyyy" and doors-open as "19h30", so they stay strings here and
// are parsed only where needed.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"nomeevento"`
	Slug        string `json:"nomeurl,omitempty"`
	ImageURL    string `json:"imageurl"`
	Visible     bool   `json:"eventvisible"`
	StartDate   string `json:"datainicio,omitempty"`
	DoorsOpen   string `json:"aberturaportas,omitempty"`
	Location    string `json:"local,omitempty"`
	Category    string `json:"categoria,omitempty"`
	SaleOpen    bool   `json:"vendaaberta"`
	SaleMessage string `json:"mensagemvenda,omitempty"`
}

// Card is an event decorated with its live vibe reading, ready for the
// home screen.
type Card struct {
	Event
	VibeAverage float64 `json:"vibeMedia,omitempty"`
	VibeCount   int     `json:"vibeCount"`
	VibeStars   int     `json:"vibeStars"`
	VibeMessage string  `json:"vibeMensagem"`
	HighVibe    bool    `json:"altaVibe"`
	Urgency     string  `json:"urgencia,omitempty"`
	Today       bool    `json:"hoje"`
}

// Story is one entry in the stories carousel.
type Story struct {
	EventID  string `json:"eventId"`
	Name     string `json:"nomeevento"`
	ImageURL string `json:"imageurl"`
	HighVibe bool   `json:"altaVibe"`
	Urgency  string `json:"urgencia,omitempty"`
}
