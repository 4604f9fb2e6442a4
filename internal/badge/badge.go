package badge

// CriteriaType is the closed set of counters a badge can watch. Criteria
// never reference other badges, so a single evaluation pass is
// order-independent.
type CriteriaType string

const (
	CriteriaVibesRated     CriteriaType = "vibes_rated"
	CriteriaEventsAttended CriteriaType = "events_attended"
	CriteriaStreak         CriteriaType = "streak"
	CriteriaLevel          CriteriaType = "level"
)

type Criteria struct {
	Type  CriteriaType `json:"type"`
	Value int          `json:"value"`
}

// Definition is static configuration, not user data. Icons are
// MaterialCommunityIcons names rendered by the app.
type Definition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Criteria    Criteria `json:"criteria"`
	XPReward    int      `json:"xp_reward"`
}

// Counters is the post-update view of a user's progress that criteria are
// evaluated against.
type Counters struct {
	VibesRated     int
	EventsAttended int
	Streak         int
	Level          int
}

// Satisfied reports whether the badge's criterion holds for the counters.
func (d Definition) Satisfied(c Counters) bool {
	switch d.Criteria.Type {
	case CriteriaVibesRated:
		return c.VibesRated >= d.Criteria.Value
	case CriteriaEventsAttended:
		return c.EventsAttended >= d.Criteria.Value
	case CriteriaStreak:
		return c.Streak >= d.Criteria.Value
	case CriteriaLevel:
		return c.Level >= d.Criteria.Value
	}
	return false
}

// Catalog returns the fixed badge set shown in the app.
func Catalog() []Definition {
	return []Definition{
		{
			ID:          "primeira_vibe",
			Name:        "Primeira Vibe",
			Icon:        "star",
			Description: "Avalie a vibe de um evento pela primeira vez",
			Criteria:    Criteria{Type: CriteriaVibesRated, Value: 1},
			XPReward:    20,
		},
		{
			ID:          "critico_de_vibe",
			Name:        "Crítico de Vibe",
			Icon:        "star-circle",
			Description: "Avalie a vibe de 10 eventos",
			Criteria:    Criteria{Type: CriteriaVibesRated, Value: 10},
			XPReward:    50,
		},
		{
			ID:          "radar_da_cidade",
			Name:        "Radar da Cidade",
			Icon:        "radar",
			Description: "Avalie a vibe de 50 eventos",
			Criteria:    Criteria{Type: CriteriaVibesRated, Value: 50},
			XPReward:    150,
		},
		{
			ID:          "estreante",
			Name:        "Estreante",
			Icon:        "ticket",
			Description: "Participe do seu primeiro evento",
			Criteria:    Criteria{Type: CriteriaEventsAttended, Value: 1},
			XPReward:    20,
		},
		{
			ID:          "frequentador",
			Name:        "Frequentador",
			Icon:        "calendar-check",
			Description: "Participe de 5 eventos",
			Criteria:    Criteria{Type: CriteriaEventsAttended, Value: 5},
			XPReward:    75,
		},
		{
			ID:          "veterano_da_noite",
			Name:        "Veterano da Noite",
			Icon:        "crown",
			Description: "Participe de 20 eventos",
			Criteria:    Criteria{Type: CriteriaEventsAttended, Value: 20},
			XPReward:    200,
		},
		{
			ID:          "em_chamas",
			Name:        "Em Chamas",
			Icon:        "fire",
			Description: "Mantenha uma sequência de 7 dias de atividade",
			Criteria:    Criteria{Type: CriteriaStreak, Value: 7},
			XPReward:    100,
		},
		{
			ID:          "inabalavel",
			Name:        "Inabalável",
			Icon:        "shield-star",
			Description: "Mantenha uma sequência de 30 dias de atividade",
			Criteria:    Criteria{Type: CriteriaStreak, Value: 30},
			XPReward:    300,
		},
		{
			ID:          "lenda_local",
			Name:        "Lenda Local",
			Icon:        "medal",
			Description: "Alcance o nível 10",
			Criteria:    Criteria{Type: CriteriaLevel, Value: 10},
			XPReward:    250,
		},
	}
}

// WithStatus pairs a definition with one user's unlock state, for the
// "Suas Conquistas" screen.
type WithStatus struct {
	Definition
	Unlocked   bool   `json:"unlocked"`
	UnlockedAt *int64 `json:"unlocked_at,omitempty"`
}

// Lookup finds a definition by id in defs. Second return is false when the
// id is unknown (e.g. a badge retired from the catalog but still persisted
// on old progress records).
func Lookup(defs []Definition, id string) (Definition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
