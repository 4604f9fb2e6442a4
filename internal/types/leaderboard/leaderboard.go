package leaderboard

type Entry struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	ImageURL *string `json:"image_url"`
	Level    int     `json:"level"`
	XP       int     `json:"xp"`
	Streak   int     `json:"streak"`
	Rank     int     `json:"rank"`
}

type Leaderboard struct {
	Entries      []*Entry `json:"entries"`
	UserPosition *Entry   `json:"user_position"`
	TotalUsers   int      `json:"total_users"`
}
