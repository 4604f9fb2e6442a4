package post

import "time"

type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"usuario"`
	Text      string    `json:"texto"`
	CreatedAt time.Time `json:"data"`
}

type Post struct {
	ID             string    `json:"postId"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"nomeCompleto,omitempty"`
	AuthorImageURL string    `json:"avatar,omitempty"`
	Text           string    `json:"texto,omitempty"`
	Location       string    `json:"local,omitempty"`
	ImageURL       string    `json:"imagem,omitempty"`
	Likes          int       `json:"curtidas"`
	Comments       []Comment `json:"comentarios"`
	CreatedAt      time.Time `json:"data"`
}

type CreatePostRequest struct {
	Text     string `json:"texto,omitempty"`
	Location string `json:"local,omitempty"`
	ImageURL string `json:"imagem,omitempty"`
}

type AddCommentRequest struct {
	Text string `json:"texto"`
}
