package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"piauiTicketsAPI/internal/types/post"
)

type SocialService struct {
	db *pgxpool.Pool
}

func NewSocialService(db *pgxpool.Pool) *SocialService {
	return &SocialService{db: db}
}

// ListPosts returns the feed, newest first, with author names resolved and
// comments attached in chronological order.
func (s *SocialService) ListPosts(ctx context.Context) ([]*post.Post, error) {
	query := `
	SELECT
		p.id,
		p.author_id,
		COALESCE(u.fullname, p.author_id),
		COALESCE(u.image_url, ''),
		COALESCE(p.text, ''),
		COALESCE(p.location, ''),
		COALESCE(p.image_url, ''),
		p.likes,
		p.created_at
	FROM posts p
	LEFT JOIN users u ON u.clerk_id = p.author_id
	ORDER BY p.created_at DESC
	LIMIT 100
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer rows.Close()

	posts := []*post.Post{}
	for rows.Next() {
		p := &post.Post{}
		err := rows.Scan(
			&p.ID,
			&p.AuthorID,
			&p.AuthorName,
			&p.AuthorImageURL,
			&p.Text,
			&p.Location,
			&p.ImageURL,
			&p.Likes,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	for _, p := range posts {
		comments, err := s.listComments(ctx, p.ID)
		if err != nil {
			// The feed still renders without comments.
			log.Printf("ListPosts: failed to load comments for post %s: %v", p.ID, err)
			comments = []post.Comment{}
		}
		p.Comments = comments
	}

	return posts, nil
}

func (s *SocialService) listComments(ctx context.Context, postID string) ([]post.Comment, error) {
	query := `
	SELECT c.id, COALESCE(u.fullname, c.author_id), c.text, c.created_at
	FROM post_comments c
	LEFT JOIN users u ON u.clerk_id = c.author_id
	WHERE c.post_id = $1
	ORDER BY c.created_at
	`

	rows, err := s.db.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []post.Comment{}
	for rows.Next() {
		var c post.Comment
		if err := rows.Scan(&c.ID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// CreatePost publishes a new feed post for the caller.
func (s *SocialService) CreatePost(ctx context.Context, clerkID string, req *post.CreatePostRequest) (*post.Post, error) {
	if req.Text == "" && req.ImageURL == "" {
		return nil, fmt.Errorf("post must have text or an image")
	}

	p := &post.Post{
		ID:        uuid.New().String(),
		AuthorID:  clerkID,
		Text:      req.Text,
		Location:  req.Location,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now(),
		Comments:  []post.Comment{},
	}

	query := `
	INSERT INTO posts (id, author_id, text, location, image_url, likes, created_at)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), 0, $6)
	`

	_, err := s.db.Exec(ctx, query, p.ID, p.AuthorID, p.Text, p.Location, p.ImageURL, p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return p, nil
}

// LikePost increments a post's like counter and returns the new count.
func (s *SocialService) LikePost(ctx context.Context, postID string) (int, error) {
	query := `
	UPDATE posts
	SET likes = likes + 1
	WHERE id = $1
	RETURNING likes
	`

	var likes int
	err := s.db.QueryRow(ctx, query, postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("post not found")
		}
		return 0, fmt.Errorf("failed to like post: %w", err)
	}

	return likes, nil
}

// AddComment appends a comment to a post.
func (s *SocialService) AddComment(ctx context.Context, clerkID, postID string, req *post.AddCommentRequest) (*post.Comment, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("comment text is required")
	}

	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("post not found")
	}

	c := &post.Comment{
		ID:        uuid.New().String(),
		Author:    clerkID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	query := `
	INSERT INTO post_comments (id, post_id, author_id, text, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`

	_, err = s.db.Exec(ctx, query, c.ID, postID, clerkID, c.Text, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return c, nil
}
