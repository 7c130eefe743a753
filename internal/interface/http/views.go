package handlers

import (
	"time"

	"github.com/revuehub/api/internal/domain/entity"
)

// Response shapes for the API. Entities are never serialized directly so the
// wire format stays stable when the domain model moves.

type refView struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type titleView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Rating      *float64  `json:"rating"`
	Description string    `json:"description"`
	Category    *refView  `json:"category"`
	Genres      []refView `json:"genre"`
}

type reviewView struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type commentView struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

type userView struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func categoryView(c *entity.Category) refView {
	return refView{Name: c.Name, Slug: c.Slug}
}

func genreView(g *entity.Genre) refView {
	return refView{Name: g.Name, Slug: g.Slug}
}

func toTitleView(t *entity.Title) titleView {
	v := titleView{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
	}
	if t.Category != nil {
		cv := categoryView(t.Category)
		v.Category = &cv
	}
	v.Genres = make([]refView, 0, len(t.Genres))
	for i := range t.Genres {
		v.Genres = append(v.Genres, genreView(&t.Genres[i]))
	}
	return v
}

func toReviewView(r *entity.Review) reviewView {
	return reviewView{ID: r.ID, Author: r.AuthorUsername, Text: r.Text, Score: r.Score, PubDate: r.PubDate}
}

func toCommentView(c *entity.Comment) commentView {
	return commentView{ID: c.ID, Author: c.AuthorUsername, Text: c.Text, PubDate: c.PubDate}
}

func toUserView(u *entity.User) userView {
	return userView{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      string(u.Role),
	}
}
