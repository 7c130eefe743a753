package entity

import "time"

// Score bounds for a review.
const (
	MinScore = 1
	MaxScore = 10
)

// Review is a scored write-up of a title. At most one review exists per
// (title, author) pair; the DB enforces it with a unique constraint.
type Review struct {
	ID             int64
	TitleID        int64
	AuthorID       string
	AuthorUsername string
	Text           string
	Score          int
	PubDate        time.Time
}

// Comment is attached to a review.
type Comment struct {
	ID             int64
	ReviewID       int64
	AuthorID       string
	AuthorUsername string
	Text           string
	PubDate        time.Time
}
