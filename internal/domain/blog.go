package domain

import (
	"time"

	"github.com/google/uuid"
)

type BlogCategory string

const (
	BlogTravel        BlogCategory = "Travel"
	BlogFood          BlogCategory = "Food"
	BlogEntertainment BlogCategory = "Entertainment"
	BlogLifestyle     BlogCategory = "Lifestyle"
	BlogStudentLife   BlogCategory = "Student Life"
)

type BlogEntry struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	Title     string       `db:"title" json:"title"`
	Content   string       `db:"content" json:"content"`
	Author    string       `db:"author" json:"author"`
	AuthorID  uuid.UUID    `db:"author_id" json:"author_id"`
	Category  BlogCategory `db:"category" json:"category"`
	ImageURL  *string      `db:"image_url" json:"image_url,omitempty"`
	ReadTime  string       `db:"read_time" json:"read_time"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}
