package domain

import "time"

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// Blog is an editorial post. Drafts are visible to admins only.
type Blog struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Thumbnail   string     `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Content     string     `json:"content" bson:"content"`
	AuthorEmail string     `json:"author_email" bson:"author_email"`
	AuthorName  string     `json:"author_name" bson:"author_name"`
	Status      BlogStatus `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}
