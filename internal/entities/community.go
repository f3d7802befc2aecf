package entities

// PostType classifies community feed posts
type PostType string

const (
	PostInfo     PostType = "info"
	PostQuestion PostType = "question"
	PostSuccess  PostType = "succès"
	PostAlert    PostType = "alerte"
)

// CommunityPost is an entry of the community feed
type CommunityPost struct {
	ID         string   `json:"id" yaml:"id"`
	AuthorID   string   `json:"author_id" yaml:"author_id"`
	Title      string   `json:"title" yaml:"title"`
	Content    string   `json:"content" yaml:"content"`
	PostType   PostType `json:"post_type" yaml:"post_type"`
	LikesCount int      `json:"likes_count" yaml:"likes_count"`
	CreatedAt  string   `json:"created_at" yaml:"created_at"`
}

// GetID returns the identifier of the post
func (p CommunityPost) GetID() string { return p.ID }
