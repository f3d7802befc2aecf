package usecases

import (
	"context"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/repository"
)

// PostView is a community post with its author name resolved
type PostView struct {
	entities.CommunityPost
	AuthorName string `json:"author_name"`
}

// CommunityUseCase reads the community feed
type CommunityUseCase struct {
	repo *repository.Repository
}

// NewCommunityUseCase creates a new community use case
func NewCommunityUseCase(repo *repository.Repository) *CommunityUseCase {
	return &CommunityUseCase{repo: repo}
}

// ListPosts returns the posts of the given type, or all of them when postType is empty
func (uc *CommunityUseCase) ListPosts(ctx context.Context, postType entities.PostType) ([]PostView, error) {
	posts, err := uc.repo.Posts.Read(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.repo.Users.Read(ctx)
	if err != nil {
		return nil, err
	}
	authors := make(map[string]string, len(users))
	for _, u := range users {
		authors[u.ID] = u.FullName
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		if postType != "" && p.PostType != postType {
			continue
		}
		name, ok := authors[p.AuthorID]
		if !ok {
			name = entities.UnknownName
		}
		views = append(views, PostView{CommunityPost: p, AuthorName: name})
	}
	return views, nil
}
