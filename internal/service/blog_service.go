package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

var ErrBlogValidation = errors.New("blog validation failed")

const (
	defaultBlogPageSize = 20
	maxBlogPageSize     = 100
	readingWordsPerMin  = 200
)

// authenticityScorer is the slice of the writing assistant the blog flow
// needs. Scoring failures are already absorbed behind it.
type authenticityScorer interface {
	Authenticity(ctx context.Context, content string) domain.AuthenticityScore
}

type BlogCreateInput struct {
	Title    string
	Content  string
	Category domain.BlogCategory
	ImageURL *string
}

type BlogService struct {
	blogs    ports.BlogRepository
	sessions ports.SessionStore
	scorer   authenticityScorer
}

func NewBlogService(blogs ports.BlogRepository, sessions ports.SessionStore, scorer authenticityScorer) *BlogService {
	return &BlogService{blogs: blogs, sessions: sessions, scorer: scorer}
}

func (s *BlogService) List(ctx context.Context, limit, offset int) ([]domain.BlogEntry, error) {
	if limit <= 0 {
		limit = defaultBlogPageSize
	}
	if limit > maxBlogPageSize {
		limit = maxBlogPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.blogs.ListRecent(ctx, limit, offset)
}

// Publish stores a new blog entry and banks the contribution reward. The
// reward scales with the authenticity score; only verified members bank it.
// The returned amount is what was actually credited.
func (s *BlogService) Publish(ctx context.Context, user *domain.User, input BlogCreateInput) (*domain.BlogEntry, float64, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, 0, fmt.Errorf("%w: title is required", ErrBlogValidation)
	}
	if content == "" {
		return nil, 0, fmt.Errorf("%w: content is required", ErrBlogValidation)
	}
	if input.Category == "" {
		return nil, 0, fmt.Errorf("%w: category is required", ErrBlogValidation)
	}

	entry := &domain.BlogEntry{
		Title:    title,
		Content:  content,
		Author:   user.Name,
		AuthorID: user.ID,
		Category: input.Category,
		ImageURL: input.ImageURL,
		ReadTime: readTime(content),
	}
	created, err := s.blogs.Create(ctx, entry)
	if err != nil {
		return nil, 0, err
	}

	if !user.Verified() {
		return created, 0, nil
	}
	reward := BlogReward(s.scorer.Authenticity(ctx, content))
	user.Credits += reward
	user.Tier = domain.TierForCredits(user.Credits)
	if err := s.sessions.SaveUser(ctx, user); err != nil {
		user.Credits -= reward
		user.Tier = domain.TierForCredits(user.Credits)
		return created, 0, nil
	}
	return created, reward, nil
}

func readTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + readingWordsPerMin - 1) / readingWordsPerMin
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
