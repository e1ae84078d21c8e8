package content

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Service defines content management business logic.
type Service interface {
	// ActiveBanners returns banners shown on the storefront, ordered by position.
	ActiveBanners(ctx context.Context) ([]*Banner, error)

	// PublishedPosts returns blog posts visible on the storefront.
	PublishedPosts(ctx context.Context) ([]*Post, error)

	// PostBySlug returns a single published post.
	PostBySlug(ctx context.Context, slug string) (*Post, error)

	// Back-office operations.
	CreateBanner(ctx context.Context, req BannerRequest) (*Banner, error)
	AllBanners(ctx context.Context) ([]*Banner, error)
	UpdateBanner(ctx context.Context, id string, req BannerRequest) (*Banner, error)
	DeleteBanner(ctx context.Context, id string) error

	CreatePost(ctx context.Context, req PostRequest) (*Post, error)
	AllPosts(ctx context.Context) ([]*Post, error)
	UpdatePost(ctx context.Context, id string, req PostRequest) (*Post, error)
	DeletePost(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new content service.
func NewService(repo Repository) Service { return &service{repo: repo} }

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ── storefront ───────────────────────────────────────────────────────────────

func (s *service) ActiveBanners(ctx context.Context) ([]*Banner, error) {
	return s.repo.ListBanners(ctx, true)
}

func (s *service) PublishedPosts(ctx context.Context) ([]*Post, error) {
	return s.repo.ListPosts(ctx, true)
}

func (s *service) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	p, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("post not found")
	}
	if !p.Published {
		return nil, fmt.Errorf("post not found")
	}
	return p, nil
}

// ── back office ──────────────────────────────────────────────────────────────

func (s *service) CreateBanner(ctx context.Context, req BannerRequest) (*Banner, error) {
	if err := validateBanner(req); err != nil {
		return nil, err
	}
	b := &Banner{
		ID:       uuid.New(),
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		IsActive: req.IsActive,
	}
	if err := s.repo.CreateBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) AllBanners(ctx context.Context) ([]*Banner, error) {
	return s.repo.ListBanners(ctx, false)
}

func (s *service) UpdateBanner(ctx context.Context, id string, req BannerRequest) (*Banner, error) {
	if err := validateBanner(req); err != nil {
		return nil, err
	}
	b, err := s.repo.GetBanner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("banner not found")
	}
	b.Title = req.Title
	b.ImageURL = req.ImageURL
	b.LinkURL = req.LinkURL
	b.Position = req.Position
	b.IsActive = req.IsActive
	if err := s.repo.UpdateBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) DeleteBanner(ctx context.Context, id string) error {
	return s.repo.DeleteBanner(ctx, id)
}

func (s *service) CreatePost(ctx context.Context, req PostRequest) (*Post, error) {
	if err := validatePost(req); err != nil {
		return nil, err
	}
	p := &Post{
		ID:        uuid.New(),
		Title:     req.Title,
		Slug:      req.Slug,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	}
	if err := s.repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) AllPosts(ctx context.Context) ([]*Post, error) {
	return s.repo.ListPosts(ctx, false)
}

func (s *service) UpdatePost(ctx context.Context, id string, req PostRequest) (*Post, error) {
	if err := validatePost(req); err != nil {
		return nil, err
	}
	p, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post not found")
	}
	p.Title = req.Title
	p.Slug = req.Slug
	p.Body = req.Body
	p.ImageURL = req.ImageURL
	p.Published = req.Published
	if err := s.repo.UpdatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeletePost(ctx context.Context, id string) error {
	return s.repo.DeletePost(ctx, id)
}

func validateBanner(req BannerRequest) error {
	if req.Title == "" {
		return fmt.Errorf("title is required")
	}
	if req.ImageURL == "" {
		return fmt.Errorf("image_url is required")
	}
	return nil
}

func validatePost(req PostRequest) error {
	if req.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !slugPattern.MatchString(req.Slug) {
		return fmt.Errorf("invalid slug: must be lowercase letters, digits and hyphens")
	}
	return nil
}
