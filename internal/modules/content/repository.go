package content

import "context"

// Repository defines data access for banners and blog posts.
type Repository interface {
	CreateBanner(ctx context.Context, b *Banner) error
	ListBanners(ctx context.Context, activeOnly bool) ([]*Banner, error)
	UpdateBanner(ctx context.Context, b *Banner) error
	DeleteBanner(ctx context.Context, id string) error
	GetBanner(ctx context.Context, id string) (*Banner, error)

	CreatePost(ctx context.Context, p *Post) error
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	GetPostByID(ctx context.Context, id string) (*Post, error)
	ListPosts(ctx context.Context, publishedOnly bool) ([]*Post, error)
	UpdatePost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id string) error
}
