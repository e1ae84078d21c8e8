package catalog

import "context"

// Repository defines data access for the product catalog.
type Repository interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, p *Product) error

	// GetProductByID retrieves a product with its variations and colors.
	GetProductByID(ctx context.Context, id string) (*Product, error)

	// GetProductBySlug retrieves a product with its variations and colors.
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)

	// ListProducts returns products, optionally filtered by category slug and
	// active flag, newest first.
	ListProducts(ctx context.Context, categorySlug string, activeOnly bool) ([]*Product, error)

	// UpdateProduct persists changes to an existing product.
	UpdateProduct(ctx context.Context, p *Product) error

	// DeleteProduct removes a product and its variations/colors.
	DeleteProduct(ctx context.Context, id string) error

	// CreateVariation adds a variation to a product.
	CreateVariation(ctx context.Context, v *Variation) error

	// UpdateVariation persists changes to a variation.
	UpdateVariation(ctx context.Context, v *Variation) error

	// DeleteVariation removes a variation.
	DeleteVariation(ctx context.Context, id string) error

	// GetVariation retrieves a single variation.
	GetVariation(ctx context.Context, id string) (*Variation, error)

	// CreateColor adds a color to a product.
	CreateColor(ctx context.Context, c *Color) error

	// UpdateColor persists changes to a color.
	UpdateColor(ctx context.Context, c *Color) error

	// DeleteColor removes a color.
	DeleteColor(ctx context.Context, id string) error

	// GetColor retrieves a single color.
	GetColor(ctx context.Context, id string) (*Color, error)

	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, c *Category) error

	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]*Category, error)

	// DeleteCategory removes a category; products keep a dangling nil category.
	DeleteCategory(ctx context.Context, id string) error
}
