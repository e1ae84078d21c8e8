package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/catalog"
	"github.com/hamidraza-dev/bazaarline-backend/internal/pricing"
)

// ProductSource supplies products for add-to-cart validation and price
// capture. The catalog repository satisfies this.
type ProductSource interface {
	GetProductByID(ctx context.Context, id string) (*catalog.Product, error)
}

// SaleSource supplies the currently applicable sales. The sale cache
// satisfies this.
type SaleSource interface {
	Applicable(ctx context.Context) ([]pricing.Sale, error)
}

// Service defines cart business logic, shared by guest and user carts.
type Service interface {
	// AddItem validates the selection against the catalog, captures its
	// price and names, and merges it into the owner's cart.
	AddItem(ctx context.Context, owner Owner, req AddItemRequest) (*Item, error)

	// Get returns the cart with sale-resolved prices and totals.
	Get(ctx context.Context, owner Owner) (*Totals, error)

	// Items returns the raw cart lines (used by checkout).
	Items(ctx context.Context, owner Owner) ([]*Item, error)

	// UpdateQuantity sets a line's quantity (must be >= 1).
	UpdateQuantity(ctx context.Context, owner Owner, itemID string, quantity int) error

	// RemoveItem deletes one line from the cart.
	RemoveItem(ctx context.Context, owner Owner, itemID string) error

	// Clear empties the cart.
	Clear(ctx context.Context, owner Owner) error

	// MergeGuest folds a guest cart into the user's cart after sign-in and
	// deletes the guest copy. Matching selections merge quantities.
	MergeGuest(ctx context.Context, guestToken, userID string) error
}

type service struct {
	users    Store
	guests   Store
	products ProductSource
	sales    SaleSource
	now      func() time.Time
}

// NewService creates a new cart service.
func NewService(users, guests Store, products ProductSource, sales SaleSource) Service {
	return &service{users: users, guests: guests, products: products, sales: sales, now: time.Now}
}

func (s *service) store(owner Owner) Store {
	if owner.Guest {
		return s.guests
	}
	return s.users
}

func (s *service) AddItem(ctx context.Context, owner Owner, req AddItemRequest) (*Item, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	item := &Item{
		ID:          uuid.New(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		ApplySale:   true,
		AddedAt:     s.now(),
	}

	var variationPrice, colorPrice float64
	stock := product.StockQuantity

	if req.VariationID != "" {
		variation := findVariation(product, req.VariationID)
		if variation == nil {
			return nil, fmt.Errorf("variation not found on product %s", product.ID)
		}
		item.VariationID = &variation.ID
		item.VariationName = variation.Name
		item.VariationPrice = variation.Price
		item.ApplySale = variation.ApplySale
		variationPrice = variation.Price
		stock = variation.Quantity
	}
	if req.ColorID != "" {
		color := findColor(product, req.ColorID)
		if color == nil {
			return nil, fmt.Errorf("color not found on product %s", product.ID)
		}
		item.ColorID = &color.ID
		item.ColorName = color.Name
		item.ColorCode = color.Code
		item.ColorPrice = color.Price
		// The color's opt-out governs when a color is selected, mirroring
		// the price precedence.
		item.ApplySale = color.ApplySale
		colorPrice = color.Price
		stock = color.Quantity
	}

	// Advisory stock check only: checkout does not re-verify.
	if stock <= 0 {
		return nil, fmt.Errorf("out of stock")
	}

	item.UnitPrice = pricing.UnitPrice(product.Price, variationPrice, colorPrice)

	store := s.store(owner)
	items, err := store.Items(ctx, owner.Key)
	if err != nil {
		return nil, err
	}
	items = mergeItem(items, item)
	if err := store.Save(ctx, owner.Key, items); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Get(ctx context.Context, owner Owner) (*Totals, error) {
	items, err := s.store(owner).Items(ctx, owner.Key)
	if err != nil {
		return nil, err
	}

	var sales []pricing.Sale
	if s.sales != nil {
		if sales, err = s.sales.Applicable(ctx); err != nil {
			return nil, err
		}
	}
	now := s.now()
	applicable := sales[:0:0]
	for _, sl := range sales {
		if pricing.Applicable(sl, now) {
			applicable = append(applicable, sl)
		}
	}

	totals := &Totals{Items: make([]PricedItem, 0, len(items))}
	lines := make([]pricing.LineItem, 0, len(items))
	for _, it := range items {
		globalSale, productSale := pricing.Lookup(applicable, it.ProductID.String())
		resolved := pricing.Resolve(it.UnitPrice, productSale, globalSale, it.ApplySale)
		totals.Items = append(totals.Items, PricedItem{
			Item:            *it,
			FinalUnitPrice:  resolved.FinalPrice,
			DiscountPercent: resolved.DiscountPercent,
			LineTotal:       resolved.FinalPrice * float64(it.Quantity),
		})
		lines = append(lines, pricing.LineItem{UnitPrice: resolved.FinalPrice, Quantity: it.Quantity})
	}
	totals.Subtotal = pricing.Subtotal(lines)
	totals.Shipping = 0
	totals.Total = pricing.Total(totals.Subtotal, totals.Shipping)
	return totals, nil
}

func (s *service) Items(ctx context.Context, owner Owner) ([]*Item, error) {
	return s.store(owner).Items(ctx, owner.Key)
}

func (s *service) UpdateQuantity(ctx context.Context, owner Owner, itemID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	store := s.store(owner)
	items, err := store.Items(ctx, owner.Key)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID.String() == itemID {
			it.Quantity = quantity
			return store.Save(ctx, owner.Key, items)
		}
	}
	return fmt.Errorf("cart item not found")
}

func (s *service) RemoveItem(ctx context.Context, owner Owner, itemID string) error {
	store := s.store(owner)
	items, err := store.Items(ctx, owner.Key)
	if err != nil {
		return err
	}
	kept := items[:0]
	found := false
	for _, it := range items {
		if it.ID.String() == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return fmt.Errorf("cart item not found")
	}
	return store.Save(ctx, owner.Key, kept)
}

func (s *service) Clear(ctx context.Context, owner Owner) error {
	return s.store(owner).Clear(ctx, owner.Key)
}

func (s *service) MergeGuest(ctx context.Context, guestToken, userID string) error {
	guestItems, err := s.guests.Items(ctx, guestToken)
	if err != nil {
		return err
	}
	if len(guestItems) == 0 {
		return nil
	}
	userItems, err := s.users.Items(ctx, userID)
	if err != nil {
		return err
	}
	for _, it := range guestItems {
		userItems = mergeItem(userItems, it)
	}
	if err := s.users.Save(ctx, userID, userItems); err != nil {
		return err
	}
	return s.guests.Clear(ctx, guestToken)
}

// ── helpers ──────────────────────────────────────────────────────────────────

// mergeItem folds the new item into the list, summing quantities when the
// same product/variation/color selection is already present.
func mergeItem(items []*Item, item *Item) []*Item {
	for _, existing := range items {
		if existing.sameSelection(item) {
			existing.Quantity += item.Quantity
			*item = *existing
			return items
		}
	}
	return append(items, item)
}

func findVariation(p *catalog.Product, id string) *catalog.Variation {
	for _, v := range p.Variations {
		if v.ID.String() == id {
			return v
		}
	}
	return nil
}

func findColor(p *catalog.Product, id string) *catalog.Color {
	for _, c := range p.Colors {
		if c.ID.String() == id {
			return c
		}
	}
	return nil
}
