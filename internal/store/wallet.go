package store

import (
	"fmt"

	"tribex/internal/models"
)

// AddCoins increases the current user's coin balance. A no-op when anonymous.
// The balance is local state only; nothing is persisted remotely.
func (s *Store) AddCoins(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return
	}
	s.currentUser.Coins += amount
}

// CoinPackages returns the purchasable coin bundles shown in the wallet.
func (s *Store) CoinPackages() []models.CoinPackage {
	return s.provider.CoinPackages()
}

// BuyCoins credits a coin package's amount to the current user.
func (s *Store) BuyCoins(pkg models.CoinPackage) {
	s.AddCoins(pkg.Amount)
}

// Products returns the marketplace catalog.
func (s *Store) Products() []models.Product {
	return s.provider.Products()
}

// PurchaseProduct deducts a product's price from the coin balance and marks
// it owned. Purchases are local state, like the balance itself.
func (s *Store) PurchaseProduct(productID string) error {
	var product *models.Product
	for _, p := range s.provider.Products() {
		if p.ID == productID {
			found := p
			product = &found
			break
		}
	}
	if product == nil {
		return models.NewNotFoundError("Product", productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return models.ErrNotAuthenticated
	}
	if s.ownedProducts[productID] {
		return models.NewValidationError("product already owned")
	}
	if s.currentUser.Coins < product.Price {
		return models.NewValidationError(fmt.Sprintf("insufficient coins: need %d, have %d", product.Price, s.currentUser.Coins))
	}

	s.currentUser.Coins -= product.Price
	s.ownedProducts[productID] = true
	return nil
}

// OwnedProducts lists the ids of products purchased in this session.
func (s *Store) OwnedProducts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.ownedProducts))
	for id := range s.ownedProducts {
		ids = append(ids, id)
	}
	return ids
}
