package devserver

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/genius-wizard-dev/storefront/internal/pricing"
)

// SeedCatalog loads a small demo catalog and a few discount codes.
func SeedCatalog(s *Shop) {
	for _, c := range []Category{
		{ID: "coffee", Name: "Coffee"},
		{ID: "brewing", Name: "Brewing gear"},
		{ID: "books", Name: "Books"},
	} {
		s.AddCategory(c)
	}

	products := []struct {
		p     Product
		stock int
	}{
		{Product{ID: "p-espresso", Name: "Espresso blend 1kg", CategoryID: "coffee", Price: decimal.RequireFromString("24.90"),
			Description: "Dark roast, chocolate and hazelnut"}, 40},
		{Product{ID: "p-ethiopia", Name: "Ethiopia Yirgacheffe 250g", CategoryID: "coffee", Price: decimal.RequireFromString("12.50"),
			Description: "Light roast, jasmine and lemon"}, 25},
		{Product{ID: "p-decaf", Name: "Swiss water decaf 500g", CategoryID: "coffee", Price: decimal.RequireFromString("14.75")}, 10},
		{Product{ID: "p-grinder", Name: "Hand grinder", CategoryID: "brewing", Price: decimal.RequireFromString("89.00"),
			Description: "Conical steel burrs"}, 5},
		{Product{ID: "p-kettle", Name: "Gooseneck kettle", CategoryID: "brewing", Price: decimal.RequireFromString("54.99")}, 8},
		{Product{ID: "p-filters", Name: "Paper filters x100", CategoryID: "brewing", Price: decimal.RequireFromString("4.35")}, 200},
		{Product{ID: "p-book", Name: "The World Atlas of Coffee", CategoryID: "books", Price: decimal.RequireFromString("32.00")}, 3},
	}
	for _, it := range products {
		s.AddProduct(it.p, it.stock)
	}

	expired := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
	for _, d := range []Discount{
		{Code: "SAVE10", Type: pricing.Percentage, Value: decimal.NewFromInt(10)},
		{Code: "FIVEOFF", Type: pricing.Fixed, Value: decimal.NewFromInt(5), MinOrderValue: decimal.NewFromInt(25)},
		{Code: "SUMMER24", Type: pricing.Percentage, Value: decimal.NewFromInt(20), ExpiresAt: &expired},
	} {
		s.AddDiscount(d)
	}
}

// SeedUser registers a demo account with one address.
func SeedUser(id *Identity, s *Shop, username, password string) (Profile, error) {
	p, err := id.Register(RegisterRequest{
		Username:  username,
		Password:  password,
		Email:     username + "@example.com",
		FirstName: "Demo",
		LastName:  "User",
	})
	if err != nil {
		return Profile{}, err
	}

	s.AddAddress(p.ID, Address{
		Recipient: "Demo User",
		Phone:     "+1 555 0100",
		Street:    "1 Market Street",
		City:      "Springfield",
		Country:   "US",
		Default:   true,
	})
	return p, nil
}
