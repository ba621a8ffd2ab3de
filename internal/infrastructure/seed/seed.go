package seed

import (
	"context"
	"fmt"

	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/shopspring/decimal"
)

// Products is the reference catalog. Inserted into an empty store it receives ids 1 to 5.
func Products() []product.Product {
	return []product.Product{
		{Name: "Echo Dot", Description: "(2nd Generation) - Black", Quantity: 10, Price: decimal.RequireFromString("92.50")},
		{Name: "Anker 3ft / 0.9m Nylon Braided", Description: "Tangle-Free Micro USB Cable", Quantity: 20, Price: decimal.RequireFromString("9.99")},
		{Name: "JVC HAFX8R Headphone", Description: "Riptidz, In-Ear", Quantity: 30, Price: decimal.RequireFromString("69.99")},
		{Name: "VTech CS6114 DECT 6.0", Description: "Cordless Phone", Quantity: 40, Price: decimal.RequireFromString("32.50")},
		{Name: "NOKIA OEM BL-5J", Description: "Cell Phone ", Quantity: 50, Price: decimal.RequireFromString("895.00")},
	}
}

func Catalog(ctx context.Context, repo product.Repository) error {
	for _, p := range Products() {
		if _, err := repo.Insert(ctx, &p); err != nil {
			return fmt.Errorf("seed: insert %q: %w", p.Name, err)
		}
	}
	return nil
}
