package catalog

import "github.com/shopspring/decimal"

// Product represents a catalog entry. The ID is assigned at seed time and is
// the only key other packages use to reference a product; structural values
// (name, price) never act as map keys.
type Product struct {
	ID    int             `json:"productID"`
	Name  string          `json:"productName"`
	Price decimal.Decimal `json:"productPrice"`
	Stock int             `json:"stock"`
}

// Seed returns the store's fixed opening catalog. Stock only ever decreases
// from these values; there is no restock path.
func Seed() []Product {
	return []Product{
		{ID: 1, Name: "Gain Laundry Detergent", Price: decimal.NewFromInt(3950), Stock: 10},
		{ID: 2, Name: "Paper Towels Bundle", Price: decimal.NewFromInt(2200), Stock: 15},
		{ID: 3, Name: "Tissues - Pack of 24", Price: decimal.NewFromInt(995), Stock: 20},
		{ID: 4, Name: "Large Trash Bags - Pack Size 120", Price: decimal.NewFromInt(1600), Stock: 10},
		{ID: 5, Name: "ZipLock Bags - Pack Size 12", Price: decimal.NewFromInt(1200), Stock: 25},
		{ID: 6, Name: "Special K Cereal Chocolate", Price: decimal.NewFromInt(1700), Stock: 16},
		{ID: 7, Name: "Exotic Spices Bundle", Price: decimal.NewFromInt(800), Stock: 8},
		{ID: 8, Name: "Moscato Wine", Price: decimal.NewFromInt(4050), Stock: 5},
		{ID: 9, Name: "Fresh Product Combo", Price: decimal.NewFromInt(1820), Stock: 12},
		{ID: 10, Name: "Exotic Breakfast Combo", Price: decimal.NewFromInt(2990), Stock: 6},
	}
}
