package menu

import (
	"time"

	"github.com/google/uuid"
)

// Category is the closed set of menu item categories. Categories drive
// kitchen ticketing and inventory deduction at payment time, so free-form
// strings are rejected at creation.
type Category string

const (
	CategoryBreakfast   Category = "BREAKFAST"
	CategoryAppetizer   Category = "APPETIZER"
	CategoryMainCourse  Category = "MAIN_COURSE"
	CategoryDessert     Category = "DESSERT"
	CategorySnack       Category = "SNACK"
	CategorySoftDrink   Category = "SOFT_DRINK"
	CategoryJuice       Category = "JUICE"
	CategoryBeer        Category = "BEER"
	CategoryWine        Category = "WINE"
	CategorySpirit      Category = "SPIRIT"
	CategoryCocktail    Category = "COCKTAIL"
	CategoryHotBeverage Category = "HOT_BEVERAGE"
)

// Routing describes what happens to a line item of a given category when
// its order is paid.
type Routing struct {
	// KitchenRelevant items are bundled into a kitchen ticket.
	KitchenRelevant bool `json:"kitchen_relevant"`
	// DirectInventoryBeverage items decrement their linked inventory item
	// one-for-one instead of going through a recipe.
	DirectInventoryBeverage bool `json:"direct_inventory_beverage"`
}

// categoryRouting is total over the Category enum. Prepared food goes to the
// kitchen; bottled/poured beverages deduct straight from stock; cocktails and
// hot beverages are prepared behind the bar, so they get a ticket and deduct
// through their recipe.
var categoryRouting = map[Category]Routing{
	CategoryBreakfast:   {KitchenRelevant: true},
	CategoryAppetizer:   {KitchenRelevant: true},
	CategoryMainCourse:  {KitchenRelevant: true},
	CategoryDessert:     {KitchenRelevant: true},
	CategorySnack:       {KitchenRelevant: true},
	CategorySoftDrink:   {DirectInventoryBeverage: true},
	CategoryJuice:       {DirectInventoryBeverage: true},
	CategoryBeer:        {DirectInventoryBeverage: true},
	CategoryWine:        {DirectInventoryBeverage: true},
	CategorySpirit:      {DirectInventoryBeverage: true},
	CategoryCocktail:    {KitchenRelevant: true},
	CategoryHotBeverage: {KitchenRelevant: true},
}

// RoutingFor returns the payment-time routing for a category. Unknown
// categories cannot reach here through the service layer; they route nowhere.
func RoutingFor(c Category) Routing { return categoryRouting[c] }

// ValidCategory reports whether c is a member of the closed category set.
func ValidCategory(c Category) bool {
	_, ok := categoryRouting[c]
	return ok
}

// Categories returns all valid categories, for clients building pickers.
func Categories() []Category {
	out := make([]Category, 0, len(categoryRouting))
	for c := range categoryRouting {
		out = append(out, c)
	}
	return out
}

// MenuItem is a sellable item on the restaurant/bar menu.
type MenuItem struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Category        Category            `json:"category"`
	Price           float64             `json:"price"`
	Currency        string              `json:"currency"`
	TaxRate         *float64            `json:"tax_rate,omitempty"` // percent; nil = use the configured default
	TrackInventory  bool                `json:"track_inventory"`
	InventoryItemID *uuid.UUID          `json:"inventory_item_id,omitempty"`
	IsAvailable     bool                `json:"is_available"`
	Recipe          []*RecipeIngredient `json:"recipe,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// RecipeIngredient links a menu item to an inventory item it consumes.
type RecipeIngredient struct {
	ID              uuid.UUID `json:"id"`
	MenuItemID      uuid.UUID `json:"menu_item_id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Quantity        float64   `json:"quantity"` // amount consumed per unit sold
	Unit            string    `json:"unit,omitempty"`
}

// CreateMenuItemRequest is the payload for adding a menu item.
type CreateMenuItemRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency,omitempty"`
	TaxRate         *float64 `json:"tax_rate,omitempty"`
	TrackInventory  bool     `json:"track_inventory,omitempty"`
	InventoryItemID string   `json:"inventory_item_id,omitempty"`
}

// UpdateMenuItemRequest is the payload for editing a menu item.
type UpdateMenuItemRequest struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	TaxRate     *float64 `json:"tax_rate,omitempty"`
}

// RecipeLine is one ingredient in a SetRecipeRequest.
type RecipeLine struct {
	InventoryItemID string  `json:"inventory_item_id"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit,omitempty"`
}

// SetRecipeRequest replaces a menu item's recipe wholesale.
type SetRecipeRequest struct {
	Ingredients []RecipeLine `json:"ingredients"`
}
