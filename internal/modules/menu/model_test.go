package menu

import "testing"

func TestRoutingIsTotalOverCategories(t *testing.T) {
	for _, c := range Categories() {
		if !ValidCategory(c) {
			t.Errorf("category %s reported invalid", c)
		}
	}
	if ValidCategory(Category("NOT_A_CATEGORY")) {
		t.Error("unknown category reported valid")
	}
}

func TestRoutingFor(t *testing.T) {
	tests := []struct {
		category Category
		kitchen  bool
		direct   bool
	}{
		{CategoryMainCourse, true, false},
		{CategoryBreakfast, true, false},
		{CategoryDessert, true, false},
		{CategoryCocktail, true, false},
		{CategoryHotBeverage, true, false},
		{CategoryBeer, false, true},
		{CategorySoftDrink, false, true},
		{CategoryWine, false, true},
		{CategorySpirit, false, true},
		{CategoryJuice, false, true},
	}
	for _, tt := range tests {
		got := RoutingFor(tt.category)
		if got.KitchenRelevant != tt.kitchen {
			t.Errorf("%s: KitchenRelevant = %v, want %v", tt.category, got.KitchenRelevant, tt.kitchen)
		}
		if got.DirectInventoryBeverage != tt.direct {
			t.Errorf("%s: DirectInventoryBeverage = %v, want %v", tt.category, got.DirectInventoryBeverage, tt.direct)
		}
	}
}

func TestRoutingForUnknownCategoryRoutesNowhere(t *testing.T) {
	got := RoutingFor(Category("MYSTERY"))
	if got.KitchenRelevant || got.DirectInventoryBeverage {
		t.Errorf("unknown category routed somewhere: %+v", got)
	}
}
