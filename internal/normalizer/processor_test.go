package normalizer

import (
	"errors"
	"testing"

	"swipecatalog/internal/models"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor(DefaultThresholds(), DefaultDefaults())
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestProcessor_Process(t *testing.T) {
	p := NewProcessor(DefaultThresholds(), DefaultDefaults())

	products := []models.Product{
		{
			ID: "alo_0", Name: "Airlift Legging", Brand: "Alo Yoga", Category: models.CategoryActivewear,
			Subcategory: "leggings", Color: "black", RawPrice: "$128.00", ImageURL: "https://img/1.jpg",
			ProductURL: "https://alo/1", Style: models.StyleAthletic, Fit: models.FitRegular,
		},
		{
			ID: "nakd_0", Brand: "Nakd", RawPrice: "n/a",
		},
	}

	report, err := p.Process(products)
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if report.Records != 2 || report.PricesResolved != 1 || report.PricesUnresolved != 1 {
		t.Errorf("report = %+v", report)
	}

	first := products[0]
	if first.Name != "Airlift Legging" || first.Color != "black" || first.ImageURL != "https://img/1.jpg" {
		t.Errorf("present values were overwritten: %+v", first)
	}

	if first.PriceRange != models.PricePremium {
		t.Errorf("PriceRange = %s, want premium", first.PriceRange)
	}

	second := products[1]

	want := models.Product{
		ID: "nakd_0", Name: "Unknown Product", Brand: "Nakd", Category: models.CategoryOther,
		Subcategory: models.SubcategoryOther, Color: "unknown", RawPrice: "n/a", ImageURL: PlaceholderImageURL,
		ProductURL: "#", Style: models.StyleCasual, Fit: models.FitRegular, PriceRange: models.PriceUnknown,
	}
	if second != want {
		t.Errorf("filled record = %+v, want %+v", second, want)
	}

	if report.Filled["name"] != 1 || report.Filled["image_url"] != 1 || report.Filled["price"] != 0 {
		t.Errorf("Filled = %v", report.Filled)
	}
}

func TestProcessor_Process_PriceDefault(t *testing.T) {
	defaults := DefaultDefaults()
	zero := 0.0
	defaults.Price = &zero

	p := NewProcessor(DefaultThresholds(), defaults)
	products := []models.Product{{ID: "cup_0"}}

	if _, err := p.Process(products); err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if products[0].Price == nil || *products[0].Price != 0 {
		t.Errorf("Price = %v, want 0", products[0].Price)
	}

	if products[0].PriceRange != models.PriceUnknown {
		t.Errorf("PriceRange = %s, want unknown since bucketing precedes filling", products[0].PriceRange)
	}
}

func TestProcessor_Process_Idempotent(t *testing.T) {
	p := NewProcessor(DefaultThresholds(), DefaultDefaults())
	products := []models.Product{{ID: "ed_0", RawPrice: "$30.00"}}

	if _, err := p.Process(products); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	once := products[0]

	if _, err := p.Process(products); err != nil {
		t.Fatalf("second pass failed: %v", err)
	}

	if *products[0].Price != *once.Price || products[0].PriceRange != once.PriceRange || products[0].Name != once.Name {
		t.Errorf("second pass changed the record: %+v vs %+v", products[0], once)
	}
}

func TestProcessor_Process_ValidationError(t *testing.T) {
	p := NewProcessor(DefaultThresholds(), DefaultDefaults())
	products := []models.Product{{ID: "pp_0"}, {ID: "pp_0"}}

	report, err := p.Process(products)
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}

	if report == nil || report.Records != 2 {
		t.Error("Process should still return a report on validation failure")
	}
}
