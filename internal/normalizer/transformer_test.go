package normalizer

import (
	"testing"

	"github.com/shopspring/decimal"

	"swipecatalog/internal/models"
)

func TestNewTransformer(t *testing.T) {
	tr := NewTransformer(DefaultThresholds())
	if tr == nil {
		t.Fatal("NewTransformer returned nil")
	}
}

func TestTransformer_Bucket(t *testing.T) {
	tr := NewTransformer(DefaultThresholds())

	tests := []struct {
		price string
		want  models.PriceRange
	}{
		{"0", models.PriceBudget},
		{"30.00", models.PriceBudget},
		{"30.01", models.PriceMidRange},
		{"75.00", models.PriceMidRange},
		{"75.01", models.PricePremium},
		{"150.00", models.PricePremium},
		{"150.01", models.PriceLuxury},
		{"-5", models.PriceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			d := decimal.RequireFromString(tt.price)
			if got := tr.Bucket(&d); got != tt.want {
				t.Errorf("Bucket(%s) = %s, want %s", tt.price, got, tt.want)
			}
		})
	}

	if got := tr.Bucket(nil); got != models.PriceUnknown {
		t.Errorf("Bucket(nil) = %s, want unknown", got)
	}
}

func TestTransformer_ParsePrice(t *testing.T) {
	tr := NewTransformer(DefaultThresholds())

	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"$1,299.00", "1299", true},
		{" 45.5 ", "45.5", true},
		{"€ 89", "89", true},
		{"-12", "-12", true},
		{"", "0", false},
		{"$", "0", false},
		{"free", "0", false},
		{"nan", "0", false},
		{"12.99 - 19.99", "0", false},
		{"1 299", "0", false},
		{"$ 1,299", "1299", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := tr.ParsePrice(tt.raw)
			if ok != tt.wantOK || !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParsePrice(%q) = (%s, %v), want (%s, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTransformer_Transform(t *testing.T) {
	tr := NewTransformer(DefaultThresholds())

	p := models.Product{RawPrice: "$74.99"}
	if !tr.Transform(&p) {
		t.Fatal("Transform reported no price for $74.99")
	}

	if p.Price == nil || *p.Price != 74.99 || p.PriceRange != models.PriceMidRange {
		t.Errorf("got price=%v range=%s", p.Price, p.PriceRange)
	}

	neg := models.Product{RawPrice: "-5"}
	if tr.Transform(&neg) {
		t.Error("Transform reported a price for -5")
	}

	if neg.Price != nil || neg.PriceRange != models.PriceUnknown {
		t.Errorf("negative price: got price=%v range=%s", neg.Price, neg.PriceRange)
	}

	bad := models.Product{RawPrice: "call us"}
	tr.Transform(&bad)

	if bad.Price != nil || bad.PriceRange != models.PriceUnknown {
		t.Errorf("unparseable price: got price=%v range=%s", bad.Price, bad.PriceRange)
	}
}

func TestTransformer_CustomThresholds(t *testing.T) {
	tr := NewTransformer(Thresholds{BudgetMax: 10, MidRangeMax: 20, PremiumMax: 40})

	p := models.Product{RawPrice: "25"}
	tr.Transform(&p)

	if p.PriceRange != models.PricePremium {
		t.Errorf("PriceRange = %s, want premium", p.PriceRange)
	}
}
