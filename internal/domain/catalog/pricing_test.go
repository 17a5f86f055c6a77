package catalog

import (
	"testing"
)

func TestQuoteRiceball(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		flavor   string
		large    bool
		heavy    bool
		extraEgg bool
		want     int
	}{
		{"基本價", "韓式泡菜", false, false, false, 45},
		{"加大+5", "韓式泡菜", true, false, false, 50},
		{"重量用重量價", "韓式泡菜", false, true, false, 80},
		{"重量蓋過加大", "韓式泡菜", true, true, false, 80},
		{"加蛋+10", "韓式泡菜", false, false, true, 55},
		{"重量加蛋", "醬燒里肌", false, true, true, 90},
		{"傳統只有加大", "源味傳統", true, false, false, 40},
	}
	for _, tt := range tests {
		q, err := c.QuoteRiceball(tt.flavor, tt.large, tt.heavy, tt.extraEgg)
		if err != nil {
			t.Errorf("%s: QuoteRiceball failed: %v", tt.name, err)
			continue
		}
		if q.NeedsConfirm {
			t.Errorf("%s: unexpected NeedsConfirm", tt.name)
			continue
		}
		if q.Total != tt.want {
			t.Errorf("%s: Total = %d, want %d", tt.name, q.Total, tt.want)
		}
	}
}

func TestQuoteRiceballOnlyLargeCoercesHeavy(t *testing.T) {
	c := Default()

	// 源味傳統沒有重量版，點重量折回加大
	q, err := c.QuoteRiceball("源味傳統", false, true, false)
	if err != nil {
		t.Fatalf("QuoteRiceball failed: %v", err)
	}
	if q.NeedsConfirm {
		t.Fatal("only-large flavor should not need confirmation")
	}
	if !q.Large || q.Heavy {
		t.Errorf("Large/Heavy = %v/%v, want true/false", q.Large, q.Heavy)
	}
	if q.Total != 40 {
		t.Errorf("Total = %d, want 40", q.Total)
	}
}

func TestQuoteRiceballHeavyWithoutPriceNeedsConfirm(t *testing.T) {
	c := Default()

	// 蛋餅飯糰沒有重量價也不是傳統系列
	q, err := c.QuoteRiceball("蛋餅飯糰", false, true, false)
	if err != nil {
		t.Fatalf("QuoteRiceball failed: %v", err)
	}
	if !q.NeedsConfirm {
		t.Error("NeedsConfirm = false, want true")
	}
}

func TestQuoteRiceballUnknownFlavor(t *testing.T) {
	c := Default()

	if _, err := c.QuoteRiceball("不存在", false, false, false); err == nil {
		t.Error("unknown flavor should fail")
	}
}

func TestQuoteDrink(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		size string
		want int
	}{
		{"豆漿", "中杯", 25},
		{"豆漿", "大杯", 30},
		{"純鮮奶咖啡", "大杯", 50},
	}
	for _, tt := range tests {
		got, err := c.QuoteDrink(tt.name, tt.size)
		if err != nil {
			t.Errorf("QuoteDrink(%s, %s) failed: %v", tt.name, tt.size, err)
			continue
		}
		if got != tt.want {
			t.Errorf("QuoteDrink(%s, %s) = %d, want %d", tt.name, tt.size, got, tt.want)
		}
	}

	if _, err := c.QuoteDrink("可樂", "中杯"); err == nil {
		t.Error("unknown drink should fail")
	}
}
