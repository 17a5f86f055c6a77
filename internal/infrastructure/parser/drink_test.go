package parser

import (
	"testing"
)

func TestDrinkShortForm(t *testing.T) {
	p := NewDrinkParser(testCatalog(t))

	// 大冰簡寫一次帶出品名、杯型、溫度
	tests := []struct {
		text  string
		drink string
		sugar string
	}{
		{"大冰豆", "豆漿", ""},
		{"大冰清", "豆漿", "無糖"},
		{"大冰紅", "精選紅茶", ""},
		{"大冰奶", "純鮮奶茶", ""},
		{"大冰黑糖", "黑糖純鮮奶茶", ""},
	}
	for _, tt := range tests {
		f := p.Parse(tt.text)
		if f.Drink != tt.drink {
			t.Errorf("Parse(%q).Drink = %q, want %q", tt.text, f.Drink, tt.drink)
		}
		if f.Size != "大杯" {
			t.Errorf("Parse(%q).Size = %q, want 大杯", tt.text, f.Size)
		}
		if f.Temp != "冰" {
			t.Errorf("Parse(%q).Temp = %q, want 冰", tt.text, f.Temp)
		}
		if f.Sugar != tt.sugar {
			t.Errorf("Parse(%q).Sugar = %q, want %q", tt.text, f.Sugar, tt.sugar)
		}
	}
}

func TestDrinkAliasCarriesSugar(t *testing.T) {
	p := NewDrinkParser(testCatalog(t))

	f := p.Parse("清漿")
	if f.Drink != "豆漿" {
		t.Errorf("Drink = %q, want 豆漿", f.Drink)
	}
	if f.Sugar != "無糖" {
		t.Errorf("Sugar = %q, want 無糖", f.Sugar)
	}
	if f.Size != "" || f.Temp != "" {
		t.Errorf("Size/Temp = %q/%q, want both empty", f.Size, f.Temp)
	}
}

func TestDrinkSeparateSlots(t *testing.T) {
	p := NewDrinkParser(testCatalog(t))

	f := p.Parse("大杯冰奶茶")
	if f.Drink != "純鮮奶茶" {
		t.Errorf("Drink = %q, want 純鮮奶茶", f.Drink)
	}
	if f.Size != "大杯" {
		t.Errorf("Size = %q, want 大杯", f.Size)
	}
	if f.Temp != "冰" {
		t.Errorf("Temp = %q, want 冰", f.Temp)
	}
}

func TestDrinkQuantity(t *testing.T) {
	p := NewDrinkParser(testCatalog(t))

	tests := []struct {
		text string
		want int
	}{
		{"兩杯溫紅茶", 2},
		{"3杯豆漿", 3},
		{"紅茶", 1},
	}
	for _, tt := range tests {
		if f := p.Parse(tt.text); f.Quantity != tt.want {
			t.Errorf("Parse(%q).Quantity = %d, want %d", tt.text, f.Quantity, tt.want)
		}
	}
}

func TestDrinkMissingSlots(t *testing.T) {
	p := NewDrinkParser(testCatalog(t))

	f := p.Parse("紅茶")
	missing := f.MissingSlots()
	if len(missing) != 2 || missing[0] != "temp" || missing[1] != "size" {
		t.Errorf("MissingSlots = %v, want [temp size]", missing)
	}
}
