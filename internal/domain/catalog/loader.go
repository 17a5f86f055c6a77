package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load 讀取 YAML 菜單檔建立 Catalog。
// 檔內省略的區塊沿用內建菜單，讓店家只覆蓋需要調整的部分。
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	fillDefaults(&def)

	c, err := New(def)
	if err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}
	return c, nil
}

// fillDefaults 把檔案沒給的區塊補回內建菜單。
// 不直接在 defaultDefinition 上 unmarshal，避免改到共用的預設資料。
func fillDefaults(def *Definition) {
	d := defaultDefinition
	if len(def.Recipes) == 0 {
		def.Recipes = d.Recipes
	}
	if len(def.FlavorAliases) == 0 {
		def.FlavorAliases = d.FlavorAliases
	}
	if len(def.AmbiguousProteins) == 0 {
		def.AmbiguousProteins = d.AmbiguousProteins
	}
	if len(def.OralRiceball) == 0 {
		def.OralRiceball = d.OralRiceball
	}
	if def.DefaultFlavor == "" {
		def.DefaultFlavor = d.DefaultFlavor
	}
	if len(def.RiceAliases) == 0 {
		def.RiceAliases = d.RiceAliases
	}
	if len(def.RiceMix) == 0 {
		def.RiceMix = d.RiceMix
	}
	if len(def.RiceChoices) == 0 {
		def.RiceChoices = d.RiceChoices
	}
	if len(def.DrinkAliases) == 0 {
		def.DrinkAliases = d.DrinkAliases
	}
	if len(def.DrinkPrices) == 0 {
		def.DrinkPrices = d.DrinkPrices
	}
	if len(def.SizeMap) == 0 {
		def.SizeMap = d.SizeMap
	}
	if len(def.TempMap) == 0 {
		def.TempMap = d.TempMap
	}
	if len(def.SugarMap) == 0 {
		def.SugarMap = d.SugarMap
	}
	if len(def.Carriers) == 0 {
		def.Carriers = d.Carriers
	}
	if len(def.CarrierPrices) == 0 {
		def.CarrierPrices = d.CarrierPrices
	}
	if len(def.EggPancakeAliases) == 0 {
		def.EggPancakeAliases = d.EggPancakeAliases
	}
	if len(def.EggPancakePrices) == 0 {
		def.EggPancakePrices = d.EggPancakePrices
	}
	if len(def.SnackPrices) == 0 {
		def.SnackPrices = d.SnackPrices
	}
	if len(def.StandaloneOnly) == 0 {
		def.StandaloneOnly = d.StandaloneOnly
	}
	if len(def.IngredientSyns) == 0 {
		def.IngredientSyns = d.IngredientSyns
	}
	if len(def.AddonPrices) == 0 {
		def.AddonPrices = d.AddonPrices
	}
	if len(def.TextAliases) == 0 {
		def.TextAliases = d.TextAliases
	}
	if len(def.FillerTokens) == 0 {
		def.FillerTokens = d.FillerTokens
	}
}
