package catalog

// defaultDefinition 是內建菜單。店家可用 YAML 覆蓋，格式相同。
var defaultDefinition = Definition{
	Recipes: map[string]Recipe{
		// 傳統系列：只有加大、沒有重量版
		"源味傳統": {Price: 35, OnlyLarge: true, Ingredients: []string{"肉鬆", "油條", "菜脯", "酸菜"}},
		"素料":   {Price: 35, OnlyLarge: true, Ingredients: []string{"素鬆", "油條", "菜脯"}},
		"甜飯糰":  {Price: 35, OnlyLarge: true, Ingredients: []string{"花生粉", "糖", "油條"}},
		"半甜鹹":  {Price: 35, OnlyLarge: true, Ingredients: []string{"花生粉", "肉鬆", "油條"}},

		// 肉類系列
		"醬燒里肌": {Protein: "里肌", Price: 55, HeavyPrice: 80, Ingredients: []string{"里肌肉", "油條", "菜脯", "酸菜"}},
		"黑椒里肌": {Protein: "里肌", Price: 55, HeavyPrice: 80, Ingredients: []string{"里肌肉", "油條", "菜脯", "酸菜"}},
		"蜜汁燒肉": {Protein: "豬肉", Price: 55, HeavyPrice: 80, Ingredients: []string{"燒肉", "油條", "菜脯", "酸菜"}},
		"沙茶豬肉": {Protein: "豬肉", Price: 55, HeavyPrice: 80, Ingredients: []string{"豬肉片", "油條", "菜脯", "酸菜"}},
		"香燻培根": {Protein: "培根", Price: 50, HeavyPrice: 80, Ingredients: []string{"培根", "油條", "菜脯", "酸菜"}},
		"風味火腿": {Protein: "火腿", Price: 45, HeavyPrice: 80, Ingredients: []string{"火腿", "油條", "菜脯", "酸菜"}},
		"椒鹽雞絲": {Protein: "雞肉", Price: 50, HeavyPrice: 80, Ingredients: []string{"雞絲", "油條", "菜脯", "酸菜"}},
		"蒜香雞肉": {Protein: "雞肉", Price: 50, HeavyPrice: 80, Ingredients: []string{"雞肉", "油條", "菜脯", "酸菜"}},
		"咖哩嫩雞": {Protein: "雞肉", Price: 50, HeavyPrice: 80, Ingredients: []string{"雞肉", "油條", "菜脯", "酸菜"}},
		"和風雞肉": {Protein: "雞肉", Price: 50, HeavyPrice: 80, Ingredients: []string{"雞肉", "油條", "菜脯", "酸菜"}},

		// 蛋類與其他
		"QQ滷蛋": {Price: 40, HeavyPrice: 80, Ingredients: []string{"滷蛋", "油條", "菜脯", "酸菜"}},
		"懷古鹹蛋": {Price: 40, HeavyPrice: 80, Ingredients: []string{"鹹蛋", "油條", "菜脯", "酸菜"}},
		"蔥蛋豆芽": {Price: 40, HeavyPrice: 80, Ingredients: []string{"蔥蛋", "豆芽", "油條", "菜脯"}},
		"茄汁蛋包": {Price: 45, HeavyPrice: 80, Ingredients: []string{"蛋包", "油條", "菜脯"}},
		"韓式泡菜": {Price: 45, HeavyPrice: 80, Ingredients: []string{"泡菜", "肉鬆", "油條"}},
		"香濃起司": {Price: 45, HeavyPrice: 80, Ingredients: []string{"起司", "肉鬆", "油條"}},
		"香煎吻魚": {Protein: "吻魚", Price: 55, HeavyPrice: 80, Ingredients: []string{"吻仔魚", "油條", "菜脯"}},
		"鮪魚飯糰": {Protein: "鮪魚", Price: 50, HeavyPrice: 80, Ingredients: []string{"鮪魚沙拉", "油條", "菜脯"}},
		"甜心芋泥": {Price: 40, HeavyPrice: 80, Ingredients: []string{"芋泥", "油條", "花生粉"}},

		// 組合款：蛋餅包進飯糰，沒有重量版
		"蛋餅飯糰": {Price: 60, Ingredients: []string{"蛋餅", "油條", "菜脯", "酸菜"}},
	},
	FlavorAliases: map[string]string{
		// 不放「甜」→「甜飯糰」，避免「半甜鹹」被「甜」提前吃掉
		"源味飯糰": "源味傳統",
		"傳統源味": "源味傳統",
		"源味":   "源味傳統",
		"半甜":   "半甜鹹",
		"鹹蛋飯糰": "懷古鹹蛋",
		"鹹蛋":   "懷古鹹蛋",
		"泡菜":   "韓式泡菜",
		"黑椒":   "黑椒里肌",
		"鮪魚":   "鮪魚飯糰",
		"芋泥":   "甜心芋泥",
		"吻魚":   "香煎吻魚",
		"培根":   "香燻培根",
		"火腿":   "風味火腿",
	},
	// 單獨出現時只是蛋白質，不能直接當口味（同一種肉出現在多款口味）
	AmbiguousProteins: []string{"里肌", "雞肉", "豬肉", "肉"},
	OralRiceball:      []string{"飯糰"},
	DefaultFlavor:     "源味傳統",
	RiceAliases: map[string]string{
		"紫糯米": "紫米",
		"黑糯米": "紫米",
		"黑米":  "紫米",
		"紫米":  "紫米",
		"紫飯":  "紫米",
		"紫的":  "紫米",
		"黑的":  "紫米",
		"白糯米": "白米",
		"白米":  "白米",
		"白飯":  "白米",
		"白的":  "白米",
	},
	RiceMix:     []string{"紫米白米混合", "紫米白米", "紫白混合", "混合米", "混米", "混合", "一半一半"},
	RiceChoices: []string{"白米", "紫米", "混米"},
	DrinkAliases: map[string]DrinkEntry{
		// 大冰簡寫（最高優先，長字排序自然蓋過單字簡寫）
		"大冰豆":  {Name: "豆漿"},
		"大冰清":  {Name: "豆漿", Sugar: "無糖"},
		"大冰紅":  {Name: "精選紅茶"},
		"大冰米":  {Name: "花生糙米漿"},
		"大冰混":  {Name: "米漿豆漿"},
		"大冰薏":  {Name: "燕麥薏仁漿"},
		"大冰綠":  {Name: "無糖清香綠茶"},
		"大冰奶":  {Name: "純鮮奶茶"},
		"大冰咖":  {Name: "純鮮奶咖啡"},
		"大冰黑糖": {Name: "黑糖純鮮奶茶"},

		// 完整別稱
		"豆漿":     {Name: "豆漿"},
		"無糖豆漿":   {Name: "豆漿", Sugar: "無糖"},
		"清漿":     {Name: "豆漿", Sugar: "無糖"},
		"白漿":     {Name: "豆漿", Sugar: "無糖"},
		"花生糙米漿":  {Name: "花生糙米漿"},
		"糙米漿":    {Name: "花生糙米漿"},
		"米漿":     {Name: "花生糙米漿"},
		"燕麥薏仁漿":  {Name: "燕麥薏仁漿"},
		"薏仁漿":    {Name: "燕麥薏仁漿"},
		"五穀漿":    {Name: "五穀漿"},
		"十穀":     {Name: "五穀漿"},
		"純鮮奶茶":   {Name: "純鮮奶茶"},
		"鮮奶茶":    {Name: "純鮮奶茶"},
		"奶茶":     {Name: "純鮮奶茶"},
		"精選紅茶":   {Name: "精選紅茶"},
		"紅茶":     {Name: "精選紅茶"},
		"無糖清香綠茶": {Name: "無糖清香綠茶"},
		"綠茶":     {Name: "無糖清香綠茶"},
		"黑糖純鮮奶茶": {Name: "黑糖純鮮奶茶"},
		"黑糖奶茶":   {Name: "黑糖純鮮奶茶"},
		"純鮮奶咖啡":  {Name: "純鮮奶咖啡"},
		"鮮奶咖啡":   {Name: "純鮮奶咖啡"},
		"燕麥薏仁牛奶": {Name: "燕麥薏仁牛奶"},
	},
	DrinkPrices: map[string]int{
		"豆漿":     25,
		"花生糙米漿":  30,
		"米漿豆漿":   30,
		"燕麥薏仁漿":  30,
		"五穀漿":    30,
		"精選紅茶":   25,
		"無糖清香綠茶": 25,
		"純鮮奶茶":   35,
		"黑糖純鮮奶茶": 40,
		"純鮮奶咖啡":  45,
		"燕麥薏仁牛奶": 40,
	},
	SizeMap:  map[string]string{"大": "大杯", "中": "中杯", "小": "中杯"},
	TempMap:  map[string]string{"冰": "冰", "溫": "溫", "熱": "熱", "冷的": "冰", "熱的": "熱"},
	SugarMap: map[string]string{"無糖": "無糖", "半糖": "半糖", "有糖": "有糖"},
	Carriers: []string{"漢堡", "吐司", "饅頭"},
	CarrierPrices: map[string]int{
		"饅頭夾蛋":  30,
		"起司蛋饅頭": 40,
		"豬排漢堡":  50,
		"培根蛋漢堡": 50,
		"火腿蛋吐司": 40,
		"鮪魚吐司":  45,
	},
	EggPancakeAliases: map[string]string{
		"原味蛋餅": "原味蛋餅",
		"玉米蛋餅": "玉米蛋餅",
		"起司蛋餅": "起司蛋餅",
		"火腿蛋餅": "火腿蛋餅",
		"培根蛋餅": "培根蛋餅",
		"鮪魚蛋餅": "鮪魚蛋餅",
		"醬燒肉片蛋餅": "醬燒肉片蛋餅",
	},
	EggPancakePrices: map[string]int{
		"原味蛋餅":   30,
		"玉米蛋餅":   40,
		"起司蛋餅":   40,
		"火腿蛋餅":   40,
		"培根蛋餅":   45,
		"鮪魚蛋餅":   45,
		"醬燒肉片蛋餅": 50,
	},
	SnackPrices: map[string]int{
		"薯餅":  20,
		"熱狗":  20,
		"荷包蛋": 15,
		"雞塊":  40,
		"蘿蔔糕": 30,
		"油條":  15,
	},
	StandaloneOnly: []string{"蛋餅"},
	IngredientSyns: map[string]string{
		"加蛋":   "蛋",
		"蛋":    "蛋",
		"起司片":  "起司",
		"起司":   "起司",
		"油條":   "油條",
		"肉":    "肉類",
		"肉類":   "肉類",
		"肉鬆":   "肉鬆",
		"火腿":   "火腿",
		"培根":   "培根",
		"泡菜":   "泡菜",
		"鹹蛋":   "鹹蛋",
		"鮪魚沙拉": "鮪魚",
		"鮪魚":   "鮪魚",
	},
	AddonPrices: map[string]int{
		"蛋":  10,
		"起司": 10,
		"油條": 10,
		"肉鬆": 10,
		"泡菜": 10,
		"火腿": 15,
		"培根": 15,
		"鮪魚": 15,
	},
	TextAliases: map[string]string{
		"飯團": "飯糰",
		"飯团": "飯糰",
	},
	// 贅詞只收禮貌語與口頭填充，slot 值（杯型/糖度等）不能放進來
	FillerTokens: []string{"請問", "麻煩", "幫我", "謝謝", "然後", "那個"},
}

// Default 回傳內建菜單的 Catalog
func Default() *Catalog {
	c, err := New(defaultDefinition)
	if err != nil {
		// 內建資料有錯是程式寫錯，不是執行期狀況
		panic(err)
	}
	return c
}
