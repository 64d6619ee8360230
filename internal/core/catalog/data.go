package catalog

// 靜態成分表，營養值參考 TACO（巴西食物成分表）與 USDA，依參考份量標示

func names(pt, en string) map[string]string {
	return map[string]string{"pt": pt, "en": en}
}

func plurals(pt, en string) map[string]string {
	return map[string]string{"pt": pt, "en": en}
}

var staticIngredients = []*Ingredient{
	// 蛋白質
	{
		Key: "chicken_breast", Names: names("peito de frango grelhado", "grilled chicken breast"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 120, Measure: Measure{MeasureFillet, 100},
		Macros:   Macros{Calories: 159, Protein: 32, Carbs: 0, Fat: 2.5},
		Keywords: []string{"frango", "chicken"}, Synonyms: []string{"frango", "frango grelhado", "chicken"},
	},
	{
		Key: "beef_steak", Names: names("bife grelhado", "grilled beef steak"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 110, Measure: Measure{MeasureFillet, 100},
		Macros:   Macros{Calories: 219, Protein: 32, Fat: 9.5},
		Keywords: []string{"carne", "bife", "beef", "steak"}, Synonyms: []string{"bife", "carne bovina", "steak"},
	},
	{
		Key: "ground_beef", Names: names("carne moída refogada", "sauteed ground beef"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureSpoon, 25},
		Macros:   Macros{Calories: 212, Protein: 26.7, Fat: 10.9},
		Keywords: []string{"carne", "beef"}, Synonyms: []string{"carne moida", "ground beef"},
	},
	{
		Key: "pork_loin", Names: names("lombo de porco assado", "roast pork loin"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureSlice, 50},
		Macros:   Macros{Calories: 210, Protein: 35.7, Fat: 6.4},
		Contains: []string{"pork"}, Keywords: []string{"porco", "lombo", "pork"},
		Synonyms: []string{"lombo", "carne de porco", "pork"},
	},
	{
		Key: "tilapia_fillet", Names: names("filé de tilápia grelhado", "grilled tilapia fillet"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 120, Measure: Measure{MeasureFillet, 120},
		Macros:   Macros{Calories: 128, Protein: 26, Fat: 2.7},
		Contains: []string{"fish"}, Keywords: []string{"peixe", "tilapia", "fish"},
		Synonyms: []string{"tilapia", "peixe grelhado", "fish"},
	},
	{
		Key: "salmon", Names: names("salmão grelhado", "grilled salmon"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 110, Measure: Measure{MeasureFillet, 110},
		Macros:   Macros{Calories: 211, Protein: 23.9, Fat: 12.2},
		Contains: []string{"fish"}, Keywords: []string{"peixe", "salmao", "salmon", "fish"},
		Synonyms: []string{"salmao", "salmon"},
	},
	{
		Key: "canned_tuna", Names: names("atum em conserva", "canned tuna"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 80, Measure: Measure{MeasureSpoon, 20},
		Macros:   Macros{Calories: 116, Protein: 26, Fat: 0.8},
		Contains: []string{"fish"}, Keywords: []string{"atum", "tuna", "peixe", "fish"},
		Synonyms: []string{"atum", "tuna"},
	},
	{
		Key: "shrimp", Names: names("camarão cozido", "cooked shrimp"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureSpoon, 25},
		Macros:   Macros{Calories: 90, Protein: 19, Fat: 1},
		Contains: []string{"seafood"}, Keywords: []string{"camarao", "shrimp"},
		Synonyms: []string{"camarao", "shrimp", "camaroes"},
	},
	{
		Key: "boiled_egg", Names: names("ovo cozido", "boiled egg"), Plurals: plurals("ovos cozidos", "boiled eggs"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 50, DefaultPortion: 100, Measure: Measure{MeasureUnit, 50},
		Macros:   Macros{Calories: 73, Protein: 6.3, Carbs: 0.6, Fat: 4.8},
		Contains: []string{"egg"}, Keywords: []string{"ovo", "ovos", "egg", "eggs"},
		Synonyms: []string{"ovo", "ovos", "egg", "eggs", "ovos cozidos"},
	},
	{
		Key: "scrambled_eggs", Names: names("ovos mexidos", "scrambled eggs"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 50, DefaultPortion: 100, Measure: Measure{MeasureSpoon, 25},
		Macros:   Macros{Calories: 90, Protein: 6.1, Carbs: 0.8, Fat: 7},
		Contains: []string{"egg"}, Keywords: []string{"ovo", "ovos", "egg", "eggs", "mexidos"},
		Synonyms: []string{"ovo mexido", "omelete simples"},
	},
	{
		Key: "tofu", Names: names("tofu grelhado", "grilled tofu"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 120, Measure: Measure{MeasureSlice, 40},
		Macros:   Macros{Calories: 94, Protein: 10, Carbs: 2, Fat: 5.7, Fiber: 0.3},
		Contains: []string{"soy"}, Keywords: []string{"tofu"}, Synonyms: []string{"tofu"},
	},
	{
		Key: "ham", Names: names("presunto", "ham"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 15, DefaultPortion: 30, Measure: Measure{MeasureSlice, 15},
		Macros:   Macros{Calories: 14, Protein: 2.1, Carbs: 0.2, Fat: 0.4},
		Contains: []string{"pork"}, Keywords: []string{"presunto", "ham"},
	},
	{
		Key: "turkey_breast", Names: names("peito de peru", "turkey breast"),
		Category: CategoryProtein, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 15, DefaultPortion: 30, Measure: Measure{MeasureSlice, 15},
		Macros:   Macros{Calories: 16, Protein: 2.8, Carbs: 0.3, Fat: 0.3},
		Keywords: []string{"peru", "turkey"},
	},

	// 澱粉穀物
	{
		Key: "white_rice", Names: names("arroz branco", "white rice"),
		Category: CategoryGrain, Role: RoleMain, Unit: UnitGram, CarbKind: CarbNeutral,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureSpoon, 25},
		Macros:   Macros{Calories: 128, Protein: 2.5, Carbs: 28.1, Fat: 0.2, Fiber: 1.6},
		Keywords: []string{"arroz", "rice"}, Synonyms: []string{"arroz", "rice", "arroz cozido"},
	},
	{
		Key: "brown_rice", Names: names("arroz integral", "brown rice"),
		Category: CategoryGrain, Role: RoleMain, Unit: UnitGram, CarbKind: CarbAcceptedWhole,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureSpoon, 25},
		Macros:   Macros{Calories: 124, Protein: 2.6, Carbs: 25.8, Fat: 1, Fiber: 2.7},
		Keywords: []string{"arroz", "rice", "integral"}, Synonyms: []string{"brown rice"},
	},
	{
		Key: "pasta", Names: names("macarrão cozido", "cooked pasta"),
		Category: CategoryGrain, Role: RoleMain, Unit: UnitGram, CarbKind: CarbNeutral,
		ReferencePortion: 100, DefaultPortion: 110, Measure: Measure{MeasureCup, 110},
		Macros:   Macros{Calories: 158, Protein: 5.8, Carbs: 30.9, Fat: 0.9, Fiber: 1.8},
		Contains: []string{"gluten"}, Keywords: []string{"macarrao", "massa", "pasta", "espaguete"},
		Synonyms: []string{"macarrao", "massa", "espaguete", "spaghetti", "pasta"},
	},
	{
		Key: "whole_wheat_pasta", Names: names("macarrão integral", "whole wheat pasta"),
		Category: CategoryGrain, Role: RoleMain, Unit: UnitGram, CarbKind: CarbRestrictiveWhole,
		ReferencePortion: 100, DefaultPortion: 110, Measure: Measure{MeasureCup, 110},
		Macros:   Macros{Calories: 124, Protein: 5.3, Carbs: 26.5, Fat: 0.5, Fiber: 3.9},
		Contains: []string{"gluten"}, Keywords: []string{"macarrao", "massa", "pasta", "integral"},
	},
	{
		Key: "rice_pasta", Names: names("macarrão de arroz", "rice pasta"),
		Category: CategoryGrain, Role: RoleMain, Unit: UnitGram, CarbKind: CarbNeutral,
		ReferencePortion: 100, DefaultPortion: 110, Measure: Measure{MeasureCup, 110},
		Macros:   Macros{Calories: 140, Protein: 2.4, Carbs: 31.2, Fat: 0.3, Fiber: 1},
		Keywords: []string{"macarrao", "massa", "pasta"}, Synonyms: []string{"massa sem gluten", "gluten free pasta"},
	},
	{
		Key: "quinoa", Names: names("quinoa cozida", "cooked quinoa"),
		Category: CategoryGrain, Role: RoleMain, Unit: UnitGram, CarbKind: CarbRestrictiveWhole,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureSpoon, 25},
		Macros:   Macros{Calories: 120, Protein: 4.4, Carbs: 21.3, Fat: 1.9, Fiber: 2.8},
		Keywords: []string{"quinoa"}, Synonyms: []string{"quinoa"},
	},

	// 豆類
	{
		Key: "black_beans", Names: names("feijão preto", "black beans"),
		Category: CategoryLegume, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureLadle, 100},
		Macros:   Macros{Calories: 77, Protein: 4.5, Carbs: 14, Fat: 0.5, Fiber: 8.4},
		Keywords: []string{"feijao", "beans"}, Synonyms: []string{"feijao", "black beans"},
	},
	{
		Key: "carioca_beans", Names: names("feijão carioca", "pinto beans"),
		Category: CategoryLegume, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureLadle, 100},
		Macros:   Macros{Calories: 76, Protein: 4.8, Carbs: 13.6, Fat: 0.5, Fiber: 8.5},
		Keywords: []string{"feijao", "beans"}, Synonyms: []string{"pinto beans", "beans"},
	},
	{
		Key: "lentils", Names: names("lentilha cozida", "cooked lentils"),
		Category: CategoryLegume, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureLadle, 100},
		Macros:   Macros{Calories: 93, Protein: 6.3, Carbs: 16.3, Fat: 0.5, Fiber: 7.9},
		Keywords: []string{"lentilha", "lentils"}, Synonyms: []string{"lentilha", "lentils"},
	},
	{
		Key: "chickpeas", Names: names("grão-de-bico cozido", "cooked chickpeas"),
		Category: CategoryLegume, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 80, Measure: Measure{MeasureSpoon, 20},
		Macros:   Macros{Calories: 164, Protein: 8.9, Carbs: 27.4, Fat: 2.6, Fiber: 7.6},
		Keywords: []string{"grao de bico", "chickpeas", "chickpea"}, Synonyms: []string{"grao de bico", "chickpeas"},
	},

	// 蔬菜
	{
		Key: "lettuce", Names: names("alface", "lettuce"), Plurals: plurals("folhas de alface", "lettuce leaves"),
		Category: CategoryVegetable, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 30, DefaultPortion: 30, Measure: Measure{MeasureUnit, 10},
		Macros:   Macros{Calories: 4, Protein: 0.4, Carbs: 0.5, Fat: 0.1, Fiber: 0.6},
		Keywords: []string{"alface", "lettuce", "salada", "salad"},
	},
	{
		Key: "tomato", Names: names("tomate", "tomato"),
		Category: CategoryVegetable, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 50, DefaultPortion: 60, Measure: Measure{MeasureSlice, 15},
		Macros:   Macros{Calories: 8, Protein: 0.6, Carbs: 1.6, Fat: 0.1, Fiber: 0.6},
		Keywords: []string{"tomate", "tomato", "salada", "salad"},
	},
	{
		Key: "cucumber", Names: names("pepino", "cucumber"),
		Category: CategoryVegetable, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 50, DefaultPortion: 50, Measure: Measure{MeasureSlice, 10},
		Macros:   Macros{Calories: 5, Protein: 0.4, Carbs: 1, Fiber: 0.5},
		Keywords: []string{"pepino", "cucumber", "salada", "salad"},
	},
	{
		Key: "broccoli", Names: names("brócolis cozido", "steamed broccoli"),
		Category: CategoryVegetable, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 70, Measure: Measure{MeasureCup, 70},
		Macros:   Macros{Calories: 25, Protein: 2.1, Carbs: 4.4, Fat: 0.5, Fiber: 3.4},
		Keywords: []string{"brocolis", "broccoli"}, Synonyms: []string{"brocolis", "broccoli"},
	},
	{
		Key: "carrot", Names: names("cenoura cozida", "cooked carrot"),
		Category: CategoryVegetable, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 50, Measure: Measure{MeasureSpoon, 25},
		Macros:   Macros{Calories: 30, Protein: 0.8, Carbs: 6.7, Fat: 0.2, Fiber: 2.6},
		Keywords: []string{"cenoura", "carrot"}, Synonyms: []string{"cenoura", "carrot"},
	},
	{
		Key: "zucchini", Names: names("abobrinha refogada", "sauteed zucchini"),
		Category: CategoryVegetable, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 90, Measure: Measure{MeasureSpoon, 30},
		Macros:   Macros{Calories: 20, Protein: 1.1, Carbs: 3.8, Fat: 0.2, Fiber: 1.4},
		Keywords: []string{"abobrinha", "zucchini"}, Synonyms: []string{"abobrinha", "zucchini"},
	},
	{
		Key: "spinach", Names: names("espinafre refogado", "sauteed spinach"),
		Category: CategoryVegetable, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 60, Measure: Measure{MeasureSpoon, 30},
		Macros:   Macros{Calories: 25, Protein: 2.7, Carbs: 3.6, Fat: 0.4, Fiber: 2.2},
		Keywords: []string{"espinafre", "spinach"}, Synonyms: []string{"espinafre", "spinach"},
	},

	// 其他碳水
	{
		Key: "sweet_potato", Names: names("batata-doce cozida", "boiled sweet potato"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbAcceptedWhole,
		ReferencePortion: 100, DefaultPortion: 120, Measure: Measure{MeasureSlice, 40},
		Macros:   Macros{Calories: 77, Protein: 0.6, Carbs: 18.4, Fat: 0.1, Fiber: 2.2},
		Keywords: []string{"batata doce", "sweet potato"}, Synonyms: []string{"batata doce", "sweet potato"},
	},
	{
		Key: "potato", Names: names("batata cozida", "boiled potato"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbNeutral,
		ReferencePortion: 100, DefaultPortion: 130, Measure: Measure{MeasureUnit, 130},
		Macros:   Macros{Calories: 52, Protein: 1.2, Carbs: 11.9, Fiber: 1.3},
		Keywords: []string{"batata", "potato"}, Synonyms: []string{"batata", "potato"},
		Plurals: plurals("batatas cozidas", "boiled potatoes"),
	},
	{
		Key: "cassava", Names: names("mandioca cozida", "boiled cassava"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbNeutral,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureSlice, 50},
		Macros:   Macros{Calories: 125, Protein: 0.6, Carbs: 30.1, Fat: 0.3, Fiber: 1.6},
		Keywords: []string{"mandioca", "aipim", "cassava"}, Synonyms: []string{"mandioca", "aipim", "macaxeira", "cassava"},
	},
	{
		Key: "french_bread", Names: names("pão francês", "french roll"), Plurals: plurals("pães franceses", "french rolls"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbNeutral,
		ReferencePortion: 50, DefaultPortion: 50, Measure: Measure{MeasureUnit, 50},
		Macros:   Macros{Calories: 150, Protein: 4, Carbs: 29.3, Fat: 1.6, Fiber: 1.1},
		Contains: []string{"gluten"}, Keywords: []string{"pao", "bread"}, Synonyms: []string{"pao", "pao frances", "bread"},
	},
	{
		Key: "whole_wheat_bread", Names: names("pão integral", "whole wheat bread"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbAcceptedWhole,
		ReferencePortion: 25, DefaultPortion: 50, Measure: Measure{MeasureSlice, 25},
		Macros:   Macros{Calories: 63, Protein: 2.4, Carbs: 12, Fat: 0.9, Fiber: 1.7},
		Contains: []string{"gluten"}, Keywords: []string{"pao", "bread", "integral"}, Synonyms: []string{"whole wheat bread"},
	},
	{
		Key: "gluten_free_bread", Names: names("pão sem glúten", "gluten-free bread"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbNeutral,
		ReferencePortion: 25, DefaultPortion: 50, Measure: Measure{MeasureSlice, 25},
		Macros:   Macros{Calories: 65, Protein: 1, Carbs: 12, Fat: 1.5, Fiber: 0.8},
		Keywords: []string{"pao", "bread"}, Synonyms: []string{"gluten free bread"},
	},
	{
		Key: "tapioca", Names: names("tapioca", "tapioca crepe"), Plurals: plurals("tapiocas", "tapioca crepes"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbNeutral,
		ReferencePortion: 40, DefaultPortion: 40, Measure: Measure{MeasureUnit, 40},
		Macros:   Macros{Calories: 136, Carbs: 34},
		Keywords: []string{"tapioca"}, Synonyms: []string{"tapioca"},
	},
	{
		Key: "corn_couscous", Names: names("cuscuz de milho", "corn couscous"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbNeutral,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureSlice, 50},
		Macros:   Macros{Calories: 113, Protein: 2.2, Carbs: 25.3, Fat: 0.7, Fiber: 2.1},
		Keywords: []string{"cuscuz", "couscous"}, Synonyms: []string{"cuscuz", "couscous"},
	},
	{
		Key: "oats", Names: names("aveia em flocos", "rolled oats"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbAcceptedWhole,
		ReferencePortion: 30, DefaultPortion: 30, Measure: Measure{MeasureSpoon, 10},
		Macros:   Macros{Calories: 118, Protein: 4.2, Carbs: 20, Fat: 2.6, Fiber: 2.7},
		Contains: []string{"gluten"}, Keywords: []string{"aveia", "oats", "oatmeal"}, Synonyms: []string{"aveia", "oats", "oatmeal"},
	},
	{
		Key: "granola", Names: names("granola", "granola"),
		Category: CategoryCarb, Role: RoleMain, Unit: UnitGram, CarbKind: CarbRestrictiveWhole,
		ReferencePortion: 40, DefaultPortion: 30, Measure: Measure{MeasureSpoon, 10},
		Macros:   Macros{Calories: 180, Protein: 4, Carbs: 28, Fat: 6, Fiber: 3},
		Contains: []string{"gluten", "nuts"}, Keywords: []string{"granola"},
	},

	// 乳製品
	{
		Key: "whole_milk", Names: names("leite integral", "whole milk"),
		Category: CategoryDairy, Role: RoleMain, Unit: UnitMilliliter,
		ReferencePortion: 200, DefaultPortion: 200, Measure: Measure{MeasureGlass, 200},
		Macros:   Macros{Calories: 120, Protein: 6, Carbs: 9.4, Fat: 6.6},
		Contains: []string{"lactose", "milk_protein"}, Keywords: []string{"leite", "milk"}, Synonyms: []string{"leite", "milk"},
	},
	{
		Key: "lactose_free_milk", Names: names("leite sem lactose", "lactose-free milk"),
		Category: CategoryDairy, Role: RoleMain, Unit: UnitMilliliter,
		ReferencePortion: 200, DefaultPortion: 200, Measure: Measure{MeasureGlass, 200},
		Macros:   Macros{Calories: 116, Protein: 6, Carbs: 9.6, Fat: 6},
		Contains: []string{"milk_protein"}, Keywords: []string{"leite", "milk"}, Synonyms: []string{"leite zero lactose"},
	},
	{
		Key: "soy_milk", Names: names("bebida de soja", "soy milk"),
		Category: CategoryDairy, Role: RoleMain, Unit: UnitMilliliter,
		ReferencePortion: 200, DefaultPortion: 200, Measure: Measure{MeasureGlass, 200},
		Macros:   Macros{Calories: 80, Protein: 6.6, Carbs: 6, Fat: 3.6, Fiber: 1},
		Contains: []string{"soy"}, Keywords: []string{"leite", "milk", "soja", "soy"}, Synonyms: []string{"leite de soja"},
	},
	{
		Key: "natural_yogurt", Names: names("iogurte natural", "plain yogurt"),
		Category: CategoryDairy, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 170, DefaultPortion: 170, Measure: Measure{MeasurePot, 170},
		Macros:   Macros{Calories: 104, Protein: 6.5, Carbs: 8, Fat: 5.1},
		Contains: []string{"lactose", "milk_protein"}, Keywords: []string{"iogurte", "yogurt"}, Synonyms: []string{"iogurte", "yogurt"},
	},
	{
		Key: "lactose_free_yogurt", Names: names("iogurte sem lactose", "lactose-free yogurt"),
		Category: CategoryDairy, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 170, DefaultPortion: 170, Measure: Measure{MeasurePot, 170},
		Macros:   Macros{Calories: 100, Protein: 6.3, Carbs: 9, Fat: 4},
		Contains: []string{"milk_protein"}, Keywords: []string{"iogurte", "yogurt"},
	},
	{
		Key: "coconut_yogurt", Names: names("iogurte de coco", "coconut yogurt"),
		Category: CategoryDairy, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 170, DefaultPortion: 170, Measure: Measure{MeasurePot, 170},
		Macros:   Macros{Calories: 150, Protein: 1.5, Carbs: 12, Fat: 10.5},
		Keywords: []string{"iogurte", "yogurt", "coco", "coconut"},
	},
	{
		Key: "minas_cheese", Names: names("queijo minas frescal", "fresh white cheese"),
		Category: CategoryDairy, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 30, DefaultPortion: 30, Measure: Measure{MeasureSlice, 30},
		Macros:   Macros{Calories: 79, Protein: 5.2, Carbs: 1, Fat: 6},
		Contains: []string{"lactose", "milk_protein"}, Keywords: []string{"queijo", "cheese"}, Synonyms: []string{"queijo", "cheese", "queijo branco"},
	},
	{
		Key: "lactose_free_cheese", Names: names("queijo sem lactose", "lactose-free cheese"),
		Category: CategoryDairy, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 30, DefaultPortion: 30, Measure: Measure{MeasureSlice, 30},
		Macros:   Macros{Calories: 85, Protein: 6, Carbs: 0.5, Fat: 6.6},
		Contains: []string{"milk_protein"}, Keywords: []string{"queijo", "cheese"},
	},

	// 脂肪與抹醬
	{
		Key: "butter", Names: names("manteiga", "butter"),
		Category: CategoryFat, Role: RoleCondimentFat, Unit: UnitGram,
		ReferencePortion: 5, DefaultPortion: 5, Measure: Measure{MeasureTeaspoon, 5},
		Macros:          Macros{Calories: 36, Fat: 4.1},
		Contains:        []string{"lactose", "milk_protein"},
		NeverStandalone: true, Companions: []Category{CategoryCarb, CategoryProtein},
		Keywords: []string{"manteiga", "butter"}, Synonyms: []string{"manteiga", "butter"},
	},
	{
		Key: "plant_butter", Names: names("margarina vegetal", "plant-based spread"),
		Category: CategoryFat, Role: RoleCondimentFat, Unit: UnitGram,
		ReferencePortion: 5, DefaultPortion: 5, Measure: Measure{MeasureTeaspoon, 5},
		Macros:          Macros{Calories: 36, Fat: 4},
		NeverStandalone: true, Companions: []Category{CategoryCarb, CategoryProtein},
		Keywords: []string{"margarina"}, Synonyms: []string{"margarina"},
	},
	{
		Key: "olive_oil", Names: names("azeite de oliva", "olive oil"),
		Category: CategoryFat, Role: RoleCondimentFat, Unit: UnitMilliliter,
		ReferencePortion: 10, DefaultPortion: 5, Measure: Measure{MeasureTeaspoon, 5},
		Macros:          Macros{Calories: 88, Fat: 10},
		NeverStandalone: true,
		Keywords:        []string{"azeite", "olive oil"}, Synonyms: []string{"azeite", "olive oil"},
	},
	{
		Key: "peanut_butter", Names: names("pasta de amendoim", "peanut butter"),
		Category: CategoryFat, Role: RoleCondimentFat, Unit: UnitGram,
		ReferencePortion: 15, DefaultPortion: 15, Measure: Measure{MeasureSpoon, 15},
		Macros:          Macros{Calories: 94, Protein: 4, Carbs: 3, Fat: 8, Fiber: 1},
		Contains:        []string{"peanut"},
		NeverStandalone: true, Companions: []Category{CategoryCarb, CategoryFruit},
		Keywords: []string{"amendoim", "peanut"}, Synonyms: []string{"pasta de amendoim"},
	},
	{
		Key: "cream_cheese", Names: names("requeijão", "cream cheese"),
		Category: CategoryFat, Role: RoleCondimentFat, Unit: UnitGram,
		ReferencePortion: 15, DefaultPortion: 15, Measure: Measure{MeasureSpoon, 15},
		Macros:          Macros{Calories: 40, Protein: 1.4, Carbs: 0.4, Fat: 3.6},
		Contains:        []string{"lactose", "milk_protein"},
		NeverStandalone: true, Companions: []Category{CategoryCarb},
		Keywords: []string{"requeijao", "cream cheese"}, Synonyms: []string{"requeijao"},
	},
	{
		Key: "honey", Names: names("mel", "honey"),
		Category: CategoryCondiment, Role: RoleSweetener, Unit: UnitGram,
		ReferencePortion: 10, DefaultPortion: 10, Measure: Measure{MeasureTeaspoon, 7},
		Macros:          Macros{Calories: 31, Carbs: 8.4},
		NeverStandalone: true, Companions: []Category{CategoryDairy, CategoryFruit, CategoryCarb},
		Keywords: []string{"mel", "honey"},
	},

	// 調味與裝飾（永不成為主角）
	{
		Key: "onion", Names: names("cebola", "onion"),
		Category: CategorySeasoning, Role: RoleGarnish, Unit: UnitGram,
		ReferencePortion: 20, DefaultPortion: 20, Measure: Measure{MeasureSpoon, 10},
		Macros:          Macros{Calories: 8, Protein: 0.3, Carbs: 1.8, Fiber: 0.4},
		NeverStandalone: true, Keywords: []string{"cebola", "onion"},
	},
	{
		Key: "garlic", Names: names("alho", "garlic"),
		Category: CategorySeasoning, Role: RoleSeasoning, Unit: UnitGram,
		ReferencePortion: 5, DefaultPortion: 5, Measure: Measure{MeasureTeaspoon, 5},
		Macros:          Macros{Calories: 6, Protein: 0.3, Carbs: 1.2},
		NeverStandalone: true, Keywords: []string{"alho", "garlic"},
	},
	{
		Key: "bell_pepper", Names: names("pimentão", "bell pepper"),
		Category: CategorySeasoning, Role: RoleGarnish, Unit: UnitGram,
		ReferencePortion: 20, DefaultPortion: 20, Measure: Measure{MeasureSpoon, 10},
		Macros:          Macros{Calories: 5, Protein: 0.2, Carbs: 1.2, Fiber: 0.4},
		NeverStandalone: true, Keywords: []string{"pimentao", "bell pepper"},
	},
	{
		Key: "parsley", Names: names("salsinha picada", "chopped parsley"),
		Category: CategorySeasoning, Role: RoleGarnish, Unit: UnitGram,
		ReferencePortion: 2, DefaultPortion: 2, Measure: Measure{MeasureTeaspoon, 1},
		Macros:          Macros{Calories: 1},
		NeverStandalone: true, Keywords: []string{"salsinha", "parsley"},
	},
	{
		Key: "cilantro", Names: names("coentro picado", "chopped cilantro"),
		Category: CategorySeasoning, Role: RoleGarnish, Unit: UnitGram,
		ReferencePortion: 2, DefaultPortion: 2, Measure: Measure{MeasureTeaspoon, 1},
		Macros:          Macros{Calories: 0.5},
		NeverStandalone: true, Keywords: []string{"coentro", "cilantro"},
	},
	{
		Key: "chives", Names: names("cebolinha picada", "chopped chives"),
		Category: CategorySeasoning, Role: RoleGarnish, Unit: UnitGram,
		ReferencePortion: 2, DefaultPortion: 2, Measure: Measure{MeasureTeaspoon, 1},
		Macros:          Macros{Calories: 0.6},
		NeverStandalone: true, Keywords: []string{"cebolinha", "chives"},
	},
	{
		Key: "cassava_flour", Names: names("farofa", "toasted cassava flour"),
		Category: CategoryCondiment, Role: RoleSeasoning, Unit: UnitGram,
		ReferencePortion: 20, DefaultPortion: 20, Measure: Measure{MeasureSpoon, 10},
		Macros:          Macros{Calories: 81, Protein: 0.4, Carbs: 16, Fat: 1.8, Fiber: 1.3},
		NeverStandalone: true, Companions: []Category{CategoryProtein, CategoryGrain, CategoryLegume},
		Keywords: []string{"farofa"},
	},

	// 水果
	{
		Key: "banana", Names: names("banana", "banana"), Plurals: plurals("bananas", "bananas"),
		Category: CategoryFruit, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 80, DefaultPortion: 80, Measure: Measure{MeasureUnit, 80},
		Macros:   Macros{Calories: 78, Protein: 1.1, Carbs: 20.3, Fat: 0.1, Fiber: 1.6},
		Keywords: []string{"banana"},
	},
	{
		Key: "apple", Names: names("maçã", "apple"), Plurals: plurals("maçãs", "apples"),
		Category: CategoryFruit, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 130, DefaultPortion: 130, Measure: Measure{MeasureUnit, 130},
		Macros:   Macros{Calories: 73, Protein: 0.4, Carbs: 19.7, Fat: 0.3, Fiber: 2.6},
		Keywords: []string{"maca", "apple"}, Synonyms: []string{"maca", "apple"},
	},
	{
		Key: "papaya", Names: names("mamão papaia", "papaya"),
		Category: CategoryFruit, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 150, DefaultPortion: 150, Measure: Measure{MeasureSlice, 150},
		Macros:   Macros{Calories: 60, Protein: 0.8, Carbs: 15, Fat: 0.2, Fiber: 1.5},
		Keywords: []string{"mamao", "papaya"}, Synonyms: []string{"mamao", "papaya"},
	},
	{
		Key: "orange", Names: names("laranja", "orange"), Plurals: plurals("laranjas", "oranges"),
		Category: CategoryFruit, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 130, DefaultPortion: 130, Measure: Measure{MeasureUnit, 130},
		Macros:   Macros{Calories: 60, Protein: 1.2, Carbs: 15, Fat: 0.2, Fiber: 2.4},
		Keywords: []string{"laranja", "orange"},
	},
	{
		Key: "strawberries", Names: names("morangos", "strawberries"),
		Category: CategoryFruit, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasureCup, 100},
		Macros:   Macros{Calories: 30, Protein: 0.9, Carbs: 6.8, Fat: 0.3, Fiber: 1.7},
		Keywords: []string{"morango", "morangos", "strawberry", "strawberries"},
	},

	// 飲料
	{
		Key: "black_coffee", Names: names("café preto", "black coffee"),
		Category: CategoryBeverage, Role: RoleMain, Unit: UnitMilliliter,
		ReferencePortion: 50, DefaultPortion: 50, Measure: Measure{MeasureCup, 50},
		Macros:   Macros{Calories: 2, Protein: 0.1, Carbs: 0.3},
		Keywords: []string{"cafe", "coffee"}, Synonyms: []string{"cafe", "coffee"},
	},
	{
		Key: "orange_juice", Names: names("suco de laranja natural", "fresh orange juice"),
		Category: CategoryBeverage, Role: RoleMain, Unit: UnitMilliliter,
		ReferencePortion: 200, DefaultPortion: 200, Measure: Measure{MeasureGlass, 200},
		Macros:   Macros{Calories: 90, Protein: 1.4, Carbs: 20.8, Fat: 0.2, Fiber: 0.4},
		Keywords: []string{"suco", "juice", "laranja", "orange"}, Synonyms: []string{"suco de laranja", "orange juice"},
	},

	// 甜點
	{
		Key: "dark_chocolate", Names: names("chocolate amargo", "dark chocolate"),
		Category: CategoryDessert, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 10, DefaultPortion: 20, Measure: Measure{MeasureUnit, 10},
		Macros:   Macros{Calories: 55, Protein: 0.8, Carbs: 4.3, Fat: 4.2, Fiber: 0.7},
		Keywords: []string{"chocolate"}, Plurals: plurals("quadrados de chocolate amargo", "squares of dark chocolate"),
	},
	{
		Key: "gelatin", Names: names("gelatina", "gelatin dessert"),
		Category: CategoryDessert, Role: RoleMain, Unit: UnitGram,
		ReferencePortion: 100, DefaultPortion: 100, Measure: Measure{MeasurePot, 100},
		Macros:   Macros{Calories: 60, Protein: 1.5, Carbs: 14},
		Keywords: []string{"gelatina", "gelatin"},
	},
}
