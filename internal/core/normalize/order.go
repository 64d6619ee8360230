package normalize

import (
	"sort"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
)

// 午晚餐：蛋白質、主食、豆類、蔬菜沙拉、其他碳水、調味、飲品，水果甜點最後
var mainMealOrder = map[catalog.Category]int{
	catalog.CategoryProtein:   0,
	catalog.CategoryGrain:     1,
	catalog.CategoryLegume:    2,
	catalog.CategoryVegetable: 3,
	catalog.CategoryCarb:      4,
	catalog.CategoryDairy:     5,
	catalog.CategoryFat:       6,
	catalog.CategoryCondiment: 6,
	catalog.CategorySeasoning: 6,
	catalog.CategoryBeverage:  7,
	catalog.CategoryDessert:   8,
	catalog.CategoryFruit:     8,
}

// 早餐與點心：蛋白質、碳水、乳製品、油脂、水果，飲品最後
var breakfastOrder = map[catalog.Category]int{
	catalog.CategoryProtein:   0,
	catalog.CategoryCarb:      1,
	catalog.CategoryGrain:     1,
	catalog.CategoryLegume:    2,
	catalog.CategoryDairy:     3,
	catalog.CategoryFat:       4,
	catalog.CategoryCondiment: 4,
	catalog.CategorySeasoning: 4,
	catalog.CategoryVegetable: 5,
	catalog.CategoryFruit:     6,
	catalog.CategoryDessert:   6,
	catalog.CategoryBeverage:  7,
}

func presentationOrder(mt meal.Type) map[catalog.Category]int {
	if mt.IsMain() {
		return mainMealOrder
	}
	return breakfastOrder
}

// sortForPresentation 依餐別的慣用順序排列，同類保持原順序
func sortForPresentation(items []*item, mt meal.Type) {
	order := presentationOrder(mt)
	rank := func(it *item) int {
		if r, ok := order[it.category()]; ok {
			return r
		}
		return len(order)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return rank(items[i]) < rank(items[j])
	})
}
