package menu

// DefaultRecipe returns the fixed placeholder for a category whose pool is
// empty or absent. Ingredients and instructions are always empty.
func DefaultRecipe(category Category) Recipe {
	switch category {
	case CategorySoups:
		return placeholder("Chicken Noodle Soup", "Classic comfort soup")
	case CategorySpecials:
		return placeholder("Baked Salmon", "Fresh baked salmon")
	case CategorySalads:
		return placeholder("Garden Salad", "Fresh garden salad")
	case CategoryBurgers:
		return placeholder("Beef Burger", "Classic beef burger")
	case CategoryBreakfastMonFri, CategoryBreakfastSaturday, CategoryBreakfastSunday:
		return placeholder("Scrambled Eggs", "Soft scrambled eggs")
	default:
		return placeholder("Chef's Choice", "Seasonal selection from the kitchen")
	}
}

func placeholder(name, description string) Recipe {
	return Recipe{
		Name:         name,
		Description:  description,
		Ingredients:  []string{},
		Instructions: []string{},
	}
}

// DefaultPools is the built-in dataset used when catalog storage is absent
// or unreadable. Quantities are sized for roughly 25 residents.
func DefaultPools() Pools {
	return Pools{
		CategorySoups: {
			{
				Name:        "Chicken Noodle Soup",
				Description: "Light and comforting classic with soft noodles",
				Ingredients: []string{
					"Low-sodium chicken broth - 4 gallons",
					"Diced chicken breast - 5 lbs",
					"Carrots, diced - 2 lbs",
					"Celery, diced - 2 lbs",
					"Onion, diced - 1 lb",
					"Egg noodles - 3 lbs",
					"Parsley or mixed herbs - 1 cup",
					"Black pepper - to taste",
				},
				Instructions: []string{},
				Notes:        "Chop vegetables small for easier chewing. Low-sodium broth suitable for seniors with dietary restrictions.",
			},
			{
				Name:        "Tomato Basil Soup",
				Description: "Smooth, velvety tomato soup with fresh basil notes",
				Ingredients: []string{
					"Low-sodium tomato puree - 3 gallons",
					"Vegetable broth - 1 gallon",
					"Onion, diced - 1.5 lbs",
					"Garlic, minced - 0.5 lb",
					"Olive oil - 2 cups",
					"Fresh basil - 1 cup",
					"Black pepper - to taste",
				},
				Instructions: []string{},
				Notes:        "Can add cream for richer texture. Basil adds nutritional value.",
			},
			{
				Name:        "Lentil Soup",
				Description: "Hearty, protein-rich soup with vegetables",
				Ingredients: []string{
					"Dried lentils - 4 lbs",
					"Low-sodium vegetable broth - 5 gallons",
					"Onion, diced - 1.5 lbs",
					"Carrot, diced - 2 lbs",
					"Celery, diced - 1.5 lbs",
					"Garlic, minced - 0.5 lb",
				},
				Instructions: []string{},
				Notes:        "Excellent source of fiber and protein.",
			},
			{
				Name:        "Butternut Squash Soup",
				Description: "Smooth, creamy soup with warm spices",
				Ingredients: []string{
					"Butternut squash, cubed - 8 lbs",
					"Onion, diced - 1.5 lbs",
					"Garlic, minced - 0.5 lb",
					"Low-sodium vegetable broth - 4 gallons",
				},
				Instructions: []string{},
				Notes:        "Blend until smooth for best texture.",
			},
			{
				Name:        "Split Pea Soup",
				Description: "Classic creamy pea soup with a hint of ham",
				Ingredients: []string{
					"Dried split peas - 4 lbs",
					"Low-sodium chicken/vegetable broth - 5 gallons",
					"Onion, diced - 1.5 lbs",
					"Carrot, diced - 2 lbs",
				},
				Instructions: []string{},
				Notes:        "Cook until peas are very soft.",
			},
		},
		CategorySpecials: {
			{
				Name:        "Baked Salmon with Lemon",
				Description: "Tender baked salmon fillet with fresh lemon butter sauce",
				Ingredients: []string{
					"Salmon fillets - 8 lbs",
					"Butter - 1 lb",
					"Fresh lemon juice - 1 cup",
					"Garlic, minced - 0.5 lb",
					"Fresh dill - 1 cup",
				},
				Instructions: []string{
					"Preheat oven to 375°F",
					"Place salmon on parchment-lined baking sheets",
					"Mix butter, lemon juice, garlic, and dill",
					"Spread mixture over salmon",
					"Bake for 15-18 minutes until flakes easily",
				},
				Notes: "Excellent omega-3 source.",
			},
			{
				Name:        "Herb Roasted Chicken Breast",
				Description: "Moist, tender chicken with Italian herbs and garlic",
				Ingredients: []string{
					"Chicken breasts - 10 lbs",
					"Olive oil - 1 cup",
					"Garlic, minced - 0.5 lb",
					"Fresh rosemary - 0.5 cup",
				},
				Instructions: []string{
					"Preheat oven to 375°F",
					"Coat chicken with olive oil and herbs",
					"Roast for 25-30 minutes until internal temp is 165°F",
				},
				Notes: "Ensure chicken is cooked to safe temperature.",
			},
			{
				Name:        "Slow Cooker Pot Roast",
				Description: "Tender beef with vegetables in broth",
				Ingredients: []string{
					"Beef chuck roast - 10 lbs",
					"Potatoes, chunked - 4 lbs",
					"Carrots, cut thick - 3 lbs",
					"Celery, chunked - 1.5 lbs",
				},
				Instructions: []string{
					"Place vegetables in slow cooker",
					"Add beef and broth",
					"Cook on low 6-8 hours",
				},
				Notes: "Very tender, easy to chew.",
			},
		},
		CategorySalads: {
			{
				Name:        "Grilled Chicken Caesar Salad",
				Description: "Classic Caesar with tender grilled chicken, parmesan, and soft croutons",
				Ingredients: []string{
					"Grilled chicken breast strips - 6 lbs",
					"Romaine lettuce, chopped - 8 lbs",
					"Parmesan cheese, shaved - 1 lb",
					"Soft bread croutons - 2 lbs",
				},
				Instructions: []string{
					"Wash and dry lettuce thoroughly",
					"Chop into bite-sized pieces",
					"Slice grilled chicken into strips",
					"Toss lettuce with dressing",
				},
				Notes: "Use soft croutons for easy chewing.",
			},
			{
				Name:        "Garden Vegetable Salad",
				Description: "Fresh seasonal vegetables with light vinaigrette",
				Ingredients: []string{
					"Mixed greens - 8 lbs",
					"Tomatoes, diced - 2 lbs",
					"Cucumbers, sliced - 2 lbs",
					"Carrots, shredded - 1 lb",
				},
				Instructions: []string{
					"Wash and dry all vegetables",
					"Chop into appropriate sizes",
					"Mix greens and vegetables",
				},
				Notes: "Use soft, ripe vegetables.",
			},
		},
		CategoryBurgers: {
			{
				Name:        "Lean Beef Burger",
				Description: "Juicy ground beef patty on soft bun with toppings",
				Ingredients: []string{
					"Lean ground beef - 8 lbs",
					"Soft burger buns - 30 each",
					"Cheddar cheese slices - 2 lbs",
					"Tomato slices - 2 lbs",
				},
				Instructions: []string{
					"Form beef into 2-3 oz patties",
					"Cook on griddle to 160°F internal temp",
					"Toast buns lightly",
					"Assemble: bun, mayo, lettuce, burger, cheese, tomato, top bun",
				},
				Notes: "Keep patties small for easier handling.",
			},
			{
				Name:        "Turkey Burger",
				Description: "Lean ground turkey patty with herb seasoning",
				Ingredients: []string{
					"Ground turkey - 8 lbs",
					"Breadcrumbs - 1 lb",
					"Eggs - 8",
					"Soft burger buns - 30 each",
				},
				Instructions: []string{
					"Mix turkey, breadcrumbs, eggs until combined",
					"Form into 2-3 oz patties",
					"Cook on griddle to 160°F internal temp",
				},
				Notes: "Lower in fat than beef.",
			},
		},
		CategoryBreakfastMonFri: {
			{
				Name:        "Scrambled Eggs and Toast",
				Description: "Soft scrambled eggs with buttered whole wheat toast",
				Ingredients: []string{
					"Eggs - 48",
					"Butter - 1 lb",
					"Whole wheat bread - 2 loaves",
				},
				Instructions: []string{
					"Beat eggs gently",
					"Melt butter in large pans over medium heat",
					"Add eggs, stir slowly and gently",
					"Cook until soft, creamy curds form",
				},
				Notes: "Don't overcook eggs - they should be soft and creamy.",
			},
			{
				Name:        "Steel Cut Oatmeal with Fruit",
				Description: "Warm, creamy oatmeal topped with berries and nuts",
				Ingredients: []string{
					"Steel cut oats - 5 lbs",
					"Water - 8 gallons",
					"Butter - 0.5 lb",
					"Honey - 1 cup",
					"Mixed berries (frozen) - 3 lbs",
				},
				Instructions: []string{
					"Bring water and salt to boil",
					"Add oats slowly, stirring constantly",
					"Reduce heat and simmer 30-40 minutes",
				},
				Notes: "Excellent fiber source.",
			},
		},
		CategoryBreakfastSaturday: {
			{
				Name:        "Pancakes with Maple Syrup",
				Description: "Fluffy pancakes with warm maple syrup and butter",
				Ingredients: []string{
					"All-purpose flour - 3 lbs",
					"Baking powder - 3 tablespoons",
					"Eggs - 36",
					"Milk - 2 gallons",
				},
				Instructions: []string{
					"Mix flour, baking powder, salt in large bowl",
					"Whisk eggs, milk, melted butter together",
					"Combine wet and dry ingredients gently",
					"Cook on greased griddle at medium heat",
				},
				Notes: "Keep warm in oven until all cooked.",
			},
		},
		CategoryBreakfastSunday: {
			{
				Name:        "French Toast with Berries",
				Description: "Soft, eggy French toast with fresh berries",
				Ingredients: []string{
					"White bread, sliced - 2 loaves",
					"Eggs - 40",
					"Milk - 1 quart",
					"Cinnamon - 2 tablespoons",
					"Maple syrup - 1 quart",
				},
				Instructions: []string{
					"Whisk eggs, milk, cinnamon, vanilla",
					"Dip bread slices briefly in mixture",
					"Cook on buttered griddle until golden",
				},
				Notes: "Use soft bread. Don't soak too long.",
			},
		},
	}
}
