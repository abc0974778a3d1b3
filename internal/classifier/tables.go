package classifier

import "swipecatalog/internal/models"

// Rule pairs a label with the substrings that select it.
type Rule[L ~string] struct {
	Label    L
	Keywords []string
}

// categoryRules is evaluated in order; the first rule with a matching keyword wins.
var categoryRules = []Rule[models.Category]{
	{models.CategoryTops, []string{
		"tee", "top", "shirt", "blouse", "tank", "cami", "crop", "sweater", "sweatshirt",
		"hoodie", "cardigan", "tshirt", "t-shirt", "jacket", "pullover",
	}},
	{models.CategoryBottoms, []string{"pant", "jean", "legging", "short", "skirt", "trouser", "jogger", "chino"}},
	{models.CategoryDresses, []string{"dress", "romper", "jumpsuit"}},
	{models.CategoryActivewear, []string{"sport", "bra", "active", "gym", "workout", "yoga", "run", "performance"}},
	{models.CategoryOuterwear, []string{"coat", "jacket", "bomber", "denim jacket", "cardigan", "puffer"}},
	{models.CategorySwimwear, []string{"swim", "bikini", "one piece", "beach"}},
	{models.CategoryAccessories, []string{"hat", "scarf", "sock", "bag", "purse", "accessory"}},
}

// subcategoryRules only exists for categories that are further split.
var subcategoryRules = map[models.Category][]Rule[string]{
	models.CategoryTops: {
		{"t-shirt", []string{"tee", "t-shirt", "tshirt", "t shirt"}},
		{"blouse", []string{"blouse", "button-up", "button up"}},
		{"sweater", []string{"sweater", "knit", "pullover"}},
		{"hoodie", []string{"hoodie", "sweatshirt"}},
		{"tank", []string{"tank", "sleeveless", "cami", "camisole"}},
		{"crop top", []string{"crop", "cropped"}},
		{"long sleeve", []string{"long sleeve", "longsleeve"}},
	},
	models.CategoryBottoms: {
		{"jeans", []string{"jean", "denim"}},
		{"leggings", []string{"legging", "tight"}},
		{"shorts", []string{"short"}},
		{"skirt", []string{"skirt", "mini skirt", "maxi skirt"}},
		{"pants", []string{"pant", "trouser", "chino"}},
		{"joggers", []string{"jogger", "sweatpant"}},
	},
	models.CategoryDresses: {
		{"mini", []string{"mini"}},
		{"midi", []string{"midi"}},
		{"maxi", []string{"maxi"}},
		{"bodycon", []string{"bodycon", "body con"}},
		{"casual", []string{"casual", "tshirt dress"}},
		{"formal", []string{"formal", "cocktail"}},
	},
	models.CategoryActivewear: {
		{"sports bra", []string{"bra", "sports bra"}},
		{"leggings", []string{"legging"}},
		{"shorts", []string{"short"}},
		{"tank", []string{"tank"}},
		{"jacket", []string{"jacket"}},
	},
}

var styleRules = []Rule[models.Style]{
	{models.StyleCasual, []string{"casual", "basic", "everyday", "lounge", "relaxed", "tee", "jeans"}},
	{models.StyleFormal, []string{"formal", "elegant", "dress", "cocktail", "office"}},
	{models.StyleAthletic, []string{"active", "sport", "gym", "workout", "yoga", "run", "performance"}},
	{models.StyleBohemian, []string{"boho", "floral", "loose", "flowy", "maxi"}},
	{models.StyleVintage, []string{"retro", "vintage", "classic", "90s", "80s"}},
	{models.StyleStreetwear, []string{"street", "urban", "graphic", "oversized"}},
	{models.StyleMinimalist, []string{"minimal", "simple", "clean", "basic"}},
}

// activewearBrands turn a tops or bottoms match into activewear.
var activewearBrands = map[string]bool{
	"alo yoga": true,
	"gymshark": true,
	"vuori":    true,
}

// brandStyles always overrides the keyword-derived style.
var brandStyles = map[string]models.Style{
	"alo yoga":       models.StyleAthletic,
	"gymshark":       models.StyleAthletic,
	"vuori":          models.StyleAthletic,
	"princess polly": models.StyleCasual,
	"edikted":        models.StyleStreetwear,
	"nakd":           models.StyleMinimalist,
	"cupshe":         models.StyleCasual,
	"altardstate":    models.StyleBohemian,
}

// colorVocabulary is matched as a single alternation; the leftmost hit wins.
var colorVocabulary = []string{
	"black", "white", "navy", "blue", "red", "green", "yellow", "pink", "purple",
	"grey", "gray", "brown", "tan", "beige", "olive", "ivory", "cream", "burgundy",
	"teal", "orange", "gold", "silver", "denim", "khaki", "nude", "mauve", "sage",
}
