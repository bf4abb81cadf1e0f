package domain

// Achievement ids. Once granted they are never revoked.
const (
	AchievementNoviceCollector = "novice_collector"
	AchievementFashionista     = "fashionista"
	AchievementStyleSavant     = "style_savant"
	AchievementOutfitArchitect = "outfit_architect"
	AchievementSocialButterfly = "social_butterfly"
)

// Achievement describes a badge shown in the UI.
type Achievement struct {
	ID          string
	Title       string
	Description string
}

// Achievements is the fixed badge catalog.
var Achievements = []Achievement{
	{
		ID:          AchievementNoviceCollector,
		Title:       "Novice Collector",
		Description: "You've started your collection by adding 10 items to your wardrobe.",
	},
	{
		ID:          AchievementFashionista,
		Title:       "Fashionista",
		Description: "Your wardrobe has grown to an impressive 50 items.",
	},
	{
		ID:          AchievementStyleSavant,
		Title:       "Style Savant",
		Description: "A true connoisseur! You have cataloged over 100 items.",
	},
	{
		ID:          AchievementOutfitArchitect,
		Title:       "Outfit Architect",
		Description: "You've saved your first 10 custom outfits.",
	},
	{
		ID:          AchievementSocialButterfly,
		Title:       "Social Butterfly",
		Description: "You've shared your first outfit with the community.",
	},
}
