package dto

// MarketplaceTutorial is one published tutorial as shown in the marketplace
// listing: metadata plus the teacher's display name; content stays hidden
// until the player subscribes and starts playback.
type MarketplaceTutorial struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Difficulty    int    `json:"difficulty"`
	PointsReward  int    `json:"points_reward"`
	TeacherName   string `json:"teacher_name"`
	ScreenCount   int    `json:"screen_count"`
	QuestionCount int    `json:"question_count"`
	Subscribed    bool   `json:"subscribed"`
}

// MarketplaceListResponse wraps the filtered listing.
type MarketplaceListResponse struct {
	Tutorials []MarketplaceTutorial `json:"tutorials"`
}

// SubscribeResponse confirms a new subscription.
type SubscribeResponse struct {
	SubscriptionID string `json:"subscription_id"`
	TutorialID     string `json:"tutorial_id"`
}
