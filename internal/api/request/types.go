package request

// SubmitRequest is the request body for submitting a bot for evaluation
type SubmitRequest struct {
	UserID string `json:"user_id"`
	BotID  string `json:"bot_id"`
}
