package dto

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Message string           `json:"message"`
	Role    string           `json:"role"`
	Courses []CourseResponse `json:"courses,omitempty"`
}

type RecommendationRequest struct {
	CurrentPosition   string   `json:"currentPosition"`
	DesiredCareerPath string   `json:"desiredCareerPath"`
	Skills            []string `json:"skills"`
}

type RecommendationResponse struct {
	Query           string           `json:"query"`
	Recommendations []CourseResponse `json:"recommendations"`
}
