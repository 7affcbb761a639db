package api

// Wire types mirror the platform's JSON. Timestamps are kept as strings
// because the platform emits them without a zone.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Module struct {
	ID                 int    `json:"id"`
	CourseID           int    `json:"course_id"`
	Title              string `json:"title"`
	ContentTheoretical string `json:"content_theoretical,omitempty"`
	ContentPractical   string `json:"content_practical,omitempty"`
	ContentVisual      string `json:"content_visual,omitempty"`
	VideoURL           string `json:"video_url,omitempty"`
	Order              int    `json:"order"`
}

// QuizQuestion is a course quiz question. Options is a comma-separated list.
type QuizQuestion struct {
	ID            int    `json:"id"`
	QuizID        int    `json:"quiz_id"`
	Text          string `json:"text"`
	Options       string `json:"options"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
}

type Quiz struct {
	ID        int            `json:"id"`
	CourseID  int            `json:"course_id"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

type Course struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Instructor  string   `json:"instructor"`
	ImageURL    string   `json:"image_url,omitempty"`
	Modules     []Module `json:"modules"`
	Quiz        *Quiz    `json:"quiz,omitempty"`
}

// Profile is the cognitive profile computed by the platform.
type Profile struct {
	ID                  int     `json:"id"`
	UserID              int     `json:"user_id"`
	BehavioralScore     float64 `json:"behavioral_score"`
	TechnicalScore      float64 `json:"technical_score"`
	CognitiveLevel      string  `json:"cognitive_level"`
	LearningStyle       string  `json:"learning_style"`
	RecommendedStrategy string  `json:"recommended_strategy"`
	LastUpdated         string  `json:"last_updated,omitempty"`
}

type AccuracyPoint struct {
	Attempt  int     `json:"attempt"`
	Accuracy float64 `json:"accuracy"`
}

type ResponseTimePoint struct {
	Attempt int     `json:"attempt"`
	Time    float64 `json:"time"`
}

type Performance struct {
	Profile                  *Profile            `json:"profile"`
	AccuracyTrend            []AccuracyPoint     `json:"accuracy_trend"`
	ResponseTimeTrend        []ResponseTimePoint `json:"response_time_trend"`
	TotalAttempts            int                 `json:"total_attempts"`
	TotalBehavioralResponses int                 `json:"total_behavioral_responses"`
}

// TechnicalAttempt is the body of POST /tests/technical. ResponseTime is in
// seconds with two decimals.
type TechnicalAttempt struct {
	ID             int     `json:"id,omitempty"`
	UserID         int     `json:"user_id,omitempty"`
	QuestionID     int     `json:"question_id"`
	SelectedAnswer string  `json:"selected_answer"`
	CorrectAnswer  string  `json:"correct_answer"`
	ResponseTime   float64 `json:"response_time"`
	IsCorrect      bool    `json:"is_correct"`
	AttemptNumber  int     `json:"attempt_number"`
}

// BehavioralResponse is the body of POST /tests/behavioral.
type BehavioralResponse struct {
	ID             int     `json:"id,omitempty"`
	UserID         int     `json:"user_id,omitempty"`
	QuestionID     int     `json:"question_id"`
	SelectedOption string  `json:"selected_option"`
	ScoreWeight    float64 `json:"score_weight"`
}

// ErrorBody is the platform's error envelope.
type ErrorBody struct {
	Detail string `json:"detail"`
}
