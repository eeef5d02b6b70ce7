package request

// LinkRequest is a supplementary resource on a content item
type LinkRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// BenefitRequest is a single landing-page bullet
type BenefitRequest struct {
	Title string `json:"title" binding:"required"`
}

// CourseContentRequest is one lecture in a course payload. ID is set on
// edits to address an existing lecture; omitted for new ones.
type CourseContentRequest struct {
	ID           string        `json:"id,omitempty"`
	Title        string        `json:"title" binding:"required"`
	Description  string        `json:"description"`
	VideoURL     string        `json:"video_url"`
	VideoSection string        `json:"video_section"`
	VideoLength  int           `json:"video_length"`
	VideoPlayer  string        `json:"video_player"`
	Links        []LinkRequest `json:"links"`
	Suggestions  string        `json:"suggestions"`
}

// UpsertCourseRequest creates or edits a course (admin only)
type UpsertCourseRequest struct {
	Name           string                 `json:"name" binding:"required,max=200"`
	Description    string                 `json:"description" binding:"required"`
	Price          float64                `json:"price" binding:"required,gte=0"`
	EstimatedPrice float64                `json:"estimated_price" binding:"omitempty,gte=0"`
	Thumbnail      string                 `json:"thumbnail,omitempty"`
	Tags           string                 `json:"tags"`
	Level          string                 `json:"level"`
	DemoURL        string                 `json:"demo_url"`
	Benefits       []BenefitRequest       `json:"benefits"`
	Prerequisites  []BenefitRequest       `json:"prerequisites"`
	CourseData     []CourseContentRequest `json:"course_data"`
}

// AddQuestionRequest posts a question on a content item
type AddQuestionRequest struct {
	CourseID  uint   `json:"course_id" binding:"required"`
	ContentID string `json:"content_id" binding:"required"`
	Question  string `json:"question" binding:"required"`
}

// AddAnswerRequest posts an answer under a question
type AddAnswerRequest struct {
	CourseID   uint   `json:"course_id" binding:"required"`
	ContentID  string `json:"content_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// AddReviewRequest posts a review on a purchased course
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// AddReplyRequest posts an admin reply under a review
type AddReplyRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	ReviewID string `json:"review_id" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
}
