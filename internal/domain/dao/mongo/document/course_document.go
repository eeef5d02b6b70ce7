package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SnapshotDocument is the denormalized author info embedded in nested nodes.
type SnapshotDocument struct {
	UserID    uint   `bson:"user_id"`
	Name      string `bson:"name"`
	AvatarURL string `bson:"avatar_url,omitempty"`
	Role      string `bson:"role"`
}

// LinkDocument is a supplementary resource on a content item.
type LinkDocument struct {
	Name string `bson:"name"`
	URL  string `bson:"url"`
}

// BenefitDocument backs both benefits and prerequisites.
type BenefitDocument struct {
	Title string `bson:"title"`
}

// AnswerDocument is a reply to a question.
type AnswerDocument struct {
	ID        string           `bson:"id"`
	Author    SnapshotDocument `bson:"author"`
	Text      string           `bson:"text"`
	CreatedAt time.Time        `bson:"created_at"`
}

// QuestionDocument is a Q&A thread root on a content item.
type QuestionDocument struct {
	ID        string           `bson:"id"`
	Author    SnapshotDocument `bson:"author"`
	Text      string           `bson:"text"`
	CreatedAt time.Time        `bson:"created_at"`
	Answers   []AnswerDocument `bson:"answers,omitempty"`
}

// ReplyDocument is a response to a review.
type ReplyDocument struct {
	ID        string           `bson:"id"`
	Author    SnapshotDocument `bson:"author"`
	Text      string           `bson:"text"`
	CreatedAt time.Time        `bson:"created_at"`
}

// ReviewDocument is a rating plus comment on a course.
type ReviewDocument struct {
	ID        string           `bson:"id"`
	Author    SnapshotDocument `bson:"author"`
	Rating    int              `bson:"rating"`
	Comment   string           `bson:"comment"`
	CreatedAt time.Time        `bson:"created_at"`
	Replies   []ReplyDocument  `bson:"replies,omitempty"`
}

// CourseContentDocument is a lecture inside a course. The video fields,
// suggestions, links and question threads are excluded from catalog reads.
type CourseContentDocument struct {
	ID           string             `bson:"id"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	VideoURL     string             `bson:"video_url,omitempty"`
	VideoSection string             `bson:"video_section"`
	VideoLength  int                `bson:"video_length"`
	VideoPlayer  string             `bson:"video_player"`
	Links        []LinkDocument     `bson:"links,omitempty"`
	Suggestions  string             `bson:"suggestions,omitempty"`
	Questions    []QuestionDocument `bson:"questions,omitempty"`
}

// CourseDocument represents a course aggregate in MongoDB. Version backs
// the optimistic concurrency check on aggregate rewrites.
type CourseDocument struct {
	ID             primitive.ObjectID      `bson:"_id,omitempty"`
	NumericID      uint                    `bson:"numeric_id"`
	Name           string                  `bson:"name"`
	Description    string                  `bson:"description"`
	Price          float64                 `bson:"price"`
	EstimatedPrice float64                 `bson:"estimated_price,omitempty"`
	Thumbnail      AssetDocument           `bson:"thumbnail,omitempty"`
	Tags           string                  `bson:"tags"`
	Level          string                  `bson:"level"`
	DemoURL        string                  `bson:"demo_url"`
	Benefits       []BenefitDocument       `bson:"benefits,omitempty"`
	Prerequisites  []BenefitDocument       `bson:"prerequisites,omitempty"`
	Reviews        []ReviewDocument        `bson:"reviews,omitempty"`
	CourseData     []CourseContentDocument `bson:"course_data,omitempty"`
	Ratings        float64                 `bson:"ratings"`
	Purchased      int                     `bson:"purchased"`
	Version        uint                    `bson:"version"`
	CreatedAt      time.Time               `bson:"created_at"`
	UpdatedAt      time.Time               `bson:"updated_at"`
	DeletedAt      *time.Time              `bson:"deleted_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for courses.
func (CourseDocument) CollectionName() string {
	return "courses"
}
