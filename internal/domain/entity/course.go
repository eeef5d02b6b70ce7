package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Nested construction errors. These surface as validation failures.
var (
	ErrEmptyText    = errors.New("text must not be empty")
	ErrRatingRange  = errors.New("rating must be between 1 and 5")
	ErrEmptyComment = errors.New("comment must not be empty")
)

// Link is a supplementary resource attached to a content item.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Benefit is a single bullet shown on the course landing page; the same
// shape backs prerequisites.
type Benefit struct {
	Title string `json:"title"`
}

// Answer is a reply to a question. One level only.
type Answer struct {
	ID        string    `json:"id"`
	Author    Snapshot  `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAnswer validates and constructs an answer node.
func NewAnswer(author Snapshot, text string) (Answer, error) {
	if text == "" {
		return Answer{}, ErrEmptyText
	}
	return Answer{
		ID:        uuid.New().String(),
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	}, nil
}

// Question is a Q&A thread root attached to a content item.
type Question struct {
	ID        string    `json:"id"`
	Author    Snapshot  `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Answers   []Answer  `json:"answers"`
}

// NewQuestion validates and constructs a question node.
func NewQuestion(author Snapshot, text string) (Question, error) {
	if text == "" {
		return Question{}, ErrEmptyText
	}
	return Question{
		ID:        uuid.New().String(),
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	}, nil
}

// Reply is a response to a review. One level only.
type Reply struct {
	ID        string    `json:"id"`
	Author    Snapshot  `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReply validates and constructs a reply node.
func NewReply(author Snapshot, text string) (Reply, error) {
	if text == "" {
		return Reply{}, ErrEmptyText
	}
	return Reply{
		ID:        uuid.New().String(),
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	}, nil
}

// Review is a rating plus comment attached to a course.
type Review struct {
	ID        string    `json:"id"`
	Author    Snapshot  `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Replies   []Reply   `json:"replies"`
}

// NewReview validates and constructs a review node.
func NewReview(author Snapshot, rating int, comment string) (Review, error) {
	if rating < MinRating || rating > MaxRating {
		return Review{}, ErrRatingRange
	}
	if comment == "" {
		return Review{}, ErrEmptyComment
	}
	return Review{
		ID:        uuid.New().String(),
		Author:    author,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}, nil
}

// CourseContent is a single lecture inside a course. The video fields and
// question threads are paid content and are excluded from public views.
type CourseContent struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	VideoURL     string     `json:"video_url"`
	VideoSection string     `json:"video_section"`
	VideoLength  int        `json:"video_length"`
	VideoPlayer  string     `json:"video_player"`
	Links        []Link     `json:"links"`
	Suggestions  string     `json:"suggestions"`
	Questions    []Question `json:"questions"`
}

// Course is the catalog aggregate owning all nested content, questions and
// reviews. Version is the optimistic concurrency token: every persisted
// rewrite is conditional on the loaded version and increments it.
type Course struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          float64         `json:"price"`
	EstimatedPrice float64         `json:"estimated_price"`
	Thumbnail      Asset           `json:"thumbnail"`
	Tags           string          `json:"tags"`
	Level          string          `json:"level"`
	DemoURL        string          `json:"demo_url"`
	Benefits       []Benefit       `json:"benefits"`
	Prerequisites  []Benefit       `json:"prerequisites"`
	Reviews        []Review        `json:"reviews"`
	CourseData     []CourseContent `json:"course_data"`
	Ratings        float64         `json:"ratings"`
	Purchased      int             `json:"purchased"`
	Version        uint            `json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      *time.Time      `json:"-"`
}

// FindContent locates a content item by its id. Linear scan; nested ids are
// uuids compared by string equality.
func (c *Course) FindContent(contentID string) *CourseContent {
	for i := range c.CourseData {
		if c.CourseData[i].ID == contentID {
			return &c.CourseData[i]
		}
	}
	return nil
}

// FindQuestion locates a question under a content item.
func (cc *CourseContent) FindQuestion(questionID string) *Question {
	for i := range cc.Questions {
		if cc.Questions[i].ID == questionID {
			return &cc.Questions[i]
		}
	}
	return nil
}

// FindReview locates a review by id.
func (c *Course) FindReview(reviewID string) *Review {
	for i := range c.Reviews {
		if c.Reviews[i].ID == reviewID {
			return &c.Reviews[i]
		}
	}
	return nil
}

// AddReview appends a review and recomputes the ratings mean over every
// review currently attached. The mean is never stored independent of this
// derivation.
func (c *Course) AddReview(review Review) {
	c.Reviews = append(c.Reviews, review)
	c.RecomputeRatings()
}

// RecomputeRatings sets Ratings to the arithmetic mean of all review
// ratings, or zero when no reviews exist.
func (c *Course) RecomputeRatings() {
	if len(c.Reviews) == 0 {
		c.Ratings = 0
		return
	}
	sum := 0
	for _, r := range c.Reviews {
		sum += r.Rating
	}
	c.Ratings = float64(sum) / float64(len(c.Reviews))
}
