package entity

import "testing"

func TestNewReview_Validation(t *testing.T) {
	author := Snapshot{UserID: 1, Name: "Test"}

	tests := []struct {
		name    string
		rating  int
		comment string
		wantErr error
	}{
		{"valid", 5, "great course", nil},
		{"rating too low", 0, "ok", ErrRatingRange},
		{"rating too high", 6, "ok", ErrRatingRange},
		{"empty comment", 4, "", ErrEmptyComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := NewReview(author, tt.rating, tt.comment)
			if err != tt.wantErr {
				t.Fatalf("NewReview() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && review.ID == "" {
				t.Error("NewReview() did not assign an id")
			}
		})
	}
}

func TestNewQuestion_EmptyText(t *testing.T) {
	if _, err := NewQuestion(Snapshot{}, ""); err != ErrEmptyText {
		t.Errorf("NewQuestion() error = %v, want %v", err, ErrEmptyText)
	}
}

func TestNewAnswer_AssignsID(t *testing.T) {
	a1, err := NewAnswer(Snapshot{}, "because")
	if err != nil {
		t.Fatalf("NewAnswer() error = %v", err)
	}
	a2, _ := NewAnswer(Snapshot{}, "because")
	if a1.ID == a2.ID {
		t.Error("NewAnswer() ids must be unique")
	}
}

func TestCourse_AddReview_RecomputesMean(t *testing.T) {
	course := &Course{}

	r1, _ := NewReview(Snapshot{UserID: 1}, 5, "excellent")
	r2, _ := NewReview(Snapshot{UserID: 2}, 3, "fine")

	course.AddReview(r1)
	if course.Ratings != 5 {
		t.Errorf("Ratings = %v, want 5", course.Ratings)
	}

	course.AddReview(r2)
	if course.Ratings != 4 {
		t.Errorf("Ratings = %v, want 4", course.Ratings)
	}
}

func TestCourse_RecomputeRatings_Empty(t *testing.T) {
	course := &Course{Ratings: 3.2}
	course.RecomputeRatings()
	if course.Ratings != 0 {
		t.Errorf("Ratings = %v, want 0 with no reviews", course.Ratings)
	}
}

func TestCourse_FindContent(t *testing.T) {
	course := &Course{
		CourseData: []CourseContent{
			{ID: "a", Title: "Intro"},
			{ID: "b", Title: "Advanced"},
		},
	}

	if got := course.FindContent("b"); got == nil || got.Title != "Advanced" {
		t.Errorf("FindContent(b) = %v", got)
	}
	if got := course.FindContent("missing"); got != nil {
		t.Errorf("FindContent(missing) = %v, want nil", got)
	}
}

func TestCourseContent_FindQuestion(t *testing.T) {
	q, _ := NewQuestion(Snapshot{UserID: 1}, "why?")
	content := &CourseContent{Questions: []Question{q}}

	if got := content.FindQuestion(q.ID); got == nil {
		t.Fatal("FindQuestion() returned nil for existing question")
	}
	if got := content.FindQuestion("missing"); got != nil {
		t.Error("FindQuestion() should return nil for unknown id")
	}
}

func TestCourse_FindReview_MutatesInPlace(t *testing.T) {
	review, _ := NewReview(Snapshot{UserID: 1}, 4, "good")
	course := &Course{Reviews: []Review{review}}

	found := course.FindReview(review.ID)
	if found == nil {
		t.Fatal("FindReview() returned nil")
	}
	reply, _ := NewReply(Snapshot{UserID: 2}, "thanks")
	found.Replies = append(found.Replies, reply)

	if len(course.Reviews[0].Replies) != 1 {
		t.Error("reply was not attached to the course aggregate")
	}
}
