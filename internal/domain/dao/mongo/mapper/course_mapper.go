package mapper

import (
	"github.com/jrjohn/academy-cloud-go/internal/domain/dao/mongo/document"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// CourseMapper converts between entity.Course and document.CourseDocument,
// including every nested node type.
type CourseMapper struct{}

// NewCourseMapper creates a new CourseMapper.
func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func snapshotToDocument(s entity.Snapshot) document.SnapshotDocument {
	return document.SnapshotDocument{
		UserID:    s.UserID,
		Name:      s.Name,
		AvatarURL: s.AvatarURL,
		Role:      string(s.Role),
	}
}

func snapshotToEntity(d document.SnapshotDocument) entity.Snapshot {
	return entity.Snapshot{
		UserID:    d.UserID,
		Name:      d.Name,
		AvatarURL: d.AvatarURL,
		Role:      entity.UserRole(d.Role),
	}
}

func answersToDocuments(answers []entity.Answer) []document.AnswerDocument {
	docs := make([]document.AnswerDocument, 0, len(answers))
	for _, a := range answers {
		docs = append(docs, document.AnswerDocument{
			ID:        a.ID,
			Author:    snapshotToDocument(a.Author),
			Text:      a.Text,
			CreatedAt: a.CreatedAt,
		})
	}
	return docs
}

func answersToEntities(docs []document.AnswerDocument) []entity.Answer {
	answers := make([]entity.Answer, 0, len(docs))
	for _, d := range docs {
		answers = append(answers, entity.Answer{
			ID:        d.ID,
			Author:    snapshotToEntity(d.Author),
			Text:      d.Text,
			CreatedAt: d.CreatedAt,
		})
	}
	return answers
}

func questionsToDocuments(questions []entity.Question) []document.QuestionDocument {
	docs := make([]document.QuestionDocument, 0, len(questions))
	for _, q := range questions {
		docs = append(docs, document.QuestionDocument{
			ID:        q.ID,
			Author:    snapshotToDocument(q.Author),
			Text:      q.Text,
			CreatedAt: q.CreatedAt,
			Answers:   answersToDocuments(q.Answers),
		})
	}
	return docs
}

func questionsToEntities(docs []document.QuestionDocument) []entity.Question {
	questions := make([]entity.Question, 0, len(docs))
	for _, d := range docs {
		questions = append(questions, entity.Question{
			ID:        d.ID,
			Author:    snapshotToEntity(d.Author),
			Text:      d.Text,
			CreatedAt: d.CreatedAt,
			Answers:   answersToEntities(d.Answers),
		})
	}
	return questions
}

func repliesToDocuments(replies []entity.Reply) []document.ReplyDocument {
	docs := make([]document.ReplyDocument, 0, len(replies))
	for _, r := range replies {
		docs = append(docs, document.ReplyDocument{
			ID:        r.ID,
			Author:    snapshotToDocument(r.Author),
			Text:      r.Text,
			CreatedAt: r.CreatedAt,
		})
	}
	return docs
}

func repliesToEntities(docs []document.ReplyDocument) []entity.Reply {
	replies := make([]entity.Reply, 0, len(docs))
	for _, d := range docs {
		replies = append(replies, entity.Reply{
			ID:        d.ID,
			Author:    snapshotToEntity(d.Author),
			Text:      d.Text,
			CreatedAt: d.CreatedAt,
		})
	}
	return replies
}

func reviewsToDocuments(reviews []entity.Review) []document.ReviewDocument {
	docs := make([]document.ReviewDocument, 0, len(reviews))
	for _, r := range reviews {
		docs = append(docs, document.ReviewDocument{
			ID:        r.ID,
			Author:    snapshotToDocument(r.Author),
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			Replies:   repliesToDocuments(r.Replies),
		})
	}
	return docs
}

func reviewsToEntities(docs []document.ReviewDocument) []entity.Review {
	reviews := make([]entity.Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, entity.Review{
			ID:        d.ID,
			Author:    snapshotToEntity(d.Author),
			Rating:    d.Rating,
			Comment:   d.Comment,
			CreatedAt: d.CreatedAt,
			Replies:   repliesToEntities(d.Replies),
		})
	}
	return reviews
}

func linksToDocuments(links []entity.Link) []document.LinkDocument {
	docs := make([]document.LinkDocument, 0, len(links))
	for _, l := range links {
		docs = append(docs, document.LinkDocument{Name: l.Name, URL: l.URL})
	}
	return docs
}

func linksToEntities(docs []document.LinkDocument) []entity.Link {
	links := make([]entity.Link, 0, len(docs))
	for _, d := range docs {
		links = append(links, entity.Link{Name: d.Name, URL: d.URL})
	}
	return links
}

func benefitsToDocuments(benefits []entity.Benefit) []document.BenefitDocument {
	docs := make([]document.BenefitDocument, 0, len(benefits))
	for _, b := range benefits {
		docs = append(docs, document.BenefitDocument{Title: b.Title})
	}
	return docs
}

func benefitsToEntities(docs []document.BenefitDocument) []entity.Benefit {
	benefits := make([]entity.Benefit, 0, len(docs))
	for _, d := range docs {
		benefits = append(benefits, entity.Benefit{Title: d.Title})
	}
	return benefits
}

func contentsToDocuments(contents []entity.CourseContent) []document.CourseContentDocument {
	docs := make([]document.CourseContentDocument, 0, len(contents))
	for _, c := range contents {
		docs = append(docs, document.CourseContentDocument{
			ID:           c.ID,
			Title:        c.Title,
			Description:  c.Description,
			VideoURL:     c.VideoURL,
			VideoSection: c.VideoSection,
			VideoLength:  c.VideoLength,
			VideoPlayer:  c.VideoPlayer,
			Links:        linksToDocuments(c.Links),
			Suggestions:  c.Suggestions,
			Questions:    questionsToDocuments(c.Questions),
		})
	}
	return docs
}

func contentsToEntities(docs []document.CourseContentDocument) []entity.CourseContent {
	contents := make([]entity.CourseContent, 0, len(docs))
	for _, d := range docs {
		contents = append(contents, entity.CourseContent{
			ID:           d.ID,
			Title:        d.Title,
			Description:  d.Description,
			VideoURL:     d.VideoURL,
			VideoSection: d.VideoSection,
			VideoLength:  d.VideoLength,
			VideoPlayer:  d.VideoPlayer,
			Links:        linksToEntities(d.Links),
			Suggestions:  d.Suggestions,
			Questions:    questionsToEntities(d.Questions),
		})
	}
	return contents
}

// ToDocument converts a course aggregate to its MongoDB document.
func (m *CourseMapper) ToDocument(course *entity.Course) *document.CourseDocument {
	return &document.CourseDocument{
		NumericID:      course.ID,
		Name:           course.Name,
		Description:    course.Description,
		Price:          course.Price,
		EstimatedPrice: course.EstimatedPrice,
		Thumbnail: document.AssetDocument{
			PublicID: course.Thumbnail.PublicID,
			URL:      course.Thumbnail.URL,
		},
		Tags:          course.Tags,
		Level:         course.Level,
		DemoURL:       course.DemoURL,
		Benefits:      benefitsToDocuments(course.Benefits),
		Prerequisites: benefitsToDocuments(course.Prerequisites),
		Reviews:       reviewsToDocuments(course.Reviews),
		CourseData:    contentsToDocuments(course.CourseData),
		Ratings:       course.Ratings,
		Purchased:     course.Purchased,
		Version:       course.Version,
		CreatedAt:     course.CreatedAt,
		UpdatedAt:     course.UpdatedAt,
		DeletedAt:     course.DeletedAt,
	}
}

// ToEntity converts a MongoDB document to a course aggregate.
func (m *CourseMapper) ToEntity(doc *document.CourseDocument) *entity.Course {
	return &entity.Course{
		ID:             doc.NumericID,
		Name:           doc.Name,
		Description:    doc.Description,
		Price:          doc.Price,
		EstimatedPrice: doc.EstimatedPrice,
		Thumbnail: entity.Asset{
			PublicID: doc.Thumbnail.PublicID,
			URL:      doc.Thumbnail.URL,
		},
		Tags:          doc.Tags,
		Level:         doc.Level,
		DemoURL:       doc.DemoURL,
		Benefits:      benefitsToEntities(doc.Benefits),
		Prerequisites: benefitsToEntities(doc.Prerequisites),
		Reviews:       reviewsToEntities(doc.Reviews),
		CourseData:    contentsToEntities(doc.CourseData),
		Ratings:       doc.Ratings,
		Purchased:     doc.Purchased,
		Version:       doc.Version,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
		DeletedAt:     doc.DeletedAt,
	}
}

// ToEntities converts a slice of documents to course aggregates.
func (m *CourseMapper) ToEntities(docs []*document.CourseDocument) []*entity.Course {
	courses := make([]*entity.Course, 0, len(docs))
	for _, doc := range docs {
		courses = append(courses, m.ToEntity(doc))
	}
	return courses
}
