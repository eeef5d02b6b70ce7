package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/dto/response"
	"github.com/jrjohn/academy-cloud-go/internal/middleware"
	"github.com/jrjohn/academy-cloud-go/internal/security"
)

// CourseController handles catalog and course interaction endpoints
type CourseController struct {
	courseService service.CourseService
	authMw        *middleware.AuthMiddleware
}

// NewCourseController creates a new CourseController instance
func NewCourseController(courseService service.CourseService, authMw *middleware.AuthMiddleware) *CourseController {
	return &CourseController{
		courseService: courseService,
		authMw:        authMw,
	}
}

// RegisterRoutes registers the course routes
func (c *CourseController) RegisterRoutes(router *gin.RouterGroup) {
	courses := router.Group("/courses")
	{
		// Public catalog views
		courses.GET("", c.ListPublic)
		courses.GET("/:id", c.GetPublic)

		// Authenticated interactions
		auth := courses.Group("", c.authMw.Authenticate())
		{
			auth.GET("/:id/content", c.GetContent)
			auth.POST("/questions", c.AddQuestion)
			auth.POST("/answers", c.AddAnswer)
			auth.POST("/:id/reviews", c.AddReview)
		}

		// Admin management
		admin := courses.Group("", c.authMw.Authenticate(), c.authMw.RequireAdmin())
		{
			admin.POST("", c.Create)
			admin.PUT("/:id", c.Update)
			admin.GET("/admin/all", c.ListAll)
			admin.POST("/reviews/replies", c.AddReply)
			admin.DELETE("/:id", c.Delete)
		}
	}
}

// ListPublic returns the public catalog
// @Summary List all courses (public projection)
// @Tags Courses
// @Produce json
// @Success 200 {object} response.ApiResponse[[]entity.Course]
// @Router /api/v1/courses [get]
func (c *CourseController) ListPublic(ctx *gin.Context) {
	courses, err := c.courseService.ListPublic(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	if courses == nil {
		courses = []*entity.Course{}
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(courses))
}

// GetPublic returns one public course view
// @Summary Get a course (public projection)
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.ApiResponse[entity.Course]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/courses/{id} [get]
func (c *CourseController) GetPublic(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetPublic(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(course))
}

// GetContent returns the paid lecture list
// @Summary Get course content (purchasers and admins)
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} response.ApiResponse[[]entity.CourseContent]
// @Failure 403 {object} response.ApiResponse[any]
// @Router /api/v1/courses/{id}/content [get]
func (c *CourseController) GetContent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user := security.MustCurrentUser(ctx)
	content, err := c.courseService.GetContent(ctx.Request.Context(), user, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(content))
}

// AddQuestion posts a question on a content item
// @Summary Ask a question on a lecture
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.AddQuestionRequest true "Question"
// @Success 200 {object} response.ApiResponse[entity.Course]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/courses/questions [post]
func (c *CourseController) AddQuestion(ctx *gin.Context) {
	var req request.AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user := security.MustCurrentUser(ctx)
	course, err := c.courseService.AddQuestion(ctx.Request.Context(), user, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(course, "Question added"))
}

// AddAnswer posts an answer under a question
// @Summary Answer a question
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.AddAnswerRequest true "Answer"
// @Success 200 {object} response.ApiResponse[entity.Course]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/courses/answers [post]
func (c *CourseController) AddAnswer(ctx *gin.Context) {
	var req request.AddAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user := security.MustCurrentUser(ctx)
	course, err := c.courseService.AddAnswer(ctx.Request.Context(), user, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(course, "Answer added"))
}

// AddReview posts a review on a purchased course
// @Summary Review a purchased course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body request.AddReviewRequest true "Review"
// @Success 200 {object} response.ApiResponse[entity.Course]
// @Failure 403 {object} response.ApiResponse[any]
// @Router /api/v1/courses/{id}/reviews [post]
func (c *CourseController) AddReview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req request.AddReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user := security.MustCurrentUser(ctx)
	course, err := c.courseService.AddReview(ctx.Request.Context(), user, id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(course, "Review added"))
}

// AddReply posts an admin reply under a review
// @Summary Reply to a review (admin)
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.AddReplyRequest true "Reply"
// @Success 200 {object} response.ApiResponse[entity.Course]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/courses/reviews/replies [post]
func (c *CourseController) AddReply(ctx *gin.Context) {
	var req request.AddReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user := security.MustCurrentUser(ctx)
	course, err := c.courseService.AddReply(ctx.Request.Context(), user, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(course, "Reply added"))
}

// Create adds a course to the catalog
// @Summary Create a course (admin)
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpsertCourseRequest true "Course payload"
// @Success 201 {object} response.ApiResponse[entity.Course]
// @Router /api/v1/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req request.UpsertCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	course, err := c.courseService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(course, "Course created"))
}

// Update rewrites course fields
// @Summary Edit a course (admin)
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body request.UpsertCourseRequest true "Course payload"
// @Success 200 {object} response.ApiResponse[entity.Course]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req request.UpsertCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	course, err := c.courseService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(course, "Course updated"))
}

// ListAll returns every course unprojected
// @Summary List all courses with full data (admin)
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]entity.Course]
// @Router /api/v1/courses/admin/all [get]
func (c *CourseController) ListAll(ctx *gin.Context) {
	courses, err := c.courseService.ListAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	if courses == nil {
		courses = []*entity.Course{}
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(courses))
}

// Delete removes a course
// @Summary Soft-delete a course (admin)
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} response.ApiResponse[any]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Course deleted"))
}
