package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PostHandler handles HTTP requests for blog posts
type PostHandler struct {
	service service.PostServiceInterface
}

// NewPostHandler creates a new post handler
func NewPostHandler(service service.PostServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

// CreatePost handles POST /api/v1/posts
// @Summary Create a post
// @Description Create a blog post in the caller's organization. Slug must be unique within the organization.
// @Tags posts
// @Accept json
// @Produce json
// @Param post body service.CreatePostRequest true "Post data"
// @Success 201 {object} service.PostResponse "Successfully created post"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Slug already in use"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	var req service.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	post, err := h.service.Create(orgID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPostExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPostBySlug handles GET /api/v1/posts/:slug
// @Summary Get post by slug
// @Description Get a post by its slug within the caller's organization
// @Tags posts
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} service.PostResponse "Successfully retrieved post"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts/{slug} [get]
func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post slug is required"})
		return
	}

	post, err := h.service.GetBySlug(orgID, slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListPosts handles GET /api/v1/posts
// @Summary List posts
// @Description Get the caller's organization's posts, optionally filtered by published state
// @Tags posts
// @Accept json
// @Produce json
// @Param published query bool false "Filter by published state"
// @Param limit query int false "Maximum number of results" default(20)
// @Param offset query int false "Number of results to skip" default(0)
// @Success 200 {object} service.PostsListResponse "Successfully retrieved posts"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var published *bool
	if raw := c.Query("published"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid published filter: must be true or false"})
			return
		}
		published = &value
	}

	posts, total, err := h.service.List(orgID, published, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, service.PostsListResponse{
		Posts:  posts,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// UpdatePost handles PUT /api/v1/posts/:id
// @Summary Update a post
// @Description Update a post's title or body within the caller's organization
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID (UUID)"
// @Param post body service.UpdatePostRequest true "Fields to update"
// @Success 200 {object} service.PostResponse "Successfully updated post"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID: invalid UUID format"})
		return
	}

	var req service.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	post, err := h.service.Update(orgID, id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// PublishPost handles POST /api/v1/posts/:id/publish
// @Summary Publish a post
// @Description Mark a post as published and stamp the publication time
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID (UUID)"
// @Success 200 {object} service.PostResponse "Successfully published post"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts/{id}/publish [post]
func (h *PostHandler) PublishPost(c *gin.Context) {
	h.setPublished(c, true)
}

// UnpublishPost handles POST /api/v1/posts/:id/unpublish
// @Summary Unpublish a post
// @Description Mark a post as unpublished and clear the publication time
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID (UUID)"
// @Success 200 {object} service.PostResponse "Successfully unpublished post"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts/{id}/unpublish [post]
func (h *PostHandler) UnpublishPost(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *PostHandler) setPublished(c *gin.Context, published bool) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID: invalid UUID format"})
		return
	}

	var post *service.PostResponse
	if published {
		post, err = h.service.Publish(orgID, id)
	} else {
		post, err = h.service.Unpublish(orgID, id)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /api/v1/posts/:id
// @Summary Delete a post
// @Description Delete a post within the caller's organization
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID (UUID)"
// @Success 204 "Successfully deleted post"
// @Failure 400 {object} map[string]interface{} "Invalid post ID"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(orgID, id); err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
