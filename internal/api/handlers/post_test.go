package handlers

import (
	"fmt"
	"net/http"
	"testing"

	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/mocks"
	"astralis-ops-backend/internal/service"
	"astralis-ops-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// PostHandlerTestSuite defines the test suite for PostHandler
type PostHandlerTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockPostService *mocks.MockPostServiceInterface
	handler         *PostHandler
	httpSuite       *testutils.HTTPTestSuite
	orgID           string
}

// SetupTest sets up the test suite
func (suite *PostHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockPostService = mocks.NewMockPostServiceInterface(suite.ctrl)

	// Create handler with mock service
	suite.handler = NewPostHandler(suite.mockPostService)

	// Setup HTTP test suite with a stand-in for the auth middleware
	suite.httpSuite = testutils.SetupHTTPTest()
	suite.orgID = uuid.New().String()
	suite.httpSuite.Router.Use(func(c *gin.Context) {
		if suite.orgID != "" {
			c.Set("org_id", suite.orgID)
		}
		c.Next()
	})

	// Register routes
	v1 := suite.httpSuite.Router.Group("/api/v1")
	posts := v1.Group("/posts")
	{
		posts.POST("", suite.handler.CreatePost)
		posts.GET("", suite.handler.ListPosts)
		posts.GET("/:slug", suite.handler.GetPostBySlug)
		posts.PUT("/:id", suite.handler.UpdatePost)
		posts.POST("/:id/publish", suite.handler.PublishPost)
		posts.POST("/:id/unpublish", suite.handler.UnpublishPost)
		posts.DELETE("/:id", suite.handler.DeletePost)
	}
}

// TearDownTest cleans up after each test
func (suite *PostHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreatePost tests creating a draft post
func (suite *PostHandlerTestSuite) TestCreatePost() {
	postID := uuid.New()
	requestBody := map[string]interface{}{
		"slug":  "launch-notes",
		"title": "Launch Notes",
		"body":  "We are live.",
	}

	expectedResponse := &service.PostResponse{
		ID:        postID,
		Slug:      "launch-notes",
		Title:     "Launch Notes",
		Body:      "We are live.",
		Published: false,
	}

	suite.mockPostService.EXPECT().
		Create(suite.orgID, gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/posts", requestBody)

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)

	var response service.PostResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), "launch-notes", response.Slug)
	assert.False(suite.T(), response.Published)
}

// TestCreatePostDuplicateSlug tests creating a post with a slug already in use
func (suite *PostHandlerTestSuite) TestCreatePostDuplicateSlug() {
	requestBody := map[string]interface{}{
		"slug":  "launch-notes",
		"title": "Launch Notes",
	}

	suite.mockPostService.EXPECT().
		Create(suite.orgID, gomock.Any()).
		Return(nil, apperrors.ErrPostExists).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/posts", requestBody)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "post")
}

// TestGetPostBySlug tests retrieving a post by slug
func (suite *PostHandlerTestSuite) TestGetPostBySlug() {
	expectedResponse := &service.PostResponse{
		ID:    uuid.New(),
		Slug:  "launch-notes",
		Title: "Launch Notes",
	}

	suite.mockPostService.EXPECT().
		GetBySlug(suite.orgID, "launch-notes").
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/posts/launch-notes", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.PostResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), "launch-notes", response.Slug)
}

// TestGetPostBySlugNotFound tests retrieving a slug outside the organization
func (suite *PostHandlerTestSuite) TestGetPostBySlugNotFound() {
	suite.mockPostService.EXPECT().
		GetBySlug(suite.orgID, "missing").
		Return(nil, apperrors.ErrPostNotFound).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/posts/missing", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "post")
}

// TestListPosts tests listing published posts
func (suite *PostHandlerTestSuite) TestListPosts() {
	expected := []service.PostResponse{
		{ID: uuid.New(), Slug: "one", Published: true},
		{ID: uuid.New(), Slug: "two", Published: true},
	}

	suite.mockPostService.EXPECT().
		List(suite.orgID, gomock.Any(), 20, 0).
		DoAndReturn(func(orgID string, published *bool, limit, offset int) ([]service.PostResponse, int64, error) {
			assert.NotNil(suite.T(), published)
			assert.True(suite.T(), *published)
			return expected, int64(2), nil
		}).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/posts?published=true", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.PostsListResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), int64(2), response.Total)
	assert.Len(suite.T(), response.Posts, 2)
}

// TestListPostsNoFilter tests listing without a published filter
func (suite *PostHandlerTestSuite) TestListPostsNoFilter() {
	suite.mockPostService.EXPECT().
		List(suite.orgID, gomock.Nil(), 20, 0).
		Return([]service.PostResponse{}, int64(0), nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/posts", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

// TestUpdatePost tests updating a post's title
func (suite *PostHandlerTestSuite) TestUpdatePost() {
	postID := uuid.New()
	requestBody := map[string]interface{}{
		"title": "Updated Title",
	}

	expectedResponse := &service.PostResponse{
		ID:    postID,
		Slug:  "launch-notes",
		Title: "Updated Title",
	}

	suite.mockPostService.EXPECT().
		Update(suite.orgID, postID, gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("PUT", fmt.Sprintf("/api/v1/posts/%s", postID), requestBody)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.PostResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), "Updated Title", response.Title)
}

// TestPublishPost tests publishing a draft
func (suite *PostHandlerTestSuite) TestPublishPost() {
	postID := uuid.New()
	expectedResponse := &service.PostResponse{
		ID:          postID,
		Slug:        "launch-notes",
		Published:   true,
		PublishedAt: "2026-01-01T00:00:00Z",
	}

	suite.mockPostService.EXPECT().
		Publish(suite.orgID, postID).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", fmt.Sprintf("/api/v1/posts/%s/publish", postID), nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.PostResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.True(suite.T(), response.Published)
	assert.NotEmpty(suite.T(), response.PublishedAt)
}

// TestUnpublishPost tests unpublishing a post
func (suite *PostHandlerTestSuite) TestUnpublishPost() {
	postID := uuid.New()
	expectedResponse := &service.PostResponse{
		ID:        postID,
		Slug:      "launch-notes",
		Published: false,
	}

	suite.mockPostService.EXPECT().
		Unpublish(suite.orgID, postID).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", fmt.Sprintf("/api/v1/posts/%s/unpublish", postID), nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.PostResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.False(suite.T(), response.Published)
	assert.Empty(suite.T(), response.PublishedAt)
}

// TestDeletePost tests deleting a post
func (suite *PostHandlerTestSuite) TestDeletePost() {
	postID := uuid.New()

	suite.mockPostService.EXPECT().
		Delete(suite.orgID, postID).
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("DELETE", fmt.Sprintf("/api/v1/posts/%s", postID), nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestDeletePostNotFound tests deleting a post outside the organization
func (suite *PostHandlerTestSuite) TestDeletePostNotFound() {
	postID := uuid.New()

	suite.mockPostService.EXPECT().
		Delete(suite.orgID, postID).
		Return(apperrors.ErrPostNotFound).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("DELETE", fmt.Sprintf("/api/v1/posts/%s", postID), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "post")
}

// TestPostHandlerTestSuite runs the test suite
func TestPostHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PostHandlerTestSuite))
}
