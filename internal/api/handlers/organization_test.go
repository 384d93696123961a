package handlers

import (
	"fmt"
	"net/http"
	"testing"

	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/mocks"
	"astralis-ops-backend/internal/service"
	"astralis-ops-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// OrganizationHandlerTestSuite defines the test suite for OrganizationHandler
type OrganizationHandlerTestSuite struct {
	suite.Suite
	ctrl                    *gomock.Controller
	mockOrganizationService *mocks.MockOrganizationServiceInterface
	handler                 *OrganizationHandler
	httpSuite               *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *OrganizationHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockOrganizationService = mocks.NewMockOrganizationServiceInterface(suite.ctrl)

	// Create handler with mock service
	suite.handler = NewOrganizationHandler(suite.mockOrganizationService)

	// Setup HTTP test suite
	suite.httpSuite = testutils.SetupHTTPTest()

	// Register routes
	v1 := suite.httpSuite.Router.Group("/api/v1")
	orgs := v1.Group("/organizations")
	{
		orgs.POST("", suite.handler.CreateOrganization)
		orgs.GET("", suite.handler.ListOrganizations)
		orgs.GET("/:id", suite.handler.GetOrganization)
		orgs.PUT("/:id", suite.handler.UpdateOrganization)
	}
}

// TearDownTest cleans up after each test
func (suite *OrganizationHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateOrganization tests creating an organization
func (suite *OrganizationHandlerTestSuite) TestCreateOrganization() {
	orgID := uuid.New()
	requestBody := map[string]interface{}{
		"name":         "astralis",
		"display_name": "Astralis Consulting",
		"domain":       "astralis.example",
		"description":  "Consulting and content",
	}

	expectedResponse := &service.OrganizationResponse{
		ID:          orgID,
		Name:        "astralis",
		DisplayName: "Astralis Consulting",
		Domain:      "astralis.example",
		Description: "Consulting and content",
		CreatedAt:   "2026-01-01T00:00:00Z",
		UpdatedAt:   "2026-01-01T00:00:00Z",
	}

	suite.mockOrganizationService.EXPECT().
		Create(gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/organizations", requestBody)

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)

	var response service.OrganizationResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), expectedResponse.Name, response.Name)
	assert.Equal(suite.T(), expectedResponse.DisplayName, response.DisplayName)
}

// TestCreateOrganizationConflict tests creating a duplicate organization
func (suite *OrganizationHandlerTestSuite) TestCreateOrganizationConflict() {
	requestBody := map[string]interface{}{
		"name":         "astralis",
		"display_name": "Astralis Consulting",
		"domain":       "astralis.example",
	}

	suite.mockOrganizationService.EXPECT().
		Create(gomock.Any()).
		Return(nil, apperrors.ErrOrganizationExists).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/organizations", requestBody)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "organization")
}

// TestGetOrganization tests retrieving an organization by ID
func (suite *OrganizationHandlerTestSuite) TestGetOrganization() {
	orgID := uuid.New()
	expectedResponse := &service.OrganizationResponse{
		ID:   orgID,
		Name: "astralis",
	}

	suite.mockOrganizationService.EXPECT().
		GetByID(orgID).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", fmt.Sprintf("/api/v1/organizations/%s", orgID), nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.OrganizationResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), orgID, response.ID)
}

// TestGetOrganizationNotFound tests retrieving an unknown organization
func (suite *OrganizationHandlerTestSuite) TestGetOrganizationNotFound() {
	orgID := uuid.New()

	suite.mockOrganizationService.EXPECT().
		GetByID(orgID).
		Return(nil, apperrors.ErrOrganizationNotFound).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", fmt.Sprintf("/api/v1/organizations/%s", orgID), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "organization")
}

// TestGetOrganizationInvalidID tests a malformed organization id
func (suite *OrganizationHandlerTestSuite) TestGetOrganizationInvalidID() {
	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/organizations/not-a-uuid", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "Invalid organization ID")
}

// TestListOrganizations tests listing organizations
func (suite *OrganizationHandlerTestSuite) TestListOrganizations() {
	expected := []service.OrganizationResponse{
		{ID: uuid.New(), Name: "one"},
		{ID: uuid.New(), Name: "two"},
	}

	suite.mockOrganizationService.EXPECT().
		List(20, 0).
		Return(expected, int64(2), nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/organizations", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.OrganizationsListResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), int64(2), response.Total)
	assert.Len(suite.T(), response.Organizations, 2)
}

// TestListOrganizationsPagination tests that limit and offset are passed through
func (suite *OrganizationHandlerTestSuite) TestListOrganizationsPagination() {
	suite.mockOrganizationService.EXPECT().
		List(5, 10).
		Return([]service.OrganizationResponse{}, int64(0), nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/organizations?limit=5&offset=10", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

// TestUpdateOrganization tests updating an organization
func (suite *OrganizationHandlerTestSuite) TestUpdateOrganization() {
	orgID := uuid.New()
	requestBody := map[string]interface{}{
		"display_name": "Astralis Group",
	}

	expectedResponse := &service.OrganizationResponse{
		ID:          orgID,
		Name:        "astralis",
		DisplayName: "Astralis Group",
	}

	suite.mockOrganizationService.EXPECT().
		Update(orgID, gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("PUT", fmt.Sprintf("/api/v1/organizations/%s", orgID), requestBody)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.OrganizationResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), "Astralis Group", response.DisplayName)
}

// TestOrganizationHandlerTestSuite runs the test suite
func TestOrganizationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationHandlerTestSuite))
}
