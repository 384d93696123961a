package middleware

import (
	"net/http"
	"testing"

	"astralis-ops-backend/internal/config"
	"astralis-ops-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// MiddlewareTestSuite tests the HTTP middleware chain
type MiddlewareTestSuite struct {
	suite.Suite
	httpSuite *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *MiddlewareTestSuite) SetupTest() {
	suite.httpSuite = testutils.SetupHTTPTest()
}

func (suite *MiddlewareTestSuite) registerPing(middlewares ...gin.HandlerFunc) {
	for _, m := range middlewares {
		suite.httpSuite.Router.Use(m)
	}
	suite.httpSuite.Router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "request_id": c.GetString("request_id")})
	})
}

// TestRequestIDGenerated tests that a correlation id is assigned when missing
func (suite *MiddlewareTestSuite) TestRequestIDGenerated() {
	suite.registerPing(RequestID())

	recorder := suite.httpSuite.MakeRequest("GET", "/ping", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	requestID := recorder.Header().Get(RequestIDHeader)
	assert.NotEmpty(suite.T(), requestID)
	_, err := uuid.Parse(requestID)
	assert.NoError(suite.T(), err)
}

// TestRequestIDHonorsClientHeader tests that a client-supplied id is kept
func (suite *MiddlewareTestSuite) TestRequestIDHonorsClientHeader() {
	suite.registerPing(RequestID())

	recorder := suite.httpSuite.MakeRequestWithHeaders("GET", "/ping", nil, map[string]string{
		RequestIDHeader: "client-supplied-id",
	})

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Equal(suite.T(), "client-supplied-id", recorder.Header().Get(RequestIDHeader))
	assert.Contains(suite.T(), recorder.Body.String(), "client-supplied-id")
}

// TestCORSAllowedOrigin tests that an allowlisted origin gets CORS headers
func (suite *MiddlewareTestSuite) TestCORSAllowedOrigin() {
	cfg := &config.Config{AllowedOrigins: []string{"https://ops.astralis.example"}}
	suite.registerPing(CORS(cfg))

	recorder := suite.httpSuite.MakeRequestWithHeaders("GET", "/ping", nil, map[string]string{
		"Origin": "https://ops.astralis.example",
	})

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Equal(suite.T(), "https://ops.astralis.example", recorder.Header().Get("Access-Control-Allow-Origin"))
}

// TestCORSUnknownOrigin tests that a non-allowlisted origin gets no CORS headers
func (suite *MiddlewareTestSuite) TestCORSUnknownOrigin() {
	cfg := &config.Config{AllowedOrigins: []string{"https://ops.astralis.example"}}
	suite.registerPing(CORS(cfg))

	recorder := suite.httpSuite.MakeRequestWithHeaders("GET", "/ping", nil, map[string]string{
		"Origin": "https://evil.example",
	})

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Empty(suite.T(), recorder.Header().Get("Access-Control-Allow-Origin"))
}

// TestCORSWildcard tests the wildcard allowlist entry
func (suite *MiddlewareTestSuite) TestCORSWildcard() {
	cfg := &config.Config{AllowedOrigins: []string{"*"}}
	suite.registerPing(CORS(cfg))

	recorder := suite.httpSuite.MakeRequestWithHeaders("GET", "/ping", nil, map[string]string{
		"Origin": "https://anywhere.example",
	})

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Equal(suite.T(), "https://anywhere.example", recorder.Header().Get("Access-Control-Allow-Origin"))
}

// TestCORSPreflight tests that OPTIONS requests are short-circuited
func (suite *MiddlewareTestSuite) TestCORSPreflight() {
	cfg := &config.Config{AllowedOrigins: []string{"*"}}
	suite.registerPing(CORS(cfg))

	recorder := suite.httpSuite.MakeRequestWithHeaders("OPTIONS", "/ping", nil, map[string]string{
		"Origin": "https://anywhere.example",
	})

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestRecovery tests that panics become 500 responses
func (suite *MiddlewareTestSuite) TestRecovery() {
	suite.httpSuite.Router.Use(Recovery())
	suite.httpSuite.Router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	recorder := suite.httpSuite.MakeRequest("GET", "/boom", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusInternalServerError, "Internal server error")
}

// TestMiddlewareTestSuite runs the test suite
func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
