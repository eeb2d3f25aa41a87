// internal/handlers/intake_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/credara/credentialing-backend/internal/config"
	"github.com/credara/credentialing-backend/internal/services"
)

type IntakeHandlerTestSuite struct {
	suite.Suite
	mock   sqlmock.Sqlmock
	router *gin.Engine
	userID uuid.UUID
}

func (suite *IntakeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	suite.Require().NoError(err)
	suite.mock = mock

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	cfg := &config.Config{}
	intakeService := services.NewIntakeService(db, cfg, services.NewNotificationService(db, cfg))
	handler := NewIntakeHandler(intakeService)

	suite.userID = uuid.New()
	suite.router = gin.New()

	// Stand-in for the auth middleware
	suite.router.Use(func(c *gin.Context) {
		c.Set("user_id", suite.userID.String())
		c.Set("user_email", "owner@example.com")
		c.Next()
	})

	intake := suite.router.Group("/portal/intake")
	{
		intake.POST("/session", handler.StartSession)
		intake.GET("/session", handler.GetSession)
		intake.PATCH("/field", handler.SetField)
		intake.POST("/toggle", handler.ToggleField)
		intake.POST("/next", handler.NextStep)
		intake.POST("/prev", handler.PrevStep)
		intake.GET("/fields", handler.GetFields)
	}
}

func (suite *IntakeHandlerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntakeHandlerTestSuite) startSession() {
	// No client row yet: session starts in create mode
	suite.mock.ExpectQuery(`SELECT \* FROM "clients"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := suite.request("POST", "/portal/intake/session", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
}

func (suite *IntakeHandlerTestSuite) TestStartSession() {
	suite.startSession()

	w := suite.request("GET", "/portal/intake/session", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(suite.T(), response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), data["step"])
	assert.Equal(suite.T(), false, data["can_submit"])
}

func (suite *IntakeHandlerTestSuite) TestGetSessionWithoutStart() {
	w := suite.request("GET", "/portal/intake/session", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *IntakeHandlerTestSuite) TestSetField() {
	suite.startSession()

	w := suite.request("PATCH", "/portal/intake/field", map[string]interface{}{
		"path":  "business_name",
		"value": "Bright Steps ABA",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	draft := data["draft"].(map[string]interface{})
	assert.Equal(suite.T(), "Bright Steps ABA", draft["business_name"])
}

func (suite *IntakeHandlerTestSuite) TestSetUnknownFieldRejected() {
	suite.startSession()

	w := suite.request("PATCH", "/portal/intake/field", map[string]interface{}{
		"path":  "no_such_field",
		"value": "x",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *IntakeHandlerTestSuite) TestToggleField() {
	suite.startSession()

	w := suite.request("POST", "/portal/intake/toggle", map[string]interface{}{
		"field":   "target_states",
		"value":   "CA",
		"checked": true,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	draft := data["draft"].(map[string]interface{})
	states := draft["target_states"].([]interface{})
	assert.Equal(suite.T(), []interface{}{"CA"}, states)
}

func (suite *IntakeHandlerTestSuite) TestNavigationClamps() {
	suite.startSession()

	// Prev at the first step stays put
	w := suite.request("POST", "/portal/intake/prev", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), data["step"])

	// Advancing past the last step clamps at review
	for i := 0; i < 8; i++ {
		w = suite.request("POST", "/portal/intake/next", nil)
		suite.Require().Equal(http.StatusOK, w.Code)
	}

	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data = response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(6), data["step"])
	assert.Equal(suite.T(), true, data["can_submit"])
}

func (suite *IntakeHandlerTestSuite) TestGetFieldsForStep() {
	suite.startSession()

	w := suite.request("GET", "/portal/intake/fields?step=3", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(3), data["step"])

	fields := data["fields"].([]interface{})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.(map[string]interface{})["name"].(string))
	}
	assert.Contains(suite.T(), names, "wants_medicaid")
}

func (suite *IntakeHandlerTestSuite) TestGetFieldsInvalidStep() {
	suite.startSession()

	w := suite.request("GET", "/portal/intake/fields?step=9", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestIntakeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(IntakeHandlerTestSuite))
}
