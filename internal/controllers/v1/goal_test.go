package v1_test

import (
	"net/http"

	v1 "github.com/expensetracker/backend/internal/controllers/v1"
	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/types"
	"github.com/expensetracker/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestGoal(headers map[string]string, editable v1.GoalEditable) models.Goal {
	r := test.Request(suite.T(), suite.co, http.MethodPost, "/v1/goals", editable, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return *response.Data
}

func (suite *TestSuiteStandard) TestCreateGoal() {
	_, headers := suite.registerUser("jane@example.com")

	goal := suite.createTestGoal(headers, v1.GoalEditable{
		Name:        "New laptop",
		Target:      decimal.NewFromInt(1500),
		TargetMonth: types.NewMonth(2024, 11),
	})

	suite.Assert().Equal("New laptop", goal.Name)
	suite.Assert().True(goal.Saved.IsZero())
}

func (suite *TestSuiteStandard) TestCreateGoalInvalidTarget() {
	_, headers := suite.registerUser("jane@example.com")

	r := test.Request(suite.T(), suite.co, http.MethodPost, "/v1/goals", v1.GoalEditable{
		Name:   "New laptop",
		Target: decimal.NewFromInt(-1),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetGoalsArchivedFilter() {
	_, headers := suite.registerUser("jane@example.com")

	suite.createTestGoal(headers, v1.GoalEditable{Name: "Active", Target: decimal.NewFromInt(100)})
	archived := suite.createTestGoal(headers, v1.GoalEditable{Name: "Old", Target: decimal.NewFromInt(100)})

	r := test.Request(suite.T(), suite.co, http.MethodPatch, "/v1/goals/"+archived.ID.String(), map[string]any{
		"archived": true,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), suite.co, http.MethodGet, "/v1/goals?archived=false", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Active", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestUpdateGoalSavedAmount() {
	_, headers := suite.registerUser("jane@example.com")

	goal := suite.createTestGoal(headers, v1.GoalEditable{Name: "New laptop", Target: decimal.NewFromInt(1500)})

	r := test.Request(suite.T(), suite.co, http.MethodPatch, "/v1/goals/"+goal.ID.String(), map[string]any{
		"saved": 350,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.Saved.Equal(decimal.NewFromInt(350)))
	suite.Assert().True(response.Data.Target.Equal(decimal.NewFromInt(1500)))
}

func (suite *TestSuiteStandard) TestDeleteGoal() {
	_, headers := suite.registerUser("jane@example.com")

	goal := suite.createTestGoal(headers, v1.GoalEditable{Name: "New laptop", Target: decimal.NewFromInt(1500)})

	r := test.Request(suite.T(), suite.co, http.MethodDelete, "/v1/goals/"+goal.ID.String(), "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.co, http.MethodGet, "/v1/goals/"+goal.ID.String(), "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGoalOtherUser() {
	_, headers := suite.registerUser("jane@example.com")
	_, otherHeaders := suite.registerUser("john@example.com")

	goal := suite.createTestGoal(headers, v1.GoalEditable{Name: "New laptop", Target: decimal.NewFromInt(1500)})

	r := test.Request(suite.T(), suite.co, http.MethodDelete, "/v1/goals/"+goal.ID.String(), "", otherHeaders)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetMeta() {
	_, headers := suite.registerUser("jane@example.com")

	r := test.Request(suite.T(), suite.co, http.MethodGet, "/v1/meta", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MetaResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().NotEmpty(response.Data.Categories)
	suite.Assert().NotEmpty(response.Data.PaymentMethods)
}
