package models_test

import (
	"github.com/expensetracker/backend/internal/models"
)

func (suite *TestSuiteStandard) TestDuplicateEmail() {
	suite.createTestUser("jane@example.com")

	user := models.User{Email: "jane@example.com", PasswordHash: "x"}
	err := models.DB.Create(&user).Error

	suite.Assert().ErrorIs(err, models.ErrUserEmailNotUnique)
}

func (suite *TestSuiteStandard) TestEmailNormalized() {
	user := models.User{Email: " Jane@Example.com ", PasswordHash: "x"}
	err := models.DB.Create(&user).Error

	suite.Require().NoError(err)
	suite.Assert().Equal("jane@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	var user models.User
	err := models.DB.First(&user, "email = ?", "jane@example.com").Error

	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

// A failed Connect must not replace the existing connection.
func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	err := models.Connect("/this/path/does/not/exist/database.db")
	suite.Assert().Error(err)

	var count int64
	suite.Assert().NoError(models.DB.Model(&models.User{}).Count(&count).Error)
}
