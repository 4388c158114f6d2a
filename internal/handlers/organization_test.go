package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskpal/taskpal-api/internal/database"
	"github.com/taskpal/taskpal-api/internal/models"
	"github.com/taskpal/taskpal-api/internal/repository"
	"github.com/taskpal/taskpal-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OrganizationHandlerTestSuite defines the test suite for OrganizationHandler
type OrganizationHandlerTestSuite struct {
	suite.Suite
	db         *gorm.DB
	handler    *OrganizationHandler
	orgService *services.OrganizationService
}

// SetupTest runs before each test
func (suite *OrganizationHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	orgRepo := repository.NewOrganizationRepository(suite.db)
	suite.orgService = services.NewOrganizationService(orgRepo, userRepo)
	suite.handler = NewOrganizationHandler(suite.orgService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *OrganizationHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *OrganizationHandlerTestSuite) createTestUser(name, email string) *models.User {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *OrganizationHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// TestCreate_Success tests organization creation
func (suite *OrganizationHandlerTestSuite) TestCreate_Success() {
	user := suite.createTestUser("Admin", "admin@example.com")

	requestBody := map[string]interface{}{
		"name": "Acme Corp",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/org/create", body, user.ID)

	suite.handler.Create(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response struct {
		Org struct {
			ID         uint64 `json:"id"`
			Name       string `json:"name"`
			InviteCode string `json:"inviteCode"`
			Members    []struct {
				ID uint64 `json:"id"`
			} `json:"members"`
		} `json:"org"`
		User struct {
			ActiveOrganization *uint64 `json:"activeOrganization"`
		} `json:"user"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Acme Corp", response.Org.Name)
	assert.Len(suite.T(), response.Org.InviteCode, 8)
	assert.Len(suite.T(), response.Org.Members, 1)
	assert.Equal(suite.T(), user.ID, response.Org.Members[0].ID)

	// Creating an organization makes it the user's active one
	suite.Require().NotNil(response.User.ActiveOrganization)
	assert.Equal(suite.T(), response.Org.ID, *response.User.ActiveOrganization)
}

// TestCreate_MissingName tests creation without a name
func (suite *OrganizationHandlerTestSuite) TestCreate_MissingName() {
	user := suite.createTestUser("Admin", "admin@example.com")

	body, _ := json.Marshal(map[string]interface{}{})

	c, w := suite.createAuthContext("POST", "/api/org/create", body, user.ID)

	suite.handler.Create(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestJoin_Success tests joining via invite code
func (suite *OrganizationHandlerTestSuite) TestJoin_Success() {
	admin := suite.createTestUser("Admin", "admin@example.com")
	joiner := suite.createTestUser("Joiner", "joiner@example.com")

	org, err := suite.orgService.Create(admin.ID, "Acme Corp")
	suite.Require().NoError(err)

	// Codes are matched case-insensitively
	requestBody := map[string]interface{}{
		"inviteCode": " " + org.InviteCode + " ",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/org/join", body, joiner.ID)

	suite.handler.Join(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Org struct {
			ID      uint64 `json:"id"`
			Members []struct {
				ID uint64 `json:"id"`
			} `json:"members"`
		} `json:"org"`
		User struct {
			ActiveOrganization *uint64 `json:"activeOrganization"`
		} `json:"user"`
	}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), org.ID, response.Org.ID)
	assert.Len(suite.T(), response.Org.Members, 2)
	suite.Require().NotNil(response.User.ActiveOrganization)
	assert.Equal(suite.T(), org.ID, *response.User.ActiveOrganization)
}

// TestJoin_InvalidCode tests joining with an unknown invite code
func (suite *OrganizationHandlerTestSuite) TestJoin_InvalidCode() {
	user := suite.createTestUser("Joiner", "joiner@example.com")

	requestBody := map[string]interface{}{
		"inviteCode": "DEADBEEF",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/org/join", body, user.ID)

	suite.handler.Join(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestJoin_AlreadyMember tests joining the same organization twice
func (suite *OrganizationHandlerTestSuite) TestJoin_AlreadyMember() {
	admin := suite.createTestUser("Admin", "admin@example.com")

	org, err := suite.orgService.Create(admin.ID, "Acme Corp")
	suite.Require().NoError(err)

	requestBody := map[string]interface{}{
		"inviteCode": org.InviteCode,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/org/join", body, admin.ID)

	suite.handler.Join(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSwitch_Success tests switching the active organization
func (suite *OrganizationHandlerTestSuite) TestSwitch_Success() {
	user := suite.createTestUser("Admin", "admin@example.com")

	first, err := suite.orgService.Create(user.ID, "First Org")
	suite.Require().NoError(err)
	second, err := suite.orgService.Create(user.ID, "Second Org")
	suite.Require().NoError(err)

	requestBody := map[string]interface{}{
		"orgId": first.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/org/switch", body, user.ID)

	suite.handler.Switch(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		User struct {
			ActiveOrganization *uint64  `json:"activeOrganization"`
			Organizations      []uint64 `json:"organizations"`
		} `json:"user"`
	}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().NotNil(response.User.ActiveOrganization)
	assert.Equal(suite.T(), first.ID, *response.User.ActiveOrganization)
	assert.ElementsMatch(suite.T(), []uint64{first.ID, second.ID}, response.User.Organizations)
}

// TestSwitch_NotMember tests switching to an organization the user is not in
func (suite *OrganizationHandlerTestSuite) TestSwitch_NotMember() {
	admin := suite.createTestUser("Admin", "admin@example.com")
	outsider := suite.createTestUser("Outsider", "outsider@example.com")

	org, err := suite.orgService.Create(admin.ID, "Acme Corp")
	suite.Require().NoError(err)

	requestBody := map[string]interface{}{
		"orgId": org.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/org/switch", body, outsider.ID)

	suite.handler.Switch(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestListMine_Success tests the my-organizations listing
func (suite *OrganizationHandlerTestSuite) TestListMine_Success() {
	admin := suite.createTestUser("Admin", "admin@example.com")
	member := suite.createTestUser("Member", "member@example.com")

	org, err := suite.orgService.Create(admin.ID, "Acme Corp")
	suite.Require().NoError(err)
	_, _, err = suite.orgService.Join(member.ID, org.InviteCode)
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("GET", "/api/org/me", nil, member.ID)

	suite.handler.ListMine(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Orgs []struct {
			ID          uint64 `json:"id"`
			Name        string `json:"name"`
			InviteCode  string `json:"inviteCode"`
			AdminName   string `json:"admin"`
			MemberCount int64  `json:"memberCount"`
		} `json:"orgs"`
		ActiveOrganization *uint64 `json:"activeOrganization"`
	}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response.Orgs, 1)
	assert.Equal(suite.T(), org.ID, response.Orgs[0].ID)
	assert.Equal(suite.T(), "Admin", response.Orgs[0].AdminName)
	assert.Equal(suite.T(), int64(2), response.Orgs[0].MemberCount)
	suite.Require().NotNil(response.ActiveOrganization)
	assert.Equal(suite.T(), org.ID, *response.ActiveOrganization)
}

// TestListMine_Empty tests the listing for a user with no organizations
func (suite *OrganizationHandlerTestSuite) TestListMine_Empty() {
	user := suite.createTestUser("Loner", "loner@example.com")

	c, w := suite.createAuthContext("GET", "/api/org/me", nil, user.ID)

	suite.handler.ListMine(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Orgs               []interface{} `json:"orgs"`
		ActiveOrganization *uint64       `json:"activeOrganization"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), response.Orgs)
	assert.Nil(suite.T(), response.ActiveOrganization)
}

// TestSuite runs the test suite
func TestOrganizationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationHandlerTestSuite))
}
