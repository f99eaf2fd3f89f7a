// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amaanah/backend/config"
	"github.com/amaanah/backend/internal/domain/entity"
	"github.com/amaanah/backend/internal/infra/dependency"
	"github.com/amaanah/backend/internal/integration/persistence/model"
	"github.com/amaanah/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	redis      *redis.Client
	serverPort int

	accessToken           string
	refreshToken          string
	currentUserID         uuid.UUID
	currentEntryID        uuid.UUID
	currentNotificationID uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var portInit sync.Once
var testDB *mock.Db
var testRedis *redis.Client
var testServerPort int

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		redis:      mock.NewRedis(),
		db: mock.NewDb(map[string]any{
			"users":              &model.UserModel{},
			"refresh_tokens":     &model.RefreshTokenModel{},
			"ledger_entries":     &model.LedgerEntryModel{},
			"ledger_payments":    &model.PaymentModel{},
			"ledger_retractions": &model.RetractionModel{},
			"notifications":      &model.NotificationModel{},
			"email_queue":        &model.EmailQueueModel{},
		}),
	}

	testDB = test.db
	testRedis = test.redis

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user "([^"]*)" exists$`, test.theUserExists)
	// Registered keyword-free so scenarios can switch users mid-flow.
	ctx.Step(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)

	// Ledger setup steps
	ctx.Given(`^a confirmed debt of "([^"]*)" from "([^"]*)" owed by "([^"]*)"$`, test.aConfirmedDebtOwedBy)
	ctx.Given(`^a pending debt of "([^"]*)" from "([^"]*)" owed by "([^"]*)"$`, test.aPendingDebtOwedBy)
	ctx.Given(`^an unclaimed debt of "([^"]*)" from "([^"]*)" owed by partner "([^"]*)"$`, test.anUnclaimedDebt)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentEntryID = uuid.Nil
	t.currentNotificationID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	if t.redis != nil {
		_ = mock.ClearRedis(t.redis)
	}
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			cfg := &config.Config{
				Server: config.ServerConfig{
					Host:         "localhost",
					Port:         testServerPort,
					ReadTimeout:  15 * time.Second,
					WriteTimeout: 15 * time.Second,
					Environment:  "test",
				},
				JWT: config.JWTConfig{
					Secret:             testJWTSecret,
					AccessTokenExpiry:  15 * time.Minute,
					RefreshTokenExpiry: 7 * 24 * time.Hour,
				},
				Email: config.EmailConfig{
					FromName:   "Amanah",
					FromEmail:  "no-reply@amaanah.test",
					AppBaseURL: "http://localhost:3000",
				},
				Reminder: config.ReminderConfig{
					ScanInterval: time.Hour,
				},
			}

			injector, err := dependency.NewInjector(cfg, testDB.DbConn, testRedis)
			if err != nil {
				panic(fmt.Sprintf("failed to build test injector: %v", err))
			}

			engine := injector.Router.Setup("test")
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) theUserExists(email string) error {
	var userModel model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&userModel).Error; err == nil {
		return nil
	}
	return t.createUser(email, "DefaultPass123!", "Test User "+email)
}

func (t *testContext) createUser(email, password, name string) error {
	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:                userID,
		Email:             email,
		Name:              name,
		PasswordHash:      hashPassword(password),
		RemindersEnabled:  true,
		SevenDayReminders: true,
		OneDayReminders:   true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) userIDByEmail(email string) (uuid.UUID, error) {
	var userModel model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&userModel).Error; err != nil {
		return uuid.Nil, fmt.Errorf("user %s not found: %w", email, err)
	}
	return userModel.ID, nil
}

// iAmLoggedInAs mints tokens for the given user, creating them first if needed.
func (t *testContext) iAmLoggedInAs(email string) error {
	if err := t.theUserExists(email); err != nil {
		return err
	}

	userID, err := t.userIDByEmail(email)
	if err != nil {
		return err
	}
	t.currentUserID = userID

	return t.issueTokens(email)
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	return t.issueTokens("test@example.com")
}

func (t *testContext) issueTokens(email string) error {
	now := time.Now().UTC()

	accessClaims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      email,
		"token_type": "access",
		"exp":        jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "amaanah",
		"sub":        t.currentUserID.String(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessToken

	refreshClaims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      email,
		"token_type": "refresh",
		"exp":        jwt.NewNumericDate(now.Add(7 * 24 * time.Hour)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "amaanah",
		"sub":        t.currentUserID.String(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshToken

	var existing model.RefreshTokenModel
	if err := t.db.DbConn.Where("user_id = ?", t.currentUserID).First(&existing).Error; err == nil {
		existing.Token = t.refreshToken
		existing.Invalidated = false
		existing.ExpiresAt = now.Add(7 * 24 * time.Hour)
		return t.db.DbConn.Save(&existing).Error
	}

	return t.db.DbConn.Create(&model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       t.refreshToken,
		UserID:      t.currentUserID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}).Error
}

// aConfirmedDebtOwedBy inserts a confirmed debt where the creator is the
// creditor and the named user is the debtor.
func (t *testContext) aConfirmedDebtOwedBy(amount, creatorEmail, debtorEmail string) error {
	return t.createDebt(amount, creatorEmail, debtorEmail, string(entity.StatusConfirmed))
}

func (t *testContext) aPendingDebtOwedBy(amount, creatorEmail, debtorEmail string) error {
	return t.createDebt(amount, creatorEmail, debtorEmail, string(entity.StatusPending))
}

func (t *testContext) createDebt(amount, creatorEmail, debtorEmail, status string) error {
	if err := t.theUserExists(creatorEmail); err != nil {
		return err
	}
	if err := t.theUserExists(debtorEmail); err != nil {
		return err
	}

	creatorID, err := t.userIDByEmail(creatorEmail)
	if err != nil {
		return err
	}
	debtorID, err := t.userIDByEmail(debtorEmail)
	if err != nil {
		return err
	}

	total, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	now := time.Now().UTC()
	entryModel := &model.LedgerEntryModel{
		ID:                  uuid.New(),
		CreatorID:           creatorID,
		TargetUserID:        &debtorID,
		PartnerName:         "Test User " + debtorEmail,
		Amount:              "$" + amount,
		TotalAmount:         &total,
		RemainingAmount:     &total,
		Type:                string(entity.EntryTypeDebt),
		Direction:           string(entity.DirectionOwedToMe),
		Status:              status,
		RequireVerification: status == string(entity.StatusPending),
		CreatedAt:           now,
	}
	if status == string(entity.StatusConfirmed) {
		confirmedAt := now
		entryModel.ConfirmedAt = &confirmedAt
	}

	if err := t.db.DbConn.Create(entryModel).Error; err != nil {
		return err
	}
	t.currentEntryID = entryModel.ID
	return nil
}

// anUnclaimedDebt inserts a pending debt whose counterpart is only a name.
func (t *testContext) anUnclaimedDebt(amount, creatorEmail, partnerName string) error {
	if err := t.theUserExists(creatorEmail); err != nil {
		return err
	}
	creatorID, err := t.userIDByEmail(creatorEmail)
	if err != nil {
		return err
	}

	total, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	entryModel := &model.LedgerEntryModel{
		ID:                  uuid.New(),
		CreatorID:           creatorID,
		PartnerName:         partnerName,
		Amount:              "$" + amount,
		TotalAmount:         &total,
		RemainingAmount:     &total,
		Type:                string(entity.EntryTypeDebt),
		Direction:           string(entity.DirectionOwedToMe),
		Status:              string(entity.StatusPending),
		RequireVerification: true,
		CreatedAt:           time.Now().UTC(),
	}

	if err := t.db.DbConn.Create(entryModel).Error; err != nil {
		return err
	}
	t.currentEntryID = entryModel.ID
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{entry_id}}", t.currentEntryID.String())
	content = strings.ReplaceAll(content, "{{notification_id}}", t.currentNotificationID.String())
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Ledger entry responses carry both id and direction.
	if idStr, ok := responseBody["id"].(string); ok {
		if _, isEntry := responseBody["direction"]; isEntry {
			if id, err := uuid.Parse(idStr); err == nil {
				t.currentEntryID = id
			}
		}
	}

	// Auth responses nest the user.
	if user, ok := responseBody["user"].(map[string]any); ok {
		if idStr, ok := user["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.currentUserID = id
			}
		}
	}
	if token, ok := responseBody["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := responseBody["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}

	// Capture the newest notification for follow-up mark-read calls.
	if notifications, ok := responseBody["notifications"].([]any); ok && len(notifications) > 0 {
		if first, ok := notifications[0].(map[string]any); ok {
			if idStr, ok := first["id"].(string); ok {
				if id, err := uuid.Parse(idStr); err == nil {
					t.currentNotificationID = id
				}
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
	if result.Error != nil {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
