// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/config"
	"github.com/itissulav/Kharcha/internal/application/usecase/recurrence"
	"github.com/itissulav/Kharcha/internal/infra/dependency"
	"github.com/itissulav/Kharcha/test/integration/mock"
)

const dateLayout = "2006-01-02"

var placeholder = regexp.MustCompile(`\{\{(account|category):([^}]+)\}\}`)

type testContext struct {
	engine   *gin.Engine
	injector *dependency.Injector
	headers  map[string]string
	response *response
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time

	accounts          map[string]uuid.UUID
	categories        map[string]uuid.UUID
	lastTransactionID uuid.UUID
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	_, redisClient := mock.NewRedis()
	test := &testContext{
		db:       mock.NewDb("kharcha_features"),
		redis:    redisClient,
		timeMock: mock.NewTime(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.injector != nil {
			test.injector.Close()
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// Ledger setup steps
	ctx.Given(`^an account "([^"]*)" with opening balance "([^"]*)"$`, test.anAccountWithOpeningBalance)
	ctx.Given(`^a category "([^"]*)"$`, test.aCategory)
	ctx.Given(`^a category "([^"]*)" with a monthly limit of "([^"]*)"$`, test.aCategoryWithLimit)
	ctx.Given(`^a "(credit|debit)" of "([^"]*)" on "([^"]*)" in "([^"]*)"$`, test.aTransaction)
	ctx.Given(`^a "(credit|debit)" of "([^"]*)" on "([^"]*)" in "([^"]*)" dated "([^"]*)" repeating "([^"]*)" every (\d+)$`, test.aRecurringTransaction)
	ctx.Given(`^another process holds the recurrence run lock$`, test.anotherProcessHoldsTheRunLock)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Ledger assertion steps
	ctx.Then(`^the balance of "([^"]*)" should be "([^"]*)"$`, test.theBalanceOfShouldBe)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accounts = make(map[string]uuid.UUID)
	t.categories = make(map[string]uuid.UUID)
	t.lastTransactionID = uuid.Nil
	t.timeMock.SetCurrentTime(time.Now())

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return mock.ClearRedis(t.redis)
}

func (t *testContext) theAPIServerIsRunning() error {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Events.AMQPURL = ""

	injector, err := dependency.NewInjector(cfg, t.db.DbConn, dependency.Options{
		Clock:       t.timeMock,
		RedisClient: t.redis,
	})
	if err != nil {
		return err
	}
	t.injector = injector
	t.engine = injector.Router.Setup(cfg.Server.Environment)
	return nil
}

func (t *testContext) todayIs(date string) error {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func (t *testContext) anAccountWithOpeningBalance(name, openingBalance string) error {
	body := fmt.Sprintf(`{"name": %q, "opening_balance": %q}`, name, openingBalance)
	id, err := t.create("/api/v1/accounts", body)
	if err != nil {
		return err
	}
	t.accounts[name] = id
	return nil
}

func (t *testContext) aCategory(name string) error {
	id, err := t.create("/api/v1/categories", fmt.Sprintf(`{"name": %q}`, name))
	if err != nil {
		return err
	}
	t.categories[name] = id
	return nil
}

func (t *testContext) aCategoryWithLimit(name, limit string) error {
	body := fmt.Sprintf(`{"name": %q, "category_limit": %q}`, name, limit)
	id, err := t.create("/api/v1/categories", body)
	if err != nil {
		return err
	}
	t.categories[name] = id
	return nil
}

func (t *testContext) aTransaction(transactionType, amount, account, category string) error {
	body := fmt.Sprintf(`{"account_id": "{{account:%s}}", "category_id": "{{category:%s}}", "type": %q, "amount": %q}`,
		account, category, transactionType, amount)
	return t.postTransaction(body)
}

func (t *testContext) aRecurringTransaction(transactionType, amount, account, category, date, pattern string, interval int) error {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(`{"account_id": "{{account:%s}}", "category_id": "{{category:%s}}", "type": %q, "amount": %q, "created_at": %q, "is_recurring": true, "recurrence_pattern": %q, "recurrence_interval": %d}`,
		account, category, transactionType, amount, day.Format(time.RFC3339), pattern, interval)
	return t.postTransaction(body)
}

func (t *testContext) postTransaction(body string) error {
	if err := t.executeRequest(http.MethodPost, "/api/v1/transactions", []byte(t.replacePlaceholders(body))); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return err
	}
	return nil
}

func (t *testContext) anotherProcessHoldsTheRunLock() error {
	return t.redis.Set(context.Background(), recurrence.LockKey, "another-process", time.Minute).Err()
}

func (t *testContext) create(path, body string) (uuid.UUID, error) {
	if err := t.executeRequest(http.MethodPost, path, []byte(body)); err != nil {
		return uuid.Nil, err
	}
	if err := t.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return uuid.Nil, err
	}
	idStr, _ := getFieldValue(t.response.body, "id").(string)
	return uuid.Parse(idStr)
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders substitutes {{account:Name}}, {{category:Name}} and
// {{transaction_id}} with the IDs created earlier in the scenario.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())

	return placeholder.ReplaceAllStringFunc(content, func(match string) string {
		parts := placeholder.FindStringSubmatch(match)
		ids := t.accounts
		if parts[1] == "category" {
			ids = t.categories
		}
		if id, ok := ids[parts[2]]; ok {
			return id.String()
		}
		return match
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	if t.engine == nil {
		return errors.New("the API server is not running")
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	t.engine.ServeHTTP(rec, req)

	t.response = &response{status: rec.Code}

	var responseBody map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &responseBody); err != nil {
		t.response.body = rec.Body.String()
		return nil
	}
	t.response.body = responseBody

	// Capture the transaction ID from post and edit responses
	if idStr, ok := getFieldValue(responseBody, "transaction.id").(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastTransactionID = id
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

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if sameAmount(actualValue, expectedValue) {
		return nil
	}
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list in response: %v", field, t.response.body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theBalanceOfShouldBe(account, expected string) error {
	id, ok := t.accounts[account]
	if !ok {
		return fmt.Errorf("unknown account %q", account)
	}

	if err := t.executeRequest(http.MethodGet, "/api/v1/accounts/"+id.String(), nil); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusOK); err != nil {
		return err
	}
	return t.theResponseFieldShouldBe("balance", expected)
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	model, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("no ledger model registered for table %q", table)
	}

	var rows int64
	if err := t.db.DbConn.Model(model).Count(&rows).Error; err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if rows != int64(quantity) {
		return fmt.Errorf("table %q holds %d rows, want %d", table, rows, quantity)
	}
	return nil
}

// sameAmount reports whether both values parse as equal decimals.
func sameAmount(actual, expected string) bool {
	a, err := decimal.NewFromString(actual)
	if err != nil {
		return false
	}
	e, err := decimal.NewFromString(expected)
	if err != nil {
		return false
	}
	return a.Equal(e)
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
