package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinbank/core/internal/fixtures"
	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain/account"
	"github.com/altinbank/core/pkg/domain/user"
	"github.com/altinbank/core/pkg/engine"
	"github.com/altinbank/core/pkg/exchange"
	"github.com/altinbank/core/pkg/money"
	accountsvc "github.com/altinbank/core/pkg/service/account"
	currencysvc "github.com/altinbank/core/pkg/service/currency"
	requestsvc "github.com/altinbank/core/pkg/service/request"
	usersvc "github.com/altinbank/core/pkg/service/user"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Run()
}

func newTestApp(t *testing.T) (*fiber.App, *fixtures.Store) {
	t.Helper()
	store := fixtures.NewStore()
	logger := slog.Default()
	converter := exchange.NewConverter(exchange.NewStaticSource(), logger)
	deps := Deps{
		Engine:   engine.New(store, converter, logger),
		Accounts: accountsvc.New(store, logger),
		Currency: currencysvc.New(store, converter, logger),
		Requests: requestsvc.New(store, converter, logger),
		Users:    usersvc.New(store, logger),
	}
	return NewApp(deps), store
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func seedAccount(t *testing.T, store *fixtures.Store, amount string, code currency.Code) *account.Account {
	t.Helper()
	balance, err := money.New(decimal.RequireFromString(amount), code)
	require.NoError(t, err)
	acc, err := account.New().WithUserID(uuid.New()).WithBalance(balance).Build()
	require.NoError(t, err)
	store.SeedAccount(acc)
	return acc
}

func TestRegisterCurrencyEndpoint(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/api/currencies", `{"code":"USD","name":"US Dollar"}`)
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "POST", "/api/currencies", `{"code":"usd","name":"lowercase"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetAccountNotFound(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "GET", fmt.Sprintf("/api/accounts/%s", uuid.New()), "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "GET", "/api/accounts/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSubmitTransactionEndpoint(t *testing.T) {
	t.Parallel()
	app, store := newTestApp(t)
	acc := seedAccount(t, store, "1000.00", currency.BaseCurrency)

	body := fmt.Sprintf(`{"type":"DEBIT","amount":"100.00","currency":"EUR","from_account_id":"%s"}`, acc.ID)
	status, _ := doJSON(t, app, "POST", "/api/transactions", body)
	require.Equal(t, fiber.StatusCreated, status)

	got := store.Account(acc.ID)
	assert.True(t, got.Balance.Amount().Equal(decimal.RequireFromString("900.00")))

	body = fmt.Sprintf(`{"type":"DEBIT","amount":"5000.00","currency":"EUR","from_account_id":"%s"}`, acc.ID)
	status, data := doJSON(t, app, "POST", "/api/transactions", body)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	var pd ProblemDetails
	require.NoError(t, json.Unmarshal(data, &pd))
	assert.Equal(t, fiber.StatusUnprocessableEntity, pd.Status)
}

func TestSubmitTransactionValidation(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/api/transactions", `{"type":"WIRE","amount":"10.00","currency":"EUR"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// The validation response written by BindAndValidate must reach the
	// client as-is; the app-level error handler must not rewrite it.
	status, data := doJSON(t, app, "POST", "/api/transactions", `not json`)
	require.Equal(t, fiber.StatusBadRequest, status)
	var pd ProblemDetails
	require.NoError(t, json.Unmarshal(data, &pd))
	assert.Equal(t, fiber.StatusBadRequest, pd.Status)
	assert.Equal(t, "Invalid request body", pd.Title)
}

func TestUserEndpoints(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	status, data := doJSON(t, app, "POST", "/api/users", `{"username":"arben","email":"arben@example.com","password":"password123"}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.NotContains(t, string(data), "password")

	status, _ = doJSON(t, app, "POST", "/api/users", `{"username":"x","email":"bad","password":"123"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRequestWorkflowEndpoints(t *testing.T) {
	t.Parallel()
	app, store := newTestApp(t)

	u, err := user.New("drita", "drita@example.com", "password123")
	require.NoError(t, err)
	store.SeedUser(u)

	body := fmt.Sprintf(`{"user_id":"%s","account_type":"CHECKING","initial_deposit":"250.00","deposit_currency":"EUR"}`, u.ID)
	status, data := doJSON(t, app, "POST", "/api/account-requests", body)
	require.Equal(t, fiber.StatusCreated, status)

	var env struct {
		Data struct {
			ID uuid.UUID `json:"ID"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	require.NotEqual(t, uuid.Nil, env.Data.ID)

	status, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/account-requests/%s/approve", env.Data.ID), "")
	require.Equal(t, fiber.StatusOK, status)

	// A resolved request cannot be approved again.
	status, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/account-requests/%s/approve", env.Data.ID), "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	accounts, err := store.Accounts().ListByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, accounts[0].Balance.Amount().Equal(decimal.RequireFromString("250.00")))
}
