package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"imc-donations/internal/adapters/http/middleware"
	"imc-donations/internal/adapters/persistence/models"
	"imc-donations/internal/config"
	"imc-donations/internal/core/services"
	"imc-donations/internal/pkg/jwt"
	"imc-donations/internal/pkg/password"
	"imc-donations/internal/pkg/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fakeGateway struct {
	mock.Mock
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, req services.CheckoutRequest) (*services.CheckoutSession, error) {
	args := g.Called(ctx, req)
	if s, ok := args.Get(0).(*services.CheckoutSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (g *fakeGateway) GetPayment(ctx context.Context, id int64) (*services.ProviderPayment, error) {
	args := g.Called(ctx, id)
	if p, ok := args.Get(0).(*services.ProviderPayment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (g *fakeGateway) FindPaymentByExternalReference(ctx context.Context, ref string) (*services.ProviderPayment, error) {
	args := g.Called(ctx, ref)
	if p, ok := args.Get(0).(*services.ProviderPayment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type fakeMailer struct {
	mock.Mock
}

func (m *fakeMailer) Send(ctx context.Context, email services.Email) error {
	return m.Called(ctx, email).Error(0)
}

type RoutesSuite struct {
	suite.Suite
	db      *gorm.DB
	cfg     *config.Config
	gateway *fakeGateway
	mailer  *fakeMailer
	app     *fiber.App
}

func TestRoutesSuite(t *testing.T) {
	suite.Run(t, new(RoutesSuite))
}

func (s *RoutesSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.cfg = &config.Config{
		AppMode:     "dev",
		FrontendURL: "http://localhost:3000",
		JWT:         config.JWTConfig{Secret: "routes-test-secret-0123456789abcdef", Expiry: time.Hour},
		Donation:    config.DonationConfig{MaxAmount: decimal.NewFromInt(100000)},
	}
	s.gateway = new(fakeGateway)
	s.mailer = new(fakeMailer)

	s.app = fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(s.app, s.cfg, NewDependencies(s.db, s.cfg, s.gateway, s.mailer))
}

func (s *RoutesSuite) user(name, email, role string) (*models.User, string) {
	hash, err := password.Hash("senha-segura-1")
	s.Require().NoError(err)
	u := &models.User{Name: name, Email: email, PasswordHash: hash, Role: role, RegisteredAt: time.Now().UTC()}
	s.Require().NoError(s.db.Create(u).Error)

	token, err := jwt.GenerateAccessToken(u.ID, u.Name, u.Role, s.cfg.JWT.Secret, time.Hour)
	s.Require().NoError(err)
	return u, token
}

func (s *RoutesSuite) payment(donor *models.User, status, gross string, createdAt time.Time, ref string) *models.Payment {
	p := &models.Payment{
		ExternalReference: ref,
		GrossAmount:       decimal.RequireFromString(gross),
		Status:            status,
		CreatedAt:         createdAt,
	}
	if donor != nil {
		p.DonorID = &donor.ID
	}
	s.Require().NoError(s.db.Create(p).Error)
	return p
}

func (s *RoutesSuite) do(method, path, token string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (s *RoutesSuite) TestRegisterLoginMe() {
	status, body := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":       "Maria da Silva",
		"email":      "Maria@Example.com",
		"password":   "senha-segura-1",
		"personType": "Fisica",
		"document":   "529.982.247-25",
	})
	s.Equal(http.StatusCreated, status, string(body))
	created := decode[envelope](s.T(), body)
	s.True(created.Success)
	s.NotContains(string(created.Data), "password")
	s.Contains(string(created.Data), `"document":"52998224725"`)

	status, body = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Outra Maria", "email": "maria@example.com", "password": "senha-segura-1",
	})
	s.Equal(http.StatusConflict, status)
	s.False(decode[envelope](s.T(), body).Success)

	status, body = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "maria@example.com", "password": "senha-segura-1",
	})
	s.Require().Equal(http.StatusOK, status, string(body))
	login := decode[struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}](s.T(), body)
	s.NotEmpty(login.Data.Token)

	status, body = s.do(http.MethodGet, "/api/auth/me", login.Data.Token, nil)
	s.Equal(http.StatusOK, status)
	s.Contains(string(body), `"email":"maria@example.com"`)
}

func (s *RoutesSuite) TestRegisterValidationMessage() {
	status, body := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Empresa X", "email": "x@example.com", "password": "senha-segura-1",
		"personType": "Juridica", "document": "123",
	})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("CNPJ inválido. Deve conter 14 dígitos numéricos.", decode[envelope](s.T(), body).Error)
}

func (s *RoutesSuite) TestLoginIsOpaque() {
	s.user("Ana", "ana@example.com", "Donor")

	statusUnknown, bodyUnknown := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "senha-segura-1",
	})
	statusWrong, bodyWrong := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "senha-errada-9",
	})
	s.Equal(http.StatusUnauthorized, statusUnknown)
	s.Equal(statusUnknown, statusWrong)
	s.JSONEq(string(bodyUnknown), string(bodyWrong))
}

func (s *RoutesSuite) TestAuthRequired() {
	status, _ := s.do(http.MethodPost, "/api/pagamento/criar-preferencia", "", map[string]string{"valor": "10"})
	s.Equal(http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/api/auth/me", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *RoutesSuite) TestCreatePreference() {
	_, token := s.user("Ana", "ana@example.com", "Donor")
	s.gateway.On("CreateCheckout", mock.Anything, mock.Anything).
		Return(&services.CheckoutSession{PreferenceID: "pref-1", InitPoint: "https://mp.example/checkout/pref-1"}, nil).
		Once()

	status, body := s.do(http.MethodPost, "/api/pagamento/criar-preferencia", token, map[string]any{"valor": 150.00})
	s.Require().Equal(http.StatusOK, status, string(body))
	s.JSONEq(`{"initPoint":"https://mp.example/checkout/pref-1"}`, string(body))

	var count int64
	s.Require().NoError(s.db.Model(&models.Payment{}).Where("status = ?", "PENDING").Count(&count).Error)
	s.Equal(int64(1), count)

	status, _ = s.do(http.MethodPost, "/api/pagamento/criar-preferencia", token, map[string]any{"valor": 0})
	s.Equal(http.StatusBadRequest, status)
}

func (s *RoutesSuite) TestCreatePreference_ProviderDown() {
	_, token := s.user("Ana", "ana@example.com", "Donor")
	s.gateway.On("CreateCheckout", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	status, body := s.do(http.MethodPost, "/api/pagamento/criar-preferencia", token, map[string]any{"valor": "25.50"})
	s.Equal(http.StatusBadGateway, status)
	s.NotContains(string(body), "deadline")
}

func (s *RoutesSuite) TestWebhook() {
	donor, _ := s.user("Ana", "ana@example.com", "Donor")
	p := s.payment(donor, "PENDING", "150.00", time.Now().UTC(), "ref-webhook")

	s.gateway.On("GetPayment", mock.Anything, int64(987)).Return(&services.ProviderPayment{
		ID:                987,
		Status:            "approved",
		ExternalReference: "ref-webhook",
		PaymentTypeID:     "pix",
		NetAmount:         decimal.NewNullDecimal(decimal.RequireFromString("142.50")),
	}, nil)
	s.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	status, body := s.do(http.MethodPost, "/api/pagamento/webhook", "", map[string]string{
		"topic": "payment", "resource": "https://api.mercadopago.com/v1/payments/987",
	})
	s.Require().Equal(http.StatusOK, status, string(body))
	s.JSONEq(`{"outcome":"applied"}`, string(body))

	// IPN query form of the same notification is a no-op
	status, body = s.do(http.MethodPost, "/api/pagamento/webhook?topic=payment&id=987", "", nil)
	s.Equal(http.StatusOK, status)
	s.JSONEq(`{"outcome":"duplicate"}`, string(body))

	var stored models.Payment
	s.Require().NoError(s.db.First(&stored, p.ID).Error)
	s.Equal("approved", stored.Status)
	s.mailer.AssertNumberOfCalls(s.T(), "Send", 1)

	status, _ = s.do(http.MethodPost, "/api/pagamento/webhook", "", map[string]string{
		"topic": "payment", "resource": "/v1/payments/not-a-number",
	})
	s.Equal(http.StatusBadRequest, status)

	status, body = s.do(http.MethodPost, "/api/pagamento/webhook", "", map[string]string{
		"topic": "merchant_order", "resource": "1",
	})
	s.Equal(http.StatusOK, status)
	s.JSONEq(`{"outcome":"ignored"}`, string(body))
}

func (s *RoutesSuite) TestWebhookEvents() {
	_, donorToken := s.user("Ana", "ana@example.com", "Donor")
	_, staffToken := s.user("Caio", "caio@example.com", "Collaborator")

	for _, topic := range []string{"merchant_order", "chargebacks"} {
		status, _ := s.do(http.MethodPost, "/api/pagamento/webhook", "", map[string]string{
			"topic": topic, "resource": "1",
		})
		s.Require().Equal(http.StatusOK, status)
	}

	status, _ := s.do(http.MethodGet, "/api/pagamento/webhook-events", donorToken, nil)
	s.Equal(http.StatusForbidden, status)

	status, body := s.do(http.MethodGet, "/api/pagamento/webhook-events?limit=1", staffToken, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	events := decode[[]models.WebhookEvent](s.T(), body)
	s.Require().Len(events, 1)
	s.Equal("chargebacks", events[0].Topic)
	s.Equal("ignored", events[0].Outcome)

	status, body = s.do(http.MethodGet, "/api/pagamento/webhook-events", staffToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Len(decode[[]models.WebhookEvent](s.T(), body), 2)
}

func (s *RoutesSuite) TestReports() {
	_, donorToken := s.user("Ana", "ana@example.com", "Donor")
	bia, _ := s.user("Bia", "bia@example.com", "Donor")
	_, staffToken := s.user("Carla", "carla@example.com", "Collaborator")

	s.payment(bia, "approved", "100.00", time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC), "r1")
	s.payment(nil, "approved", "50.00", time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC), "r2")

	status, _ := s.do(http.MethodGet, "/api/pagamento/relatorio-arrecadacao?ano=2024&tipo=trimestral&periodo=2", donorToken, nil)
	s.Equal(http.StatusForbidden, status)

	status, body := s.do(http.MethodGet, "/api/pagamento/relatorio-arrecadacao?ano=2024&tipo=trimestral&periodo=2", staffToken, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	totals := decode[services.PeriodTotals](s.T(), body)
	s.True(totals.TotalArrecadado.Equal(decimal.NewFromInt(100)))
	s.Equal(int64(1), totals.TotalDoacoesAprovadas)

	status, body = s.do(http.MethodGet, "/api/pagamento/relatorio-arrecadacao?ano=2024&tipo=trimestral&periodo=5", staffToken, nil)
	s.Equal(http.StatusBadRequest, status)
	s.NotEmpty(decode[envelope](s.T(), body).Error)

	status, body = s.do(http.MethodGet, "/api/pagamento/lista-doacoes?pageNumber=1&pageSize=1", staffToken, nil)
	s.Require().Equal(http.StatusOK, status)
	page := decode[services.PagedDonations](s.T(), body)
	s.Equal(int64(2), page.TotalCount)
	s.Require().Len(page.Items, 1)
	s.Equal("Bia", page.Items[0].DoadorNome)
	s.True(page.TotalArrecadadoBruto.Equal(decimal.NewFromInt(150)))

	status, body = s.do(http.MethodGet, "/api/pagamento/anos-disponiveis", staffToken, nil)
	s.Equal(http.StatusOK, status)
	s.JSONEq(`[2024,2023]`, string(body))

	status, body = s.do(http.MethodGet, "/api/pagamento/me", donorToken, nil)
	s.Equal(http.StatusOK, status)
	s.JSONEq(`[]`, string(body))

	status, _ = s.do(http.MethodGet, "/api/pagamento/9999", staffToken, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *RoutesSuite) TestUserAdministration() {
	ana, donorToken := s.user("Ana", "ana@example.com", "Donor")
	admin, adminToken := s.user("Admin", "admin@example.com", "Administrator")

	status, _ := s.do(http.MethodGet, "/api/users", donorToken, nil)
	s.Equal(http.StatusForbidden, status)

	status, body := s.do(http.MethodGet, "/api/users?pageSize=1", adminToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(body), `"totalCount":2`)

	status, _ = s.do(http.MethodGet, "/api/users/me", donorToken, nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/api/users/stats", adminToken, nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.do(http.MethodPut, "/api/users/"+itoa(admin.ID), donorToken, map[string]string{
		"name": "Hacker", "email": "admin@example.com",
	})
	s.Equal(http.StatusForbidden, status)

	status, body = s.do(http.MethodPut, "/api/users/"+itoa(ana.ID)+"/role", adminToken, map[string]string{"role": "Colaborador"})
	s.Equal(http.StatusOK, status, string(body))
	s.Contains(string(body), `"role":"Collaborator"`)

	status, _ = s.do(http.MethodDelete, "/api/users/"+itoa(ana.ID), donorToken, nil)
	s.Equal(http.StatusBadRequest, status)
	status, _ = s.do(http.MethodDelete, "/api/users/"+itoa(admin.ID), donorToken, nil)
	s.Equal(http.StatusForbidden, status)

	status, _ = s.do(http.MethodDelete, "/api/users/"+itoa(admin.ID), adminToken, nil)
	s.Equal(http.StatusBadRequest, status)

	status, _ = s.do(http.MethodDelete, "/api/users/"+itoa(ana.ID), adminToken, nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/api/users/"+itoa(ana.ID), adminToken, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *RoutesSuite) TestHealth() {
	status, _ := s.do(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, status)

	// No shared database handle is configured in tests
	status, body := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusServiceUnavailable, status)
	s.Contains(string(body), `"database":"unhealthy"`)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
