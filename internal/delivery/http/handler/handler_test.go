package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"talent-admin/internal/delivery/http/handler"
	"talent-admin/internal/delivery/http/middleware"
	"talent-admin/internal/delivery/http/routes"
	v1 "talent-admin/internal/delivery/http/routes/v1"
	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/company"
	"talent-admin/internal/domain/dashboard"
	"talent-admin/internal/domain/freelancer"
	"talent-admin/internal/domain/job"
	"talent-admin/internal/domain/user"
	"talent-admin/internal/usecase"
	"talent-admin/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

const validToken = "token-ok"

var operator = user.User{ID: uuid.MustParse("7b0c7a43-1f43-4c1b-9d1a-2f0f4f9c2a10"), Email: "ops@example.com"}

type fakeAuth struct {
	signedOut string
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (user.Session, error) {
	if email != operator.Email || password != "secret" {
		return user.Session{}, auth.ErrInvalidCredentials
	}
	return user.Session{User: operator, AccessToken: validToken, RefreshToken: "refresh-ok", ExpiresIn: 900}, nil
}

func (f *fakeAuth) Refresh(_ context.Context, tok string) (user.Session, error) {
	if tok != "refresh-ok" {
		return user.Session{}, auth.ErrUnauthorized
	}
	return user.Session{User: operator, AccessToken: validToken, RefreshToken: "refresh-ok", ExpiresIn: 900}, nil
}

func (f *fakeAuth) SignOut(_ context.Context, tok string) error {
	f.signedOut = tok
	return nil
}

func (f *fakeAuth) Authenticate(_ context.Context, tok string) (user.User, error) {
	switch tok {
	case validToken:
		return operator, nil
	case "token-outsider":
		return user.User{}, auth.ErrForbidden
	default:
		return user.User{}, auth.ErrUnauthorized
	}
}

type fakeCompanies struct {
	items    []company.Company
	verified []uuid.UUID
}

func (f *fakeCompanies) ListCompanies(_ context.Context, tab string) (usecase.CompanyList, error) {
	t, ok := company.ParseTab(tab)
	if !ok {
		return usecase.CompanyList{}, usecase.ErrInvalidInput
	}
	return usecase.CompanyList{Items: company.FilterAndSort(f.items, t), Counts: company.CountTabs(f.items)}, nil
}

func (f *fakeCompanies) ListUnverifiedCompanies(context.Context) ([]company.Company, error) {
	return nil, nil
}

func (f *fakeCompanies) GetCompany(_ context.Context, id uuid.UUID) (company.Company, error) {
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return company.Company{}, usecase.ErrNotFound
}

func (f *fakeCompanies) VerifyCompany(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := f.GetCompany(ctx, id)
	if err != nil {
		return company.Company{}, err
	}
	v := true
	c.IsVerified = &v
	f.verified = append(f.verified, id)
	return c, nil
}

func (f *fakeCompanies) RejectCompany(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return f.GetCompany(ctx, id)
}

type fakeJobs struct {
	updates int
}

func (f *fakeJobs) ListJobs(context.Context, string) (usecase.JobList, error) {
	return usecase.JobList{}, nil
}

func (f *fakeJobs) GetJob(context.Context, uuid.UUID) (usecase.JobWithApplications, error) {
	return usecase.JobWithApplications{}, usecase.ErrNotFound
}

func (f *fakeJobs) UpdateJobStatus(_ context.Context, id uuid.UUID, status string) (job.Job, error) {
	f.updates++
	s := job.Status(status)
	return job.Job{ID: id, Title: "Backend Engineer", Status: &s}, nil
}

type fakeApplications struct {
	updates int
	err     error
}

func (f *fakeApplications) ListApplications(context.Context) ([]application.Detail, error) {
	return []application.Detail{{ID: uuid.New(), JobTitle: application.UnknownJobTitle, ApplicantName: application.UnknownApplicant, Status: application.StatusPending}}, nil
}

func (f *fakeApplications) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status string) (application.Detail, error) {
	f.updates++
	if f.err != nil {
		return application.Detail{}, f.err
	}
	return application.Detail{ID: id, JobTitle: "Backend Engineer", Status: application.Status(status)}, nil
}

type fakeFreelancers struct{}

func (fakeFreelancers) ListFreelancers(_ context.Context, q usecase.FreelancerQuery) (usecase.FreelancerList, error) {
	if q.Completion == "bogus" {
		return usecase.FreelancerList{}, usecase.ErrInvalidInput
	}
	return usecase.FreelancerList{Total: 0}, nil
}

func (fakeFreelancers) GetFreelancer(context.Context, uuid.UUID) (freelancer.Freelancer, error) {
	return freelancer.Freelancer{}, errors.New("boom")
}

type fakeDashboard struct{}

func (fakeDashboard) GetStats(context.Context) (dashboard.Stats, error) {
	return dashboard.Stats{TotalCompanies: 4, VerifiedCompanies: 3, VerificationRate: 75}, nil
}

type testApp struct {
	app          *fiber.App
	auth         *fakeAuth
	companies    *fakeCompanies
	jobs         *fakeJobs
	applications *fakeApplications
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := log.New(io.Discard, "", 0)
	ta := &testApp{
		auth:         &fakeAuth{},
		jobs:         &fakeJobs{},
		applications: &fakeApplications{},
		companies: &fakeCompanies{items: []company.Company{
			{ID: uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"), Name: "Acme", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		}},
	}

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())

	routes.NewRegistry(handler.NewHealthHandler(), nil, v1.Handlers{
		Auth:        handler.NewAuthHandler(ta.auth),
		Dashboard:   handler.NewDashboardHandler(fakeDashboard{}),
		Company:     handler.NewCompanyHandler(ta.companies),
		Job:         handler.NewJobHandler(ta.jobs),
		Application: handler.NewApplicationHandler(ta.applications),
		Freelancer:  handler.NewFreelancerHandler(fakeFreelancers{}),
		Protect:     middleware.NewAuthMiddleware(ta.auth).Middleware(),
	}).Register(app)

	ta.app = app
	return ta
}

func (ta *testApp) do(t *testing.T, method, path, token string, body any) (int, semanticResponse) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s decode: %v", method, path, err)
	}
	return resp.StatusCode, sr
}

func TestHealth(t *testing.T) {
	ta := newTestApp(t)
	status, sr := ta.do(t, "GET", "/health", "", nil)
	if status != fiber.StatusOK || sr.Message != "ok" {
		t.Fatalf("unexpected health response: %d %s", status, sr.Message)
	}
}

func TestHealth_DegradedWhenCheckFails(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	handler.NewHealthHandler(handler.HealthCheck{
		Name:  "cache",
		Check: func(context.Context) error { return errors.New("down") },
	}).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	ta := newTestApp(t)

	status, sr := ta.do(t, "POST", "/api/v1/auth/login", "", map[string]string{"email": operator.Email, "password": "secret"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, sr.Message)
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	var tok string
	_ = json.Unmarshal(data["accessToken"], &tok)
	if tok != validToken {
		t.Fatalf("expected access token, got %q", tok)
	}

	status, _ = ta.do(t, "POST", "/api/v1/auth/login", "", map[string]string{"email": operator.Email, "password": "wrong"})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", status)
	}

	status, _ = ta.do(t, "POST", "/api/v1/auth/login", "", map[string]string{"email": ""})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", status)
	}
}

func TestRefreshAndLogout(t *testing.T) {
	ta := newTestApp(t)

	status, _ := ta.do(t, "POST", "/api/v1/auth/refresh", "", map[string]string{"refreshToken": "refresh-ok"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 on refresh, got %d", status)
	}
	status, _ = ta.do(t, "POST", "/api/v1/auth/refresh", "", map[string]string{"refreshToken": "stale"})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 on stale refresh, got %d", status)
	}

	status, _ = ta.do(t, "POST", "/api/v1/auth/logout", validToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", status)
	}
	if ta.auth.signedOut != validToken {
		t.Fatalf("expected provider sign out with access token, got %q", ta.auth.signedOut)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ta := newTestApp(t)

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"invalid", "nope", fiber.StatusUnauthorized},
		{"not allowed", "token-outsider", fiber.StatusForbidden},
		{"valid", validToken, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := ta.do(t, "GET", "/api/v1/auth/me", tc.token, nil)
			if status != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, status)
			}
		})
	}
}

func TestDashboardStats(t *testing.T) {
	ta := newTestApp(t)
	status, sr := ta.do(t, "GET", "/api/v1/dashboard/stats", validToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var stats dashboard.Stats
	if err := json.Unmarshal(sr.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.VerificationRate != 75 || stats.TotalCompanies != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestCompanies(t *testing.T) {
	ta := newTestApp(t)
	id := ta.companies.items[0].ID.String()

	status, _ := ta.do(t, "GET", "/api/v1/companies?tab=requesting", validToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 for list, got %d", status)
	}
	status, _ = ta.do(t, "GET", "/api/v1/companies?tab=bogus", validToken, nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown tab, got %d", status)
	}
	status, _ = ta.do(t, "GET", "/api/v1/companies/not-a-uuid", validToken, nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", status)
	}
	status, _ = ta.do(t, "GET", "/api/v1/companies/"+uuid.NewString(), validToken, nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing company, got %d", status)
	}

	status, sr := ta.do(t, "POST", "/api/v1/companies/"+id+"/verify", validToken, nil)
	if status != fiber.StatusOK || sr.Message != "Company verified" {
		t.Fatalf("unexpected verify response: %d %s", status, sr.Message)
	}
	if len(ta.companies.verified) != 1 {
		t.Fatalf("expected one verification, got %d", len(ta.companies.verified))
	}
}

func TestJobStatusUpdate(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.NewString()

	status, _ := ta.do(t, "PATCH", "/api/v1/jobs/"+id+"/status", validToken, map[string]string{"status": "archived"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", status)
	}
	if ta.jobs.updates != 0 {
		t.Fatalf("invalid status must not reach the usecase")
	}

	status, sr := ta.do(t, "PATCH", "/api/v1/jobs/"+id+"/status", validToken, map[string]string{"status": "closed"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, sr.Message)
	}
	var out struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(sr.Data, &out)
	if out.Status != "closed" {
		t.Fatalf("expected closed, got %q", out.Status)
	}

	status, _ = ta.do(t, "GET", "/api/v1/jobs/"+id, validToken, nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing job, got %d", status)
	}
}

func TestApplicationStatusUpdate(t *testing.T) {
	ta := newTestApp(t)

	status, _ := ta.do(t, "PATCH", "/api/v1/applications/bad-id/status", validToken, map[string]string{"status": "hired"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", status)
	}
	status, _ = ta.do(t, "PATCH", "/api/v1/applications/"+uuid.NewString()+"/status", validToken, map[string]string{"status": "accepted"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", status)
	}
	if ta.applications.updates != 0 {
		t.Fatalf("rejected requests must not reach the usecase")
	}

	status, sr := ta.do(t, "PATCH", "/api/v1/applications/"+uuid.NewString()+"/status", validToken, map[string]string{"status": "hired"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, sr.Message)
	}

	ta.applications.err = usecase.ErrInternal
	status, sr = ta.do(t, "PATCH", "/api/v1/applications/"+uuid.NewString()+"/status", validToken, map[string]string{"status": "rejected"})
	if status != fiber.StatusInternalServerError || sr.Message != "internal server error" {
		t.Fatalf("expected generic 500, got %d %s", status, sr.Message)
	}
}

func TestApplicationsList(t *testing.T) {
	ta := newTestApp(t)
	status, sr := ta.do(t, "GET", "/api/v1/applications", validToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var items []map[string]any
	if err := json.Unmarshal(sr.Data, &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0]["jobTitle"] != application.UnknownJobTitle {
		t.Fatalf("unexpected applications: %v", items)
	}
}

func TestFreelancers(t *testing.T) {
	ta := newTestApp(t)

	status, _ := ta.do(t, "GET", "/api/v1/freelancers?completion=bogus", validToken, nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown band, got %d", status)
	}
	status, _ = ta.do(t, "GET", "/api/v1/freelancers?q=go", validToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	status, sr := ta.do(t, "GET", "/api/v1/freelancers/"+uuid.NewString(), validToken, nil)
	if status != fiber.StatusInternalServerError || sr.Message != "internal server error" {
		t.Fatalf("expected masked 500, got %d %s", status, sr.Message)
	}
}
