package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"subguard/internal/audit"
	auditmem "subguard/internal/audit/store/memory"
	"subguard/internal/certauth"
	"subguard/internal/deploy"
	"subguard/internal/provisioning"
	regmem "subguard/internal/registry/store/memory"
	rlservice "subguard/internal/ratelimit/service"
	"subguard/internal/ratelimit/store/bucket"
	"subguard/internal/validation"
	"subguard/pkg/domain"
)

type HandlerSuite struct {
	suite.Suite
	server    *httptest.Server
	projectID string
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditLog := audit.NewLog(auditmem.NewInMemoryStore())
	limiter := rlservice.NewLimiter(bucket.NewInMemoryBucketStore(), auditLog)
	service := provisioning.NewService(
		limiter,
		validation.NewValidator(),
		regmem.NewInMemoryStore(),
		auditLog,
		certauth.NewVerifier(),
		deploy.NewExecutor(),
		"webai.studio",
	)
	router := NewRouter(NewHandler(service, logger), logger, prometheus.NewRegistry())
	s.server = httptest.NewServer(router)
	s.projectID = domain.NewProjectID().String()
}

func (s *HandlerSuite) TearDownTest() {
	s.server.Close()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) provision(name, clientIP string) *http.Response {
	body, err := json.Marshal(map[string]string{
		"project_id": s.projectID,
		"name":       name,
	})
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/subdomains", bytes.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", clientIP)

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *HandlerSuite) decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

func (s *HandlerSuite) TestProvision() {
	s.Run("provisions a clean name", func() {
		resp := s.provision("brightideas9", "198.51.100.1")
		s.Equal(http.StatusCreated, resp.StatusCode)

		var result provisioning.ProvisionResult
		s.decode(resp, &result)
		s.True(result.Success)
		s.Equal("https://brightideas9.webai.studio", result.FullURL)
		s.NotEmpty(result.IsolationToken)
	})

	s.Run("rejects a duplicate with conflict", func() {
		resp := s.provision("brightideas9", "198.51.100.2")
		s.Equal(http.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	s.Run("rejects suspicious input as unprocessable", func() {
		resp := s.provision("sel--ect1", "198.51.100.3")
		s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)

		var result provisioning.ProvisionResult
		s.decode(resp, &result)
		s.True(result.ThreatDetected)
	})

	s.Run("rejects a blocked word with bad request", func() {
		resp := s.provision("admin-site", "198.51.100.4")
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	s.Run("rate limits the sixth attempt", func() {
		for i := 0; i < 5; i++ {
			resp := s.provision(fmt.Sprintf("ratetest%d", i), "198.51.100.5")
			resp.Body.Close()
		}
		resp := s.provision("onemore9", "198.51.100.5")
		s.Equal(http.StatusTooManyRequests, resp.StatusCode)
		resp.Body.Close()
	})

	s.Run("rejects a malformed body", func() {
		resp, err := s.server.Client().Post(s.server.URL+"/subdomains", "application/json",
			bytes.NewReader([]byte("{not json")))
		s.Require().NoError(err)
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	s.Run("rejects a missing project id", func() {
		body := []byte(`{"name":"valid9name"}`)
		resp, err := s.server.Client().Post(s.server.URL+"/subdomains", "application/json",
			bytes.NewReader(body))
		s.Require().NoError(err)
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

func (s *HandlerSuite) TestStatusAndRevoke() {
	resp := s.provision("lifecycle9", "198.51.100.6")
	s.Equal(http.StatusCreated, resp.StatusCode)

	var created provisioning.ProvisionResult
	s.decode(resp, &created)
	s.Require().NotEmpty(created.IsolationToken)

	resp, err := s.server.Client().Get(s.server.URL + "/subdomains/lifecycle9")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var status provisioning.StatusResult
	s.decode(resp, &status)
	s.True(status.Exists)
	s.Equal("https://lifecycle9.webai.studio", status.FullURL)

	req, err := http.NewRequest(http.MethodDelete, s.server.URL+"/subdomains/lifecycle9", nil)
	s.Require().NoError(err)
	resp, err = s.server.Client().Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req, err = http.NewRequest(http.MethodDelete, s.server.URL+"/subdomains/lifecycle9", nil)
	s.Require().NoError(err)
	req.Header.Set("X-Isolation-Token", created.IsolationToken)
	resp, err = s.server.Client().Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = s.server.Client().Get(s.server.URL + "/subdomains/lifecycle9")
	s.Require().NoError(err)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *HandlerSuite) TestReportAndAudit() {
	resp := s.provision("reportme9", "198.51.100.7")
	s.Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := s.server.Client().Get(s.server.URL + "/security/report")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var report provisioning.SecurityReport
	s.decode(resp, &report)
	s.Equal(1, report.TotalSubdomains)
	s.Equal([]string{"reportme9"}, report.RecentDeployments)

	resp, err = s.server.Client().Get(s.server.URL + "/audit/recent")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var recent struct {
		Events []audit.Event `json:"events"`
	}
	s.decode(resp, &recent)
	s.NotEmpty(recent.Events)
}

func (s *HandlerSuite) TestHealthz() {
	resp, err := s.server.Client().Get(s.server.URL + "/healthz")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
