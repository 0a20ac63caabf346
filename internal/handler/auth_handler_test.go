package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalmiddleware "github.com/dkacademy/registration-api/internal/middleware"
	"github.com/dkacademy/registration-api/internal/service"
	"github.com/dkacademy/registration-api/pkg/config"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *service.AdminAuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, err := service.NewAdminAuthService(config.AdminConfig{
		Phone:       "9363141888",
		Password:    "dkba2024",
		JWTSecret:   "test_secret",
		TokenExpiry: time.Hour,
	}, nil, nil)
	require.NoError(t, err)

	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/api/admin/login", h.Login)
	router.GET("/api/admin/session", internalmiddleware.JWT(svc), h.Session)
	return router, svc
}

func loginPayload(phone, password string) *bytes.Buffer {
	body, _ := json.Marshal(map[string]string{"phone": phone, "password": password})
	return bytes.NewBuffer(body)
}

func TestAdminLoginEndpointIssuesToken(t *testing.T) {
	router, svc := newAuthRouter(t)

	req, _ := http.NewRequest(http.MethodPost, "/api/admin/login", loginPayload("9363141888", "dkba2024"))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
			ExpiresIn   int64  `json:"expires_in"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, int64(3600), envelope.Data.ExpiresIn)

	claims, err := svc.ValidateToken(envelope.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "9363141888", claims.Phone)
}

func TestAdminLoginEndpointRejectsBadCredentials(t *testing.T) {
	router, _ := newAuthRouter(t)

	req, _ := http.NewRequest(http.MethodPost, "/api/admin/login", loginPayload("9363141888", "wrong"))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "INVALID_CREDENTIALS")
}

func TestAdminLoginEndpointRejectsMalformedPayload(t *testing.T) {
	router, _ := newAuthRouter(t)

	req, _ := http.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(`{"phone":`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAdminSessionEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)

	login, _ := http.NewRequest(http.MethodPost, "/api/admin/login", loginPayload("9363141888", "dkba2024"))
	login.Header.Set("Content-Type", "application/json")
	loginResp := performRequest(router, login)
	require.Equal(t, http.StatusOK, loginResp.Code)

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(loginResp.Body.Bytes(), &envelope))

	t.Run("with token", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/admin/session", nil)
		req.Header.Set("Authorization", "Bearer "+envelope.Data.AccessToken)
		resp := performRequest(router, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "9363141888")
	})

	t.Run("without token", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/admin/session", nil)
		resp := performRequest(router, req)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
