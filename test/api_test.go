//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/liftly/internal/auth"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

const testPassword = "secret-pass-1"

// doRequest sends body as JSON (if not nil) and decodes the response into
// out (if not nil). The response status code is returned.
func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, token string, body, out any) int {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.Unmarshal(respBytes, out), "body: %s", respBytes)
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) signUpTrainer(ctx context.Context) *auth.SignInResponse {
	var resp auth.SignInResponse
	status := s.doRequest(ctx, http.MethodPost, "/auth/signup/trainer", "", auth.SignUpTrainerRequest{
		Name:            gofakeit.Name(),
		Email:           gofakeit.Email(),
		Password:        testPassword,
		ConfirmPassword: testPassword,
	}, &resp)
	require.Equal(s.T(), http.StatusCreated, status)
	require.NotEmpty(s.T(), resp.Token)
	require.NotEmpty(s.T(), resp.TrainerCode)
	return &resp
}

func (s *IntegrationTestSuite) signUpClient(ctx context.Context, trainerCode string) *auth.SignInResponse {
	var resp auth.SignInResponse
	status := s.doRequest(ctx, http.MethodPost, "/auth/signup/client", "", auth.SignUpClientRequest{
		FirstName:   gofakeit.FirstName(),
		LastName:    gofakeit.LastName(),
		Phone:       gofakeit.Phone(),
		Email:       gofakeit.Email(),
		Password:    testPassword,
		TrainerCode: trainerCode,
	}, &resp)
	require.Equal(s.T(), http.StatusCreated, status)
	require.NotNil(s.T(), resp.Account.ClientID)
	return &resp
}

func (s *IntegrationTestSuite) countRows(query string, args ...any) int {
	var n int
	require.NoError(s.T(), s.DB.QueryRow(query, args...).Scan(&n), fmt.Sprintf("query: %s", query))
	return n
}
