package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fittrack/go-fitness-client/api"
	"github.com/fittrack/go-fitness-client/notify/notifytest"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Message string `json:"message"`
}

func TestGetDecodesResponseAndSendsBearer(t *testing.T) {
	var gotAuth, gotRequestID, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"hello"}`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL+"/api",
		api.WithTokenSource(api.TokenSourceFunc(func() string { return "tok-123" })),
	)

	var out echo
	params := url.Values{}
	params.Set("page", "2")
	require.NoError(t, client.Get(context.Background(), "activities", params, &out))
	require.Equal(t, "hello", out.Message)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotRequestID)
	require.Equal(t, "page=2", gotQuery)
}

func TestUnauthorizedRaisesOneNotificationAndForcesLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token invalid"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	recorder := notifytest.NewRecorder()
	logouts := 0
	client := api.NewClient(srv.URL+"/api",
		api.WithNotifier(recorder),
		api.WithUnauthorizedHandler(func() { logouts++ }),
	)

	err := client.Get(context.Background(), "activities", nil, nil)
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.Equal(t, 1, logouts)
	require.Equal(t, []string{"Unauthorized access"}, recorder.Messages())

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "token invalid", apiErr.ServerMessage)
}

func TestAuthEndpointFailuresAreNotNotified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	recorder := notifytest.NewRecorder()
	client := api.NewClient(srv.URL+"/api", api.WithNotifier(recorder))

	err := client.Post(context.Background(), "auth/login", echo{Message: "x"}, nil)
	require.ErrorIs(t, err, api.ErrUnauthorized)
	// The session layer raises its own message for auth endpoints.
	require.Empty(t, recorder.Messages())
}

func TestStatusMessageTable(t *testing.T) {
	tests := []struct {
		status   int
		body     string
		sentinel error
		message  string
	}{
		{400, `{"message":"email is taken"}`, api.ErrBadRequest, "email is taken"},
		{400, `not json`, api.ErrBadRequest, "Bad request"},
		{403, ``, api.ErrForbidden, "Access forbidden"},
		{404, ``, api.ErrNotFound, "Resource not found"},
		{500, ``, api.ErrServer, "Internal server error"},
		{418, `{"message":"short and stout"}`, nil, "short and stout"},
		{418, ``, nil, "Error: 418"},
	}

	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, tc.body, tc.status)
		}))

		recorder := notifytest.NewRecorder()
		client := api.NewClient(srv.URL+"/api", api.WithNotifier(recorder))

		err := client.Get(context.Background(), "goals", nil, nil)
		require.Error(t, err)
		if tc.sentinel != nil {
			require.ErrorIs(t, err, tc.sentinel)
		}
		require.Equal(t, []string{tc.message}, recorder.Messages(), "status %d", tc.status)

		srv.Close()
	}
}

func TestConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	recorder := notifytest.NewRecorder()
	client := api.NewClient(srv.URL+"/api", api.WithNotifier(recorder))

	err := client.Get(context.Background(), "activities", nil, nil)
	require.ErrorIs(t, err, api.ErrConnection)
	require.Equal(t, []string{"Unable to connect to server"}, recorder.Messages())
}

func TestUploadSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "photo.png", header.Filename)
		w.Write([]byte(`{"message":"stored"}`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL + "/api")

	var out echo
	err := client.Upload(context.Background(), "files/upload", "file", "photo.png", strings.NewReader("fake-png"), &out)
	require.NoError(t, err)
	require.Equal(t, "stored", out.Message)
}

func TestBackendURLStripsAPISuffix(t *testing.T) {
	client := api.NewClient("http://localhost:8080/api")
	require.Equal(t, "http://localhost:8080", client.BackendURL())
}
