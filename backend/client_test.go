package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"DoctorPortal/models"
)

func TestDoReplaysSessionCookies(t *testing.T) {
	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("auth_token"); err == nil {
			gotCookie = cookie.Value
		}
		json.NewEncoder(w).Encode([]models.Appointment{})
	}))
	defer server.Close()

	sess := &models.Session{
		SessionID:      "s1",
		BackendCookies: []models.SavedCookie{{Name: "auth_token", Value: "abc123"}},
	}
	client := NewClient(server.URL)
	if _, err := client.Appointments(context.Background(), sess); err != nil {
		t.Fatalf("Appointments: %v", err)
	}
	if gotCookie != "abc123" {
		t.Errorf("backend saw cookie %q, want abc123", gotCookie)
	}
}

func TestDoMapsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Appointments(context.Background(), &models.Session{SessionID: "s1"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestDoExtractsErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"envelope", `{"message":"order already reviewed"}`, "order already reviewed"},
		{"bare string", `"out of stock"`, "out of stock"},
		{"plain text", "service degraded", "service degraded"},
		{"object without message", `{"code":42}`, ""},
		{"array", `[1,2]`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.Appointments(context.Background(), &models.Session{SessionID: "s1"})

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("got %v, want APIError", err)
			}
			if apiErr.Message != tc.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tc.want)
			}
		})
	}
}

func TestUserMessageFallsBack(t *testing.T) {
	if got := UserMessage(&APIError{StatusCode: 500}, "fallback"); got != "fallback" {
		t.Errorf("empty message: got %q", got)
	}
	if got := UserMessage(&APIError{StatusCode: 409, Message: "taken"}, "fallback"); got != "taken" {
		t.Errorf("backend message: got %q", got)
	}
	if got := UserMessage(errors.New("dial tcp: refused"), "fallback"); got != "fallback" {
		t.Errorf("transport error: got %q", got)
	}
}

func TestLoginCapturesBackendCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode credentials: %v", err)
		}
		if creds.Username != "somchai" {
			t.Errorf("username = %q", creds.Username)
		}
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-1", HttpOnly: true})
		json.NewEncoder(w).Encode(models.LoginResponse{AccessToken: "tok-1", DoctorName: "Dr. Somchai"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	login, cookies, err := client.Login(context.Background(), models.LoginRequest{Username: "somchai", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.DoctorName != "Dr. Somchai" {
		t.Errorf("doctor name = %q", login.DoctorName)
	}
	if len(cookies) != 1 || cookies[0].Name != "auth_token" || cookies[0].Value != "tok-1" {
		t.Errorf("cookies = %+v, want captured auth_token", cookies)
	}
}

func TestLoginRejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, _, err := client.Login(context.Background(), models.LoginRequest{Username: "x", Password: "y"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}
