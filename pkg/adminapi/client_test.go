package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/me/adminctl/pkg/model"
)

// memCreds is an in-memory CredentialSource for tests.
type memCreds struct {
	token   string
	cleared int
}

func (m *memCreds) Token() string { return m.token }
func (m *memCreds) Clear() error {
	m.token = ""
	m.cleared++
	return nil
}

func newTestClient(serverURL string, creds CredentialSource) *Client {
	return NewClient(DefaultConfig().WithBaseURL(serverURL), creds, nil)
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("expected application/json content type")
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry an Authorization header")
		}

		var req model.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Email != "a@b.com" {
			t.Errorf("email = %q", req.Email)
		}

		json.NewEncoder(w).Encode(model.AuthResponse{
			Message:   "login ok",
			User:      &model.User{ID: 1, FirstName: "Ana", Email: "a@b.com", Active: true},
			Token:     "tok-123",
			ExpiresAt: time.Now().Add(5 * time.Minute).Format(time.RFC3339),
			ExpiresIn: 300,
			Status:    200,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	resp, err := client.Login(context.Background(), model.LoginRequest{Email: "a@b.com", Password: "validpass1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token != "tok-123" {
		t.Errorf("token = %q", resp.Token)
	}
	if resp.User == nil || resp.User.ID != 1 {
		t.Errorf("user = %+v", resp.User)
	}
}

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(envelope{Data: json.RawMessage(`[]`), Status: 200})
	}))
	defer server.Close()

	creds := &memCreds{token: "tok-abc"}
	client := newTestClient(server.URL, creds)

	if _, err := client.ListUsers(context.Background()); err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	// Every authenticated endpoint must behave the same on 401: clear the
	// credential source, fire the callback, return ErrSessionExpired.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Unauthenticated."})
	}))
	defer server.Close()

	calls := []struct {
		name string
		call func(c *Client) error
	}{
		{"list users", func(c *Client) error { _, err := c.ListUsers(context.Background()); return err }},
		{"get user", func(c *Client) error { _, err := c.GetUser(context.Background(), 7); return err }},
		{"delete user", func(c *Client) error { _, err := c.DeleteUser(context.Background(), 7); return err }},
		{"stats", func(c *Client) error { _, err := c.Stats(context.Background()); return err }},
		{"refresh", func(c *Client) error { _, err := c.Refresh(context.Background()); return err }},
		{"check", func(c *Client) error { _, err := c.Check(context.Background()); return err }},
	}

	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			creds := &memCreds{token: "stale"}
			client := newTestClient(server.URL, creds)

			fired := 0
			client.OnSessionExpired(func() { fired++ })

			err := tt.call(client)
			if !errors.Is(err, ErrSessionExpired) {
				t.Fatalf("error = %v, want ErrSessionExpired", err)
			}
			if creds.token != "" || creds.cleared != 1 {
				t.Errorf("credential source not cleared: %+v", creds)
			}
			if fired != 1 {
				t.Errorf("session-expired callback fired %d times, want 1", fired)
			}
		})
	}
}

func TestClient_LoginRejectionIsNotExpiry(t *testing.T) {
	// A 401 from the login endpoint means bad credentials, not a revoked
	// session: the stored credential stays put and no callback fires.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Credenciales inválidas"})
	}))
	defer server.Close()

	creds := &memCreds{token: "existing"}
	client := newTestClient(server.URL, creds)

	fired := 0
	client.OnSessionExpired(func() { fired++ })

	_, err := client.Login(context.Background(), model.LoginRequest{Email: "a@b.com", Password: "wrong"})
	if errors.Is(err, ErrSessionExpired) {
		t.Fatal("login rejection must not be treated as session expiry")
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Message != "Credenciales inválidas" {
		t.Fatalf("error = %v, want RequestError with server message", err)
	}
	if creds.token != "existing" || creds.cleared != 0 {
		t.Errorf("credential source touched: %+v", creds)
	}
	if fired != 0 {
		t.Errorf("session-expired callback fired %d times, want 0", fired)
	}
}

func TestClient_RequestError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "server message",
			status:      422,
			body:        `{"message":"El email ya está registrado"}`,
			wantMessage: "El email ya está registrado",
		},
		{
			name:        "no message field",
			status:      500,
			body:        `{"error":"boom"}`,
			wantMessage: genericFailureMessage,
		},
		{
			name:        "unparseable body",
			status:      502,
			body:        `<html>bad gateway</html>`,
			wantMessage: genericFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL, &memCreds{token: "tok"})

			_, err := client.ListUsers(context.Background())
			var re *RequestError
			if !errors.As(err, &re) {
				t.Fatalf("error = %v, want *RequestError", err)
			}
			if re.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", re.StatusCode, tt.status)
			}
			if re.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", re.Message, tt.wantMessage)
			}
		})
	}
}

func TestClient_UserCRUD(t *testing.T) {
	users := map[int64]model.User{
		1: {ID: 1, FirstName: "Ana", LastName: "García", Email: "ana@example.com", Active: true},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/usuarios":
			list := []model.User{users[1]}
			data, _ := json.Marshal(list)
			json.NewEncoder(w).Encode(envelope{Data: data, Status: 200})
		case r.Method == "GET" && r.URL.Path == "/usuarios/1":
			data, _ := json.Marshal(users[1])
			json.NewEncoder(w).Encode(envelope{Data: data, Status: 200})
		case r.Method == "POST" && r.URL.Path == "/usuarios":
			var form model.UserForm
			json.NewDecoder(r.Body).Decode(&form)
			u := model.User{ID: 2, FirstName: form.FirstName, LastName: form.LastName, Email: form.Email, Active: true}
			data, _ := json.Marshal(u)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(envelope{Data: data, Status: 201})
		case r.Method == "PUT" && r.URL.Path == "/usuarios/1":
			var form model.UserForm
			json.NewDecoder(r.Body).Decode(&form)
			u := users[1]
			u.Phone = form.Phone
			data, _ := json.Marshal(u)
			json.NewEncoder(w).Encode(envelope{Data: data, Status: 200})
		case r.Method == "DELETE" && r.URL.Path == "/usuarios/1":
			json.NewEncoder(w).Encode(map[string]string{"message": "Usuario eliminado"})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Usuario no encontrado"})
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, &memCreds{token: "tok"})
	ctx := context.Background()

	list, err := client.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(list) != 1 || list[0].Email != "ana@example.com" {
		t.Errorf("ListUsers() = %+v", list)
	}

	got, err := client.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.FullName() != "Ana García" {
		t.Errorf("GetUser() name = %q", got.FullName())
	}

	created, err := client.CreateUser(ctx, model.UserForm{FirstName: "Luis", LastName: "Pérez", Email: "luis@example.com", Password: "validpass1"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if created.ID != 2 {
		t.Errorf("CreateUser() id = %d", created.ID)
	}

	updated, err := client.UpdateUser(ctx, 1, model.UserForm{Phone: "555-0100"})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if updated.Phone != "555-0100" {
		t.Errorf("UpdateUser() phone = %q", updated.Phone)
	}

	msg, err := client.DeleteUser(ctx, 1)
	if err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if msg != "Usuario eliminado" {
		t.Errorf("DeleteUser() message = %q", msg)
	}

	_, err = client.GetUser(ctx, 99)
	if !IsNotFound(err) {
		t.Errorf("GetUser(99) error = %v, want not found", err)
	}
}

func TestClient_Stats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/estadisticas":
			data, _ := json.Marshal(model.Statistics{TotalUsers: 10, ActiveUsers: 8, InactiveUsers: 2, RegisteredToday: 1})
			json.NewEncoder(w).Encode(envelope{Data: data, Status: 200})
		case "/estadisticas/diarias":
			json.NewEncoder(w).Encode(envelope{Data: json.RawMessage(`[{"fecha":"2026-08-29","total":3}]`), Status: 200})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, &memCreds{token: "tok"})

	stats, err := client.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalUsers != 10 || stats.ActiveUsers != 8 {
		t.Errorf("Stats() = %+v", stats)
	}

	raw, err := client.PeriodStats(context.Background(), StatsDaily)
	if err != nil {
		t.Fatalf("PeriodStats() error = %v", err)
	}
	if len(raw) == 0 {
		t.Error("PeriodStats() returned empty payload")
	}

	if _, err := client.PeriodStats(context.Background(), "anuales"); err == nil {
		t.Error("PeriodStats() accepted unknown period")
	}
}

func TestClient_Logout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/logout" || r.Method != "POST" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Sesión cerrada"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, &memCreds{token: "tok"})

	msg, err := client.Logout(context.Background())
	if err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if msg != "Sesión cerrada" {
		t.Errorf("Logout() message = %q", msg)
	}
}
