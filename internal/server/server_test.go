package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jperaza/divvy/internal/auth"
	"github.com/jperaza/divvy/internal/events"
	"github.com/jperaza/divvy/internal/service"
	"github.com/jperaza/divvy/internal/storage/memory"
)

const testPassword = "test-password"

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc, err := service.New(context.Background(), memory.New(), events.Noop{})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	gate, err := auth.NewGate(testPassword, auth.NewJWTManager("test-signing-key", time.Hour))
	if err != nil {
		t.Fatalf("failed to create gate: %v", err)
	}

	ts := httptest.NewServer(New(svc, gate).Routes())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON issues a request with an optional JSON body and bearer token, and
// decodes the JSON response into out (if non-nil).
func doJSON(t *testing.T, method, url, token string, body, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func login(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	status := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "",
		map[string]string{"password": testPassword}, &resp)
	if status != http.StatusOK {
		t.Fatalf("login status = %d, want 200", status)
	}
	if resp.Token == "" {
		t.Fatal("expected non-empty token")
	}
	return resp.Token
}

func createPerson(t *testing.T, ts *httptest.Server, name string) string {
	t.Helper()
	var person struct {
		ID string `json:"id"`
	}
	status := doJSON(t, http.MethodPost, ts.URL+"/api/people", "",
		map[string]string{"full_name": name, "bank_name": "Bank", "account_number": "1"}, &person)
	if status != http.StatusCreated {
		t.Fatalf("create person status = %d, want 201", status)
	}
	if person.ID == "" {
		t.Fatal("expected generated person id")
	}
	return person.ID
}

func TestHealthz(t *testing.T) {
	ts := setupTestServer(t)

	var resp map[string]string
	if status := doJSON(t, http.MethodGet, ts.URL+"/healthz", "", nil, &resp); status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q, want ok", resp["status"])
	}
}

func TestExpenseFlowProducesSettlements(t *testing.T) {
	ts := setupTestServer(t)

	aliceID := createPerson(t, ts, "Alice")
	bobID := createPerson(t, ts, "Bob")
	carolID := createPerson(t, ts, "Carol")

	status := doJSON(t, http.MethodPost, ts.URL+"/api/expenses", "", map[string]interface{}{
		"description":   "Dinner",
		"amount":        "90.00",
		"paid_by_id":    aliceID,
		"split_between": []string{aliceID, bobID, carolID},
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("create expense status = %d, want 201", status)
	}

	var resp struct {
		Settlements []settlementView `json:"settlements"`
		Count       int              `json:"count"`
	}
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/settlements", "", nil, &resp); status != http.StatusOK {
		t.Fatalf("list settlements status = %d, want 200", status)
	}
	if resp.Count != 2 {
		t.Fatalf("settlement count = %d, want 2: %+v", resp.Count, resp.Settlements)
	}

	first := resp.Settlements[0]
	if first.From != bobID || first.To != aliceID {
		t.Errorf("first settlement = %s->%s, want %s->%s", first.From, first.To, bobID, aliceID)
	}
	if first.FromName != "Bob" || first.ToName != "Alice" {
		t.Errorf("resolved names = %s->%s, want Bob->Alice", first.FromName, first.ToName)
	}
	if first.Amount != "30.00" {
		t.Errorf("amount = %q, want %q", first.Amount, "30.00")
	}
	if first.PaymentDetails != "Bank - 1" {
		t.Errorf("payment details = %q, want %q", first.PaymentDetails, "Bank - 1")
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	ts := setupTestServer(t)

	status := doJSON(t, http.MethodPost, ts.URL+"/api/expenses", "", map[string]interface{}{
		"description":   "Broken",
		"amount":        "0",
		"paid_by_id":    "someone",
		"split_between": []string{"someone"},
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("zero amount status = %d, want 400", status)
	}

	status = doJSON(t, http.MethodPost, ts.URL+"/api/expenses", "", map[string]interface{}{
		"description":   "Broken",
		"amount":        "10.00",
		"paid_by_id":    "someone",
		"split_between": []string{},
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("empty split status = %d, want 400", status)
	}
}

func TestDestructiveRoutesRequireSession(t *testing.T) {
	ts := setupTestServer(t)
	personID := createPerson(t, ts, "Alice")

	// Without a token: rejected.
	status := doJSON(t, http.MethodDelete, ts.URL+"/api/people/"+personID, "", nil, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated delete status = %d, want 401", status)
	}

	// With a garbage token: rejected.
	status = doJSON(t, http.MethodDelete, ts.URL+"/api/people/"+personID, "not-a-token", nil, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("bad token delete status = %d, want 401", status)
	}

	// After login: allowed.
	token := login(t, ts)
	status = doJSON(t, http.MethodDelete, ts.URL+"/api/people/"+personID, token, nil, nil)
	if status != http.StatusNoContent {
		t.Fatalf("authenticated delete status = %d, want 204", status)
	}

	var resp struct {
		Count int `json:"count"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/api/people", "", nil, &resp)
	if resp.Count != 0 {
		t.Errorf("people count after delete = %d, want 0", resp.Count)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ts := setupTestServer(t)

	status := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "",
		map[string]string{"password": "wrong"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestUpdatePersonPartner(t *testing.T) {
	ts := setupTestServer(t)
	aliceID := createPerson(t, ts, "Alice")
	bobID := createPerson(t, ts, "Bob")
	token := login(t, ts)

	status := doJSON(t, http.MethodPut, ts.URL+"/api/people/"+bobID, token, map[string]string{
		"full_name":      "Bob",
		"bank_name":      "Bank",
		"account_number": "1",
		"partner_id":     aliceID,
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("update status = %d, want 200", status)
	}

	var resp struct {
		People []struct {
			ID        string `json:"id"`
			PartnerID string `json:"partner_id"`
		} `json:"people"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/api/people", "", nil, &resp)
	for _, p := range resp.People {
		if p.ID == bobID && p.PartnerID != aliceID {
			t.Errorf("partner_id = %q, want %q", p.PartnerID, aliceID)
		}
	}
}

func TestExportText(t *testing.T) {
	ts := setupTestServer(t)
	aliceID := createPerson(t, ts, "Alice")
	bobID := createPerson(t, ts, "Bob")

	doJSON(t, http.MethodPost, ts.URL+"/api/expenses", "", map[string]interface{}{
		"description":   "Taxi",
		"amount":        "20.00",
		"paid_by_id":    aliceID,
		"split_between": []string{aliceID, bobID},
	}, nil)

	resp, err := http.Get(ts.URL + "/api/export/text")
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	text := string(body)
	for _, want := range []string{"Taxi", "Paid by: Alice", "Bob → Alice", "Amount: $10.00"} {
		if !strings.Contains(text, want) {
			t.Errorf("export missing %q\n%s", want, text)
		}
	}
}
