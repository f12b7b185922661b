package carrier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func lumenTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["api_key"] != "key" || creds["api_secret"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	})

	mux.HandleFunc("/circuits", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"circuits": []map[string]interface{}{
				{"cid": "LVLT-100"},
				{"cid": "LVLT-200"},
			},
		})
	})

	mux.HandleFunc("/circuits/LVLT-100", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"cid": "LVLT-100",
			"billing": map[string]interface{}{
				"non_recurring_charge":     1500.0,
				"monthly_recurring_charge": 450.25,
				"currency":                 "USD",
				"account_number":           "ACCT-9",
			},
			"tickets": []map[string]interface{}{
				{
					"ticket_number": "TKT-1",
					"subject":       "Fiber cut",
					"status":        "Working",
					"priority":      "P1",
					"url":           "https://portal.example.com/TKT-1",
				},
			},
		})
	})

	return httptest.NewServer(mux)
}

func lumenFor(srv *httptest.Server) *lumenProvider {
	return newLumenProvider(APIConfig{
		APIEndpoint: srv.URL,
		APIKey:      "key",
		APISecret:   "secret",
	})
}

func TestLumen_Authenticate(t *testing.T) {
	srv := lumenTestServer(t)
	defer srv.Close()

	p := lumenFor(srv)
	if err := p.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if p.token != "tok-123" {
		t.Errorf("token = %q, want tok-123", p.token)
	}
}

func TestLumen_AuthenticateBadCredentials(t *testing.T) {
	srv := lumenTestServer(t)
	defer srv.Close()

	p := newLumenProvider(APIConfig{APIEndpoint: srv.URL, APIKey: "wrong", APISecret: "wrong"})
	if err := p.Authenticate(context.Background()); err == nil {
		t.Error("expected an error for rejected credentials")
	}
}

func TestLumen_FetchCircuits(t *testing.T) {
	srv := lumenTestServer(t)
	defer srv.Close()

	p := lumenFor(srv)
	if err := p.Authenticate(context.Background()); err != nil {
		t.Fatal(err)
	}

	circuits, err := p.FetchCircuits(context.Background())
	if err != nil {
		t.Fatalf("FetchCircuits failed: %v", err)
	}
	if len(circuits) != 2 {
		t.Fatalf("got %d circuits, want 2", len(circuits))
	}
	if circuits[0].CID != "LVLT-100" || circuits[1].CID != "LVLT-200" {
		t.Errorf("unexpected CIDs: %+v", circuits)
	}
}

func TestLumen_FetchCircuitDetail(t *testing.T) {
	srv := lumenTestServer(t)
	defer srv.Close()

	p := lumenFor(srv)
	if err := p.Authenticate(context.Background()); err != nil {
		t.Fatal(err)
	}

	detail, err := p.FetchCircuitDetail(context.Background(), "LVLT-100")
	if err != nil {
		t.Fatalf("FetchCircuitDetail failed: %v", err)
	}

	if detail.Billing == nil {
		t.Fatal("expected billing data")
	}
	if detail.Billing.MRC == nil || *detail.Billing.MRC != 450.25 {
		t.Errorf("MRC = %v, want 450.25", detail.Billing.MRC)
	}
	if detail.Billing.AccountNumber != "ACCT-9" {
		t.Errorf("account = %q, want ACCT-9", detail.Billing.AccountNumber)
	}

	if len(detail.Tickets) != 1 {
		t.Fatalf("got %d tickets, want 1", len(detail.Tickets))
	}
	ticket := detail.Tickets[0]
	if ticket.Status != "in_progress" {
		t.Errorf("status %q not mapped to in_progress", ticket.Status)
	}
	if ticket.Priority != "critical" {
		t.Errorf("priority %q not mapped to critical", ticket.Priority)
	}
}

func TestLumen_StatusMapping(t *testing.T) {
	cases := map[string]string{
		"new":              "open",
		"Open":             "open",
		"working":          "in_progress",
		"pending_customer": "pending",
		"resolved":         "resolved",
		"CLOSED":           "closed",
		"weird":            "open",
		"":                 "open",
	}
	for in, want := range cases {
		if got := mapLumenStatus(in); got != want {
			t.Errorf("mapLumenStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLumen_PriorityMapping(t *testing.T) {
	cases := map[string]string{
		"p1":     "critical",
		"P2":     "high",
		"p3":     "medium",
		"p4":     "low",
		"urgent": "medium",
		"":       "medium",
	}
	for in, want := range cases {
		if got := mapLumenPriority(in); got != want {
			t.Errorf("mapLumenPriority(%q) = %q, want %q", in, got, want)
		}
	}
}
