package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

func init() {
	DefaultRegistry.Register("lumen", func(cfg APIConfig) Provider {
		return newLumenProvider(cfg)
	})
}

// lumenProvider talks to the Lumen (CenturyLink) circuit API. Calls are
// rate-limited to stay under the carrier's request quota.
type lumenProvider struct {
	endpoint string
	key      string
	secret   string
	token    string
	client   *http.Client
	limiter  *rate.Limiter
}

func newLumenProvider(cfg APIConfig) *lumenProvider {
	return &lumenProvider{
		endpoint: strings.TrimRight(cfg.APIEndpoint, "/"),
		key:      cfg.APIKey,
		secret:   cfg.APISecret,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

func (p *lumenProvider) Name() string {
	return "lumen"
}

// Authenticate exchanges the key/secret pair for a bearer token.
func (p *lumenProvider) Authenticate(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"api_key":    p.key,
		"api_secret": p.secret,
	})
	if err != nil {
		return err
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/auth/token", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("lumen auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lumen auth failed: status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("lumen auth response: %w", err)
	}
	if payload.AccessToken == "" {
		return fmt.Errorf("lumen auth response missing access_token")
	}

	p.token = payload.AccessToken
	return nil
}

func (p *lumenProvider) get(ctx context.Context, path string, out interface{}) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("lumen GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lumen GET %s: status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type lumenBilling struct {
	NonRecurringCharge     *float64 `json:"non_recurring_charge"`
	MonthlyRecurringCharge *float64 `json:"monthly_recurring_charge"`
	Currency               string   `json:"currency"`
	AccountNumber          string   `json:"account_number"`
}

type lumenTicket struct {
	TicketNumber string `json:"ticket_number"`
	Subject      string `json:"subject"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	Description  string `json:"description"`
	URL          string `json:"url"`
}

type lumenCircuit struct {
	CID     string        `json:"cid"`
	Billing *lumenBilling `json:"billing"`
	Tickets []lumenTicket `json:"tickets"`
	PathKML string        `json:"path_kml"`
}

func (c lumenCircuit) normalize() NormalizedCircuit {
	out := NormalizedCircuit{CID: c.CID}
	if c.Billing != nil {
		currency := c.Billing.Currency
		if currency == "" {
			currency = "USD"
		}
		out.Billing = &NormalizedBilling{
			NRC:           c.Billing.NonRecurringCharge,
			MRC:           c.Billing.MonthlyRecurringCharge,
			Currency:      currency,
			AccountNumber: c.Billing.AccountNumber,
		}
	}
	for _, t := range c.Tickets {
		out.Tickets = append(out.Tickets, NormalizedTicket{
			TicketNumber: t.TicketNumber,
			Subject:      t.Subject,
			Status:       mapLumenStatus(t.Status),
			Priority:     mapLumenPriority(t.Priority),
			Description:  t.Description,
			ExternalURL:  t.URL,
		})
	}
	if c.PathKML != "" {
		out.PathKML = []byte(c.PathKML)
	}
	return out
}

func (p *lumenProvider) FetchCircuits(ctx context.Context) ([]NormalizedCircuit, error) {
	var payload struct {
		Circuits []lumenCircuit `json:"circuits"`
	}
	if err := p.get(ctx, "/circuits", &payload); err != nil {
		return nil, err
	}

	circuits := make([]NormalizedCircuit, 0, len(payload.Circuits))
	for _, c := range payload.Circuits {
		circuits = append(circuits, c.normalize())
	}
	return circuits, nil
}

func (p *lumenProvider) FetchCircuitDetail(ctx context.Context, cid string) (*NormalizedCircuit, error) {
	var payload lumenCircuit
	if err := p.get(ctx, "/circuits/"+cid, &payload); err != nil {
		return nil, err
	}
	normalized := payload.normalize()
	return &normalized, nil
}

var lumenStatusMap = map[string]string{
	"new":              "open",
	"open":             "open",
	"working":          "in_progress",
	"pending_customer": "pending",
	"resolved":         "resolved",
	"closed":           "closed",
}

var lumenPriorityMap = map[string]string{
	"p1": "critical",
	"p2": "high",
	"p3": "medium",
	"p4": "low",
}

func mapLumenStatus(s string) string {
	if mapped, ok := lumenStatusMap[strings.ToLower(s)]; ok {
		return mapped
	}
	return "open"
}

func mapLumenPriority(s string) string {
	if mapped, ok := lumenPriorityMap[strings.ToLower(s)]; ok {
		return mapped
	}
	return "medium"
}
