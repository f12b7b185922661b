package carrier

// NormalizedBilling is the provider-agnostic shape of circuit charges.
type NormalizedBilling struct {
	NRC           *float64 `json:"nrc,omitempty"`
	MRC           *float64 `json:"mrc,omitempty"`
	Currency      string   `json:"currency"`
	AccountNumber string   `json:"account_number"`
}

// NormalizedTicket is the provider-agnostic shape of a support ticket.
// Status and Priority use the local vocabulary; each provider maps its own
// terms before returning.
type NormalizedTicket struct {
	TicketNumber string `json:"ticket_number"`
	Subject      string `json:"subject"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	Description  string `json:"description"`
	ExternalURL  string `json:"external_url"`
}

// NormalizedCircuit is everything a provider knows about one circuit,
// translated into local terms. PathKML carries raw KML route bytes when the
// carrier exposes path data.
type NormalizedCircuit struct {
	CID     string             `json:"cid"`
	Billing *NormalizedBilling `json:"billing,omitempty"`
	Tickets []NormalizedTicket `json:"tickets,omitempty"`
	PathKML []byte             `json:"-"`
}
