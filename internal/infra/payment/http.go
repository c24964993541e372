package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
)

const (
	ProviderHTTP = "http"

	DefaultEndpoint = "https://api.celeriumpatinaje.com/pago"
)

type chargeRequest struct {
	Valor int64 `json:"valor"`
}

// monto is echoed back to the payer as sent, whatever its JSON type.
type chargeResponse struct {
	Monto json.RawMessage `json:"monto"`
}

// HTTPGateway posts {"valor": n} to the school's payment endpoint.
// It never retries and sets no timeout of its own; the caller's context bounds it.
type HTTPGateway struct {
	endpoint string
	client   *http.Client
	policy   *bluemonday.Policy
}

func NewHTTPGateway(endpoint string, client *http.Client) *HTTPGateway {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPGateway{endpoint: endpoint, client: client, policy: bluemonday.StrictPolicy()}
}

func (g *HTTPGateway) Provider() string { return ProviderHTTP }

func (g *HTTPGateway) Pay(ctx context.Context, req Request) (Receipt, error) {
	body, err := json.Marshal(chargeRequest{Valor: req.Amount})
	if err != nil {
		return Receipt{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return Receipt{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("payment endpoint rejected charge", "status", resp.StatusCode, "amount", req.Amount)
		return Receipt{}, ErrRejected
	}

	var out chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Receipt{}, fmt.Errorf("respuesta de pago inválida: %w", err)
	}

	return Receipt{Provider: ProviderHTTP, Settled: g.settledText(out.Monto, req.Amount)}, nil
}

// settledText renders monto for display. Strings are unquoted and stripped of
// markup, other values keep their JSON text. An absent or null monto falls back
// to the amount that was charged.
func (g *HTTPGateway) settledText(monto json.RawMessage, charged int64) string {
	raw := bytes.TrimSpace(monto)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return strconv.FormatInt(charged, 10)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return g.policy.Sanitize(s)
	}
	return string(raw)
}
