package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_PostsAmountAndEchoesMonto(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"valor":96000}`, string(raw))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"monto": 96000, "estado": "ok"}`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, srv.Client())
	receipt, err := g.Pay(context.Background(), Request{Amount: 96000})
	require.NoError(t, err)
	assert.Equal(t, "96000", receipt.Settled)
	assert.Equal(t, ProviderHTTP, receipt.Provider)
	assert.Empty(t, receipt.CheckoutURL)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPGateway_NonSuccessStatusIsRejected(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusPaymentRequired, http.StatusInternalServerError, http.StatusMovedPermanently} {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			if status == http.StatusMovedPermanently {
				// no Location header, so the client hands the 301 back
				w.WriteHeader(status)
				return
			}
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{"monto": 1})
		}))

		_, err := NewHTTPGateway(srv.URL, srv.Client()).Pay(context.Background(), Request{Amount: 64000})
		require.ErrorIs(t, err, ErrRejected, "status %d", status)
		assert.Equal(t, "Error al procesar el pago", err.Error())
		assert.Equal(t, int32(1), calls.Load(), "no retry on status %d", status)
		srv.Close()
	}
}

func TestHTTPGateway_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPGateway(srv.URL, srv.Client()).Pay(context.Background(), Request{Amount: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "respuesta de pago inválida")
}

func TestHTTPGateway_EchoesMontoAsSent(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"number", `{"monto": 96000}`, "96000"},
		{"decimal", `{"monto": 96000.50}`, "96000.50"},
		{"formatted string", `{"monto": "$96.000"}`, "$96.000"},
		{"string with currency", `{"monto": "96000 COP"}`, "96000 COP"},
		{"markup is stripped", `{"monto": "<b>96000</b>"}`, "96000"},
		{"null falls back to charged amount", `{"monto": null}`, "64000"},
		{"missing falls back to charged amount", `{"ok": true}`, "64000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			receipt, err := NewHTTPGateway(srv.URL, srv.Client()).Pay(context.Background(), Request{Amount: 64000})
			require.NoError(t, err)
			assert.Equal(t, tc.want, receipt.Settled)
		})
	}
}

func TestHTTPGateway_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPGateway(url, nil).Pay(context.Background(), Request{Amount: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), url)
}

func TestNewHTTPGateway_Defaults(t *testing.T) {
	g := NewHTTPGateway("", nil)
	assert.Equal(t, DefaultEndpoint, g.endpoint)
	require.NotNil(t, g.client)
	assert.Zero(t, g.client.Timeout)
}
