package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
)

// Address is the subset of the ViaCEP payload the enrollment form consumes.
type Address struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"localidade"`
}

// Client queries the ViaCEP postal-code service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a lookup client. baseURL defaults to the public ViaCEP
// endpoint when empty.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://viacep.com.br"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup resolves a postal code to street, neighbourhood and city. Any
// transport or decoding failure maps to the upstream error; callers report it
// and carry on without the enrichment.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	code = strings.ReplaceAll(strings.TrimSpace(code), "-", "")
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cep is required")
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build cep request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "cep lookup failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("cep lookup returned status %d", resp.StatusCode))
	}

	var payload struct {
		Logradouro string `json:"logradouro"`
		Bairro     string `json:"bairro"`
		Localidade string `json:"localidade"`
		Erro       bool   `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode cep response")
	}
	if payload.Erro {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "cep not found")
	}

	return &Address{
		Logradouro: payload.Logradouro,
		Bairro:     payload.Bairro,
		Cidade:     payload.Localidade,
	}, nil
}
