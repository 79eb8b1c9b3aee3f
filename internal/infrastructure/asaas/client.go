// Package asaas implementa o cliente HTTP da API de cobranças do Asaas
// (customers, installments e payments).
package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client fala com a API REST do Asaas. A autenticação vai no header
// access_token. O http.Client não carrega timeout próprio: quem limita a
// duração é o context de cada chamada, já que a sincronização completa pode
// levar vários minutos.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constrói o cliente para baseURL (ex: https://api.asaas.com/v3).
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("asaas: marshal payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("asaas: build request: %w", err)
	}
	req.Header.Set("access_token", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asaas: %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return nil, apiErr
	}
	return resp, nil
}

func decode[T any](resp *http.Response) (*T, error) {
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("asaas: decode response: %w", err)
	}
	return &out, nil
}

func pageQuery(offset, limit int) url.Values {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// ListClientes devolve uma página de customers.
func (c *Client) ListClientes(ctx context.Context, offset, limit int) (*Pagina[Cliente], error) {
	resp, err := c.do(ctx, http.MethodGet, "/customers", pageQuery(offset, limit), nil)
	if err != nil {
		return nil, err
	}
	return decode[Pagina[Cliente]](resp)
}

// GetCliente busca um customer pelo id do provedor.
func (c *Client) GetCliente(ctx context.Context, asaasID string) (*Cliente, error) {
	resp, err := c.do(ctx, http.MethodGet, "/customers/"+asaasID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[Cliente](resp)
}

// FindClienteByCPF busca um customer pelo CPF/CNPJ. Devolve nil quando o
// provedor não conhece o documento.
func (c *Client) FindClienteByCPF(ctx context.Context, cpfCnpj string) (*Cliente, error) {
	q := url.Values{}
	q.Set("cpfCnpj", cpfCnpj)
	resp, err := c.do(ctx, http.MethodGet, "/customers", q, nil)
	if err != nil {
		return nil, err
	}
	page, err := decode[Pagina[Cliente]](resp)
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, nil
	}
	return &page.Data[0], nil
}

// CreateCliente cria um customer no provedor.
func (c *Client) CreateCliente(ctx context.Context, novo NovoCliente) (*Cliente, error) {
	resp, err := c.do(ctx, http.MethodPost, "/customers", nil, novo)
	if err != nil {
		return nil, err
	}
	return decode[Cliente](resp)
}

// UpdateCliente atualiza um customer existente.
func (c *Client) UpdateCliente(ctx context.Context, asaasID string, dados NovoCliente) (*Cliente, error) {
	resp, err := c.do(ctx, http.MethodPut, "/customers/"+asaasID, nil, dados)
	if err != nil {
		return nil, err
	}
	return decode[Cliente](resp)
}

// DeleteCliente remove um customer do provedor. Usado como compensação quando
// o cadastro local falha após a criação remota.
func (c *Client) DeleteCliente(ctx context.Context, asaasID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/customers/"+asaasID, nil, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// ListParcelamentos devolve uma página de installments.
func (c *Client) ListParcelamentos(ctx context.Context, offset, limit int) (*Pagina[Parcelamento], error) {
	resp, err := c.do(ctx, http.MethodGet, "/installments", pageQuery(offset, limit), nil)
	if err != nil {
		return nil, err
	}
	return decode[Pagina[Parcelamento]](resp)
}

// GetParcelamento busca um installment pelo id do provedor.
func (c *Client) GetParcelamento(ctx context.Context, asaasID string) (*Parcelamento, error) {
	resp, err := c.do(ctx, http.MethodGet, "/installments/"+asaasID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[Parcelamento](resp)
}

// ListCobrancas devolve uma página de payments.
func (c *Client) ListCobrancas(ctx context.Context, offset, limit int) (*Pagina[Cobranca], error) {
	resp, err := c.do(ctx, http.MethodGet, "/payments", pageQuery(offset, limit), nil)
	if err != nil {
		return nil, err
	}
	return decode[Pagina[Cobranca]](resp)
}

// ListCobrancasDoParcelamento devolve os payments de um installment.
func (c *Client) ListCobrancasDoParcelamento(ctx context.Context, installmentID string, limit int) (*Pagina[Cobranca], error) {
	q := pageQuery(0, limit)
	q.Set("installment", installmentID)
	resp, err := c.do(ctx, http.MethodGet, "/payments", q, nil)
	if err != nil {
		return nil, err
	}
	return decode[Pagina[Cobranca]](resp)
}

// GetCobranca busca um payment pelo id do provedor.
func (c *Client) GetCobranca(ctx context.Context, asaasID string) (*Cobranca, error) {
	resp, err := c.do(ctx, http.MethodGet, "/payments/"+asaasID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[Cobranca](resp)
}

// CreateCobranca cria um payment (ou um plano completo, com InstallmentCount).
func (c *Client) CreateCobranca(ctx context.Context, nova NovaCobranca) (*Cobranca, error) {
	resp, err := c.do(ctx, http.MethodPost, "/payments", nil, nova)
	if err != nil {
		return nil, err
	}
	return decode[Cobranca](resp)
}

// PaymentBook devolve o stream do PDF do carnê de um installment. O chamador
// fecha o ReadCloser.
func (c *Client) PaymentBook(ctx context.Context, installmentID string) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, "/installments/"+installmentID+"/paymentBook", nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
