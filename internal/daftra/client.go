package daftra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"alazab/internal/config"
	"alazab/internal/domain"
	"alazab/internal/port"
)

// Client talks to the Daftra billing API. It holds credentials injected
// at construction time and performs no local side effects.
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	pageSize    int
	http        *http.Client
}

// NewClient creates a Daftra-backed BillingSource.
func NewClient(cfg *config.DaftraConfig) port.BillingSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		accessToken: cfg.AccessToken,
		pageSize:    pageSize,
		http:        &http.Client{Timeout: timeout},
	}
}

func formatSourceID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// get issues an authenticated GET and returns the raw body. Transport
// failures, timeouts and 5xx responses come back as ErrSourceUnavailable;
// a 404 as ErrSourceInvoiceNotFound.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("daftra: building request: %w", err)
	}
	req.Header.Set("APIKEY", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrSourceUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrSourceInvoiceNotFound
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: daftra returned %d", domain.ErrSourceUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("daftra api error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// FetchInvoiceByNumber resolves a single invoice via the vendor's
// filter-by-number query.
func (c *Client) FetchInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.InvoiceSnapshot, error) {
	params := url.Values{}
	params.Set("filter[invoice_number]", invoiceNumber)

	body, err := c.get(ctx, "/invoices", params)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("daftra: decoding invoice list: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil, domain.ErrSourceInvoiceNotFound
	}
	return envelope.Data[0].toSnapshot(), nil
}

// ListInvoicesCreatedSince pages through the vendor list endpoint and
// returns every invoice created at or after the given cursor.
func (c *Client) ListInvoicesCreatedSince(ctx context.Context, since time.Time) ([]domain.InvoiceSnapshot, error) {
	var out []domain.InvoiceSnapshot

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("filter[created_at_from]", since.Format(vendorDateLayout))
		params.Set("per_page", strconv.Itoa(c.pageSize))
		params.Set("page", strconv.Itoa(page))

		body, err := c.get(ctx, "/invoices", params)
		if err != nil {
			return nil, err
		}

		var envelope listEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("daftra: decoding invoice list page %d: %w", page, err)
		}
		for i := range envelope.Data {
			out = append(out, *envelope.Data[i].toSnapshot())
		}
		if len(envelope.Data) < c.pageSize {
			return out, nil
		}
	}
}

// FetchDocumentBinary downloads the PDF artifact of the given kind. The
// detailed invoice has a dedicated vendor endpoint; every other kind is
// located among the invoice's attachments by name substring, and its
// absence is reported as ErrAttachmentAbsent rather than a failure.
func (c *Client) FetchDocumentBinary(ctx context.Context, sourceInvoiceID string, kind domain.DocumentKind) ([]byte, error) {
	if kind == domain.DocumentKindDetailed {
		return c.get(ctx, "/invoices/"+sourceInvoiceID+"/pdf", nil)
	}

	body, err := c.get(ctx, "/invoices/"+sourceInvoiceID, nil)
	if err != nil {
		return nil, err
	}
	var envelope detailEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("daftra: decoding invoice detail: %w", err)
	}

	att := envelope.Data.findAttachment(string(kind))
	if att == nil {
		return nil, domain.ErrAttachmentAbsent
	}
	data, err := c.download(ctx, att.URL)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// download fetches raw bytes from an attachment URL, which may be
// absolute or relative to the API base.
func (c *Client) download(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "/") {
		return c.get(ctx, rawURL, nil)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("daftra: building download request: %w", err)
	}
	req.Header.Set("APIKEY", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: attachment download returned %d", domain.ErrSourceUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("daftra: attachment download returned %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading attachment: %v", domain.ErrSourceUnavailable, err)
	}
	if len(data) == 0 {
		return nil, errors.New("daftra: attachment download returned empty body")
	}
	return data, nil
}
