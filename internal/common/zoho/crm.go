package zoho

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	commonhttp "ai-readiness-funnel/internal/common/http"
)

const DefaultBaseURL = "https://www.zohoapis.com/crm/v3"

var (
	ErrNoData         = errors.New("zoho: no data in response")
	ErrRecordRejected = errors.New("zoho: record rejected")
)

type CRMClient struct {
	baseURL string
	http    *commonhttp.Client
}

// Lead is the subset of the Zoho Leads module the funnel writes.
type Lead struct {
	ID          string `json:"id,omitempty"`
	FirstName   string `json:"First_Name,omitempty"`
	LastName    string `json:"Last_Name"`
	Email       string `json:"Email"`
	Company     string `json:"Company"`
	Designation string `json:"Designation,omitempty"`
	Phone       string `json:"Phone,omitempty"`
	Source      string `json:"Lead_Source,omitempty"`
	Rating      string `json:"Rating,omitempty"`
	Description string `json:"Description,omitempty"`
}

type upsertResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"data"`
}

// NewCRMClient builds a client authenticated with an OAuth token. An empty
// baseURL selects the public API.
func NewCRMClient(apiKey, oauthToken, baseURL string) *CRMClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := commonhttp.NewClient(30*time.Second).
		WithHeader("Authorization", "Zoho-oauthtoken "+oauthToken)
	if apiKey != "" {
		client.WithHeader("X-API-Key", apiKey)
	}
	return &CRMClient{baseURL: baseURL, http: client}
}

// CreateLead inserts lead and returns the new record ID.
func (c *CRMClient) CreateLead(ctx context.Context, lead *Lead) (string, error) {
	var resp upsertResponse
	payload := map[string]interface{}{"data": []Lead{*lead}}
	if err := c.http.DoJSON(ctx, http.MethodPost, c.baseURL+"/Leads", payload, &resp); err != nil {
		return "", fmt.Errorf("create lead: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", ErrNoData
	}
	if resp.Data[0].Status != "success" {
		return "", fmt.Errorf("create lead: %w: %s (%s)", ErrRecordRejected, resp.Data[0].Message, resp.Data[0].Code)
	}
	return resp.Data[0].Details.ID, nil
}

// UpdateLead overwrites the given fields of an existing lead.
func (c *CRMClient) UpdateLead(ctx context.Context, leadID string, lead *Lead) error {
	payload := map[string]interface{}{"data": []Lead{*lead}}
	endpoint := fmt.Sprintf("%s/Leads/%s", c.baseURL, url.PathEscape(leadID))
	if err := c.http.DoJSON(ctx, http.MethodPut, endpoint, payload, nil); err != nil {
		return fmt.Errorf("update lead %s: %w", leadID, err)
	}
	return nil
}

// FindLeadByEmail returns nil when no lead has the address. Zoho answers an
// empty search with 204.
func (c *CRMClient) FindLeadByEmail(ctx context.Context, email string) (*Lead, error) {
	var result struct {
		Data []Lead `json:"data"`
	}
	endpoint := fmt.Sprintf("%s/Leads/search?email=%s", c.baseURL, url.QueryEscape(email))
	if err := c.http.DoJSON(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, fmt.Errorf("search leads: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, nil
	}
	return &result.Data[0], nil
}
