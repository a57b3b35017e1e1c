package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Abhinav-2002/Salaried/internal/config"
	"github.com/Abhinav-2002/Salaried/internal/model"
	"github.com/Abhinav-2002/Salaried/internal/sqlerr"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
)

// maxErrorBody caps how much of a failed response we read.
const maxErrorBody = 64 << 10

// SupabaseStore writes signups through the Supabase REST API (PostgREST)
// using the service-role key.
type SupabaseStore struct {
	credentials config.CredentialsProvider
	table       string
	client      *http.Client
}

// restError is the PostgREST error body.
//
//	{"code":"23505","message":"duplicate key value ...","details":"Key (email)=...","hint":null}
type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// NewSupabaseHTTPClient returns the client used for store calls. Requests
// carrying a New Relic transaction in their context show up as external
// segments.
func NewSupabaseHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: newrelic.NewRoundTripper(http.DefaultTransport),
	}
}

// NewSupabaseStore builds a store that asks its provider for credentials on every call.
func NewSupabaseStore(credentials config.CredentialsProvider, table string, client *http.Client) *SupabaseStore {
	if client == nil {
		client = NewSupabaseHTTPClient(config.DefaultSupabaseTimeout)
	}

	return &SupabaseStore{
		credentials: credentials,
		table:       table,
		client:      client,
	}
}

func (s *SupabaseStore) Backend() string {
	return config.BackendSupabase
}

func (s *SupabaseStore) Check() error {
	_, err := s.credentials.Credentials()
	return err
}

// Insert sends POST /rest/v1/<table> with Prefer: return=minimal.
func (s *SupabaseStore) Insert(ctx context.Context, signup *model.Signup) error {
	creds, err := s.credentials.Credentials()
	if err != nil {
		return err
	}

	body, err := json.Marshal(signup)
	if err != nil {
		return errors.Wrap(err, "encode signup")
	}

	req, err := s.newRequest(ctx, http.MethodPost, creds, nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "insert into %s", s.table)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return s.decodeError(resp)
}

// Ping issues a HEAD select of one row, which needs both a reachable API
// and a key that can read the table.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	creds, err := s.credentials.Credentials()
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("select", "email")
	query.Set("limit", "1")

	req, err := s.newRequest(ctx, http.MethodHead, creds, query, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "ping supabase")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.Errorf("ping supabase: unexpected status %s", resp.Status)
	}

	return nil
}

func (s *SupabaseStore) newRequest(ctx context.Context, method string, creds config.Credentials, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", creds.URL, url.PathEscape(s.table))
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "build supabase request")
	}

	req.Header.Set("apikey", creds.ServiceRoleKey)
	req.Header.Set("Authorization", "Bearer "+creds.ServiceRoleKey)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// decodeError turns a non-2xx PostgREST response into *sqlerr.Error. Bodies
// that are not PostgREST errors (a proxy's HTML page, say) become a plain
// error so nothing downstream reads meaning into them.
func (s *SupabaseStore) decodeError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return errors.Wrapf(err, "read %s error response", s.table)
	}

	var body restError
	if err := json.Unmarshal(raw, &body); err != nil || (body.Code == "" && body.Message == "") {
		return errors.Errorf("insert into %s: unexpected status %s", s.table, resp.Status)
	}

	return sqlerr.ConvertRESTError(s.table, body.Code, body.Message, body.Details)
}
