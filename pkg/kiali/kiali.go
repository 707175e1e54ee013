// Package kiali is the REST collaborator and response normalizer of the QE
// suite: it fetches the raw documents the Kiali console API serves and
// normalizes them into the canonical entities of pkg/entity so they can be
// compared against what the UI renders and what the cluster API reports.
package kiali

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"k8s.io/klog/v2"

	"github.com/kiali/kiali-qe-go/pkg/config"
)

type Kiali struct {
	bearerToken          string
	kialiURL             string
	kialiInsecure        bool
	certificateAuthority string
}

// NewKiali creates a new Kiali client from the static configuration.
func NewKiali(cfg *config.StaticConfig) *Kiali {
	return &Kiali{
		bearerToken:          cfg.BearerToken,
		kialiURL:             cfg.KialiURL,
		kialiInsecure:        cfg.KialiInsecure,
		certificateAuthority: cfg.CertificateAuthority,
	}
}

// validateAndGetURL validates the Kiali client configuration and returns the full URL
// by safely concatenating the base URL with the provided endpoint, avoiding duplicate
// or missing slashes regardless of trailing/leading slashes.
func (k *Kiali) validateAndGetURL(endpoint string) (string, error) {
	if k == nil || k.kialiURL == "" {
		return "", fmt.Errorf("kiali client not initialized")
	}
	baseStr := strings.TrimSpace(k.kialiURL)
	if baseStr == "" {
		return "", fmt.Errorf("kiali server URL not configured")
	}
	baseURL, err := url.Parse(baseStr)
	if err != nil {
		return "", fmt.Errorf("invalid kiali base URL: %w", err)
	}
	if endpoint == "" {
		return baseURL.String(), nil
	}
	endpoint = strings.TrimSpace(endpoint)
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint path: %w", err)
	}
	// Reject absolute URLs - endpoint should be a relative path
	if endpointURL.Scheme != "" || endpointURL.Host != "" {
		return "", fmt.Errorf("endpoint must be a relative path, not an absolute URL")
	}
	resultURL, err := url.JoinPath(baseURL.String(), endpointURL.Path)
	if err != nil {
		return "", fmt.Errorf("failed to join kiali base URL with endpoint path: %w", err)
	}
	u, err := url.Parse(resultURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse joined URL: %w", err)
	}
	u.RawQuery = endpointURL.RawQuery
	u.Fragment = endpointURL.Fragment
	return u.String(), nil
}

func (k *Kiali) createHTTPClient() *http.Client {
	// Base TLS configuration, optionally extended with a custom CA
	tlsConfig := &tls.Config{
		InsecureSkipVerify: k.kialiInsecure,
	}

	if caValue := strings.TrimSpace(k.certificateAuthority); caValue != "" {
		caPEM, err := os.ReadFile(caValue)
		if err != nil {
			klog.Errorf("failed to read CA certificate from file %s: %v; proceeding without custom CA", caValue, err)
			return &http.Client{
				Transport: &http.Transport{
					TLSClientConfig: tlsConfig,
				},
			}
		}

		// Start with the host system pool when possible so we don't drop system roots
		var certPool *x509.CertPool
		if systemPool, err := x509.SystemCertPool(); err == nil && systemPool != nil {
			certPool = systemPool
		} else {
			certPool = x509.NewCertPool()
		}
		if ok := certPool.AppendCertsFromPEM(caPEM); ok {
			tlsConfig.RootCAs = certPool
		} else {
			klog.V(0).Infof("failed to append provided certificate authority; proceeding without custom CA")
		}
	}

	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: tlsConfig,
		},
	}
}

func (k *Kiali) authorizationHeader() string {
	if k == nil {
		return ""
	}
	token := strings.TrimSpace(k.bearerToken)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}

// executeRequest executes a GET request against the given endpoint and
// returns the response body. Transport failures and non-2xx statuses
// propagate to the caller unmodified; the suite performs no retries.
func (k *Kiali) executeRequest(ctx context.Context, endpoint string) (int, []byte, error) {
	apiCallURL, err := k.validateAndGetURL(endpoint)
	if err != nil {
		return 0, nil, err
	}
	klog.V(2).Infof("kiali API call: GET %s", apiCallURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiCallURL, nil)
	if err != nil {
		return 0, nil, err
	}
	if authHeader := k.authorizationHeader(); authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	client := k.createHTTPClient()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// getJSON fetches the endpoint and decodes the response into target.
// A 404 is not an error: it reports found=false so detail queries can map a
// missing upstream document to an explicit not-found result.
func (k *Kiali) getJSON(ctx context.Context, endpoint string, target any) (bool, error) {
	status, body, err := k.executeRequest(ctx, endpoint)
	if err != nil {
		return false, err
	}
	if status == http.StatusNotFound {
		return false, nil
	}
	if status < 200 || status >= 300 {
		if len(body) > 0 {
			return false, fmt.Errorf("kiali API error: %s", strings.TrimSpace(string(body)))
		}
		return false, fmt.Errorf("kiali API error: status %d", status)
	}
	if len(body) == 0 || string(body) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return false, fmt.Errorf("failed to decode kiali response from %s: %w", endpoint, err)
	}
	return true, nil
}
