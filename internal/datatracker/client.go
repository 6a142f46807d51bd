// Package datatracker queries the IETF Datatracker metadata service for
// role-tagged document data.
package datatracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"rfcstat/internal/config"
	apperrors "rfcstat/internal/errors"
	"rfcstat/internal/models"
)

// Client issues the metadata queries for one report run. It holds no
// package-level state; the HTTP client is injected and lives as long as
// the run does.
type Client struct {
	baseURL   string
	endpoints config.EndpointsConfig
	httpc     *http.Client
	log       *slog.Logger
}

// New creates a Client from validated configuration.
func New(cfg *config.Config, httpc *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.Service.URL, "/"),
		endpoints: cfg.Endpoints,
		httpc:     httpc,
		log:       logger,
	}
}

// meta mirrors the service's pagination block. next is decoded but never
// followed; queries request service-side complete results.
type meta struct {
	TotalCount int    `json:"total_count"`
	Next       string `json:"next"`
}

type personEnvelope struct {
	Meta    meta            `json:"meta"`
	Objects []models.Person `json:"objects"`
}

type documentEnvelope struct {
	Meta    meta             `json:"meta"`
	Objects []documentRecord `json:"objects"`
}

// documentRecord covers the object shapes the role endpoints return. A
// record references its document either by name or by one of the resource
// URI fields.
type documentRecord struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Doc      string `json:"doc"`
	Review   string `json:"review"`
	Pos      string `json:"pos"`
}

// identifier extracts the document identifier from whichever field the
// record carries.
func (r documentRecord) identifier() (string, bool) {
	if r.Name != "" {
		return r.Name, true
	}
	for _, uri := range []string{r.Document, r.Doc, r.Review} {
		if uri == "" {
			continue
		}
		id := path.Base(strings.TrimSuffix(uri, "/"))
		if id != "" && id != "." && id != "/" {
			return id, true
		}
	}
	return "", false
}

func (r documentRecord) isDiscuss() bool {
	return strings.HasSuffix(strings.TrimSuffix(r.Pos, "/"), "/discuss")
}

// ResolvePerson looks the name up against the person endpoint and returns
// the service's record for it. The name must be non-empty; resolution
// happens before any role query so that all five fetches key on the same
// person resource id.
func (c *Client) ResolvePerson(ctx context.Context, name string) (models.Person, error) {
	const op = "resolve person"

	if strings.TrimSpace(name) == "" {
		return models.Person{}, apperrors.Input(op, "name must not be empty")
	}

	u, err := c.buildURL(c.endpoints.Person, map[string]string{"name": url.QueryEscape(name)})
	if err != nil {
		return models.Person{}, err
	}

	var result personEnvelope
	if err := c.getJSON(ctx, op, u, &result); err != nil {
		return models.Person{}, err
	}

	if len(result.Objects) == 0 {
		return models.Person{}, apperrors.Input(op, fmt.Sprintf("no person found for %q", name))
	}
	if len(result.Objects) > 1 {
		c.log.Warn("ambiguous name, using first match",
			"name", name, "matches", len(result.Objects), "using", result.Objects[0].Name)
	}
	return result.Objects[0], nil
}

// Fetch returns the document identifiers matching one role for the person,
// in the order the service returned them. A single attempt per query; any
// failure aborts the run.
func (c *Client) Fetch(ctx context.Context, role models.Role, person models.Person) ([]string, error) {
	op := "fetch " + string(role)

	tmpl, err := c.endpointFor(role)
	if err != nil {
		return nil, err
	}
	u, err := c.buildURL(tmpl, map[string]string{"person": strconv.Itoa(person.ID)})
	if err != nil {
		return nil, err
	}

	var result documentEnvelope
	if err := c.getJSON(ctx, op, u, &result); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Objects))
	for i, obj := range result.Objects {
		id, ok := obj.identifier()
		if !ok {
			return nil, apperrors.Parse(op, fmt.Errorf("object %d carries no document reference", i))
		}
		if role == models.RoleBalloted && obj.isDiscuss() {
			c.log.Debug("discuss position", "doc", id)
		}
		ids = append(ids, id)
	}

	c.log.Debug("category fetched", "role", string(role), "count", len(ids))
	return ids, nil
}

func (c *Client) endpointFor(role models.Role) (string, error) {
	switch role {
	case models.RoleAuthored:
		return c.endpoints.Authored, nil
	case models.RoleShepherded:
		return c.endpoints.Shepherded, nil
	case models.RoleResponsibleAD:
		return c.endpoints.ResponsibleAD, nil
	case models.RoleBalloted:
		return c.endpoints.Balloted, nil
	case models.RoleAcknowledged:
		return c.endpoints.Acknowledged, nil
	}
	return "", apperrors.Input("select endpoint", fmt.Sprintf("unknown role %q", role))
}

// buildURL fills the template placeholders and pins the query to JSON
// format with unbounded page size.
func (c *Client) buildURL(template string, vars map[string]string) (string, error) {
	p := template
	for key, val := range vars {
		p = strings.ReplaceAll(p, "{"+key+"}", val)
	}

	u, err := url.Parse(c.baseURL + p)
	if err != nil {
		return "", apperrors.Input("build query url", err.Error())
	}
	q := u.Query()
	q.Set("format", "json")
	q.Set("limit", "0")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// getJSON performs one GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, op, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return apperrors.Network(op, err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("requesting", "op", op, "url", rawURL)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperrors.Network(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apperrors.Network(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Parse(op, err)
	}
	return nil
}
