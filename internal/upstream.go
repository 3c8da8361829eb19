package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoMatches is returned by Search when the graph store has no binding
// for the query.
var ErrNoMatches = errors.New("no players found")

const unknownNationality = "Unknown to FIFA database."

const searchQuery = `PREFIX fot: <http://www.example.org/group-27/football-ontology/>
SELECT ?player ?name ?team ?position ?height ?marketValue ?img ?birth_date ?wage ?potential ?rating ?description ?foot ?nationality
WHERE {
    ?player fot:name ?name .
    ?player fot:hasTeam ?team .
    ?player fot:hasPosition ?position .
    ?player fot:height ?height .
    ?player fot:marketValue ?marketValue .
    ?player fot:img ?img .
    ?player fot:birthDate ?birth_date .
    ?player fot:hasWage ?wage .
    ?player fot:hasPotential ?potential .
    ?player fot:hasRating ?rating .
    ?player fot:description ?description .
    ?player fot:foot ?foot .
    OPTIONAL { ?player fot:bornInCountry ?nationality . }
    FILTER (CONTAINS(LCASE(?name), LCASE("%s")))
}
LIMIT 10`

var sparqlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// Upstream talks to the external player graph and news feed. Calls are
// made once; failures go straight back to the caller.
type Upstream struct {
	sparqlEndpoint string
	newsURL        string
	client         *http.Client
}

func NewUpstream(sparqlEndpoint, newsURL string, timeout time.Duration) *Upstream {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Upstream{
		sparqlEndpoint: sparqlEndpoint,
		newsURL:        newsURL,
		client:         &http.Client{Timeout: timeout},
	}
}

type sparqlResponse struct {
	Results *struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

func (u *Upstream) Search(ctx context.Context, q string) ([]SearchResult, error) {
	form := url.Values{"query": {fmt.Sprintf(searchQuery, sparqlEscaper.Replace(q))}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.sparqlEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sparql request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("sparql endpoint returned %s", resp.Status)
	}

	var body sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode sparql response: %w", err)
	}
	if body.Results == nil || len(body.Results.Bindings) == 0 {
		return nil, ErrNoMatches
	}

	out := make([]SearchResult, 0, len(body.Results.Bindings))
	for _, b := range body.Results.Bindings {
		r := SearchResult{
			Player:      b["player"].Value,
			Name:        b["name"].Value,
			Team:        b["team"].Value,
			Position:    b["position"].Value,
			Height:      b["height"].Value,
			MarketValue: b["marketValue"].Value,
			Img:         b["img"].Value,
			BirthDate:   b["birth_date"].Value,
			Wage:        b["wage"].Value,
			Potential:   b["potential"].Value,
			Rating:      b["rating"].Value,
			Description: b["description"].Value,
			Foot:        b["foot"].Value,
			Nationality: unknownNationality,
		}
		if n, ok := b["nationality"]; ok {
			r.Nationality = n.Value
		}
		out = append(out, r)
	}
	return out, nil
}

// News returns the feed payload untouched.
func (u *Upstream) News(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.newsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New("Failed to fetch news")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news: %w", err)
	}
	if !json.Valid(data) {
		return nil, errors.New("news feed returned invalid JSON")
	}
	return json.RawMessage(data), nil
}
