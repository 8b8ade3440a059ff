// Package testkit drives HTTP API tests from JSON scenario files.
//
// A scenario describes one request, the expected status and body, and the
// canned answers the model endpoint should give while the request runs:
//
//	{
//	  "name": "recipe generated",
//	  "requestMethod": "POST",
//	  "requestUrl": "/generate-recipe",
//	  "requestFileName": "recipe_request.json",
//	  "responseFileName": "recipe_response.json",
//	  "expectedCode": 200,
//	  "genaiMockStep": [
//	    {"matchUrl": ":generateContent", "returnData": {"text": "Pasta\nBoil water."}}
//	  ]
//	}
//
// Request and response file names resolve relative to the scenario file.
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Scenario is a single request/response expectation.
type Scenario struct {
	Name             string            `json:"name"`
	RequestMethod    string            `json:"requestMethod"`
	RequestURL       string            `json:"requestUrl"`
	RequestFileName  string            `json:"requestFileName"`
	ResponseFileName string            `json:"responseFileName"`
	ResponseText     string            `json:"responseText"`
	ExpectedCode     int               `json:"expectedCode"`
	Headers          map[string]string `json:"headers"`
	GenAIMockStep    []MockStep        `json:"genaiMockStep"`

	dir string
}

// MockStep answers outgoing model calls whose URL contains MatchURL.
type MockStep struct {
	MatchURL   string         `json:"matchUrl"`
	ReturnData MockReturnData `json:"returnData"`
}

// MockReturnData is the synthetic response for a mock step. StatusCode
// defaults to 200. When Body is empty, Text is wrapped in a generateContent
// envelope.
type MockReturnData struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
	Text       string `json:"text"`
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// RequestBodyPath is the absolute path of the request body file, or "".
func (s *Scenario) RequestBodyPath() string { return s.resolve(s.RequestFileName) }

// ResponseBodyPath is the absolute path of the expected response file, or "".
func (s *Scenario) ResponseBodyPath() string { return s.resolve(s.ResponseFileName) }

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// LoadAllFromDir loads every *.json file in dir that parses as a scenario.
// Files ending in _request.json or _response.json are bodies, not scenarios.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}
	sort.Strings(entries)

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		if isBodyFile(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}

func isBodyFile(path string) bool {
	base := filepath.Base(path)
	for _, suffix := range []string{"_request.json", "_response.json"} {
		if len(base) > len(suffix) && base[len(base)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}
