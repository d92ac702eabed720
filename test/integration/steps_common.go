package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/substack-in-go/pkg/reminder"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	// ids maps names used in feature files to created resource ids.
	ids     map[string]uint
	summary reminder.Summary
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:  tc,
		ids: make(map[string]uint),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the SubStack server is running$`, s.theServerIsRunning)

	// Authentication steps
	sc.Step(`^I register with email "([^"]*)" and password "([^"]*)"$`, s.iRegister)
	sc.Step(`^I log in with email "([^"]*)" and password "([^"]*)"$`, s.iLogIn)
	sc.Step(`^I am signed in as "([^"]*)"$`, s.iAmSignedInAs)
	sc.Step(`^I should receive an access token$`, s.iShouldReceiveAnAccessToken)
	sc.Step(`^I use a token signed with the wrong secret$`, s.iUseATokenSignedWithTheWrongSecret)
	sc.Step(`^I use an expired token$`, s.iUseAnExpiredToken)
	sc.Step(`^I sign out$`, s.iSignOut)

	// Request steps
	sc.Step(`^I send a (GET|POST|PUT|PATCH|DELETE) request to "([^"]*)"$`, s.iSendARequestTo)
	sc.Step(`^I send a (POST|PUT|PATCH) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)

	// Subscription steps
	sc.Step(`^I have a (\w+) subscription "([^"]*)" costing ([0-9.]+) (\w+) renewing in (\d+) days?$`, s.iHaveASubscription)
	sc.Step(`^I have a (\w+) subscription "([^"]*)" costing ([0-9.]+) (\w+) renewing in (\d+) days? with a (\d+) day reminder$`, s.iHaveASubscriptionWithReminder)
	sc.Step(`^I create a category "([^"]*)" with icon "([^"]*)" and color "([^"]*)"$`, s.iCreateACategory)
	sc.Step(`^the reminder job runs$`, s.theReminderJobRuns)
	sc.Step(`^the reminder job summary should show (\d+) due and (\d+) emails? sent$`, s.theReminderSummaryShows)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response JSON at "([^"]*)" should be "([^"]*)"$`, s.theResponseJSONAtShouldBe)
	sc.Step(`^the response JSON at "([^"]*)" should have (\d+) items?$`, s.theResponseJSONAtShouldHaveItems)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
}

func (s *StepsContext) theServerIsRunning() error {
	// Started once for the suite by NewTestContext.
	return nil
}

// placeholder matches {name} references to created resources in paths and bodies.
var placeholder = regexp.MustCompile(`\{([^{}"]+)\}`)

// expand replaces {name} with the id recorded for name.
func (s *StepsContext) expand(text string) (string, error) {
	var missing string
	out := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		id, ok := s.ids[name]
		if !ok {
			missing = name
			return m
		}
		return strconv.FormatUint(uint64(id), 10)
	})
	if missing != "" {
		return "", fmt.Errorf("no resource named %q has been created", missing)
	}
	return out, nil
}

func (s *StepsContext) do(method, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

func (s *StepsContext) doJSON(method, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.do(method, path, body)
}

func (s *StepsContext) iSendARequestTo(method, path string) error {
	path, err := s.expand(path)
	if err != nil {
		return err
	}
	return s.do(method, path, nil)
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	path, err := s.expand(path)
	if err != nil {
		return err
	}
	content, err := s.expand(body.Content)
	if err != nil {
		return err
	}
	return s.do(method, path, []byte(content))
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response == nil {
		return fmt.Errorf("no request has been sent")
	}
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

// lookup walks a dotted path such as "items.0.name" through the response JSON.
func (s *StepsContext) lookup(path string) (interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal(s.responseBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w: %s", err, string(s.responseBody))
	}
	if path == "" || path == "." {
		return doc, nil
	}

	current := doc
	for _, key := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			v, ok := node[key]
			if !ok {
				return nil, fmt.Errorf("key %q not found in %s", key, string(s.responseBody))
			}
			current = v
		case []interface{}:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %s", key, string(s.responseBody))
			}
			current = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %v with %q", current, key)
		}
	}
	return current, nil
}

func formatJSONValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		data, _ := json.Marshal(val)
		return string(data)
	}
}

func (s *StepsContext) theResponseJSONAtShouldBe(path, expected string) error {
	v, err := s.lookup(path)
	if err != nil {
		return err
	}
	expected, err = s.expand(expected)
	if err != nil {
		return err
	}
	if actual := formatJSONValue(v); actual != expected {
		return fmt.Errorf("expected %s to be %q, got %q", path, expected, actual)
	}
	return nil
}

func (s *StepsContext) theResponseJSONAtShouldHaveItems(path string, count int) error {
	v, err := s.lookup(path)
	if err != nil {
		return err
	}
	switch node := v.(type) {
	case []interface{}:
		if len(node) != count {
			return fmt.Errorf("expected %d items at %s, got %d: %s", count, path, len(node), string(s.responseBody))
		}
	case map[string]interface{}:
		if len(node) != count {
			return fmt.Errorf("expected %d keys at %s, got %d: %s", count, path, len(node), string(s.responseBody))
		}
	default:
		return fmt.Errorf("%s is not a list: %v", path, v)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("expected response to contain %q, got %s", text, string(s.responseBody))
	}
	return nil
}
