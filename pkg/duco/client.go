package duco

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Client is the interface to the DucoBox Connectivity Board REST API. The
// interface is primarily there to allow mocking in tests.
type Client interface {
	// Connect verifies the board is reachable by fetching /info once.
	Connect() error
	// Disconnect closes any idle connections.
	Disconnect() error

	// Read endpoints, one per document section.

	GetInfo() (Section, error)
	GetNodes() ([]Section, error)
	GetConfig() (Section, error)
	GetConfigNodes() ([]Section, error)
	GetActions() ([]Action, error)
	GetActionNodes() ([]NodeActions, error)

	// SetConfigValue writes one box-level config leaf parameter.
	SetConfigValue(module string, submodule string, key string, value float64) error
	// SetNodeConfigValue writes one node-level config leaf parameter.
	SetNodeConfigValue(nodeId int, key string, value float64) error
	// ExecuteAction triggers a box-level action without a value.
	ExecuteAction(action string) error
	// ExecuteNodeAction triggers an enum action on one node.
	ExecuteNodeAction(nodeId int, action string, value string) error
}

type client struct {
	httpClient *http.Client
	options    ClientOptions
}

// NewClient will create a DucoBox client with all the options specified in the
// provided ClientOptions.
func NewClient(options *ClientOptions) Client {
	return &client{
		httpClient: &http.Client{
			Timeout: options.RequestTimeout,
			Transport: &http.Transport{
				// The board serves a self-signed certificate.
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			},
		},
		options: *options,
	}
}

func (c *client) Connect() error {
	if _, err := c.GetInfo(); err != nil {
		return fmt.Errorf("error reaching the DucoBox at %s: %w", c.options.Host, err)
	}
	return nil
}

func (c *client) Disconnect() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *client) GetInfo() (Section, error) {
	return c.getSection("info")
}

func (c *client) GetNodes() ([]Section, error) {
	return c.getNodeList("info/nodes")
}

func (c *client) GetConfig() (Section, error) {
	return c.getSection("config")
}

func (c *client) GetConfigNodes() ([]Section, error) {
	return c.getNodeList("config/nodes")
}

func (c *client) GetActions() ([]Action, error) {
	section, err := c.getSection("action")
	if err != nil {
		return nil, err
	}
	return DecodeActions(section), nil
}

func (c *client) GetActionNodes() ([]NodeActions, error) {
	section, err := c.getSection("action/nodes")
	if err != nil {
		return nil, err
	}
	return DecodeNodeActions(section), nil
}

func (c *client) SetConfigValue(module string, submodule string, key string, value float64) error {
	body := Section{
		module: Section{
			submodule: Section{
				key: Section{"Val": value},
			},
		},
	}
	return c.patchRequest("config", body)
}

func (c *client) SetNodeConfigValue(nodeId int, key string, value float64) error {
	body := Section{
		key: Section{"Val": value},
	}
	return c.patchRequest("config/nodes/"+strconv.Itoa(nodeId), body)
}

func (c *client) ExecuteAction(action string) error {
	body := Section{"Action": action}
	return c.postRequest("action", body)
}

func (c *client) ExecuteNodeAction(nodeId int, action string, value string) error {
	body := Section{"Action": action, "Val": value}
	return c.postRequest("action/nodes/"+strconv.Itoa(nodeId), body)
}

// getSection performs a GET request and decodes the payload as one raw
// document section.
func (c *client) getSection(path string) (Section, error) {
	body, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var section Section
	if err := json.Unmarshal(body, &section); err != nil {
		return nil, fmt.Errorf("error parsing response for path %s: %w", path, err)
	}
	return section, nil
}

// getNodeList performs a GET request on an endpoint returning a {"Nodes":
// [...]} payload and unwraps the list. A payload without Nodes yields an empty
// list.
func (c *client) getNodeList(path string) ([]Section, error) {
	section, err := c.getSection(path)
	if err != nil {
		return nil, err
	}
	rawNodes, ok := section["Nodes"].([]interface{})
	if !ok {
		return []Section{}, nil
	}
	nodes := []Section{}
	for _, rawNode := range rawNodes {
		if node, isSection := rawNode.(map[string]interface{}); isSection {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

func (c *client) patchRequest(path string, body interface{}) error {
	_, err := c.doRequest(http.MethodPatch, path, body)
	return err
}

func (c *client) postRequest(path string, body interface{}) error {
	_, err := c.doRequest(http.MethodPost, path, body)
	return err
}

func (c *client) doRequest(method string, path string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = strings.NewReader(string(jsonBody))
	}
	callUrl := "https://" + c.options.Host + ":" + strconv.Itoa(c.options.Port) + "/" + path

	request, err := http.NewRequest(method, callUrl, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error building the request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("error doing the request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading the response: %w", err)
	}

	if response.StatusCode >= 300 {
		return nil, fmt.Errorf("error response from the board, httpStatus=%d: %s", response.StatusCode, responseBody)
	}

	log.Debug().
		Str("url", callUrl).
		Str("status", response.Status).
		Msg("Response received")
	log.Trace().
		Str("body", string(responseBody)).
		Msg("Response body")

	return responseBody, nil
}
