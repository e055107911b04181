package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	api "github.com/agency/cryptoservice/internal/server/nats"
)

// Client is the minimal service surface the console needs. The real
// implementation talks NATS; tests can provide a stub.
type Client interface {
	Save(message string) (*api.SaveMessageResponse, error)
	Receive(id, password, key string) (*api.ReceiveMessageResponse, error)
	Close()
}

// NatsClient sends requests over NATS request/reply and decodes the JSON
// responses.
type NatsClient struct {
	conn    *nats.Conn
	timeout time.Duration
}

func NewNatsClient(url string, timeout time.Duration) (*NatsClient, error) {
	conn, err := nats.Connect(url, nats.Name("crypto-service-cli"))
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", url, err)
	}
	return &NatsClient{conn: conn, timeout: timeout}, nil
}

func (c *NatsClient) request(subject string, request any, response any) error {
	data, err := json.Marshal(request)
	if err != nil {
		return err
	}

	msg, err := c.conn.Request(subject, data, c.timeout)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}

	return json.Unmarshal(msg.Data, response)
}

func (c *NatsClient) Save(message string) (*api.SaveMessageResponse, error) {
	resp := &api.SaveMessageResponse{}
	err := c.request(api.SubjectSave, &api.SaveMessageRequest{Message: message}, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *NatsClient) Receive(id, password, key string) (*api.ReceiveMessageResponse, error) {
	resp := &api.ReceiveMessageResponse{}
	req := &api.ReceiveMessageRequest{ID: id, Password: password, AesKey: key}
	if err := c.request(api.SubjectReceive, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *NatsClient) Close() {
	c.conn.Close()
}
