// Package mocks provides a testify-based mock of the jsonrpc.Client
// interface for use in adapter tests.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of jsonrpc.Client.
type Client struct {
	mock.Mock
}

// Fetch provides a mock function with the given fields.
func (m *Client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	args := make([]any, 0, len(params)+2)
	args = append(args, ctx, method)
	args = append(args, params...)

	ret := m.Called(args...)

	var data json.RawMessage
	if ret.Get(0) != nil {
		data = ret.Get(0).(json.RawMessage)
	}

	return data, ret.Error(1)
}
