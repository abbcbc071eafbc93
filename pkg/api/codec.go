// Package api defines the wire messages of the billsplit RPC services.
//
// Messages are plain Go structs encoded as JSON; JSONCodec plugs that
// encoding into Connect so the same handlers serve the Connect protocol
// over HTTP/1.1 and h2c.
package api

import (
	"encoding/json"
	"fmt"
)

// JSONCodec is a connect.Codec for the plain structs of this package.
// It is registered under the name "json" so clients send application/json.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}
