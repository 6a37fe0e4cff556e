package introspection

import (
	"encoding/json"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

// ParseJSON decodes an introspection result from disk. Tools disagree on the
// envelope, so both {"data":{"__schema":…}} and {"__schema":…} are accepted.
func ParseJSON(b []byte) (*domain.Schema, error) {
	var envelope struct {
		Data *struct {
			Schema *domain.Schema `json:"__schema"`
		} `json:"data"`
		Schema *domain.Schema `json:"__schema"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return nil, &domain.OpError{
			Op:   "introspection.decode",
			Kind: domain.KindInvalidSchema,
			Err:  err,
		}
	}

	switch {
	case envelope.Data != nil && envelope.Data.Schema != nil:
		return envelope.Data.Schema, nil
	case envelope.Schema != nil:
		return envelope.Schema, nil
	}
	return nil, &domain.OpError{
		Op:   "introspection.decode",
		Kind: domain.KindInvalidSchema,
		Err:  domain.ErrInvalidSchema,
	}
}

// EncodeJSON renders a schema in the conventional {"data":{"__schema":…}}
// envelope, indented for humans and diffs.
func EncodeJSON(schema *domain.Schema) ([]byte, error) {
	envelope := map[string]any{
		"data": map[string]any{
			"__schema": schema,
		},
	}
	b, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, &domain.OpError{
			Op:   "introspection.encode",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	return append(b, '\n'), nil
}
