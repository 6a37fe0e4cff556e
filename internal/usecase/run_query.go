package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/internal/ports"
	"github.com/davidgraeff/graphql-client/pkg/client"
)

// RunQuery executes a query document against a live endpoint.
type RunQuery struct {
	transport ports.GraphQLTransport
}

func NewRunQuery(t ports.GraphQLTransport) *RunQuery {
	return &RunQuery{transport: t}
}

type RunParams struct {
	QueryPath string
	Query     string
	// OperationName selects the operation when the document has several.
	OperationName string
	// Variables is raw JSON, forwarded as-is.
	Variables json.RawMessage
	// Extracts maps variable names to JSONPath expressions evaluated
	// against the response data.
	Extracts map[string]string
}

type ExtractResult struct {
	Name    string
	Success bool
	Value   any
	Message string
}

type RunOutcome struct {
	OperationName string
	Response      client.Response
	Extracts      []ExtractResult
}

func (uc *RunQuery) Execute(ctx context.Context, p RunParams) (RunOutcome, error) {
	opName, err := resolveOperationName(p)
	if err != nil {
		return RunOutcome{}, err
	}

	req := client.Request{
		Query:         p.Query,
		OperationName: opName,
	}
	if len(p.Variables) > 0 {
		req.Variables = p.Variables
	}

	resp, err := uc.transport.Raw(ctx, req)
	if err != nil {
		return RunOutcome{}, &domain.OpError{
			Op:   "run.execute",
			Kind: domain.KindExecution,
			Path: p.QueryPath,
			Err:  err,
		}
	}

	outcome := RunOutcome{OperationName: opName, Response: resp}
	outcome.Extracts = applyExtracts(resp.Data, p.Extracts)
	return outcome, nil
}

// resolveOperationName parses the document to pick the operation to send.
// Single-operation documents need no explicit name; multi-operation
// documents do, matching server behavior.
func resolveOperationName(p RunParams) (string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: p.QueryPath, Input: p.Query})
	if err != nil {
		return "", &domain.OpError{
			Op:   "run.parse",
			Kind: domain.KindInvalidQuery,
			Path: p.QueryPath,
			Err:  err,
		}
	}
	if len(doc.Operations) == 0 {
		return "", &domain.OpError{
			Op:   "run.parse",
			Kind: domain.KindInvalidQuery,
			Path: p.QueryPath,
			Err:  fmt.Errorf("document contains no operations"),
		}
	}

	pick := func(op *ast.OperationDefinition) (string, error) {
		if op.Operation == ast.Subscription {
			return "", &domain.OpError{
				Op:   "run.parse",
				Kind: domain.KindInvalidQuery,
				Path: p.QueryPath,
				Err:  fmt.Errorf("subscriptions cannot be executed over a single HTTP request"),
			}
		}
		return op.Name, nil
	}

	if p.OperationName != "" {
		for _, op := range doc.Operations {
			if op.Name == p.OperationName {
				return pick(op)
			}
		}
		return "", &domain.OpError{
			Op:   "run.parse",
			Kind: domain.KindNotFound,
			Path: p.QueryPath,
			Err:  fmt.Errorf("operation %q not found in document", p.OperationName),
		}
	}

	if len(doc.Operations) > 1 {
		return "", &domain.OpError{
			Op:   "run.parse",
			Kind: domain.KindInvalidQuery,
			Path: p.QueryPath,
			Err:  fmt.Errorf("document has %d operations; pass --operation", len(doc.Operations)),
		}
	}
	return pick(doc.Operations[0])
}

// applyExtracts evaluates JSONPath rules against the response data. A rule
// failing does not stop the others; order is stable for output.
func applyExtracts(data json.RawMessage, rules map[string]string) []ExtractResult {
	if len(rules) == 0 {
		return nil
	}

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var doc any
	if len(data) == 0 || json.Unmarshal(data, &doc) != nil {
		out := make([]ExtractResult, 0, len(names))
		for _, name := range names {
			out = append(out, ExtractResult{
				Name:    name,
				Message: "response data is not valid JSON",
			})
		}
		return out
	}

	out := make([]ExtractResult, 0, len(names))
	for _, name := range names {
		expr := strings.TrimSpace(rules[name])
		if expr == "" {
			out = append(out, ExtractResult{Name: name, Message: "empty jsonpath expression"})
			continue
		}

		val, err := jsonpath.Get(expr, doc)
		if err != nil {
			out = append(out, ExtractResult{
				Name:    name,
				Message: fmt.Sprintf("jsonpath error: %v", err),
			})
			continue
		}
		out = append(out, ExtractResult{Name: name, Success: true, Value: val})
	}
	return out
}
