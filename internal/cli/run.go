package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/davidgraeff/graphql-client/internal/infra/logger"
	"github.com/davidgraeff/graphql-client/internal/infra/runstore"
	"github.com/davidgraeff/graphql-client/internal/usecase"
)

func runCmd(configPath *string) *cobra.Command {
	var endpoint string
	var operation string
	var variables string
	var variablesFile string
	var extracts []string
	var headers []string
	var authorization string
	var format string
	var noSave bool

	c := &cobra.Command{
		Use:   "run <query_path>",
		Short: "Execute a query document against the configured endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queryPath := args[0]

			proj, foundConfig, err := loadProject(*configPath)
			if err != nil {
				return err
			}
			if endpoint != "" {
				proj.Endpoint = endpoint
			}
			if proj.Endpoint == "" {
				return errors.New("no endpoint: pass --endpoint or configure it in .graphql-client.yml")
			}
			if err := applyEndpointFlags(&proj, headers, authorization); err != nil {
				return err
			}

			query, err := os.ReadFile(queryPath)
			if err != nil {
				return err
			}

			vars, err := resolveVariables(variables, variablesFile)
			if err != nil {
				return err
			}

			rules, err := parseExtracts(extracts)
			if err != nil {
				return err
			}

			logger.L().Info("run.start", "query", queryPath, "endpoint", proj.Endpoint)

			uc := usecase.NewRunQuery(newTransport(proj))
			started := time.Now()
			out, err := uc.Execute(cmd.Context(), usecase.RunParams{
				QueryPath:     queryPath,
				Query:         string(query),
				OperationName: operation,
				Variables:     vars,
				Extracts:      rules,
			})
			if err != nil {
				logger.L().Error("run.failed", "query", queryPath, "err", err.Error())
				return err
			}
			duration := time.Since(started)

			if !noSave {
				store := runstore.NewJSONStore(projectRoot(foundConfig))
				id, saveErr := store.SaveRun(runArtifact(queryPath, proj.Endpoint, started, duration, out))
				if saveErr != nil {
					logger.L().Error("run.save_failed", "err", saveErr.Error())
				} else {
					logger.L().Info("run.saved", "id", id)
				}
			}

			if err := printRun(cmd.OutOrStdout(), out, duration, format); err != nil {
				return err
			}

			if len(out.Response.Errors) > 0 {
				return fmt.Errorf("server returned %d GraphQL error(s)", len(out.Response.Errors))
			}
			if n := countFailedExtracts(out.Extracts); n > 0 {
				return fmt.Errorf("%d extract(s) failed", n)
			}
			return nil
		},
	}

	c.Flags().StringVar(&endpoint, "endpoint", "", "GraphQL endpoint (default: from config)")
	c.Flags().StringVar(&operation, "operation", "", "operation to execute when the document has several")
	c.Flags().StringVar(&variables, "variables", "", "operation variables as a JSON object")
	c.Flags().StringVar(&variablesFile, "variables-file", "", "read operation variables from a JSON file")
	c.Flags().StringArrayVar(&extracts, "extract", nil, "extract a value, \"name=$.json.path\" (repeatable)")
	c.Flags().StringArrayVar(&headers, "header", nil, "additional header, \"Name: value\" (repeatable)")
	c.Flags().StringVar(&authorization, "authorization", "", "bearer token for the endpoint")
	c.Flags().StringVar(&format, "format", "pretty", "output format: pretty|json")
	c.Flags().BoolVar(&noSave, "no-save", false, "do not save a run artifact under .graphql-client/runs/")
	return c
}

func resolveVariables(inline, file string) (json.RawMessage, error) {
	if inline != "" && file != "" {
		return nil, errors.New("--variables and --variables-file are mutually exclusive")
	}

	var raw []byte
	switch {
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		raw = b
	case inline != "":
		raw = []byte(inline)
	default:
		return nil, nil
	}

	if !json.Valid(raw) {
		return nil, errors.New("variables are not valid JSON")
	}
	return json.RawMessage(raw), nil
}

func runArtifact(queryPath, endpoint string, started time.Time, duration time.Duration, out usecase.RunOutcome) runstore.Artifact {
	a := runstore.Artifact{
		QueryPath:     queryPath,
		OperationName: out.OperationName,
		Endpoint:      endpoint,
		StartedAt:     started.UTC(),
		DurationMS:    duration.Milliseconds(),
		Data:          out.Response.Data,
	}
	for _, e := range out.Response.Errors {
		a.Errors = append(a.Errors, e.Error())
	}
	if len(out.Extracts) > 0 {
		a.Extracted = map[string]any{}
		for _, e := range out.Extracts {
			if e.Success {
				a.Extracted[e.Name] = e.Value
			}
		}
	}
	return a
}

func printRun(w io.Writer, out usecase.RunOutcome, duration time.Duration, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"data": out.Response.Data,
		}
		if len(out.Response.Errors) > 0 {
			payload["errors"] = out.Response.Errors
		}
		if len(out.Extracts) > 0 {
			payload["extracts"] = out.Extracts
		}
		return enc.Encode(payload)

	case "pretty", "":
		printPrettyRun(w, out, duration)
		return nil

	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRun(w io.Writer, out usecase.RunOutcome, duration time.Duration) {
	if out.OperationName != "" {
		fmt.Fprintf(w, "Operation: %s\n", out.OperationName)
	}
	fmt.Fprintf(w, "Duration:  %s\n\n", duration.Round(time.Millisecond))

	if len(out.Response.Data) > 0 {
		fmt.Fprintln(w, prettyJSON(out.Response.Data))
	}

	if len(out.Response.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, e := range out.Response.Errors {
			fmt.Fprintf(w, "  - %s\n", e.Error())
		}
	}

	if len(out.Extracts) > 0 {
		fmt.Fprintf(w, "\nExtracts:\n")
		for _, e := range out.Extracts {
			mark := "✓"
			if !e.Success {
				mark = "✗"
			}
			if e.Success {
				fmt.Fprintf(w, "  %s %s = %v\n", mark, e.Name, e.Value)
			} else {
				fmt.Fprintf(w, "  %s %s — %s\n", mark, e.Name, e.Message)
			}
		}
	}
}

func prettyJSON(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(b)
}

func countFailedExtracts(in []usecase.ExtractResult) int {
	n := 0
	for _, e := range in {
		if !e.Success {
			n++
		}
	}
	return n
}
