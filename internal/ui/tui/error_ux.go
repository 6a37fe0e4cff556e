package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns an error into a short banner line. Details stay in the
// log file.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "gqlschema") {
				return "Schema file not found"
			}
			if strings.Contains(oe.Op, "config") {
				return "Config not found"
			}
			return "Not found"

		case domain.KindInvalidSchema:
			base := "schema"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			line := extractLine(err.Error())
			if line != "" {
				return "Invalid schema at " + base + " line " + line
			}
			return "Invalid schema (" + base + ")"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		case domain.KindExecution:
			return "Endpoint unreachable (see logs)"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
