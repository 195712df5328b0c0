package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
)

// MalformedInputError rejects user input before anything is sent.
type MalformedInputError struct {
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// describeError renders an error for the inline error panel.
func describeError(err error) string {
	var (
		httpErr  *apiclient.HTTPError
		netErr   *apiclient.NetworkError
		missing  *board.TargetMissingError
		chartErr *chart.ConstructionError
		inputErr *MalformedInputError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "Request canceled"
	case errors.As(err, &inputErr):
		return fmt.Sprintf("Invalid %s: %s", inputErr.Field, inputErr.Reason)
	case errors.As(err, &httpErr):
		switch {
		case httpErr.NotFound() && httpErr.Detail != "":
			return "Not found: " + httpErr.Detail
		case httpErr.Detail != "":
			return fmt.Sprintf("API returned %d: %s", httpErr.Status, httpErr.Detail)
		default:
			return fmt.Sprintf("API returned %d", httpErr.Status)
		}
	case errors.As(err, &netErr):
		return fmt.Sprintf("Cannot reach the Heimdall API (%v)", netErr.Err)
	case errors.As(err, &missing):
		return fmt.Sprintf("Missing %s %q", missing.Kind, missing.ID)
	case errors.As(err, &chartErr):
		return fmt.Sprintf("Chart %q could not be drawn", chartErr.Name)
	default:
		return err.Error()
	}
}
