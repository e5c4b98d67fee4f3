package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/codcodedob/aura/pkg/utils/logging"
)

// Handle logs the error with a message and reports it to Sentry when the
// SDK is initialized. This function ensures that all errors, especially
// swallowed ones such as best-effort persistence failures, stay observable
// to operators.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.CaptureException(err)
	}
}

// HandleHTTP logs the error and writes a JSON error response body
// ({"error": ...}) with the given status code.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	Handle(ctx, err, "HTTP error")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	body := map[string]string{"error": err.Error()}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		logging.From(ctx).Error("failed to write error response", "error", encErr.Error())
	}
}
