package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/codcodedob/aura/pkg/usecase"
	"github.com/codcodedob/aura/pkg/utils/errutil"
	"github.com/codcodedob/aura/pkg/utils/safe"
)

// askHandler returns a handler for the single request/response contract of
// the agent: {"input": ...} in, {"response": ...} or {"error": ...} out.
func askHandler(uc *usecase.AskUseCase) http.HandlerFunc {
	type request struct {
		Input string `json:"input"`
	}
	type response struct {
		Response string `json:"response"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body",
				goerr.V("cause", err.Error()),
			), http.StatusBadRequest)
			return
		}

		answer, err := uc.Ask(ctx, req.Input)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrInvalidInput) {
				status = http.StatusBadRequest
			}
			errutil.HandleHTTP(ctx, w, err, status)
			return
		}

		data, err := json.Marshal(response{Response: answer})
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal ask response"), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		safe.Write(ctx, w, data)
	}
}
