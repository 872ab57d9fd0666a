package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fulldump/box"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/chainkv/api/apistorev1"
	"github.com/fulldump/chainkv/database"
	"github.com/fulldump/chainkv/hashindex"
	"github.com/fulldump/chainkv/orderedstore"
	"github.com/fulldump/chainkv/service"
)

var ErrUnavailable = errors.New("temporary unavailable")

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func InterceptorUnavailable(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := s.Status()
			if status == database.StatusOpening || status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: %s", ErrUnavailable, status))
				return
			}
			next(ctx)
		}
	}
}

type errorStatus struct {
	err         error
	status      int
	description string
}

var errorStatuses = []errorStatus{
	{database.ErrIndexNotFound, http.StatusNotFound, "index does not exist"},
	{database.ErrMapNotFound, http.StatusNotFound, "map does not exist"},
	{service.ErrIteratorNotFound, http.StatusNotFound, "iterator does not exist or was closed"},
	{apistorev1.ErrEntryNotFound, http.StatusNotFound, "name is not installed"},
	{database.ErrIndexAlreadyExists, http.StatusConflict, "index name is taken"},
	{database.ErrMapAlreadyExists, http.StatusConflict, "map name is taken"},
	{database.ErrInvalidName, http.StatusBadRequest, "names must be non empty and not contain '/' or ':'"},
	{service.ErrInvalidKey, http.StatusBadRequest, "keys must be non empty"},
	{service.ErrIteratorInvalidated, http.StatusGone, "the map was released while iterating"},
	{hashindex.ErrAllocation, http.StatusInsufficientStorage, "the index is full"},
	{orderedstore.ErrAllocation, http.StatusInsufficientStorage, "the map is full"},
	{ErrUnavailable, http.StatusServiceUnavailable, "server is opening or closing"},
	{database.ErrClosing, http.StatusServiceUnavailable, "server is closing"},
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		writeError := func(status int, description string) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(PrettyError{
				Message:     err.Error(),
				Description: description,
			})
		}

		if err == box.ErrResourceNotFound {
			writeError(http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String()))
			return
		}

		if err == box.ErrMethodNotAllowed {
			writeError(http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method))
			return
		}

		for _, e := range errorStatuses {
			if errors.Is(err, e.err) {
				writeError(e.status, e.description)
				return
			}
		}

		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError
		var syntaxErrorV2 *jsontext.SyntacticError
		var semanticError *json2.SemanticError
		if errors.As(err, &syntaxError) || errors.As(err, &typeError) ||
			errors.As(err, &syntaxErrorV2) || errors.As(err, &semanticError) {
			writeError(http.StatusBadRequest, "Malformed JSON")
			return
		}

		writeError(http.StatusInternalServerError, "Unexpected error")
	}
}
