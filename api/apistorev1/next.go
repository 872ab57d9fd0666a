package apistorev1

import (
	"context"
	"io"
	"net/http"

	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/box"

	"github.com/fulldump/chainkv/orderedstore"
)

type nextResponse struct {
	Entries   []orderedstore.Entry `json:"entries"`
	Exhausted bool                 `json:"exhausted"`
}

func next(ctx context.Context, r *http.Request) (*nextResponse, error) {

	input := struct {
		Limit int `json:"limit"`
	}{
		Limit: 1,
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		if err := json2.Unmarshal(body, &input); err != nil {
			return nil, err
		}
	}

	s := GetServicer(ctx)
	iteratorId := box.GetUrlParameter(ctx, "iteratorId")

	entries, exhausted, err := s.Advance(iteratorId, input.Limit)
	if err != nil {
		return nil, err
	}

	return &nextResponse{
		Entries:   entries,
		Exhausted: exhausted,
	}, nil
}
