package apistorev1

import (
	"context"
	"fmt"

	"github.com/fulldump/box"

	"github.com/fulldump/chainkv/hashindex"
)

type lookupRequest struct {
	Name string `json:"name"`
}

func lookup(ctx context.Context, input *lookupRequest) (*hashindex.Triple, error) {

	s := GetServicer(ctx)
	indexName := box.GetUrlParameter(ctx, "indexName")

	triple, err := s.Lookup(indexName, input.Name)
	if err != nil {
		return nil, err
	}
	if triple == nil {
		return nil, fmt.Errorf("name '%s': %w", input.Name, ErrEntryNotFound)
	}

	return triple, nil
}
