package db

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jsphweid/capo/config"
	"github.com/jsphweid/capo/model"
	"github.com/jsphweid/capo/sequence"
)

var ErrNotFound = errors.New("progression not found")

// Store keeps named chord progressions.
type Store interface {
	Save(ctx context.Context, name string, seq sequence.Sequence) (model.Progression, error)
	Get(ctx context.Context, id string) (model.Progression, error)
	// List is ordered by name, then ID.
	List(ctx context.Context) ([]model.Progression, error)
	Delete(ctx context.Context, id string) error
}

func New(cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "dynamodb":
		return NewDynamoStore(cfg)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

func sortProgressions(res []model.Progression) {
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
}
