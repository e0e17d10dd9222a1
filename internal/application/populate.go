package application

import (
	"errors"

	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/pkg/apperr"
)

// Expansion specs applied on reads that return documents to clients.
var (
	userGraph = []repository.Populate{
		{Path: string(repository.Following), Nested: []repository.Populate{{Path: string(repository.Followers)}, {Path: string(repository.Following)}}},
		{Path: string(repository.Followers), Nested: []repository.Populate{{Path: string(repository.Followers)}, {Path: string(repository.Following)}}},
	}
	recipeGraph  = []repository.Populate{{Path: "author"}, {Path: "category"}, {Path: "likes"}}
	commentGraph = []repository.Populate{{Path: "author"}, {Path: "likes"}}
)

// storeErr classifies a repository error: ErrNotFound becomes NotFound with
// the given message, anything else a store failure.
func storeErr(err error, notFound, failed string) *apperr.Error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(notFound)
	}
	return apperr.From(err, failed)
}
