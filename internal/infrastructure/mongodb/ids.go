package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/icook-api/internal/domain/repository"
)

// oid parses a hex id. Malformed ids cannot match any document, so they
// surface as not found rather than as a driver error.
func oid(id string) (primitive.ObjectID, error) {
	o, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return o, nil
}

// oids parses ids, silently skipping malformed entries.
func oids(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if o, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, o)
		}
	}
	return out
}

func hexes(in []primitive.ObjectID) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		out = append(out, o.Hex())
	}
	return out
}
