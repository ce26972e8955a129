package pkg

import (
	errprocess "engagement_service/pkg/err"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contains check source have target
func Contains[T comparable](slice []T, val T) bool {
	for _, v := range slice {
		if v == val {
			return true
		}
	}
	return false
}

// ParseObjectID parse hex id, field is used in the validation message
func ParseObjectID(field, id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, errprocess.Validation(field + " is required")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errprocess.Validation("invalid " + field)
	}
	return oid, nil
}
