package repository

import (
	"testing"

	"engagement_service/internal/comment/domain"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, s := range p {
		names = append(names, s[0].Key)
	}
	return names
}

func stage(p mongo.Pipeline, name string) bson.D {
	for _, s := range p {
		if s[0].Key == name {
			return s[0].Value.(bson.D)
		}
	}
	return nil
}

func field(d bson.D, key string) interface{} {
	for _, e := range d {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

func TestCommentFeedPipelineOrder(t *testing.T) {
	p := CommentFeedPipeline(primitive.NewObjectID(), nil, domain.PageQuery{Page: 1, Limit: 10})
	assert.Equal(t,
		[]string{"$match", "$lookup", "$lookup", "$addFields", "$sort", "$project", "$facet"},
		stageNames(p))
}

func TestCommentFeedPipelineViewer(t *testing.T) {
	q := domain.PageQuery{Page: 1, Limit: 10}

	t.Run("anonymous", func(t *testing.T) {
		p := CommentFeedPipeline(primitive.NewObjectID(), nil, q)
		assert.Equal(t, false, field(stage(p, "$addFields"), "isLiked"))
	})

	t.Run("viewer", func(t *testing.T) {
		viewer := primitive.NewObjectID()
		p := CommentFeedPipeline(primitive.NewObjectID(), &viewer, q)
		in := field(stage(p, "$addFields"), "isLiked").(bson.D)
		assert.Equal(t, "$in", in[0].Key)
		assert.Equal(t, bson.A{viewer, "$likes.likedBy"}, in[0].Value)
	})
}

func TestCommentFeedPipelinePaging(t *testing.T) {
	p := CommentFeedPipeline(primitive.NewObjectID(), nil, domain.PageQuery{Page: 3, Limit: 5})
	items := field(stage(p, "$facet"), "items").(bson.A)
	assert.Equal(t, bson.D{{Key: "$skip", Value: int64(10)}}, items[0])
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(5)}}, items[1])
}

func TestCommentFeedPipelineSort(t *testing.T) {
	p := CommentFeedPipeline(primitive.NewObjectID(), nil, domain.PageQuery{Page: 1, Limit: 10})
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}, stage(p, "$sort"))
}

func TestOrphanLikesPipeline(t *testing.T) {
	p := OrphanLikesPipeline()
	assert.Equal(t, []string{"$match", "$lookup", "$match", "$project"}, stageNames(p))
	assert.Equal(t, domain.CommentCollection, field(stage(p, "$lookup"), "from"))
}
