package repository

import (
	catalog "engagement_service/internal/catalog/domain"
	"engagement_service/internal/comment/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentFeedPipeline 影片留言列表: join 作者與按讚, 計算讚數與 viewer 是否按讚, 分頁
func CommentFeedPipeline(videoID primitive.ObjectID, viewerID *primitive.ObjectID, q domain.PageQuery) mongo.Pipeline {
	// 沒有 viewer 時直接給 false, 不做 $in
	var isLiked interface{} = false
	if viewerID != nil {
		isLiked = bson.D{{Key: "$in", Value: bson.A{*viewerID, "$likes.likedBy"}}}
	}

	return mongo.Pipeline{
		// 1. 只取這支影片的留言
		bson.D{{Key: "$match", Value: bson.D{{Key: "video", Value: videoID}}}},
		// 2. left join 作者
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: catalog.UserCollection},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		// 3. left join 這則留言的按讚
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: domain.LikeCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "comment"},
			{Key: "as", Value: "likes"},
		}}},
		// 4. 衍生欄位
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "likesCount", Value: bson.D{{Key: "$size", Value: "$likes"}}},
			{Key: "owner", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$owner", 0}}}},
			{Key: "isLiked", Value: isLiked},
		}}},
		// 5. 新的在前, 同時間以 _id 遞增
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "createdAt", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "content", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "likesCount", Value: 1},
			{Key: "isLiked", Value: 1},
			{Key: "owner", Value: bson.D{
				{Key: "username", Value: 1},
				{Key: "fullName", Value: 1},
				{Key: "avatar", Value: 1},
			}},
		}}},
		// 6. 一次拿總數和這一頁
		bson.D{{Key: "$facet", Value: bson.D{
			{Key: "metadata", Value: bson.A{
				bson.D{{Key: "$count", Value: "total"}},
			}},
			{Key: "items", Value: bson.A{
				bson.D{{Key: "$skip", Value: q.Skip()}},
				bson.D{{Key: "$limit", Value: int64(q.Limit)}},
			}},
		}}},
	}
}

// OrphanLikesPipeline 找出 comment 已不存在的按讚
func OrphanLikesPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "comment", Value: bson.D{{Key: "$exists", Value: true}, {Key: "$ne", Value: nil}}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: domain.CommentCollection},
			{Key: "localField", Value: "comment"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "target"},
		}}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "target", Value: bson.D{{Key: "$size", Value: 0}}}}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
