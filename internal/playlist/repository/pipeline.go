package repository

import (
	catalog "engagement_service/internal/catalog/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func lookupVideos() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: catalog.VideoCollection},
		{Key: "localField", Value: "videos"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "videos"},
	}}}
}

func videoTotals() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: "totalVideos", Value: bson.D{{Key: "$size", Value: "$videos"}}},
		{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$videos.views"}}},
	}}}
}

// UserPlaylistsPipeline 使用者所有清單與影片數/觀看數
func UserPlaylistsPipeline(owner primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		lookupVideos(),
		videoTotals(),
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: 1},
			{Key: "description", Value: 1},
			{Key: "totalVideos", Value: 1},
			{Key: "totalViews", Value: 1},
			{Key: "updatedAt", Value: 1},
		}}},
	}
}

// PlaylistDetailPipeline 清單詳情, 只留已發布影片;
// 有影片但全部未發布時不回傳任何文件
func PlaylistDetailPipeline(id primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		lookupVideos(),
		// 1. 記下過濾前是否有影片, 再只保留已發布
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "hasVideos", Value: bson.D{{Key: "$gt", Value: bson.A{bson.D{{Key: "$size", Value: "$videos"}}, 0}}}},
			{Key: "videos", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: "$videos"},
				{Key: "as", Value: "video"},
				{Key: "cond", Value: bson.D{{Key: "$eq", Value: bson.A{"$$video.isPublished", true}}}},
			}}}},
		}}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "hasVideos", Value: false}},
			bson.D{{Key: "videos.0", Value: bson.D{{Key: "$exists", Value: true}}}},
		}}}}},
		// 2. join 擁有者
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: catalog.UserCollection},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		// 3. 總數以過濾後的影片計算
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "owner", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$owner", 0}}}},
			{Key: "totalVideos", Value: bson.D{{Key: "$size", Value: "$videos"}}},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$videos.views"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: 1},
			{Key: "description", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
			{Key: "totalVideos", Value: 1},
			{Key: "totalViews", Value: 1},
			{Key: "videos", Value: bson.D{
				{Key: "_id", Value: 1},
				{Key: "videoFile", Value: 1},
				{Key: "thumbnail", Value: 1},
				{Key: "title", Value: 1},
				{Key: "description", Value: 1},
				{Key: "duration", Value: 1},
				{Key: "createdAt", Value: 1},
				{Key: "views", Value: 1},
			}},
			{Key: "owner", Value: bson.D{
				{Key: "username", Value: 1},
				{Key: "fullName", Value: 1},
				{Key: "avatar", Value: 1},
			}},
		}}},
	}
}
