// Package policy 集中所有權判斷，所有 mutation 都走這裡
package policy

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsOwner acting user is the owner, zero ids never match
func IsOwner(owner, actingUser primitive.ObjectID) bool {
	return !owner.IsZero() && owner == actingUser
}

// CanManageMembership playlist owner or video owner may add/remove the video
func CanManageMembership(playlistOwner, videoOwner, actingUser primitive.ObjectID) bool {
	return IsOwner(playlistOwner, actingUser) || IsOwner(videoOwner, actingUser)
}
