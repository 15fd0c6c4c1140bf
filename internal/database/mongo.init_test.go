package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type likeModel struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Video     *primitive.ObjectID `bson:"video,omitempty" index:"compound:like_video_user_unique,partial:video"`
	Comment   *primitive.ObjectID `bson:"comment,omitempty" index:"compound:like_comment_user_unique,partial:comment"`
	LikedBy   primitive.ObjectID  `bson:"likedBy" index:"single:1;compound:like_video_user_unique;compound:like_comment_user_unique"`
	CreatedAt int64               `bson:"createdAt" index:"single:-1"`
}

type userModel struct {
	Username string `bson:"username" index:"unique"`
	Email    string `bson:"email" index:"unique,sparse"`
	Ignored  string `bson:"-" index:"single"`
}

func specByName(specs []IndexSpec, name string) *IndexSpec {
	for i := range specs {
		if specs[i].Name == name {
			return &specs[i]
		}
	}
	return nil
}

func TestParseIndexTag(t *testing.T) {
	got := parseIndexTag("single:1;compound:g1,partial:video")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0]["single"])
	assert.Equal(t, "g1", got[1]["compound"])
	assert.Equal(t, "video", got[1]["partial"])
}

func TestBuildIndexSpecs_LikeModel(t *testing.T) {
	specs, err := BuildIndexSpecs(likeModel{})
	require.NoError(t, err)

	videoUser := specByName(specs, "like_video_user_unique")
	require.NotNil(t, videoUser)
	assert.Equal(t, bson.D{{Key: "video", Value: 1}, {Key: "likedBy", Value: 1}}, videoUser.Keys)
	require.NotNil(t, videoUser.Options.Unique)
	assert.True(t, *videoUser.Options.Unique)
	assert.Equal(t, bson.M{"video": bson.M{"$exists": true}}, videoUser.Options.PartialFilterExpression)

	commentUser := specByName(specs, "like_comment_user_unique")
	require.NotNil(t, commentUser)
	assert.Equal(t, bson.D{{Key: "comment", Value: 1}, {Key: "likedBy", Value: 1}}, commentUser.Keys)
	assert.Equal(t, bson.M{"comment": bson.M{"$exists": true}}, commentUser.Options.PartialFilterExpression)

	createdAt := specByName(specs, "createdAt_single")
	require.NotNil(t, createdAt)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, createdAt.Keys)
}

func TestBuildIndexSpecs_UniqueSparse(t *testing.T) {
	specs, err := BuildIndexSpecs(&userModel{})
	require.NoError(t, err)
	require.Len(t, specs, 2, "field bson:\"-\" phải bị bỏ qua")

	email := specByName(specs, "email_unique")
	require.NotNil(t, email)
	require.NotNil(t, email.Options.Sparse)
	assert.True(t, *email.Options.Sparse)
}

func TestCompareIndex(t *testing.T) {
	keys := bson.D{{Key: "video", Value: 1}, {Key: "likedBy", Value: 1}}
	opts := options.Index().SetName("g").SetUnique(true).SetPartialFilterExpression(bson.M{"video": bson.M{"$exists": true}})

	existing := bson.M{
		"key":                     bson.M{"video": int32(1), "likedBy": int32(1)},
		"unique":                  true,
		"partialFilterExpression": bson.M{"video": bson.M{"$exists": true}},
	}
	assert.True(t, compareIndex(existing, keys, opts))

	noPartial := bson.M{"key": bson.M{"video": int32(1), "likedBy": int32(1)}, "unique": true}
	assert.False(t, compareIndex(noPartial, keys, opts), "index cũ thiếu partial filter phải được tạo lại")

	notUnique := bson.M{"key": bson.M{"video": int32(1), "likedBy": int32(1)}, "partialFilterExpression": bson.M{}}
	assert.False(t, compareIndex(notUnique, keys, opts))
}
