package model

// LikeTargetType 点赞目标的种类，和TargetID一起组成带标签的联合体
type LikeTargetType string

const (
	LikeTargetVideo   LikeTargetType = "video"
	LikeTargetComment LikeTargetType = "comment"
	LikeTargetTweet   LikeTargetType = "tweet"
)

// LikeTarget 被点赞的对象：视频、评论或推文之一
type LikeTarget struct {
	Type LikeTargetType
	ID   uint64
}

// 用户与目标的关联关系，uniqueIndex利用数据库的查重能力，保证(用户,目标)最多一条
type Like struct {
	RelationModel
	LikedBy    uint64         `gorm:"not null;uniqueIndex:idx_like_target,priority:1"`
	TargetType LikeTargetType `gorm:"size:16;not null;uniqueIndex:idx_like_target,priority:2;index:idx_like_type_id,priority:1"`
	TargetID   uint64         `gorm:"not null;uniqueIndex:idx_like_target,priority:3;index:idx_like_type_id,priority:2"`
}

func (Like) TableName() string {
	return "likes"
}
