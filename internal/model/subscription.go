package model

// 订阅关系：subscriber订阅了channel，两边都是用户
type Subscription struct {
	RelationModel
	SubscriberID uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel,priority:1"`
	ChannelID    uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel,priority:2;index"`

	Subscriber User `gorm:"foreignKey:SubscriberID"`
	Channel    User `gorm:"foreignKey:ChannelID"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
