package repository

import (
	"context"
	"testing"

	"Vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type capturedSQL struct {
	SQL  string
	Vars []interface{}
}

// captureSQL 在DryRun库上挂回调，按顺序记下每条生成的SQL和参数
func captureSQL(t *testing.T, db *gorm.DB) *[]capturedSQL {
	t.Helper()
	var got []capturedSQL
	record := func(tx *gorm.DB) {
		if tx.Statement.SQL.Len() == 0 {
			return
		}
		vars := append([]interface{}(nil), tx.Statement.Vars...)
		got = append(got, capturedSQL{SQL: tx.Statement.SQL.String(), Vars: vars})
	}
	require.NoError(t, db.Callback().Raw().After("gorm:raw").Register("test:capture_raw", record))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture_create", record))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_update", record))
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("test:capture_row", record))
	return &got
}

func TestLikeToggle_DeleteThenInsertIgnoringDuplicate(t *testing.T) {
	db := dryRunDB(t)
	got := captureSQL(t, db)
	repo := NewLikeRepository(db)

	// DryRun下DELETE影响0行，走到插入分支
	liked, err := repo.Toggle(context.Background(), 3, model.LikeTarget{Type: model.LikeTargetVideo, ID: 9})
	require.NoError(t, err)
	assert.True(t, liked)

	require.Len(t, *got, 2)
	del, ins := (*got)[0], (*got)[1]
	assert.Equal(t, "DELETE FROM likes WHERE liked_by = ? AND target_type = ? AND target_id = ?", del.SQL)
	assert.Equal(t, []interface{}{uint64(3), model.LikeTargetVideo, uint64(9)}, del.Vars)

	assert.Contains(t, ins.SQL, "INSERT INTO `likes`")
	assert.Contains(t, ins.SQL, "ON DUPLICATE KEY UPDATE")
	assert.Contains(t, ins.Vars, uint64(3))
	assert.Contains(t, ins.Vars, model.LikeTargetVideo)
	assert.Contains(t, ins.Vars, uint64(9))
}

func TestSubscriptionToggle_DeleteThenInsertIgnoringDuplicate(t *testing.T) {
	db := dryRunDB(t)
	got := captureSQL(t, db)
	repo := NewSubscriptionRepository(db)

	subscribed, err := repo.Toggle(context.Background(), 4, 8)
	require.NoError(t, err)
	assert.True(t, subscribed)

	require.Len(t, *got, 2)
	assert.Equal(t, "DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?", (*got)[0].SQL)
	assert.Equal(t, []interface{}{uint64(4), uint64(8)}, (*got)[0].Vars)
	assert.Contains(t, (*got)[1].SQL, "INSERT INTO `subscriptions`")
	assert.Contains(t, (*got)[1].SQL, "ON DUPLICATE KEY UPDATE")
}

func TestRotateRefreshToken_ComparesStoredToken(t *testing.T) {
	db := dryRunDB(t)
	got := captureSQL(t, db)
	repo := NewUserRepository(db)

	// DryRun不会真正更新，影响行数为0，等同于旧token对不上
	swapped, err := repo.RotateRefreshToken(context.Background(), 5, "old-token", "new-token")
	require.NoError(t, err)
	assert.False(t, swapped)

	require.Len(t, *got, 1)
	upd := (*got)[0]
	assert.Contains(t, upd.SQL, "UPDATE `users` SET `refresh_token`=?")
	assert.Contains(t, upd.SQL, "id = ? AND refresh_token = ?")
	assert.Equal(t, "new-token", upd.Vars[0])
	assert.Contains(t, upd.Vars, uint64(5))
	assert.Contains(t, upd.Vars, "old-token")
}

func TestRotateRefreshToken_EmptyOldTokenNeverMatches(t *testing.T) {
	db := dryRunDB(t)
	got := captureSQL(t, db)

	swapped, err := NewUserRepository(db).RotateRefreshToken(context.Background(), 5, "", "new-token")
	require.NoError(t, err)
	assert.False(t, swapped)
	assert.Empty(t, *got)
}

func TestChannelProfile_SubscribedFlagUsesViewer(t *testing.T) {
	db := dryRunDB(t)
	got := captureSQL(t, db)
	repo := NewUserRepository(db)

	// DryRun不支持Scan取结果，这里只看生成的SQL
	_, _ = repo.ChannelProfileByUsername(context.Background(), "bob", 42)

	require.Len(t, *got, 1)
	q := (*got)[0]
	assert.Contains(t, q.SQL, "s.channel_id = u.id) AS subscribers_count")
	assert.Contains(t, q.SQL, "s.subscriber_id = u.id) AS channels_subscribed_to_count")
	assert.Contains(t, q.SQL, "EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?) AS is_subscribed")
	assert.Contains(t, q.SQL, "u.username = ? LIMIT 1")
	assert.NotContains(t, q.SQL, "@")
	assert.Equal(t, []interface{}{uint64(42), "bob"}, q.Vars)
}

func TestChannelProfile_ByID(t *testing.T) {
	db := dryRunDB(t)
	got := captureSQL(t, db)

	_, _ = NewUserRepository(db).ChannelProfileByID(context.Background(), 8, 0)

	require.Len(t, *got, 1)
	assert.Contains(t, (*got)[0].SQL, "u.id = ? LIMIT 1")
	assert.Equal(t, []interface{}{uint64(0), uint64(8)}, (*got)[0].Vars)
}
