package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"Vidtube/internal/data"
	"Vidtube/internal/media"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"

	"gorm.io/gorm"
)

// ---- users ----

type fakeUserRepo struct {
	repository.UserRepository
	mu      sync.Mutex
	users   map[uint64]*model.User
	nextID  uint64
	subs    *fakeSubRepo
	history map[uint64][]uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]*model.User{}, history: map[uint64][]uint64{}}
}

func (r *fakeUserRepo) add(u model.User) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = &u
	return &u
}

func (r *fakeUserRepo) WithTx(*gorm.DB) repository.UserRepository { return r }

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByLogin(_ context.Context, email, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	_, err := r.FindByLogin(ctx, email, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) EmailTakenByOther(_ context.Context, email string, userID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.ID != userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) update(id uint64, fn func(u *model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	fn(u)
	return nil
}

func (r *fakeUserRepo) SetRefreshToken(_ context.Context, id uint64, token string) error {
	return r.update(id, func(u *model.User) { u.RefreshToken = token })
}

func (r *fakeUserRepo) RotateRefreshToken(_ context.Context, id uint64, oldToken, newToken string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || oldToken == "" || u.RefreshToken != oldToken {
		return false, nil
	}
	u.RefreshToken = newToken
	return true, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uint64, hashed string) error {
	return r.update(id, func(u *model.User) { u.Password = hashed })
}

func (r *fakeUserRepo) UpdateAccount(_ context.Context, id uint64, fullName, email string) error {
	return r.update(id, func(u *model.User) { u.FullName, u.Email = fullName, email })
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id uint64, url string) error {
	return r.update(id, func(u *model.User) { u.AvatarURL = url })
}

func (r *fakeUserRepo) UpdateCover(_ context.Context, id uint64, url string) error {
	return r.update(id, func(u *model.User) { u.CoverURL = url })
}

func (r *fakeUserRepo) ChannelProfileByUsername(ctx context.Context, username string, viewerID uint64) (*repository.ChannelProfile, error) {
	u, err := r.FindByLogin(ctx, "", username)
	if err != nil {
		return nil, err
	}
	return r.ChannelProfileByID(ctx, u.ID, viewerID)
}

// 和SQL版本同样的语义：两个计数加一个EXISTS
func (r *fakeUserRepo) ChannelProfileByID(ctx context.Context, channelID, viewerID uint64) (*repository.ChannelProfile, error) {
	u, err := r.FindByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	p := &repository.ChannelProfile{ID: u.ID, Username: u.Username, FullName: u.FullName, Email: u.Email}
	if r.subs != nil {
		r.subs.mu.Lock()
		for k := range r.subs.set {
			if k.channel == channelID {
				p.SubscribersCount++
				if k.subscriber == viewerID {
					p.IsSubscribed = true
				}
			}
			if k.subscriber == channelID {
				p.ChannelsSubscribedToCount++
			}
		}
		r.subs.mu.Unlock()
	}
	return p, nil
}

func (r *fakeUserRepo) DeleteWatchHistoryByVideo(_ context.Context, videoID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uid, ids := range r.history {
		kept := ids[:0]
		for _, id := range ids {
			if id != videoID {
				kept = append(kept, id)
			}
		}
		r.history[uid] = kept
	}
	return nil
}

// ---- subscriptions ----

type subKey struct{ subscriber, channel uint64 }

type fakeSubRepo struct {
	mu  sync.Mutex
	set map[subKey]bool
}

func newFakeSubRepo() *fakeSubRepo { return &fakeSubRepo{set: map[subKey]bool{}} }

func (r *fakeSubRepo) Toggle(_ context.Context, subscriberID, channelID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := subKey{subscriberID, channelID}
	if r.set[k] {
		delete(r.set, k)
		return false, nil
	}
	r.set[k] = true
	return true, nil
}

func (r *fakeSubRepo) Subscribers(_ context.Context, channelID uint64) ([]model.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Subscription
	for k := range r.set {
		if k.channel == channelID {
			out = append(out, model.Subscription{SubscriberID: k.subscriber, ChannelID: k.channel})
		}
	}
	return out, nil
}

func (r *fakeSubRepo) SubscribedChannels(_ context.Context, subscriberID uint64) ([]model.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Subscription
	for k := range r.set {
		if k.subscriber == subscriberID {
			out = append(out, model.Subscription{SubscriberID: k.subscriber, ChannelID: k.channel})
		}
	}
	return out, nil
}

// ---- videos ----

type fakeVideoRepo struct {
	repository.VideoRepository
	mu          sync.Mutex
	videos      map[uint64]*model.Video
	deleted     map[uint64]bool
	cache       map[uint64]*model.Video
	nextID      uint64
	findCalls   int
	invalidated []uint64
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos:  map[uint64]*model.Video{},
		deleted: map[uint64]bool{},
		cache:   map[uint64]*model.Video{},
	}
}

func (r *fakeVideoRepo) add(v model.Video) *model.Video {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	v.ID = r.nextID
	r.videos[v.ID] = &v
	return &v
}

func (r *fakeVideoRepo) WithTx(*gorm.DB) repository.VideoRepository { return r }

func (r *fakeVideoRepo) Create(_ context.Context, v *model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	v.ID = r.nextID
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) FindByID(_ context.Context, id uint64) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	v, ok := r.videos[id]
	if !ok || r.deleted[id] {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) Update(_ context.Context, id uint64, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.videos[id]
	for k, val := range fields {
		switch k {
		case "title":
			v.Title = val.(string)
		case "description":
			v.Description = val.(string)
		case "thumbnail_url":
			v.ThumbnailURL = val.(string)
		}
	}
	return nil
}

func (r *fakeVideoRepo) TogglePublished(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos[id].IsPublished = !r.videos[id].IsPublished
	return nil
}

func (r *fakeVideoRepo) SoftDelete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[id] = true
	return nil
}

func (r *fakeVideoRepo) GetVideoCache(_ context.Context, id uint64) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.cache[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeVideoRepo) SetVideoCache(_ context.Context, v *model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.cache[v.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) DelVideoCache(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, id)
	r.invalidated = append(r.invalidated, id)
	return nil
}

// ---- comments ----

type fakeCommentRepo struct {
	repository.CommentRepository
	comments map[uint64]*model.Comment
	deleted  map[uint64]bool
	nextID   uint64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint64]*model.Comment{}, deleted: map[uint64]bool{}}
}

func (r *fakeCommentRepo) WithTx(*gorm.DB) repository.CommentRepository { return r }

func (r *fakeCommentRepo) Create(_ context.Context, c *model.Comment) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id uint64) (*model.Comment, error) {
	c, ok := r.comments[id]
	if !ok || r.deleted[id] {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) ListByVideo(_ context.Context, videoID uint64, page repository.Pagination) ([]model.Comment, int64, error) {
	var out []model.Comment
	for id, c := range r.comments {
		if c.VideoID == videoID && !r.deleted[id] {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCommentRepo) UpdateContent(_ context.Context, id uint64, content string) error {
	r.comments[id].Content = content
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uint64) error {
	r.deleted[id] = true
	return nil
}

func (r *fakeCommentRepo) IDsByVideo(_ context.Context, videoID uint64) ([]uint64, error) {
	var ids []uint64
	for id, c := range r.comments {
		if c.VideoID == videoID && !r.deleted[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeCommentRepo) DeleteByVideo(_ context.Context, videoID uint64) error {
	for id, c := range r.comments {
		if c.VideoID == videoID {
			r.deleted[id] = true
		}
	}
	return nil
}

// ---- likes ----

type likeKey struct {
	user   uint64
	target model.LikeTarget
}

type fakeLikeRepo struct {
	repository.LikeRepository
	mu  sync.Mutex
	set map[likeKey]bool
}

func newFakeLikeRepo() *fakeLikeRepo { return &fakeLikeRepo{set: map[likeKey]bool{}} }

func (r *fakeLikeRepo) WithTx(*gorm.DB) repository.LikeRepository { return r }

func (r *fakeLikeRepo) Toggle(_ context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{userID, target}
	if r.set[k] {
		delete(r.set, k)
		return false, nil
	}
	r.set[k] = true
	return true, nil
}

func (r *fakeLikeRepo) DeleteByTargets(_ context.Context, t model.LikeTargetType, ids []uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.set {
		for _, id := range ids {
			if k.target.Type == t && k.target.ID == id {
				delete(r.set, k)
			}
		}
	}
	return nil
}

func (r *fakeLikeRepo) has(userID uint64, target model.LikeTarget) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set[likeKey{userID, target}]
}

// ---- tweets ----

type fakeTweetRepo struct {
	repository.TweetRepository
	tweets  map[uint64]*model.Tweet
	deleted map[uint64]bool
	nextID  uint64
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[uint64]*model.Tweet{}, deleted: map[uint64]bool{}}
}

func (r *fakeTweetRepo) WithTx(*gorm.DB) repository.TweetRepository { return r }

func (r *fakeTweetRepo) Create(_ context.Context, t *model.Tweet) error {
	r.nextID++
	t.ID = r.nextID
	cp := *t
	r.tweets[t.ID] = &cp
	return nil
}

func (r *fakeTweetRepo) FindByID(_ context.Context, id uint64) (*model.Tweet, error) {
	t, ok := r.tweets[id]
	if !ok || r.deleted[id] {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTweetRepo) UpdateContent(_ context.Context, id uint64, content string) error {
	r.tweets[id].Content = content
	return nil
}

func (r *fakeTweetRepo) Delete(_ context.Context, id uint64) error {
	r.deleted[id] = true
	return nil
}

// ---- playlists ----

type fakePlaylistRepo struct {
	repository.PlaylistRepository
	playlists map[uint64]*model.Playlist
	members   map[uint64][]uint64
	deleted   map[uint64]bool
	nextID    uint64
	// 成员视频从这里取，FindWithVideos用
	videos *fakeVideoRepo
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: map[uint64]*model.Playlist{},
		members:   map[uint64][]uint64{},
		deleted:   map[uint64]bool{},
	}
}

func (r *fakePlaylistRepo) WithTx(*gorm.DB) repository.PlaylistRepository { return r }

func (r *fakePlaylistRepo) Create(_ context.Context, p *model.Playlist) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.playlists[p.ID] = &cp
	return nil
}

func (r *fakePlaylistRepo) FindByID(_ context.Context, id uint64) (*model.Playlist, error) {
	p, ok := r.playlists[id]
	if !ok || r.deleted[id] {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlaylistRepo) FindWithVideos(ctx context.Context, id, viewerID uint64) (*model.Playlist, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, videoID := range r.members[id] {
		v, err := r.videos.FindByID(ctx, videoID)
		if err != nil {
			continue
		}
		if v.IsPublished || v.OwnerID == viewerID {
			p.Videos = append(p.Videos, *v)
		}
	}
	return p, nil
}

func (r *fakePlaylistRepo) Update(_ context.Context, id uint64, fields map[string]interface{}) error {
	p := r.playlists[id]
	if v, ok := fields["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		p.Description = v.(string)
	}
	return nil
}

func (r *fakePlaylistRepo) Delete(_ context.Context, id uint64) error {
	r.deleted[id] = true
	delete(r.members, id)
	return nil
}

func (r *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID uint64) error {
	for _, id := range r.members[playlistID] {
		if id == videoID {
			return nil
		}
	}
	r.members[playlistID] = append(r.members[playlistID], videoID)
	return nil
}

func (r *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID uint64) error {
	kept := r.members[playlistID][:0]
	for _, id := range r.members[playlistID] {
		if id != videoID {
			kept = append(kept, id)
		}
	}
	r.members[playlistID] = kept
	return nil
}

func (r *fakePlaylistRepo) RemoveVideoEverywhere(ctx context.Context, videoID uint64) error {
	for pid := range r.members {
		_ = r.RemoveVideo(ctx, pid, videoID)
	}
	return nil
}

// ---- unit of work ----

// fakeUoW 直接把同一组假仓库交给回调，calls记录事务次数
type fakeUoW struct {
	repos data.TransactionalRepositories
	calls int
}

func (u *fakeUoW) Execute(_ context.Context, fn func(repos *data.TransactionalRepositories) error) error {
	u.calls++
	return fn(&u.repos)
}

// ---- media ----

type fakeUploader struct {
	mu       sync.Mutex
	failKind media.Kind
	duration float64
	uploads  []media.Kind
	n        int
}

func (u *fakeUploader) Upload(_ context.Context, _ string, kind media.Kind) (*media.Asset, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if kind == u.failKind {
		return nil, errors.New("media host unavailable")
	}
	u.n++
	u.uploads = append(u.uploads, kind)
	asset := &media.Asset{
		Key: string(kind) + "/" + time.Now().Format("150405") + "-" + string(rune('a'+u.n)),
	}
	asset.URL = "https://cdn.test/" + asset.Key
	if kind == media.KindVideo {
		asset.Duration = u.duration
	}
	return asset, nil
}

func (u *fakeUploader) Delete(context.Context, string) error { return nil }

type fakeJanitor struct {
	mu        sync.Mutex
	discarded []string
}

func (j *fakeJanitor) Discard(_ string, urls ...string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, u := range urls {
		if u != "" {
			j.discarded = append(j.discarded, u)
		}
	}
}
