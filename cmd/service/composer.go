package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Composer 组合读模型: 先查主实体 再按关系批量查询并挂载白名单投影
// 关联实体缺失时对应字段留空 不会导致整个读取失败
type Composer struct {
	store *db.Store
	index VideoIndex
}

func NewComposer(store *db.Store, index VideoIndex) *Composer {
	return &Composer{store: store, index: index}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int64 {
	if total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}

// ChannelProfile viewer为空表示匿名访问
func (c *Composer) ChannelProfile(ctx context.Context, username string, viewer model.ID) (*model.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, paramErr("username is missing")
	}
	profile, err := c.store.ChannelProfile(ctx, username, viewer)
	if err != nil {
		return nil, errors.WithMessage(err, "channel profile")
	}
	if profile == nil {
		return nil, errno.NotFoundErr.WithMessage("channel does not exist")
	}
	return profile, nil
}

func (c *Composer) VideoComments(ctx context.Context, rawVideoID string, page, pageSize int) (*model.CommentPage, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	page, pageSize = normalizePage(page, pageSize)

	total, err := c.store.CountCommentsByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	result := &model.CommentPage{
		Comments:      make([]*model.CommentView, 0),
		TotalComments: total,
		TotalPages:    totalPages(total, pageSize),
		Page:          page,
		PageSize:      pageSize,
	}
	offset, ok := db.PageOffset(page, pageSize)
	if !ok || int64(offset) >= total {
		return result, nil
	}

	comments, err := c.store.ListCommentsByVideo(ctx, videoID, offset, pageSize)
	if err != nil {
		return nil, err
	}
	ownerIDs := make([]model.ID, 0, len(comments))
	for _, cm := range comments {
		ownerIDs = append(ownerIDs, cm.OwnerID)
	}
	owners, err := c.store.GetOwners(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	for _, cm := range comments {
		result.Comments = append(result.Comments, &model.CommentView{Comment: cm, Owner: owners[cm.OwnerID]})
	}
	return result, nil
}

// attachOwners 为一组视频挂载作者投影 保持输入顺序
func (c *Composer) attachOwners(ctx context.Context, videos []*model.Video) ([]*model.VideoView, error) {
	ownerIDs := make([]model.ID, 0, len(videos))
	for _, v := range videos {
		ownerIDs = append(ownerIDs, v.OwnerID)
	}
	owners, err := c.store.GetOwners(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	views := make([]*model.VideoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, &model.VideoView{Video: v, Owner: owners[v.OwnerID]})
	}
	return views, nil
}

// videosInOrder 按ids顺序取视频 已删除或对viewer不可见的视频被跳过
func (c *Composer) videosInOrder(ctx context.Context, ids []model.ID, viewer model.ID) ([]*model.VideoView, error) {
	byID, err := c.store.GetVisibleVideosByIDs(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	videos := make([]*model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return c.attachOwners(ctx, videos)
}

// LikedVideos 最近点赞的在前
func (c *Composer) LikedVideos(ctx context.Context, viewer model.ID) ([]*model.LikedVideo, error) {
	likes, err := c.store.ListLikesByUser(ctx, viewer, model.LikeVideo)
	if err != nil {
		return nil, err
	}
	ids := make([]model.ID, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.TargetID)
	}
	views, err := c.videosInOrder(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	byID := make(map[model.ID]*model.VideoView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}
	out := make([]*model.LikedVideo, 0, len(views))
	for _, l := range likes {
		if v, ok := byID[l.TargetID]; ok {
			out = append(out, &model.LikedVideo{LikedAt: l.CreatedAt, Video: v})
		}
	}
	return out, nil
}

func (c *Composer) WatchHistory(ctx context.Context, viewer model.ID) ([]*model.VideoView, error) {
	ids, err := c.store.ListWatchHistory(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return c.videosInOrder(ctx, ids, viewer)
}

// composePlaylists 一次查询成员 一次查询视频 一次查询所有相关用户
// 未发布的成员视频只对其作者可见
func (c *Composer) composePlaylists(ctx context.Context, playlists []*model.Playlist, viewer model.ID) ([]*model.PlaylistView, error) {
	playlistIDs := make([]model.ID, 0, len(playlists))
	for _, p := range playlists {
		playlistIDs = append(playlistIDs, p.ID)
	}
	members, err := c.store.ListPlaylistVideoIDs(ctx, playlistIDs)
	if err != nil {
		return nil, err
	}
	var videoIDs []model.ID
	for _, ids := range members {
		videoIDs = append(videoIDs, ids...)
	}
	videos, err := c.store.GetVisibleVideosByIDs(ctx, videoIDs, viewer)
	if err != nil {
		return nil, err
	}

	userIDs := make([]model.ID, 0, len(playlists)+len(videos))
	for _, p := range playlists {
		userIDs = append(userIDs, p.OwnerID)
	}
	for _, v := range videos {
		userIDs = append(userIDs, v.OwnerID)
	}
	owners, err := c.store.GetOwners(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*model.PlaylistView, 0, len(playlists))
	for _, p := range playlists {
		view := &model.PlaylistView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Videos:      make([]*model.VideoView, 0, len(members[p.ID])),
			CreatedBy:   owners[p.OwnerID],
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
		for _, id := range members[p.ID] {
			if v, ok := videos[id]; ok {
				view.Videos = append(view.Videos, &model.VideoView{Video: v, Owner: owners[v.OwnerID]})
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (c *Composer) UserPlaylists(ctx context.Context, rawUserID string, viewer model.ID) ([]*model.PlaylistView, error) {
	userID, err := parseID(rawUserID, "user")
	if err != nil {
		return nil, err
	}
	playlists, err := c.store.ListPlaylistsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.composePlaylists(ctx, playlists, viewer)
}

func (c *Composer) PlaylistDetail(ctx context.Context, rawPlaylistID string, viewer model.ID) (*model.PlaylistView, error) {
	playlistID, err := parseID(rawPlaylistID, "playlist")
	if err != nil {
		return nil, err
	}
	playlist, err := c.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, storeErr(err, "playlist")
	}
	views, err := c.composePlaylists(ctx, []*model.Playlist{playlist}, viewer)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (c *Composer) subscriptionViews(ctx context.Context, subs []*model.Subscription, other func(*model.Subscription) model.ID) ([]*model.SubscriptionView, error) {
	ids := make([]model.ID, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, other(s))
	}
	users, err := c.store.GetOwners(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*model.SubscriptionView, 0, len(subs))
	for _, s := range subs {
		out = append(out, &model.SubscriptionView{ID: s.ID, User: users[other(s)], SubscribedAt: s.CreatedAt})
	}
	return out, nil
}

// ChannelSubscribers 订阅了该频道的用户
func (c *Composer) ChannelSubscribers(ctx context.Context, rawChannelID string) ([]*model.SubscriptionView, error) {
	channelID, err := parseID(rawChannelID, "channel")
	if err != nil {
		return nil, err
	}
	subs, err := c.store.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return c.subscriptionViews(ctx, subs, func(s *model.Subscription) model.ID { return s.SubscriberID })
}

// SubscribedChannels 该用户订阅的频道
func (c *Composer) SubscribedChannels(ctx context.Context, rawSubscriberID string) ([]*model.SubscriptionView, error) {
	subscriberID, err := parseID(rawSubscriberID, "subscriber")
	if err != nil {
		return nil, err
	}
	subs, err := c.store.ListSubscriptions(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	return c.subscriptionViews(ctx, subs, func(s *model.Subscription) model.ID { return s.ChannelID })
}

func (c *Composer) UserTweets(ctx context.Context, rawUserID string) ([]*model.TweetView, error) {
	userID, err := parseID(rawUserID, "user")
	if err != nil {
		return nil, err
	}
	tweets, err := c.store.ListTweetsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	owners, err := c.store.GetOwners(ctx, []model.ID{userID})
	if err != nil {
		return nil, err
	}
	ids := make([]model.ID, 0, len(tweets))
	for _, t := range tweets {
		ids = append(ids, t.ID)
	}
	counts, err := c.store.CountLikesByTargets(ctx, model.LikeTweet, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*model.TweetView, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, &model.TweetView{Tweet: t, Owner: owners[t.OwnerID], LikesCount: counts[t.ID]})
	}
	return out, nil
}

type VideoListQuery struct {
	Page     int
	PageSize int
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

// ListVideos 配置了搜索引擎时先全文检索 否则退化为数据库模糊匹配
func (c *Composer) ListVideos(ctx context.Context, q VideoListQuery) (*model.VideoPage, error) {
	page, pageSize := normalizePage(q.Page, q.PageSize)
	query := db.VideoQuery{
		Page:     page,
		PageSize: pageSize,
		Query:    strings.TrimSpace(q.Query),
		SortBy:   q.SortBy,
		SortType: q.SortType,
	}
	if q.UserID != "" {
		ownerID, err := parseID(q.UserID, "user")
		if err != nil {
			return nil, err
		}
		query.OwnerID = ownerID
	}
	if query.Query != "" && c.index != nil {
		ids, err := c.index.Search(ctx, query.Query)
		if err != nil {
			hlog.CtxWarnf(ctx, "video search failed, falling back to database: %v", err)
		} else {
			query.IDs = ids
		}
	}

	videos, total, err := c.store.ListVideos(ctx, query)
	if err != nil {
		return nil, err
	}
	views, err := c.attachOwners(ctx, videos)
	if err != nil {
		return nil, err
	}
	return &model.VideoPage{
		Videos:      views,
		TotalVideos: total,
		TotalPages:  totalPages(total, pageSize),
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

// VideoDetail 未发布的视频只对作者可见
func (c *Composer) VideoDetail(ctx context.Context, video *model.Video, viewer model.ID) (*model.VideoDetail, error) {
	views, err := c.attachOwners(ctx, []*model.Video{video})
	if err != nil {
		return nil, err
	}
	target, err := model.NewLikeTarget(model.LikeVideo, video.ID)
	if err != nil {
		return nil, err
	}
	likes, err := c.store.CountLikes(ctx, target)
	if err != nil {
		return nil, err
	}
	detail := &model.VideoDetail{VideoView: *views[0], LikesCount: likes}
	if !viewer.IsZero() {
		like, err := c.store.GetLike(ctx, viewer, target)
		if err != nil {
			return nil, err
		}
		detail.IsLiked = like != nil
	}
	return detail, nil
}
