package search

import (
	"context"
	"time"

	"VidTube.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
)

// 搜索最多返回的视频数 分页在数据库侧完成
const maxSearchHits = 1000

const videoMapping = `{
	"mappings": {
		"properties": {
			"title":        {"type": "text"},
			"description":  {"type": "text"},
			"owner_id":     {"type": "keyword"},
			"is_published": {"type": "boolean"},
			"created_at":   {"type": "date"}
		}
	}
}`

type videoDoc struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// VideoIndex 视频全文检索
type VideoIndex struct {
	client *elastic.Client
	index  string
}

func NewVideoIndex(ctx context.Context, url, index string) (*VideoIndex, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "connect elasticsearch %s", url)
	}
	exists, err := client.IndexExists(index).Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "check index %s", index)
	}
	if !exists {
		if _, err = client.CreateIndex(index).BodyString(videoMapping).Do(ctx); err != nil {
			return nil, errors.Wrapf(err, "create index %s", index)
		}
	}
	hlog.Infof("Connect Elasticsearch Success, index: %s", index)
	return &VideoIndex{client: client, index: index}, nil
}

func toDoc(v *model.Video) videoDoc {
	return videoDoc{
		Title:       v.Title,
		Description: v.Description,
		OwnerID:     v.OwnerID.String(),
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
	}
}

func (i *VideoIndex) Index(ctx context.Context, v *model.Video) error {
	_, err := i.client.Index().Index(i.index).Id(v.ID.String()).BodyJson(toDoc(v)).Do(ctx)
	if err != nil {
		return errors.Wrapf(err, "index video %s", v.ID)
	}
	return nil
}

func (i *VideoIndex) Remove(ctx context.Context, id model.ID) error {
	_, err := i.client.Delete().Index(i.index).Id(id.String()).Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		return errors.Wrapf(err, "remove video %s", id)
	}
	return nil
}

// Search 返回按相关度排序的视频ID
func (i *VideoIndex) Search(ctx context.Context, text string) ([]model.ID, error) {
	query := elastic.NewBoolQuery().
		Must(elastic.NewMultiMatchQuery(text, "title^2", "description")).
		Filter(elastic.NewTermQuery("is_published", true))
	res, err := i.client.Search().Index(i.index).Query(query).
		Size(maxSearchHits).FetchSource(false).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "search videos %q", text)
	}
	ids := make([]model.ID, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, model.ID(hit.Id))
	}
	return ids, nil
}
