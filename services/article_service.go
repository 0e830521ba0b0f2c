package services

import (
	"strconv"

	"contenthub/errs"
	"contenthub/models"

	"github.com/go-redis/redis"
	"gorm.io/gorm"
)

const articleRankKey = "rank:article:likes"

// RankedArticle 排行榜条目
type RankedArticle struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Score int64  `json:"score"`
	Rank  int    `json:"rank"`
}

// ArticleService 文章的 Redis 计数与排行（行数据本身在 MySQL）
type ArticleService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewArticleService(db *gorm.DB, redisDB *redis.Client) *ArticleService {
	return &ArticleService{db: db, redis: redisDB}
}

func likeKey(articleID string) string {
	return "article:" + articleID + ":likes"
}

// BumpLikes 点赞开关后同步更新计数与排行，pipeline 一次往返
func (s *ArticleService) BumpLikes(articleID uint, delta int64) (int64, error) {
	if s.redis == nil {
		return 0, nil
	}
	idStr := strconv.FormatUint(uint64(articleID), 10)

	pipe := s.redis.TxPipeline()
	incrCmd := pipe.IncrBy(likeKey(idStr), delta)
	pipe.ZIncrBy(articleRankKey, float64(delta), idStr)
	if _, err := pipe.Exec(); err != nil {
		return 0, errs.Transient("like counter update failed: " + err.Error())
	}
	return incrCmd.Val(), nil
}

// GetLikes 读取单篇文章点赞数，key 不存在视为 0
func (s *ArticleService) GetLikes(articleID string) (int64, error) {
	if s.redis == nil {
		return 0, nil
	}
	val, err := s.redis.Get(likeKey(articleID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Transient("like counter read failed: " + err.Error())
	}
	n, _ := strconv.ParseInt(val, 10, 64)
	return n, nil
}

// TopArticles 按点赞数返回 Top N，标题查库补全（容错，查不到只省略标题）
func (s *ArticleService) TopArticles(n int) ([]RankedArticle, error) {
	if s.redis == nil {
		return []RankedArticle{}, nil
	}
	zres, err := s.redis.ZRevRangeWithScores(articleRankKey, 0, int64(n-1)).Result()
	if err != nil {
		if err == redis.Nil {
			return []RankedArticle{}, nil
		}
		return nil, errs.Transient("article rank read failed: " + err.Error())
	}

	list := make([]RankedArticle, 0, len(zres))
	for idx, z := range zres {
		memberStr, _ := z.Member.(string)
		item := RankedArticle{ID: memberStr, Score: int64(z.Score), Rank: idx + 1}
		var art models.Article
		if err := s.db.First(&art, memberStr).Error; err == nil {
			item.Title = art.Title
		}
		list = append(list, item)
	}
	return list, nil
}
