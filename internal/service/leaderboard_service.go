package service

import (
	"context"
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"
	"devlingo_backend/internal/util"
	"devlingo_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeaderboardService produces the top-N view and per-user ranks.
//
// Ranking a user who is outside the visible top never pulls the table:
// it reads their single score record and asks the store how many score
// strictly higher. Ties order by user id ascending, so the board is
// deterministic across reloads.
type LeaderboardService struct {
	ScoreRepo *repository.ScoreRepository
	Redis     *redis.Client
	Size      int
	CacheTTL  time.Duration
}

func NewLeaderboardService(scoreRepo *repository.ScoreRepository, rdb *redis.Client, size int, cacheTTL time.Duration) *LeaderboardService {
	if size <= 0 {
		size = 50
	}
	return &LeaderboardService{
		ScoreRepo: scoreRepo,
		Redis:     rdb,
		Size:      size,
		CacheTTL:  cacheTTL,
	}
}

// LeaderboardEntry is one row of the board.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
}

// UserRank is the caller's own position, shown under the board when
// they did not make the visible top.
type UserRank struct {
	Rank  int `json:"rank"`
	Score int `json:"score"`
	Level int `json:"level"`
}

// LevelBadge maps a score to the coarse level badge next to a username.
// Pure function of the score, nothing stored.
func LevelBadge(score int) int {
	return score/20 + 1
}

// TopN returns the first n entries, served from a short-lived Redis
// cache when available.
func (s *LeaderboardService) TopN(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	if n <= 0 || n > s.Size {
		n = s.Size
	}

	cacheKey := fmt.Sprintf("leaderboard:top:%d", n)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	records, err := s.ScoreRepo.TopN(n)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(records))
	for i, rec := range records {
		entries = append(entries, LeaderboardEntry{
			Rank:      i + 1,
			UserID:    rec.UserID,
			Username:  rec.Username,
			AvatarURL: rec.AvatarURL,
			Score:     rec.Score,
			Level:     LevelBadge(rec.Score),
		})
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}

// RankOf computes a user's rank. Inside the top-N it is read off the
// already-fetched list; outside, one score lookup plus one count query
// settle it. Users with no score record are unranked and get
// util.ErrNotRanked, which is not the same thing as first place.
func (s *LeaderboardService) RankOf(ctx context.Context, userID uint) (*UserRank, error) {
	top, err := s.TopN(ctx, s.Size)
	if err != nil {
		return nil, err
	}
	for _, entry := range top {
		if entry.UserID == userID {
			return &UserRank{Rank: entry.Rank, Score: entry.Score, Level: entry.Level}, nil
		}
	}

	record, err := s.ScoreRepo.FindByUser(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrNotRanked
	}
	if err != nil {
		return nil, err
	}

	higher, err := s.ScoreRepo.CountGreaterThan(record.Score)
	if err != nil {
		return nil, err
	}

	return &UserRank{
		Rank:  int(higher) + 1,
		Score: record.Score,
		Level: LevelBadge(record.Score),
	}, nil
}

// RefreshDisplayFields keeps the denormalized name and avatar on the
// score record in sync after a profile change. No-op for users who have
// not scored yet.
func (s *LeaderboardService) RefreshDisplayFields(user *model.User) error {
	_, err := s.ScoreRepo.FindByUser(user.ID)
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return s.ScoreRepo.UpdateDisplayFields(user.ID, user.DisplayName(), user.Avatar)
}
