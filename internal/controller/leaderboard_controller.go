package controller

import (
	"devlingo_backend/internal/service"
	"devlingo_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// Top godoc
// @Summary Leaderboard top-N
// @Tags leaderboard
// @Produce  json
// @Param   limit query int false "Number of entries (default 50)"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry} "Success"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/leaderboard [get]
func (c *LeaderboardController) Top(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	entries, err := c.LeaderboardService.TopN(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// MyRank godoc
// @Summary Current user's rank
// @Description Rank of the signed-in user; ranked=false when they have not completed anything yet
// @Tags leaderboard
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/leaderboard/me [get]
func (c *LeaderboardController) MyRank(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rank, err := c.LeaderboardService.RankOf(ctx.Request.Context(), claims.UserID)
	if errors.Is(err, util.ErrNotRanked) {
		// Unranked is a distinct state, not rank 1 and not an error.
		util.Success(ctx, gin.H{"ranked": false})
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"ranked": true, "rank": rank.Rank, "score": rank.Score, "level": rank.Level})
}
