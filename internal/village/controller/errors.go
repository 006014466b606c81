package controller

import "VillageDefense/modules/kit/errx"

type Code = errx.Code

const (
	CodeInsufficientCoins Code = "VILLAGE_INSUFFICIENT_COINS"
	CodePlacementOccupied Code = "VILLAGE_PLACEMENT_OCCUPIED"
	CodeGameOver          Code = "VILLAGE_GAME_OVER"
	CodeNotRunning        Code = "VILLAGE_NOT_RUNNING"
	CodeInvalidInput      Code = "VILLAGE_INVALID_INPUT"
)

// 被拒绝的动作：状态不变，只通知玩家。哨兵错误不要直接改 data，用 WithData 派生。
var (
	ErrInsufficientCoins = errx.NewBiz(CodeInsufficientCoins, "金币不足")
	ErrPlacementOccupied = errx.NewBiz(CodePlacementOccupied, "该位置已有建筑")
	ErrGameOver          = errx.NewBiz(CodeGameOver, "游戏已结束")
	ErrNotRunning        = errx.NewBiz(CodeNotRunning, "游戏未运行")
	ErrInvalidInput      = errx.NewBiz(CodeInvalidInput, "无效输入")
)
