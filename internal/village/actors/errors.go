package actors

import "VillageDefense/modules/kit/errx"

const CodeSessionNotFound errx.Code = "VILLAGE_SESSION_NOT_FOUND"

var (
	ErrSessionNotFound = errx.NewBiz(CodeSessionNotFound, "对局不存在")
	ErrNotOnline       = errx.NewBiz(errx.CodeUnavailable, "对局未就绪")
)
