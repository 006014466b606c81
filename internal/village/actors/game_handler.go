package actors

import (
	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"VillageDefense/internal/shared/actor/messages"
	"VillageDefense/internal/village/controller"
	"VillageDefense/modules/kit/errx"
)

type GameHandler struct{}

// 全局实例
var GH = &GameHandler{}

const stateNotices = 5

// HandleCreate manager 新建会话后转发过来，确认 actor 已就绪。
func (h *GameHandler) HandleCreate(ctx actor.Context, p *GameActor, req messages.HGCreate) {
	ctx.Respond(ack(p))
}

func (h *GameHandler) HandleStart(ctx actor.Context, p *GameActor, req messages.HGStart) {
	if err := p.ctrl.Start(); err != nil {
		ctx.Respond(p.reject("start", err))
		return
	}
	p.syncReport()
	ctx.Respond(ack(p))
}

func (h *GameHandler) HandleStop(ctx actor.Context, p *GameActor, req messages.HGStop) {
	p.ctrl.Stop()
	ctx.Respond(ack(p))
}

// HandleClose 回复后停掉自己，Stopping 里做最后一次落库。
func (h *GameHandler) HandleClose(ctx actor.Context, p *GameActor, req messages.HGClose) {
	ctx.Respond(ack(p))
	ctx.Stop(ctx.Self())
}

func (h *GameHandler) HandleInput(ctx actor.Context, p *GameActor, req messages.HGInput) {
	in := controller.Input{
		Type: controller.InputType(req.Type),
		Key:  req.Key,
		X:    req.X,
		Y:    req.Y,
	}
	if err := p.ctrl.HandleInput(in); err != nil {
		ctx.Respond(p.reject("input", err))
		return
	}
	ctx.Respond(state(p, 0))
}

func (h *GameHandler) HandlePlace(ctx actor.Context, p *GameActor, req messages.HGPlace) {
	if req.Template >= 0 && !p.ctrl.Player().SelectTemplate(req.Template) {
		ctx.Respond(p.reject("place", controller.ErrInvalidInput.WithData("template", req.Template)))
		return
	}
	if err := p.ctrl.PlaceBuilding(req.X, req.Y); err != nil {
		ctx.Respond(p.reject("place", err))
		return
	}
	ctx.Respond(state(p, 0))
}

func (h *GameHandler) HandleState(ctx actor.Context, p *GameActor, req messages.HGState) {
	n := req.Notices
	if n < 0 {
		n = stateNotices
	}
	ctx.Respond(state(p, n))
}

func (h *GameHandler) HandleFrame(ctx actor.Context, p *GameActor, req messages.HGFrame) {
	ctx.Respond(messages.GHFrame{
		Frame:    p.ctrl.Engine().Frames(),
		Commands: toDrawCommands(p.canvas.Commands()),
	})
}

func (h *GameHandler) HandleNotifications(ctx actor.Context, p *GameActor, req messages.HGNotifications) {
	ctx.Respond(messages.GHNotifications{Notices: toNotices(p.ctrl.Notifications(req.After))})
}

func (h *GameHandler) HandleReport(ctx actor.Context, p *GameActor, req messages.HGReport) {
	p.syncReport()
	ctx.Respond(messages.GHReport{Report: toGameReport(p.dc.Record().Report())})
}

func (p *GameActor) reject(action string, err error) *messages.FailResp {
	p.log.Debug("action rejected",
		zap.String("action", action),
		zap.String("code", string(errx.CodeOf(err))),
	)
	return fail(err)
}

func ack(p *GameActor) messages.GHAck {
	return messages.GHAck{State: p.ctrl.State().String()}
}

func state(p *GameActor, notices int) messages.GHState {
	return messages.GHState{State: toGameState(p.sessionID, p.ctrl.Snapshot(notices))}
}

func fail(err error) *messages.FailResp {
	e, ok := errx.As(err)
	if !ok {
		return &messages.FailResp{Code: string(errx.CodeInternal), Reason: err.Error(), Message: "服务器内部错误"}
	}
	return &messages.FailResp{Code: string(e.Code()), Reason: e.Reason(), Message: e.Msg()}
}
