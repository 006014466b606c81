package actors

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"VillageDefense/internal/shared/actor/messages"
	"VillageDefense/internal/shared/serverconfig"
	"VillageDefense/internal/village/app/port"
	"VillageDefense/internal/village/controller"
	"VillageDefense/internal/village/dc"
	"VillageDefense/internal/village/engine"
	"VillageDefense/internal/village/entity"
	"VillageDefense/internal/village/gameconfig"
	"VillageDefense/internal/village/render"
	"VillageDefense/modules/kit/logx"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// NotifySink 把对局通知推给外部（ws 连接等），在 actor 协程里调用，不能阻塞。
type NotifySink interface {
	Notify(sessionID string, n messages.Notice)
}

type Options struct {
	Catalog    *gameconfig.Catalog
	Game       serverconfig.GameConfig
	Repo       port.ReportRepository
	Sink       NotifySink
	FlushEvery time.Duration
	Log        logx.Logger
}

// GameActor 一个对局的全部可变状态都在这里，帧、模拟步、落库都以消息进入邮箱。
type GameActor struct {
	state      State
	sessionID  string
	opts       Options
	ctrl       *controller.Controller
	canvas     *render.DrawList
	dc         *dc.ReportDC
	dispatcher *Dispatcher
	loopStop   chan struct{}
	log        logx.Logger
}

type frameTick struct{ delta float64 }

func (frameTick) NotInfluenceReceiveTimeout() {}

type simTick struct{ delta float64 }

func (simTick) NotInfluenceReceiveTimeout() {}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

func NewGameActor(sessionID string, opts Options) *GameActor {
	log := opts.Log
	if log == nil {
		log = logx.Nop()
	}
	return &GameActor{
		state:      None,
		sessionID:  sessionID,
		opts:       opts,
		dispatcher: NewDispatcher(),
		log:        log.With(zap.String("session_id", sessionID)),
	}
}

func (p *GameActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopLoops()
		p.finish()
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopLoops()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopLoops()
		p.state = Init
		return
	case frameTick:
		if p.state == Online {
			p.ctrl.Engine().Frame(msg.delta)
		}
		return
	case simTick:
		if p.state == Online {
			p.ctrl.Tick(msg.delta)
		}
		return
	case flushTick:
		if p.state != Online {
			return
		}
		p.syncReport()
		if err := p.dc.Flush(context.TODO()); err != nil {
			p.log.Error("report periodic flush failed", zap.Error(err))
		}
		return
	case messages.GameMessage:
		if p.state != Online {
			ctx.Respond(fail(ErrNotOnline))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *GameActor) init(ctx actor.Context) {
	cfg := p.opts.Game.Defaults()
	catalog := p.opts.Catalog
	if catalog == nil {
		catalog = gameconfig.MustDefault()
	}

	p.canvas = render.NewDrawList()
	eng := engine.New(engine.Config{
		Width:        cfg.Width,
		Height:       cfg.Height,
		CycleSeconds: cfg.CycleSeconds,
	}, p.canvas, p.log)
	p.ctrl = controller.New(controller.Config{
		WaveInterval: cfg.WaveInterval,
		SpawnStagger: cfg.SpawnStagger,
		NotifyBuffer: cfg.NotifyBuffer,
	}, eng, catalog, p.log)

	record := entity.NewSessionRecord(p.sessionID, time.Now())
	p.dc = dc.NewReportDC(p.opts.Repo, record, p.opts.FlushEvery, p.log)

	p.ctrl.OnGameOver(func(controller.Result) {
		p.syncReport()
		if err := p.dc.Flush(context.TODO()); err != nil {
			p.log.Error("report flush on game over failed", zap.Error(err))
		}
	})
	if sink := p.opts.Sink; sink != nil {
		sid := p.sessionID
		p.ctrl.OnNotify(func(n controller.Notification) {
			sink.Notify(sid, toNotice(n))
		})
	}

	p.state = Online
	p.startLoops(ctx, cfg)
	p.log.Info("game session online")
}

func (p *GameActor) SessionID() string {
	return p.sessionID
}

func (p *GameActor) Controller() *controller.Controller {
	return p.ctrl
}

// syncReport 把控制器的结果同步到会话记录，是否变脏由记录自己判断。
func (p *GameActor) syncReport() {
	if p.ctrl == nil || p.dc == nil {
		return
	}
	p.dc.Record().Update(p.buildReport())
}

func (p *GameActor) buildReport() entity.Report {
	res := p.ctrl.Result()
	r := entity.Report{
		Result:         entity.ResultRunning,
		Message:        res.Message,
		Wave:           res.Wave,
		Kills:          res.Stats.Kills,
		CoinsEarned:    res.Stats.CoinsEarned,
		Coins:          res.Coins,
		BuildingsBuilt: res.Stats.BuildingsBuilt,
		BuildingsLost:  res.Stats.BuildingsLost,
		GuardsLost:     res.Stats.GuardsLost,
		SimSeconds:     res.SimSeconds,
	}
	if res.State == controller.StateGameOver {
		r.Result = entity.ResultLost
		r.FinishedAt = time.Now()
	}
	return r
}

// finish actor 退出前结算：还没输的局记为 stopped，然后等 dc 写完。
func (p *GameActor) finish() {
	if p.dc == nil {
		return
	}
	p.syncReport()
	if rec := p.dc.Record(); !rec.Report().Finished() {
		r := p.buildReport()
		r.Result = entity.ResultStopped
		r.Message = "Session closed"
		r.FinishedAt = time.Now()
		rec.Update(r)
	}
	closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := p.dc.Close(closeCtx); err != nil {
		p.log.Error("report dc close failed", zap.Error(err))
	}
}

func (p *GameActor) startLoops(ctx actor.Context, cfg serverconfig.GameConfig) {
	if p.loopStop != nil {
		return
	}
	p.loopStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	frameEvery := time.Second / time.Duration(cfg.FrameRate)
	simEvery := time.Second / time.Duration(cfg.TickRate)
	frameDelta := 1 / float64(cfg.FrameRate)
	simDelta := 1 / float64(cfg.TickRate)
	flushEvery := p.dc.FlushEvery()

	// 固定步长：模拟时间只随消息推进，不受调度抖动影响
	go func(stop <-chan struct{}) {
		frame := time.NewTicker(frameEvery)
		sim := time.NewTicker(simEvery)
		flush := time.NewTicker(flushEvery)
		defer frame.Stop()
		defer sim.Stop()
		defer flush.Stop()
		for {
			select {
			case <-frame.C:
				root.Send(self, frameTick{delta: frameDelta})
			case <-sim.C:
				root.Send(self, simTick{delta: simDelta})
			case <-flush.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.loopStop)
}

func (p *GameActor) stopLoops() {
	if p.loopStop == nil {
		return
	}
	close(p.loopStop)
	p.loopStop = nil
}
