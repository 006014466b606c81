package actor

import (
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"

	"VillageDefense/internal/shared/actor/messages"
	"VillageDefense/internal/shared/transport"
	"VillageDefense/internal/village/actors"
	"VillageDefense/internal/village/app/port"
	"VillageDefense/internal/village/controller"
	"VillageDefense/internal/village/infra/persistence/memory"
)

const defaultAskTimeout = 2 * time.Second

type RuntimeError struct {
	Code    transport.BizCode
	Reason  string // errx 错误码
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Runtime 对外的对局入口：HTTP/WS/gRPC 都通过它向 actor 发请求。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(opts actors.Options, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	if opts.Repo == nil {
		opts.Repo = memory.NewReportRepository()
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(opts)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

// Shutdown 停 manager 会级联停掉所有对局，对局在 Stopping 里落库。
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) CreateSession(ctx context.Context) (string, error) {
	sid := uuid.NewString()
	if _, err := ask[messages.GHAck](r, ctx, messages.HGCreate{GameBaseMessage: base(sid)}); err != nil {
		return "", err
	}
	return sid, nil
}

func (r *Runtime) Start(ctx context.Context, sessionID string) (string, error) {
	res, err := ask[messages.GHAck](r, ctx, messages.HGStart{GameBaseMessage: base(sessionID)})
	return res.State, err
}

func (r *Runtime) Stop(ctx context.Context, sessionID string) (string, error) {
	res, err := ask[messages.GHAck](r, ctx, messages.HGStop{GameBaseMessage: base(sessionID)})
	return res.State, err
}

func (r *Runtime) Close(ctx context.Context, sessionID string) error {
	_, err := ask[messages.GHAck](r, ctx, messages.HGClose{GameBaseMessage: base(sessionID)})
	return err
}

func (r *Runtime) Input(ctx context.Context, sessionID string, in controller.Input) (messages.GameState, error) {
	res, err := ask[messages.GHState](r, ctx, messages.HGInput{
		GameBaseMessage: base(sessionID),
		Type:            string(in.Type),
		Key:             in.Key,
		X:               in.X,
		Y:               in.Y,
	})
	return res.State, err
}

// Place template < 0 沿用当前选中的模板。
func (r *Runtime) Place(ctx context.Context, sessionID string, x, y float64, template int) (messages.GameState, error) {
	res, err := ask[messages.GHState](r, ctx, messages.HGPlace{
		GameBaseMessage: base(sessionID),
		X:               x,
		Y:               y,
		Template:        template,
	})
	return res.State, err
}

// State notices < 0 带默认条数的最近通知，0 不带。
func (r *Runtime) State(ctx context.Context, sessionID string, notices int) (messages.GameState, error) {
	res, err := ask[messages.GHState](r, ctx, messages.HGState{GameBaseMessage: base(sessionID), Notices: notices})
	return res.State, err
}

func (r *Runtime) Frame(ctx context.Context, sessionID string) (messages.GHFrame, error) {
	return ask[messages.GHFrame](r, ctx, messages.HGFrame{GameBaseMessage: base(sessionID)})
}

func (r *Runtime) Notifications(ctx context.Context, sessionID string, after uint64) ([]messages.Notice, error) {
	res, err := ask[messages.GHNotifications](r, ctx, messages.HGNotifications{GameBaseMessage: base(sessionID), After: after})
	return res.Notices, err
}

// Report 会话还在时直接从 actor 取当前战报。
func (r *Runtime) Report(ctx context.Context, sessionID string) (messages.GameReport, error) {
	res, err := ask[messages.GHReport](r, ctx, messages.HGReport{GameBaseMessage: base(sessionID)})
	return res.Report, err
}

func base(sessionID string) messages.GameBaseMessage {
	return messages.GameBaseMessage{Session: sessionID}
}

func ask[T any](r *Runtime, ctx context.Context, msg any) (T, error) {
	var zero T
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return zero, err
	}
	switch v := res.(type) {
	case T:
		return v, nil
	case *messages.FailResp:
		return zero, &RuntimeError{
			Code:    BizCodeOf(v.Code),
			Reason:  v.Code,
			Message: v.Message,
		}
	}
	return zero, &RuntimeError{Code: transport.SystemError, Message: "actor 回复类型错误"}
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	if pid == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor pid 为空"}
	}

	// 阻塞等待 actor 回复或超时
	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if errors.Is(err, protoactor.ErrTimeout) {
		return nil, &RuntimeError{Code: transport.UpstreamTimeout, Message: "actor 请求超时", Cause: err}
	}
	if err != nil {
		return nil, &RuntimeError{
			Code:    transport.SystemError,
			Message: "actor 请求失败",
			Cause:   err,
		}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

// BizCodeOf errx 错误码 -> 客户端业务码。
func BizCodeOf(code string) transport.BizCode {
	switch code {
	case "":
		return transport.OK
	case string(actors.CodeSessionNotFound):
		return transport.SessionNotFound
	case string(controller.CodeInsufficientCoins):
		return transport.InsufficientCoins
	case string(controller.CodePlacementOccupied):
		return transport.PlacementOccupied
	case string(controller.CodeNotRunning):
		return transport.GameNotRunning
	case string(controller.CodeGameOver):
		return transport.GameOver
	case string(controller.CodeInvalidInput):
		return transport.InvalidParam
	case string(port.CodeReportNotFound):
		return transport.ReportNotFound
	}
	return transport.SystemError
}

func CodeFromError(err error) transport.BizCode {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}
