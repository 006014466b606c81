package actors

import (
	"reflect"

	"github.com/asynkron/protoactor-go/actor"

	"VillageDefense/internal/shared/actor/messages"
	"VillageDefense/internal/village/controller"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, GH.HandleCreate)
	register(d, GH.HandleStart)
	register(d, GH.HandleStop)
	register(d, GH.HandleClose)
	register(d, GH.HandleInput)
	register(d, GH.HandlePlace)
	register(d, GH.HandleState)
	register(d, GH.HandleFrame)
	register(d, GH.HandleNotifications)
	register(d, GH.HandleReport)
}

func register[Req messages.GameMessage](
	d *Dispatcher,
	fn func(ctx actor.Context, p *GameActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *GameActor, req messages.GameMessage) {
	if req == nil {
		ctx.Respond(fail(controller.ErrInvalidInput.WithData("reason", "nil request")))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(fail(controller.ErrInvalidInput.WithData("reason", "no handler for "+bodyType.String())))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
