package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"VillageDefense/internal/shared/security"
	"VillageDefense/internal/shared/utils"
	"VillageDefense/modules/kit/logx"
)

const outQueueSize = 1000

type WsServer struct {
	conn       *websocket.Conn
	router     *Router
	outChan    chan *WsMsgResp
	needSecret bool
	property   map[string]any
	sync.RWMutex
	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, l logx.Logger, needSecret bool) *WsServer {
	return &WsServer{
		conn:       wsConn,
		outChan:    make(chan *WsMsgResp, outQueueSize),
		needSecret: needSecret,
		property:   make(map[string]any),
		done:       make(chan struct{}),
		log:        l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

func (s *WsServer) Push(name string, data any) bool {
	return s.enqueue(&WsMsgResp{Body: &RespBody{Name: name, Msg: data}})
}

func (s *WsServer) enqueue(msg *WsMsgResp) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.outChan <- msg:
		return true
	default:
		s.log.Warn("ws_server out queue full, drop msg", zap.String("name", msg.Body.Name))
		return false
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.log.Info("ws_server read msg end", zap.Error(err))
			return
		}
		reqBody, ok := s.decode(data)
		if !ok {
			continue
		}

		req := WsMsgReq{Body: reqBody, Conn: s}
		// req 和 resp 的 Seq 必须一致
		resp := WsMsgResp{Body: &RespBody{Seq: reqBody.Seq, Name: reqBody.Name, Msg: reqBody.Msg}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
		} else {
			s.log.Debug("ws_server read msg", zap.String("name", reqBody.Name), zap.Int64("seq", reqBody.Seq))
			s.router.Dispatch(&req, &resp)
		}
		s.enqueue(&resp)
	}
}

// decode 解压 -> 解密（需要时）-> json。
func (s *WsServer) decode(data []byte) (*ReqBody, bool) {
	plain, err := security.UnZip(data)
	if err != nil {
		s.log.Warn("ws_server unzip failed", zap.Error(err))
		return nil, false
	}
	if s.needSecret {
		key, _ := s.GetProperty(SecretKey).(string)
		if key == "" {
			s.log.Warn("ws_server secretKey not found")
			return nil, false
		}
		plain, err = security.AesCBCDecrypt(plain, []byte(key), []byte(key), openssl.ZEROS_PADDING)
		if err != nil {
			s.log.Warn("ws_server decrypt failed, re-handshake", zap.Error(err))
			s.handshake()
			return nil, false
		}
	}
	reqBody := &ReqBody{}
	if err := json.Unmarshal(plain, reqBody); err != nil {
		s.log.Warn("ws_server unmarshal json failed", zap.Error(err))
		return nil, false
	}
	return reqBody, true
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg := <-s.outChan:
			s.write(msg)
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) {
	data, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws_server write marshal json error", zap.Error(err))
		return
	}
	if s.needSecret {
		key, _ := s.GetProperty(SecretKey).(string)
		if key == "" {
			s.log.Error("ws_server write secretKey not found", zap.String("name", msg.Body.Name))
			return
		}
		data, err = security.AesCBCEncrypt(data, []byte(key), []byte(key), openssl.ZEROS_PADDING)
		if err != nil {
			s.log.Error("ws_server write encrypt error", zap.Error(err))
			return
		}
	}
	s.writeRaw(data)
}

// writeRaw 压缩后走 BinaryMessage；gorilla 不允许并发写，握手和写循环共用一把锁。
func (s *WsServer) writeRaw(data []byte) {
	zipData, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws_server zip error", zap.Error(err))
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteMessage(websocket.BinaryMessage, zipData); err != nil {
		s.log.Warn("ws_server write error", zap.Error(err))
	}
}

func (s *WsServer) handshake() {
	secretKey := ""
	if s.needSecret {
		if key, ok := s.GetProperty(SecretKey).(string); ok && key != "" {
			secretKey = key
		} else {
			secretKey = utils.RandSeq(16)
		}
		s.SetProperty(SecretKey, secretKey)
	}

	data, err := json.Marshal(&RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: secretKey}})
	if err != nil {
		s.log.Error("ws_server handshake marshal json error", zap.Error(err))
		return
	}
	s.writeRaw(data)
}
