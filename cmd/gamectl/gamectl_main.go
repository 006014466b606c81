package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"VillageDefense/internal/village/interfaces/rpc"
)

const usage = `用法: gamectl [-addr host:port] [-session id] [-token t] <命令> [参数]
命令:
  create                      新建对局，输出 session_id 和 token
  start | stop | close        对局控制
  state [notices]             查询状态
  input <type> <key> [x y]    模拟输入，例如 input keydown b
  build <x> <y> [template]    在 (x, y) 放建筑
  report                      查询战报
  reports [limit]             最近战报`

func main() {
	addr := flag.String("addr", "127.0.0.1:9004", "对局 grpc 地址")
	sid := flag.String("session", "", "会话 id")
	token := flag.String("token", os.Getenv("VILLAGE_TOKEN"), "会话 token")
	timeout := flag.Duration("timeout", 3*time.Second, "请求超时")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c, err := rpc.Dial(*addr)
	if err != nil {
		fail(err)
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	args := flag.Args()
	var reply rpc.Reply
	switch cmd := args[0]; cmd {
	case "create":
		reply, err = c.Create(ctx)
	case rpc.ActionStart, rpc.ActionStop, rpc.ActionClose:
		reply, err = c.Command(ctx, *token, *sid, cmd, nil)
	case "state":
		reply, err = c.State(ctx, *token, *sid, intArg(args, 1, 5))
	case rpc.ActionInput:
		if len(args) < 3 {
			flag.Usage()
			os.Exit(2)
		}
		reply, err = c.Command(ctx, *token, *sid, cmd, map[string]any{
			"type": args[1],
			"key":  args[2],
			"x":    floatArg(args, 3),
			"y":    floatArg(args, 4),
		})
	case rpc.ActionBuild:
		if len(args) < 3 {
			flag.Usage()
			os.Exit(2)
		}
		in := map[string]any{"x": floatArg(args, 1), "y": floatArg(args, 2)}
		if len(args) > 3 {
			in["template"] = intArg(args, 3, 0)
		}
		reply, err = c.Command(ctx, *token, *sid, cmd, in)
	case "report":
		reply, err = c.Report(ctx, *sid)
	case "reports":
		reply, err = c.Reports(ctx, intArg(args, 1, 20))
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
	printReply(reply)
	if !reply.OK() {
		os.Exit(1)
	}
}

func printReply(r rpc.Reply) {
	out, _ := json.MarshalIndent(map[string]any{"code": r.Code, "msg": r.Msg, "data": r.Data}, "", "  ")
	fmt.Println(string(out))
}

func intArg(args []string, i, def int) int {
	if i >= len(args) {
		return def
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		fail(fmt.Errorf("参数 %q 不是整数", args[i]))
	}
	return n
}

func floatArg(args []string, i int) float64 {
	if i >= len(args) {
		return 0
	}
	f, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		fail(fmt.Errorf("参数 %q 不是数字", args[i]))
	}
	return f
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "gamectl:", err)
	os.Exit(1)
}
