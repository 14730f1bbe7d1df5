package apifake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-auth-client/api"
)

// Response is one scripted reply. Exactly one of Auth/Body or Err is used.
type Response struct {
	Auth *api.AuthResponse
	Body string
	Err  *api.Error
}

// Call records the arguments of one gateway invocation.
type Call struct {
	Op    api.Operation
	Email string
	Token string
}

// FakeGateway replays scripted responses per operation in order. When a
// script runs dry the last response is repeated.
type FakeGateway struct {
	scripts   map[api.Operation][]Response
	calls     []Call
	reachable bool
	lock      sync.Mutex
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		scripts:   make(map[api.Operation][]Response),
		reachable: true,
	}
}

// On appends responses for op.
func (g *FakeGateway) On(op api.Operation, responses ...Response) *FakeGateway {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.scripts[op] = append(g.scripts[op], responses...)
	return g
}

func (g *FakeGateway) SetReachable(reachable bool) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.reachable = reachable
}

func (g *FakeGateway) Reachable(context.Context) bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.reachable
}

func (g *FakeGateway) SignUp(_ context.Context, email, _, _ string) (*api.AuthResponse, error) {
	r := g.next(Call{Op: api.OpSignUp, Email: email})
	return authResult(r)
}

func (g *FakeGateway) Login(_ context.Context, email, _ string) (*api.AuthResponse, error) {
	r := g.next(Call{Op: api.OpLogin, Email: email})
	return authResult(r)
}

func (g *FakeGateway) Refresh(_ context.Context, email, refreshToken string) (*api.AuthResponse, error) {
	r := g.next(Call{Op: api.OpRefresh, Email: email, Token: refreshToken})
	return authResult(r)
}

func (g *FakeGateway) FetchProtectedResource(_ context.Context, accessToken string) (string, error) {
	r := g.next(Call{Op: api.OpFetchProtected, Token: accessToken})
	if r.Err != nil {
		return "", r.Err
	}
	return r.Body, nil
}

// Calls returns the recorded calls, optionally filtered to one operation.
func (g *FakeGateway) Calls(ops ...api.Operation) []Call {
	g.lock.Lock()
	defer g.lock.Unlock()

	if len(ops) == 0 {
		return append([]Call(nil), g.calls...)
	}
	calls := make([]Call, 0)
	for _, c := range g.calls {
		for _, op := range ops {
			if c.Op == op {
				calls = append(calls, c)
			}
		}
	}
	return calls
}

func (g *FakeGateway) next(call Call) Response {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.calls = append(g.calls, call)
	script := g.scripts[call.Op]
	if len(script) == 0 {
		return Response{Err: &api.Error{Op: call.Op, Code: 0, Message: "Network error: no scripted response"}}
	}
	r := script[0]
	if len(script) > 1 {
		g.scripts[call.Op] = script[1:]
	}
	if r.Err != nil && r.Err.Op == "" {
		e := *r.Err
		e.Op = call.Op
		r.Err = &e
	}
	return r
}

func authResult(r Response) (*api.AuthResponse, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Auth, nil
}

// Fail builds an error response with the given status and message.
func Fail(code int, message string) Response {
	return Response{Err: &api.Error{Code: code, Message: message}}
}

func Auth(accessToken, refreshToken, email, name string) Response {
	return Response{Auth: &api.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Email:        email,
		DisplayName:  name,
	}}
}

func Body(body string) Response {
	return Response{Body: body}
}
