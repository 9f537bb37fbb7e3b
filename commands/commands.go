// Package commands maps chat-style text commands onto the tournament
// services. The registry is built once at startup and never mutated;
// every command is an enumerated type bound to a handler value.
package commands

import (
	"context"
	"errors"
)

type Type string

const (
	TypeTeam       Type = "team"
	TypeSeed       Type = "seed"
	TypeStart      Type = "start"
	TypeReport     Type = "report"
	TypeConfirm    Type = "confirm"
	TypeTournament Type = "tournament"
)

// ErrUnknownCommand covers both unregistered commands and admin commands
// issued without the admin flag; callers cannot tell the two apart.
var ErrUnknownCommand = errors.New("command not found")

// ErrUsage wraps argument parse failures so the outer layer can show them
// as user mistakes rather than server faults.
var ErrUsage = errors.New("invalid command usage")

// Params carries everything a handler may need from the incoming message.
type Params struct {
	AuthorID string   `json:"author_id"`
	Args     []string `json:"args"`
	Mentions []string `json:"mentions"`
	IsAdmin  bool     `json:"is_admin"`
}

// Result is the displayable outcome of a successful command.
type Result struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Handler interface {
	Execute(ctx context.Context, params Params) (*Result, error)
}

type HandlerFunc func(ctx context.Context, params Params) (*Result, error)

func (f HandlerFunc) Execute(ctx context.Context, params Params) (*Result, error) {
	return f(ctx, params)
}

type registration struct {
	handler   Handler
	adminOnly bool
}

// Registry is the immutable dispatch table.
type Registry struct {
	handlers map[Type]registration
}

type registryBuilder struct {
	handlers map[Type]registration
}

func newBuilder() *registryBuilder {
	return &registryBuilder{handlers: make(map[Type]registration)}
}

func (b *registryBuilder) register(t Type, handler Handler, adminOnly bool) *registryBuilder {
	b.handlers[t] = registration{handler: handler, adminOnly: adminOnly}
	return b
}

func (b *registryBuilder) build() *Registry {
	return &Registry{handlers: b.handlers}
}

// Dispatch routes one command by name. Admin-only commands are hidden from
// non-admin callers.
func (r *Registry) Dispatch(ctx context.Context, command string, params Params) (*Result, error) {
	reg, ok := r.handlers[Type(command)]
	if !ok {
		return nil, ErrUnknownCommand
	}
	if reg.adminOnly && !params.IsAdmin {
		return nil, ErrUnknownCommand
	}
	return reg.handler.Execute(ctx, params)
}
