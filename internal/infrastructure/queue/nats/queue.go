package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/resilience"
)

const (
	DefaultSubject = "insurance.ask"
	QueueGroup     = "askers"
)

type AskRequest struct {
	Question string `json:"question"`
}

type AskReply struct {
	Result *domain.PipelineResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
	Kind   string                 `json:"kind,omitempty"`
}

// AskHandler answers one question.
type AskHandler func(ctx context.Context, question string) (*domain.PipelineResult, error)

// Queue carries ask requests over NATS request/reply.
type Queue struct {
	conn     *nats.Conn
	subject  string
	executor *resilience.Executor
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
}

func New(url, subject string) (*Queue, error) {
	return NewWithOptions(url, subject, Options{})
}

func NewWithOptions(url, subject string, options Options) (*Queue, error) {
	if strings.TrimSpace(subject) == "" {
		subject = DefaultSubject
	}
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}

	conn, err := nats.Connect(
		url,
		nats.Name("insurance-benefits-rag"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Queue{
		conn:     conn,
		subject:  subject,
		executor: options.ResilienceExecutor,
	}, nil
}

func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

// Ask sends question to a worker and waits for its reply.
func (q *Queue) Ask(ctx context.Context, question string) (*domain.PipelineResult, error) {
	payload, err := json.Marshal(AskRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("marshal ask request: %w", err)
	}

	var msg *nats.Msg
	call := func(callCtx context.Context) error {
		var err error
		msg, err = q.conn.RequestWithContext(callCtx, q.subject, payload)
		if err != nil {
			return fmt.Errorf("nats request: %w", err)
		}
		return nil
	}
	if q.executor != nil {
		err = q.executor.Execute(ctx, "nats.request", call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded(err)
	}
	return decodeReply(msg.Data)
}

// ServeAsk answers requests on the subject within the askers queue group until ctx is
// done. NATS delivers one subscription's messages sequentially, so questions are
// processed one at a time per worker.
func (q *Queue) ServeAsk(ctx context.Context, handler AskHandler) error {
	sub, err := q.conn.QueueSubscribe(q.subject, QueueGroup, func(msg *nats.Msg) {
		if ctx.Err() != nil {
			return
		}
		reply := handleAsk(ctx, msg.Data, handler)
		if msg.Reply == "" {
			return
		}
		if err := msg.Respond(reply); err != nil {
			slog.Error("nats_respond_failed", "subject", msg.Subject, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := q.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}

func handleAsk(ctx context.Context, data []byte, handler AskHandler) []byte {
	var req AskRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return encodeReply(AskReply{Error: "invalid request payload", Kind: "invalid_input"})
	}

	result, err := handler(ctx, req.Question)
	if err != nil {
		slog.Error("ask_handler_failed", "error", err)
		return encodeReply(AskReply{Error: err.Error(), Kind: errorKind(err)})
	}
	return encodeReply(AskReply{Result: result})
}

func encodeReply(reply AskReply) []byte {
	raw, err := json.Marshal(reply)
	if err != nil {
		raw, _ = json.Marshal(AskReply{Error: "encode reply failed"})
	}
	return raw
}

func decodeReply(data []byte) (*domain.PipelineResult, error) {
	var reply AskReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("decode ask reply: %w", err)
	}
	if reply.Error != "" {
		err := fmt.Errorf("worker: %s", reply.Error)
		switch reply.Kind {
		case "invalid_input":
			return nil, domain.WrapError(domain.ErrInvalidInput, "ask", err)
		case "temporary":
			return nil, domain.WrapError(domain.ErrTemporary, "ask", err)
		}
		return nil, err
	}
	if reply.Result == nil {
		return nil, fmt.Errorf("decode ask reply: empty result")
	}
	return reply.Result, nil
}

func errorKind(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "invalid_input"
	case domain.IsKind(err, domain.ErrTemporary):
		return "temporary"
	case domain.IsKind(err, domain.ErrRankingStage):
		return "ranking_stage"
	default:
		return "internal"
	}
}
