package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "assistant"
	serviceName       = "chalk.assistant.v1.Assistant"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodAnswer      = "/" + serviceName + "/Answer"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "CHALK_ASSISTANT",
	MagicCookieValue: "chalk",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type AnswerRequest struct {
	Question    string `json:"question"`
	LessonID    string `json:"lesson_id"`
	LessonTitle string `json:"lesson_title"`
}

type AnswerResponse struct {
	Text  string   `json:"text"`
	Terms []string `json:"terms"`
}

type AssistantServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Answer(ctx context.Context, in *AnswerRequest) (*AnswerResponse, error)
}

type AssistantClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Answer(ctx context.Context, in *AnswerRequest) (*AnswerResponse, error)
}

type assistantClient struct {
	conn *grpc.ClientConn
}

func NewAssistantClient(conn *grpc.ClientConn) AssistantClient {
	return &assistantClient{conn: conn}
}

func (c *assistantClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *assistantClient) Answer(ctx context.Context, in *AnswerRequest) (*AnswerResponse, error) {
	out := &AnswerResponse{}
	if err := c.conn.Invoke(ctx, methodAnswer, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterAssistantServer(server grpc.ServiceRegistrar, impl AssistantServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*AssistantServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Answer",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &AnswerRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Answer(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAnswer}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*AnswerRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Answer(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "chalk/assistant/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl AssistantServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterAssistantServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewAssistantClient(conn), nil
}

func PluginMap(impl AssistantServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
