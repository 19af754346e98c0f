package main

import (
	"context"

	assistantrpc "chalk/internal/modules/assistant/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *assistantrpc.Empty) (*assistantrpc.Metadata, error) {
	return &assistantrpc.Metadata{
		Name:         "glossary",
		Version:      "1.0.0",
		Capabilities: []string{"answer"},
	}, nil
}

func (s *server) Answer(_ context.Context, in *assistantrpc.AnswerRequest) (*assistantrpc.AnswerResponse, error) {
	text, terms := answer(in.Question, in.LessonTitle)
	return &assistantrpc.AnswerResponse{Text: text, Terms: terms}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: assistantrpc.HandshakeConfig,
		Plugins:         assistantrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
