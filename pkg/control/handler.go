package control

import (
	"context"

	"github.com/core-tools/hsu-rlimit/pkg/domain"
	"github.com/core-tools/hsu-rlimit/pkg/logging"
	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

func RegisterGRPCServerHandler(grpcServerRegistrar grpc.ServiceRegistrar, handler domain.Contract, logger logging.Logger) {
	grpcServerRegistrar.RegisterService(&rlimitServiceDesc, &grpcServerHandler{
		handler: handler,
		logger:  logger,
	})
}

type grpcServerHandler struct {
	handler domain.Contract
	logger  logging.Logger
}

func (h *grpcServerHandler) GetLimit(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	name, err := nameFromWire(request.AsMap())
	if err != nil {
		return nil, toStatus(ctx, err, h.logger)
	}
	pair, err := h.handler.GetLimit(ctx, name)
	if err != nil {
		h.logger.Errorf("GetLimit server handler: %v", err)
		return nil, toStatus(ctx, err, h.logger)
	}
	h.logger.Debugf("GetLimit server handler done, %s: %s", name, pair)
	return structpb.NewStruct(wirePair(pair))
}

func (h *grpcServerHandler) SetLimit(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	fields := request.AsMap()
	name, err := nameFromWire(fields)
	if err != nil {
		return nil, toStatus(ctx, err, h.logger)
	}
	update, err := resourcelimits.ParseUpdate(fields["update"])
	if err != nil {
		return nil, toStatus(ctx, err, h.logger)
	}
	if err := h.handler.SetLimit(ctx, name, update); err != nil {
		h.logger.Errorf("SetLimit server handler: %v", err)
		return nil, toStatus(ctx, err, h.logger)
	}
	h.logger.Debugf("SetLimit server handler done, %s: %s", name, update)
	return &structpb.Struct{}, nil
}

func (h *grpcServerHandler) ListLimits(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	entries, err := h.handler.ListLimits(ctx)
	if err != nil {
		h.logger.Errorf("ListLimits server handler: %v", err)
		return nil, toStatus(ctx, err, h.logger)
	}
	limits := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		item := wirePair(entry.Pair)
		item["name"] = entry.Name
		if entry.Err != nil {
			item["error"] = entry.Err.Error()
		}
		limits = append(limits, item)
	}
	h.logger.Debugf("ListLimits server handler done, %d resources", len(entries))
	return structpb.NewStruct(map[string]interface{}{"limits": limits})
}
