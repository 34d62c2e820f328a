package control

import (
	"context"
	"fmt"

	"github.com/core-tools/hsu-rlimit/pkg/domain"
	"github.com/core-tools/hsu-rlimit/pkg/errors"
	"github.com/core-tools/hsu-rlimit/pkg/logging"
	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

func NewGRPCClientGateway(grpcClientConnection grpc.ClientConnInterface, logger logging.Logger) domain.Contract {
	return &grpcClientGateway{
		conn:   grpcClientConnection,
		logger: logger,
	}
}

type grpcClientGateway struct {
	conn   grpc.ClientConnInterface
	logger logging.Logger
}

func (gw *grpcClientGateway) invoke(ctx context.Context, method string, request map[string]interface{}) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(request)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("cannot encode request", err)
	}
	out := new(structpb.Struct)
	var trailer metadata.MD
	if err := gw.conn.Invoke(ctx, method, in, out, grpc.Trailer(&trailer)); err != nil {
		gw.logger.Errorf("%s client gateway: %v", method, err)
		return nil, fromStatus(err, trailer)
	}
	gw.logger.Debugf("%s client gateway done", method)
	return out, nil
}

func (gw *grpcClientGateway) GetLimit(ctx context.Context, name string) (resourcelimits.Pair, error) {
	out, err := gw.invoke(ctx, methodGetLimit, map[string]interface{}{"name": name})
	if err != nil {
		return resourcelimits.Pair{}, err
	}
	return pairFromWire(out.AsMap())
}

func (gw *grpcClientGateway) SetLimit(ctx context.Context, name string, update resourcelimits.Update) error {
	_, err := gw.invoke(ctx, methodSetLimit, map[string]interface{}{
		"name":   name,
		"update": wireUpdate(update),
	})
	return err
}

func (gw *grpcClientGateway) ListLimits(ctx context.Context) ([]resourcelimits.Entry, error) {
	out, err := gw.invoke(ctx, methodListLimits, map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	items, _ := out.AsMap()["limits"].([]interface{})
	entries := make([]resourcelimits.Entry, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]interface{})
		if !ok {
			return nil, errors.NewInternalError(fmt.Sprintf("malformed limits entry %T", item), nil)
		}
		entry := resourcelimits.Entry{}
		entry.Name, _ = fields["name"].(string)
		if message, failed := fields["error"].(string); failed {
			entry.Err = errors.NewDomainError(errors.ErrorTypeSystem, message, nil)
		} else if entry.Pair, err = pairFromWire(fields); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
