package control

import (
	"context"
	"fmt"
	"strconv"
	"syscall"

	"github.com/core-tools/hsu-rlimit/pkg/errors"
	"github.com/core-tools/hsu-rlimit/pkg/logging"
	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func wireValue(v resourcelimits.Value) interface{} {
	if v.IsUnbounded() {
		return nil
	}
	return v.String()
}

func wirePair(p resourcelimits.Pair) map[string]interface{} {
	return map[string]interface{}{
		"soft": wireValue(p.Soft),
		"hard": wireValue(p.Hard),
	}
}

func wireUpdate(u resourcelimits.Update) map[string]interface{} {
	update := map[string]interface{}{}
	if u.Soft != nil {
		update["soft"] = wireValue(*u.Soft)
	}
	if u.Hard != nil {
		update["hard"] = wireValue(*u.Hard)
	}
	return update
}

func pairFromWire(m map[string]interface{}) (resourcelimits.Pair, error) {
	soft, err := resourcelimits.ParseValue(m["soft"])
	if err != nil {
		return resourcelimits.Pair{}, errors.NewInternalError("malformed soft limit in response", err)
	}
	hard, err := resourcelimits.ParseValue(m["hard"])
	if err != nil {
		return resourcelimits.Pair{}, errors.NewInternalError("malformed hard limit in response", err)
	}
	return resourcelimits.Pair{Soft: soft, Hard: hard}, nil
}

func nameFromWire(m map[string]interface{}) (string, error) {
	name, ok := m["name"].(string)
	if !ok {
		return "", errors.NewInvalidArgumentError(
			fmt.Sprintf("resource name must be a string, got %T", m["name"]), nil)
	}
	return name, nil
}

// toStatus converts a domain error into a gRPC status, attaching the errno
// as a trailer when there is one.
func toStatus(ctx context.Context, err error, logger logging.Logger) error {
	code := codes.Internal
	switch {
	case errors.IsInvalidArgumentError(err):
		code = codes.InvalidArgument
	case errors.IsUnknownResourceError(err):
		code = codes.NotFound
	case errors.IsSystemError(err):
		code = codes.FailedPrecondition
	}
	if errno, ok := errors.Errno(err); ok {
		if errno == syscall.EPERM {
			code = codes.PermissionDenied
		}
		if trailerErr := grpc.SetTrailer(ctx, metadata.Pairs(errnoTrailer, strconv.Itoa(int(errno)))); trailerErr != nil {
			logger.Warnf("Failed to attach errno %d to response: %v", int(errno), trailerErr)
		}
	}
	return status.Error(code, err.Error())
}

// fromStatus rebuilds the domain error of a failed call
func fromStatus(err error, trailer metadata.MD) error {
	st, ok := status.FromError(err)
	if !ok {
		return errors.NewInternalError("rpc failed", err)
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return errors.NewInvalidArgumentError(st.Message(), nil)
	case codes.NotFound:
		return errors.NewDomainError(errors.ErrorTypeUnknownResource, st.Message(), nil)
	case codes.FailedPrecondition, codes.PermissionDenied:
		var cause error = fmt.Errorf("%s", st.Message())
		if values := trailer.Get(errnoTrailer); len(values) > 0 {
			if n, convErr := strconv.Atoi(values[0]); convErr == nil {
				cause = syscall.Errno(n)
			}
		}
		return errors.NewSystemError("remote", cause).WithContext("remote_message", st.Message())
	default:
		return errors.NewInternalError("rpc failed", err)
	}
}
