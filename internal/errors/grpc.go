package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToGRPCError converts an error to a gRPC status error. Metadata travels as a
// structpb.Struct detail when it is representable.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	if len(customErr.Meta) == 0 {
		return st.Err()
	}

	details, convErr := structpb.NewStruct(jsonSafe(customErr.Meta))
	if convErr != nil {
		return st.Err()
	}
	withDetails, detailErr := st.WithDetails(details)
	if detailErr != nil {
		return st.Err()
	}
	return withDetails.Err()
}

// FromGRPCError converts a gRPC error to our custom error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		if s, ok := detail.(*structpb.Struct); ok {
			customErr.Meta = s.AsMap()
			break
		}
	}

	return customErr
}

// jsonSafe converts metadata values structpb cannot take natively
// (string slices, int maps and the like) into their generic forms.
func jsonSafe(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		switch t := v.(type) {
		case []string:
			list := make([]any, len(t))
			for i, s := range t {
				list[i] = s
			}
			out[k] = list
		case map[string][]string:
			nested := make(map[string]any, len(t))
			for nk, nv := range t {
				list := make([]any, len(nv))
				for i, s := range nv {
					list[i] = s
				}
				nested[nk] = list
			}
			out[k] = nested
		default:
			out[k] = v
		}
	}
	return out
}
