package grpc

import (
	"google.golang.org/grpc"

	imw "github.com/arpansaha13/enrollkit/internal/middleware"
)

// ErrorInterceptor translates domain errors to gRPC status codes
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	return imw.ErrorInterceptor()
}

// ClientErrorInterceptor reports failed calls as transport errors
func ClientErrorInterceptor() grpc.UnaryClientInterceptor {
	return imw.ClientErrorInterceptor()
}
