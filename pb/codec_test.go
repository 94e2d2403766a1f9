package pb

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestCodec(t *testing.T) {
	c := Codec{}
	assert.Equal(t, "proto", c.Name())

	b, err := c.Marshal(&User{Username: "alice"})
	require.NoError(t, err)

	var f Frame
	require.NoError(t, c.Unmarshal(b, &f))
	assert.Equal(t, Frame(b), f)

	var u User
	require.NoError(t, c.Unmarshal(f, &u))
	assert.Equal(t, "alice", u.Username)

	_, err = c.Marshal("not a message")
	assert.Error(t, err)
	assert.Error(t, c.Unmarshal(b, new(string)))
}

type echoServer struct {
	UnimplementedRegisterServer
}

func (echoServer) EnrollUser(_ context.Context, req *EnrollUserRequest) (*User, error) {
	return &User{Username: req.Username, Name: req.Name, Email: req.Email, Token: "activation"}, nil
}

func (echoServer) ResetPassword(_ context.Context, req *ResetPasswordRequest) (*ResetPasswordResponse, error) {
	if req.Email == "" {
		return &ResetPasswordResponse{ResponseType: ResponseType_USER_NOT_FOUND}, nil
	}
	return &ResetPasswordResponse{}, nil
}

func dialEcho(t *testing.T, srv RegisterServer) RegisterChannel {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.ForceServerCodec(Codec{}))
	RegisterRegisterServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewRegisterChannel(conn)
}

func TestRegisterChannel_RoundTrip(t *testing.T) {
	ch := dialEcho(t, echoServer{})
	ctx := context.Background()

	in, err := (&EnrollUserRequest{Username: "alice", Name: "Alice", Email: "alice@x.com"}).Marshal()
	require.NoError(t, err)

	out, err := ch.EnrollUser(ctx, in)
	require.NoError(t, err)

	var u User
	require.NoError(t, u.Unmarshal(out))
	assert.Equal(t, User{Username: "alice", Name: "Alice", Email: "alice@x.com", Token: "activation"}, u)

	in, err = (&ResetPasswordRequest{Username: "alice"}).Marshal()
	require.NoError(t, err)

	out, err = ch.ResetPassword(ctx, in)
	require.NoError(t, err)

	var resp ResetPasswordResponse
	require.NoError(t, resp.Unmarshal(out))
	assert.Equal(t, ResponseType_USER_NOT_FOUND, resp.ResponseType)
}

func TestRegisterChannel_Unimplemented(t *testing.T) {
	ch := dialEcho(t, echoServer{})

	_, err := ch.ActivateUser(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestRegisterChannel_MalformedRequestRejectedByServer(t *testing.T) {
	ch := dialEcho(t, echoServer{})

	_, err := ch.EnrollUser(context.Background(), []byte{0x0a, 0x05, 'a'})
	require.Error(t, err)
	assert.NotEqual(t, codes.OK, status.Code(err))
}
