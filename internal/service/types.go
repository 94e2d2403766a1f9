package service

import "github.com/arpansaha13/enrollkit/pb"

// EnrollUserRequest represents enroll user input
type EnrollUserRequest struct {
	Name     string `json:"name" yaml:"name"`
	LastName string `json:"lastName,omitempty" yaml:"lastName"`
	UserName string `json:"userName" yaml:"userName"`
	EMail    string `json:"eMail" yaml:"eMail"`
	Password string `json:"-" yaml:"password"` // optional
}

// EnrolledUser represents enroll user output
type EnrolledUser struct {
	Name     string `json:"name"`
	UserName string `json:"userName"`
	EMail    string `json:"eMail"`
}

// ResetPasswordFromTokenRequest represents reset password from token input
type ResetPasswordFromTokenRequest struct {
	Token    string
	Password string
}

// StatusResponse is the outcome of a reset or activation request.
// ResponseTypeStatus is empty when the service sent a code this client does
// not know; ResponseType always holds the raw code.
type StatusResponse struct {
	ResponseType       int32  `json:"responseType"`
	ResponseTypeStatus string `json:"responseTypeStatus,omitempty"`
}

// Resolved reports whether the code mapped to a known status name
func (r StatusResponse) Resolved() bool {
	return r.ResponseTypeStatus != ""
}

// OK reports whether the service accepted the request
func (r StatusResponse) OK() bool {
	return pb.ResponseType(r.ResponseType) == pb.ResponseType_OK
}

func statusOf(code pb.ResponseType) *StatusResponse {
	name, _ := pb.ResponseTypeName(int32(code))
	return &StatusResponse{
		ResponseType:       int32(code),
		ResponseTypeStatus: name,
	}
}
