package pb

import "strconv"

// ResponseType is the outcome category of a reset or activation request.
// OK is the zero value and is omitted on the wire.
type ResponseType int32

const (
	ResponseType_OK              ResponseType = 0
	ResponseType_USER_NOT_FOUND  ResponseType = 1
	ResponseType_TOKEN_NOT_FOUND ResponseType = 2
	ResponseType_ERROR           ResponseType = 3
)

var (
	responseTypeName = map[ResponseType]string{
		ResponseType_OK:              "OK",
		ResponseType_USER_NOT_FOUND:  "USER_NOT_FOUND",
		ResponseType_TOKEN_NOT_FOUND: "TOKEN_NOT_FOUND",
		ResponseType_ERROR:           "ERROR",
	}
	responseTypeValue = func() map[string]ResponseType {
		m := make(map[string]ResponseType, len(responseTypeName))
		for v, name := range responseTypeName {
			m[name] = v
		}
		return m
	}()
)

// ResponseTypeName returns the symbolic name of code. ok is false for codes
// outside the known set.
func ResponseTypeName(code int32) (name string, ok bool) {
	name, ok = responseTypeName[ResponseType(code)]
	return name, ok
}

// ParseResponseType returns the member named name.
func ParseResponseType(name string) (ResponseType, bool) {
	v, ok := responseTypeValue[name]
	return v, ok
}

// String returns the symbolic name, or the decimal code when it is unknown.
func (x ResponseType) String() string {
	if name, ok := responseTypeName[x]; ok {
		return name
	}
	return strconv.Itoa(int(x))
}

// Known reports whether x is a member of the enumeration.
func (x ResponseType) Known() bool {
	_, ok := responseTypeName[x]
	return ok
}
