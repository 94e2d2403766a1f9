package pb

// EnrollUserRequest asks the service to create a new, not yet active user.
type EnrollUserRequest struct {
	Username        string
	Name            string
	LastName        string
	Email           string
	ClientVersion   string
	ApplicationType string
	Password        string
}

var enrollUserRequestSchema = newSchema("enrollment.EnrollUserRequest",
	stringField(1, "username", func(m *EnrollUserRequest) *string { return &m.Username }),
	stringField(2, "name", func(m *EnrollUserRequest) *string { return &m.Name }),
	stringField(3, "last_name", func(m *EnrollUserRequest) *string { return &m.LastName }),
	stringField(4, "email", func(m *EnrollUserRequest) *string { return &m.Email }),
	stringField(5, "client_version", func(m *EnrollUserRequest) *string { return &m.ClientVersion }),
	stringField(6, "application_type", func(m *EnrollUserRequest) *string { return &m.ApplicationType }),
	stringField(7, "password", func(m *EnrollUserRequest) *string { return &m.Password }),
)

func (m *EnrollUserRequest) Marshal() ([]byte, error) { return enrollUserRequestSchema.marshal(m) }
func (m *EnrollUserRequest) Unmarshal(b []byte) error { return enrollUserRequestSchema.unmarshal(b, m) }

// ResetPasswordRequest identifies the account by username or by email.
type ResetPasswordRequest struct {
	Username      string
	Email         string
	ClientVersion string
}

var resetPasswordRequestSchema = newSchema("enrollment.ResetPasswordRequest",
	stringField(1, "username", func(m *ResetPasswordRequest) *string { return &m.Username }),
	stringField(2, "email", func(m *ResetPasswordRequest) *string { return &m.Email }),
	stringField(3, "client_version", func(m *ResetPasswordRequest) *string { return &m.ClientVersion }),
)

func (m *ResetPasswordRequest) Marshal() ([]byte, error) { return resetPasswordRequestSchema.marshal(m) }
func (m *ResetPasswordRequest) Unmarshal(b []byte) error {
	return resetPasswordRequestSchema.unmarshal(b, m)
}

// ResetPasswordTokenRequest sets a new password using a reset token.
type ResetPasswordTokenRequest struct {
	Token         string
	Password      string
	ClientVersion string
}

var resetPasswordTokenRequestSchema = newSchema("enrollment.ResetPasswordTokenRequest",
	stringField(1, "token", func(m *ResetPasswordTokenRequest) *string { return &m.Token }),
	stringField(2, "password", func(m *ResetPasswordTokenRequest) *string { return &m.Password }),
	stringField(3, "client_version", func(m *ResetPasswordTokenRequest) *string { return &m.ClientVersion }),
)

func (m *ResetPasswordTokenRequest) Marshal() ([]byte, error) {
	return resetPasswordTokenRequestSchema.marshal(m)
}
func (m *ResetPasswordTokenRequest) Unmarshal(b []byte) error {
	return resetPasswordTokenRequestSchema.unmarshal(b, m)
}

// User is the enrolled user returned by EnrollUser.
type User struct {
	Username string
	Name     string
	LastName string
	Email    string
	Token    string
}

var userSchema = newSchema("enrollment.User",
	stringField(1, "username", func(m *User) *string { return &m.Username }),
	stringField(2, "name", func(m *User) *string { return &m.Name }),
	stringField(3, "last_name", func(m *User) *string { return &m.LastName }),
	stringField(4, "email", func(m *User) *string { return &m.Email }),
	stringField(5, "token", func(m *User) *string { return &m.Token }),
)

func (m *User) Marshal() ([]byte, error) { return userSchema.marshal(m) }
func (m *User) Unmarshal(b []byte) error { return userSchema.unmarshal(b, m) }

// ResetPasswordResponse answers both ResetPassword and ResetPasswordFromToken.
type ResetPasswordResponse struct {
	ResponseType ResponseType
	Token        string
}

var resetPasswordResponseSchema = newSchema("enrollment.ResetPasswordResponse",
	enumField(1, "response_type", func(m *ResetPasswordResponse) *int32 { return (*int32)(&m.ResponseType) }),
	stringField(2, "token", func(m *ResetPasswordResponse) *string { return &m.Token }),
)

func (m *ResetPasswordResponse) Marshal() ([]byte, error) {
	return resetPasswordResponseSchema.marshal(m)
}
func (m *ResetPasswordResponse) Unmarshal(b []byte) error {
	return resetPasswordResponseSchema.unmarshal(b, m)
}

// ActivateUserRequest activates an enrolled user with the token it was issued.
type ActivateUserRequest struct {
	Token           string
	ClientVersion   string
	ApplicationType string
}

var activateUserRequestSchema = newSchema("enrollment.ActivateUserRequest",
	stringField(1, "token", func(m *ActivateUserRequest) *string { return &m.Token }),
	stringField(2, "client_version", func(m *ActivateUserRequest) *string { return &m.ClientVersion }),
	stringField(3, "application_type", func(m *ActivateUserRequest) *string { return &m.ApplicationType }),
)

func (m *ActivateUserRequest) Marshal() ([]byte, error) { return activateUserRequestSchema.marshal(m) }
func (m *ActivateUserRequest) Unmarshal(b []byte) error {
	return activateUserRequestSchema.unmarshal(b, m)
}

// ActivateUserResponse carries the activation outcome.
type ActivateUserResponse struct {
	ResponseType ResponseType
	Token        string
}

var activateUserResponseSchema = newSchema("enrollment.ActivateUserResponse",
	enumField(1, "response_type", func(m *ActivateUserResponse) *int32 { return (*int32)(&m.ResponseType) }),
	stringField(2, "token", func(m *ActivateUserResponse) *string { return &m.Token }),
)

func (m *ActivateUserResponse) Marshal() ([]byte, error) { return activateUserResponseSchema.marshal(m) }
func (m *ActivateUserResponse) Unmarshal(b []byte) error {
	return activateUserResponseSchema.unmarshal(b, m)
}

// Frame is a message that is already in its encoded form.
type Frame []byte

func (f *Frame) Marshal() ([]byte, error) { return *f, nil }

func (f *Frame) Unmarshal(b []byte) error {
	*f = append((*f)[:0], b...)
	return nil
}

var (
	_ Message = (*EnrollUserRequest)(nil)
	_ Message = (*ResetPasswordRequest)(nil)
	_ Message = (*ResetPasswordTokenRequest)(nil)
	_ Message = (*User)(nil)
	_ Message = (*ResetPasswordResponse)(nil)
	_ Message = (*ActivateUserRequest)(nil)
	_ Message = (*ActivateUserResponse)(nil)
	_ Message = (*Frame)(nil)
)
