package pb

import "fmt"

// CodecName is the content-subtype the enrollment service speaks.
const CodecName = "proto"

// Codec moves Message values across a gRPC connection. It is passed per call
// or per server and never registered globally.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("pb: cannot marshal %T: not a Message", v)
	}
	return m.Marshal()
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("pb: cannot unmarshal into %T: not a Message", v)
	}
	return m.Unmarshal(data)
}

func (Codec) Name() string {
	return CodecName
}
