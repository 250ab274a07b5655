package codec

import (
	"encoding/json"

	"github.com/tbruckner/dMQ/remoting/common"
)

// NewJSONCodec creates a new codec using json encoding
func NewJSONCodec() ICommandCodec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the ICommandCodec interface using json encoding
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICommandCodec)
// --------------------------------------------------------------------------

func (j jsonCodecImpl) Encode(cmd *common.Command) ([]byte, error) {
	return json.Marshal(cmd)
}

func (j jsonCodecImpl) Decode(b []byte, cmd *common.Command) error {
	return json.Unmarshal(b, cmd)
}
