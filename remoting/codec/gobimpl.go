package codec

import (
	"bytes"
	"encoding/gob"

	"github.com/tbruckner/dMQ/remoting/common"
)

// NewGOBCodec creates a new codec using Go's binary gob format
func NewGOBCodec() ICommandCodec {
	return &gobCodecImpl{}
}

// gobCodecImpl implements the ICommandCodec interface using gob encoding
type gobCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICommandCodec)
// --------------------------------------------------------------------------

func (g gobCodecImpl) Encode(cmd *common.Command) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(cmd); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobCodecImpl) Decode(b []byte, cmd *common.Command) error {
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)
	return dec.Decode(cmd)
}
