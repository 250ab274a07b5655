package codec

import "github.com/tbruckner/dMQ/remoting/common"

// ICommandCodec is the interface for all command codecs
type ICommandCodec interface {
	// Encode serializes a Command into a byte array
	// It returns the serialized byte array and an error if any
	Encode(cmd *common.Command) ([]byte, error)
	// Decode deserializes a byte array into a Command
	// It takes a byte array and a pointer to a Command as parameters
	// It returns an error if any
	Decode(b []byte, cmd *common.Command) error
}
