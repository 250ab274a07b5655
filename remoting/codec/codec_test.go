package codec

import (
	"bytes"
	"testing"

	"github.com/tbruckner/dMQ/remoting/common"
)

// testCodecs is a map of codec name to factory function
var testCodecs = map[string]func() ICommandCodec{
	"JSON": NewJSONCodec,
	"GOB":  NewGOBCodec,
}

// TestCodecRoundTrip tests that commands survive an encode/decode cycle
func TestCodecRoundTrip(t *testing.T) {
	request := common.NewCommand(14)
	request.Opaque = 77
	request.Fields.Set("Topic", "orders")
	request.Fields.Set("Signature", "c2ln")
	request.Body = []byte{0x00, 0x01, 0xfe, 0xff}

	response := common.NewResponse(5, "com.foo.Exception: bad request, extra info")
	response.Opaque = 77

	empty := &common.Command{}

	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			for _, cmd := range []*common.Command{request, response, empty} {
				data, err := c.Encode(cmd)
				if err != nil {
					t.Fatalf("Failed to encode %v: %v", cmd, err)
				}

				var back common.Command
				if err := c.Decode(data, &back); err != nil {
					t.Fatalf("Failed to decode %v: %v", cmd, err)
				}

				if back.Code != cmd.Code || back.Opaque != cmd.Opaque || back.Remark != cmd.Remark {
					t.Errorf("Header mismatch after round trip: %+v vs %+v", cmd, &back)
				}
				if !bytes.Equal(back.Body, cmd.Body) {
					t.Errorf("Body mismatch after round trip: %v vs %v", cmd.Body, back.Body)
				}
				if back.Fields.Len() != cmd.Fields.Len() {
					t.Errorf("Field count mismatch: %d vs %d", cmd.Fields.Len(), back.Fields.Len())
				}
			}
		})
	}
}

// TestCodecFieldOrder tests that the extension field order survives encoding,
// since the signature covers the values in iteration order
func TestCodecFieldOrder(t *testing.T) {
	cmd := common.NewCommand(1)
	cmd.Fields.Set("z", "1")
	cmd.Fields.Set("a", "2")
	cmd.Fields.Set("m", "3")

	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			data, err := c.Encode(cmd)
			if err != nil {
				t.Fatal(err)
			}
			var back common.Command
			if err := c.Decode(data, &back); err != nil {
				t.Fatal(err)
			}

			var keys []string
			back.Fields.Range(func(key, _ string) bool {
				keys = append(keys, key)
				return true
			})
			if len(keys) != 3 || keys[0] != "z" || keys[1] != "a" || keys[2] != "m" {
				t.Errorf("Field order lost: %v", keys)
			}
		})
	}
}

// TestCodecInvalidData tests decoding of corrupt input
func TestCodecInvalidData(t *testing.T) {
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			var cmd common.Command
			if err := factory().Decode([]byte{0xde, 0xad}, &cmd); err == nil {
				t.Error("Expected error for corrupt input")
			}
		})
	}
}
