package auth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"

	"github.com/tbruckner/dMQ/remoting/common"
)

// --------------------------------------------------------------------------
// Header Field Constants
// --------------------------------------------------------------------------

const (
	// FieldSignature carries the base64 encoded request signature
	FieldSignature = "Signature"
	// FieldAccessKey carries the access key half of the credentials
	FieldAccessKey = "AccessKey"
	// FieldChannel carries the channel identifier of the secured deployment
	FieldChannel = "OnsChannel"
	// FieldLanguage carries the client language tag stamped by the
	// enrichment hook before signing
	FieldLanguage = "Language"

	// LanguageGo is the language tag of this client
	LanguageGo = "GO"
)

// --------------------------------------------------------------------------
// Signer
// --------------------------------------------------------------------------

// Signer computes request signatures for the secured deployment mode. A nil
// *Signer is valid and signs nothing, which is the unsecured variant.
type Signer struct {
	creds common.Credentials
}

// NewSigner creates a signer from the given credentials. Passing nil
// credentials selects the unsecured variant and returns a nil signer. A
// half-configured credential pair is rejected.
func NewSigner(creds *common.Credentials) (*Signer, error) {
	if creds == nil {
		return nil, nil
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &Signer{creds: *creds}, nil
}

// Sign computes the signature over the command and sets the Signature,
// AccessKey and OnsChannel extension fields. The signature covers, in order:
// the access key, the channel identifier, the value of every extension field
// already present on the header in insertion order, and the body bytes. It
// must therefore run after all other fields are populated and before the
// header is serialized.
func (s *Signer) Sign(cmd *common.Command) {
	if s == nil {
		return
	}

	var buf bytes.Buffer
	buf.WriteString(s.creds.AccessKey)
	buf.WriteString(s.creds.Channel)
	cmd.Fields.Range(func(_, value string) bool {
		buf.WriteString(value)
		return true
	})
	if len(cmd.Body) > 0 {
		buf.Write(cmd.Body)
	}

	mac := hmac.New(sha1.New, []byte(s.creds.SecretKey))
	mac.Write(buf.Bytes())
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	fields := cmd.EnsureFields()
	fields.Set(FieldSignature, signature)
	fields.Set(FieldAccessKey, s.creds.AccessKey)
	fields.Set(FieldChannel, s.creds.Channel)
}

// Enrich stamps protocol metadata onto the header before signing occurs. In
// the secured variant this is the fixed client language tag.
func (s *Signer) Enrich(cmd *common.Command) {
	if s == nil {
		return
	}
	cmd.EnsureFields().Set(FieldLanguage, LanguageGo)
}
