package outbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailPayloadRoundTrip(t *testing.T) {
	encoded, err := EncodeEmailPayload(EmailPayload{
		Subject: "Complaint escalated",
		Body:    "Complaint cmp_123 moved to state level.",
	})
	require.NoError(t, err)

	decoded, err := DecodeEmailPayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, "Complaint escalated", decoded.Subject)
	assert.Equal(t, "Complaint cmp_123 moved to state level.", decoded.Body)
}

func TestEncodeEmailPayloadValidation(t *testing.T) {
	_, err := EncodeEmailPayload(EmailPayload{Body: "no subject"})
	require.Error(t, err)

	_, err = EncodeEmailPayload(EmailPayload{Subject: "no body"})
	require.Error(t, err)
}

func TestDecodeEmailPayloadRejectsPartial(t *testing.T) {
	_, err := DecodeEmailPayload(`{"subject":"only subject"}`)
	require.Error(t, err)

	_, err = DecodeEmailPayload(`not json`)
	require.Error(t, err)
}

func TestSMSPayloadRoundTrip(t *testing.T) {
	encoded, err := EncodeSMSPayload(SMSPayload{Text: "complaint escalated"})
	require.NoError(t, err)

	decoded, err := DecodeSMSPayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, "complaint escalated", decoded.Text)
}

func TestEncodeSMSPayloadLengthCap(t *testing.T) {
	_, err := EncodeSMSPayload(SMSPayload{Text: strings.Repeat("a", MaxSMSTextLength)})
	require.NoError(t, err)

	_, err = EncodeSMSPayload(SMSPayload{Text: strings.Repeat("a", MaxSMSTextLength+1)})
	require.Error(t, err)
}
