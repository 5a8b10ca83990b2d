package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhatsAppLink_Format(t *testing.T) {
	link := WhatsAppLink("01711000000", "Hello World")
	assert.Equal(t, "https://wa.me/+8801711000000?text=Hello%20World", link)
}

func TestEncodeMessage_SpacesAsPercent20(t *testing.T) {
	encoded := EncodeMessage("a b c")
	assert.Equal(t, "a%20b%20c", encoded)
	assert.NotContains(t, encoded, "+")
}

func TestEncodeMessage_Multiline(t *testing.T) {
	encoded := EncodeMessage("*Order Verification*\n\nDear Jane,")
	assert.Equal(t, "%2AOrder%20Verification%2A%0A%0ADear%20Jane%2C", encoded)
}

func TestEncodeMessage_Deterministic(t *testing.T) {
	msg := "Assalamu Alaikum, Sir!\nTotal: 500.00 BDT"
	assert.Equal(t, EncodeMessage(msg), EncodeMessage(msg))
}

func TestWhatsAppLink_NoRawWhitespace(t *testing.T) {
	link := WhatsAppLink("01711000000", "line one\nline two")
	assert.False(t, strings.ContainsAny(link, " \n"))
}
