package pipeline

import (
	"net/url"
	"strings"
)

// linkPrefix is the WhatsApp deep-link base with the Bangladesh calling
// code. The phone is appended digit-only, as stored.
const linkPrefix = "https://wa.me/+88"

// EncodeMessage percent-encodes message text for the deep link's text
// parameter. Profile: standard query escaping with spaces as %20 (not +),
// so the link opens identically across WhatsApp clients. Valid UTF-8
// always encodes; there is no failure mode.
func EncodeMessage(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// WhatsAppLink builds the outbound deep link for a normalized phone and a
// composed message text. Deterministic, pure.
func WhatsAppLink(phone, message string) string {
	return linkPrefix + phone + "?text=" + EncodeMessage(message)
}
