package okx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Sign computes the OK-ACCESS-SIGN header value: the base64-encoded
// HMAC-SHA256 of timestamp + upper-cased method + request path + body,
// keyed with the account's secret. Pure function, no transport state.
func Sign(timestamp, method, requestPath, body, secretKey string) string {
	message := timestamp + strings.ToUpper(method) + requestPath + body
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
