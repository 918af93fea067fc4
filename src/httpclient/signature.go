package httpclient

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	HeaderApiKey      = "X-Api-Key"
	HeaderTimestamp   = "X-Timestamp"
	HeaderSignature   = "X-Api-Signature"
	HeaderRequestID   = "X-Request-Id"
	HeaderTraceID     = "X-Trace-Id"
	HeaderAuthorize   = "Authorization"
	SignedHeaders     = "authorization;x-api-key;x-timestamp"
	SignatureAlgoName = "HMAC-SHA256"
)

// FormatTimestamp renders t as unix seconds with a millisecond fraction.
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%d.%03d", t.Unix(), t.Nanosecond()/int(time.Millisecond))
}

// Sign computes the X-Api-Signature header value. The canonical request is
// METHOD|path|query|canonical headers|signed headers|sha1(body), where the body
// hash is omitted for requests without a body.
func Sign(method, path, rawQuery, accessToken, appKey, timestamp string, body []byte, appSecret string) string {
	var canonical strings.Builder
	canonical.WriteString(strings.ToUpper(method))
	canonical.WriteString("|")
	canonical.WriteString(path)
	canonical.WriteString("|")
	canonical.WriteString(rawQuery)
	canonical.WriteString("|")
	fmt.Fprintf(&canonical, "authorization:%s\nx-api-key:%s\nx-timestamp:%s\n", accessToken, appKey, timestamp)
	canonical.WriteString("|")
	canonical.WriteString(SignedHeaders)
	canonical.WriteString("|")
	if len(body) > 0 {
		canonical.WriteString(sha1Hex(body))
	}

	stringToSign := SignatureAlgoName + "|" + sha1Hex([]byte(canonical.String()))

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(stringToSign))

	return fmt.Sprintf("%s SignedHeaders=%s, Signature=%s", SignatureAlgoName, SignedHeaders, hex.EncodeToString(mac.Sum(nil)))
}

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
