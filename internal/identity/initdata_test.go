package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testBotToken = "12345:TEST"

// signInitData builds initData the way Telegram does: sorted key=value pairs
// joined with newlines, HMAC-keyed via "WebAppData" and the bot token.
func signInitData(pairs url.Values, botToken string) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	checkString := ""
	for i, k := range keys {
		if i > 0 {
			checkString += "\n"
		}
		checkString += k + "=" + pairs.Get(k)
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))

	pairs.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return pairs.Encode()
}

func TestVerifyInitDataAccepts(t *testing.T) {
	v := url.Values{}
	v.Set("auth_date", "1700000000")
	v.Set("query_id", "AAE")
	v.Set("user", `{"id":1}`)

	initData := signInitData(v, testBotToken)
	assert.True(t, VerifyInitData(initData, testBotToken))
}

func TestVerifyInitDataRejectsTampering(t *testing.T) {
	v := url.Values{}
	v.Set("auth_date", "1700000000")
	v.Set("user", `{"id":1}`)
	initData := signInitData(v, testBotToken)

	assert.False(t, VerifyInitData(initData+"&user=%7B%22id%22%3A2%7D", testBotToken))
	assert.False(t, VerifyInitData(initData, "other:TOKEN"))
}

func TestVerifyInitDataRejectsMissingHash(t *testing.T) {
	assert.False(t, VerifyInitData("auth_date=1700000000", testBotToken))
	assert.False(t, VerifyInitData("%zz", testBotToken))
}
