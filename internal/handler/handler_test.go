package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stockbot/internal/testutil"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testChannelSecret = "test-channel-secret"

func newWebhookFixture(t *testing.T) *handlerFixture {
	t.Helper()

	f := newFixture(t)
	bot, err := linebot.New(testChannelSecret, "test-token")
	require.NoError(t, err)
	f.h = NewHandler(bot, f.api, f.states, f.news, f.stocks, f.backtest, f.recorder, testutil.NewTestLogger())
	return f
}

func signBody(secret string, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func serve(f *handlerFixture, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	f.h.Register(mux)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

const textEventBody = `{"destination":"xxx","events":[{"type":"message","mode":"active","timestamp":1700000000000,"replyToken":"rt-hook","source":{"type":"user","userId":"U1"},"message":{"type":"text","id":"100001","text":"目錄"}}]}`

func TestRoot_Liveness(t *testing.T) {
	f := newWebhookFixture(t)

	w := serve(f, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, livenessText, w.Body.String())
}

func TestRoot_UnknownPath(t *testing.T) {
	f := newWebhookFixture(t)

	w := serve(f, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCallback_InvalidSignature(t *testing.T) {
	f := newWebhookFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(textEventBody))
	req.Header.Set("X-Line-Signature", "bm90LWEtcmVhbC1zaWduYXR1cmU=")

	w := serve(f, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.api.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
}

func TestCallback_MissingSignature(t *testing.T) {
	f := newWebhookFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(textEventBody))

	w := serve(f, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.api.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
}

func TestCallback_WrongMethod(t *testing.T) {
	f := newWebhookFixture(t)

	w := serve(f, httptest.NewRequest(http.MethodGet, "/callback", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCallback_ValidSignatureDispatches(t *testing.T) {
	f := newWebhookFixture(t)
	f.api.On("Reply", mock.Anything, "rt-hook", templateReply("功能目錄")).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(textEventBody))
	req.Header.Set("X-Line-Signature", signBody(testChannelSecret, textEventBody))

	w := serve(f, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	f.api.AssertExpectations(t)
}

func TestCallback_MemberJoinedWelcome(t *testing.T) {
	f := newWebhookFixture(t)

	body := `{"destination":"xxx","events":[{"type":"memberJoined","mode":"active","timestamp":1700000000000,"replyToken":"rt-join","source":{"type":"group","groupId":"G1"},"joined":{"members":[{"type":"user","userId":"U2"}]}}]}`

	f.api.On("DisplayName", mock.Anything, "G1", "U2").Return("小明", nil).Once()
	f.api.On("Reply", mock.Anything, "rt-join", textReply("小明"+replyWelcome)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("X-Line-Signature", signBody(testChannelSecret, body))

	w := serve(f, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.api.AssertExpectations(t)
}

func TestCallback_MemberJoinedProfileFailureStillWelcomes(t *testing.T) {
	f := newWebhookFixture(t)

	body := `{"destination":"xxx","events":[{"type":"memberJoined","mode":"active","timestamp":1700000000000,"replyToken":"rt-join","source":{"type":"group","groupId":"G1"},"joined":{"members":[{"type":"user","userId":"U2"}]}}]}`

	f.api.On("DisplayName", mock.Anything, "G1", "U2").Return("", assert.AnError).Once()
	f.api.On("Reply", mock.Anything, "rt-join", textReply(replyWelcome)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("X-Line-Signature", signBody(testChannelSecret, body))

	w := serve(f, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.api.AssertExpectations(t)
}

func TestCallback_NonTextMessageIgnored(t *testing.T) {
	f := newWebhookFixture(t)

	body := `{"destination":"xxx","events":[{"type":"message","mode":"active","timestamp":1700000000000,"replyToken":"rt-hook","source":{"type":"user","userId":"U1"},"message":{"type":"sticker","id":"100002","stickerId":"1","packageId":"1"}}]}`

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("X-Line-Signature", signBody(testChannelSecret, body))

	w := serve(f, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.api.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
}
