package expo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/elastiquality/notify-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url, accessToken string) *Client {
	return NewClient(&config.Config{PushGatewayURL: url, PushAccessToken: accessToken})
}

func makeTokens(n int) []string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("ExponentPushToken[%03d]", i)
	}
	return tokens
}

func TestSendPush_ZeroTokens_NoRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	err := testClient(srv.URL, "").SendPush(context.Background(), nil, "t", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestSendPush_150Tokens_TwoBatches(t *testing.T) {
	var mu sync.Mutex
	var batchSizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msgs []pushMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msgs))
		mu.Lock()
		batchSizes = append(batchSizes, len(msgs))
		mu.Unlock()
	}))
	defer srv.Close()

	err := testClient(srv.URL, "").SendPush(context.Background(), makeTokens(150), "t", "b", nil)
	require.NoError(t, err)

	sort.Sort(sort.Reverse(sort.IntSlice(batchSizes)))
	assert.Equal(t, []int{99, 51}, batchSizes)
}

func TestSendPush_BatchRejected_NoErrorReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid tokens", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := testClient(srv.URL, "").SendPush(context.Background(), makeTokens(3), "t", "b", nil)
	assert.NoError(t, err)
}

func TestSendPush_OneBatchRejected_OthersStillDelivered(t *testing.T) {
	var mu sync.Mutex
	delivered := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msgs []pushMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msgs))
		mu.Lock()
		defer mu.Unlock()
		if len(msgs) == 99 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		delivered += len(msgs)
	}))
	defer srv.Close()

	err := testClient(srv.URL, "").SendPush(context.Background(), makeTokens(150), "t", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, 51, delivered)
}

func TestSendPush_MessageShapeAndAuthHeader(t *testing.T) {
	var got []pushMessage
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	data := map[string]interface{}{"leadId": "l1"}
	err := testClient(srv.URL, "secret").SendPush(context.Background(), []string{"tok1"}, "New request available", "Plumbing in Lisboa", data)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", auth)
	require.Len(t, got, 1)
	assert.Equal(t, "tok1", got[0].To)
	assert.Equal(t, "default", got[0].Sound)
	assert.Equal(t, "New request available", got[0].Title)
	assert.Equal(t, "Plumbing in Lisboa", got[0].Body)
	assert.Equal(t, "l1", got[0].Data["leadId"])
}
